package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scholarship documents are admin-supplied and stored mostly as-is; this
// struct names the fields the API itself reads (sorting, checkout, reviews).
// Extra fields in the stored document survive because writes go through raw
// bson maps, not this struct.
type Scholarship struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ScholarshipName string             `json:"scholarshipName" bson:"scholarshipName"`
	UniversityName  string             `json:"universityName" bson:"universityName"`
	Degree          string             `json:"degree,omitempty" bson:"degree,omitempty"`
	ApplicationFees float64            `json:"applicationFees" bson:"applicationFees"`
	CreatedAt       time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
