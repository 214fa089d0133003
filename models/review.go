package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ScholarshipID   string             `json:"scholarshipId" bson:"scholarshipId"`
	ApplicationID   string             `json:"applicationId,omitempty" bson:"applicationId,omitempty"`
	ScholarshipName string             `json:"scholarshipName,omitempty" bson:"scholarshipName,omitempty"`
	UniversityName  string             `json:"universityName,omitempty" bson:"universityName,omitempty"`
	UserEmail       string             `json:"userEmail" bson:"userEmail"`
	UserName        string             `json:"userName,omitempty" bson:"userName,omitempty"`
	UserPhoto       string             `json:"userPhoto,omitempty" bson:"userPhoto,omitempty"`
	RatingPoint     int                `json:"ratingPoint" bson:"ratingPoint"`
	ReviewComment   string             `json:"reviewComment" bson:"reviewComment"`
	ReviewDate      time.Time          `json:"reviewDate" bson:"reviewDate"`
}
