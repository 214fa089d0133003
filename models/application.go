package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application statuses. New applications default to pending.
const (
	ApplicationPending    = "pending"
	ApplicationProcessing = "processing"
	ApplicationCompleted  = "completed"
	ApplicationRejected   = "rejected"
)

// PaymentUnpaid is stamped on new applications until checkout completes.
const PaymentUnpaid = "unpaid"

type Application struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ScholarshipID     string             `json:"scholarshipId" bson:"scholarshipId"`
	ApplicantEmail    string             `json:"applicantEmail,omitempty" bson:"applicantEmail,omitempty"`
	UserEmail         string             `json:"userEmail,omitempty" bson:"userEmail,omitempty"`
	ApplicationStatus string             `json:"applicationStatus" bson:"applicationStatus"`
	PaymentStatus     string             `json:"paymentStatus" bson:"paymentStatus"`
	Feedback          string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Reviewed          bool               `json:"reviewed" bson:"reviewed"`
	AppliedAt         time.Time          `json:"appliedAt" bson:"appliedAt"`
	CreatedAt         time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Email returns the applicant's address. New documents carry applicantEmail;
// documents written before the field was renamed still carry userEmail.
func (a Application) Email() string {
	if a.ApplicantEmail != "" {
		return a.ApplicantEmail
	}
	return a.UserEmail
}
