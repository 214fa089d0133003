package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scholarhub/models"
)

func (h *Handler) findReviews(c *gin.Context, filter bson.M) {
	ctx, cancel := requestContext(c)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "reviewDate", Value: -1}})
	cursor, err := h.reviews().Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reviews"})
		return
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListReviews returns every review, newest first.
func (h *Handler) ListReviews(c *gin.Context) {
	h.findReviews(c, bson.M{})
}

// ReviewsByScholarship returns the reviews for one scholarship, newest first.
func (h *Handler) ReviewsByScholarship(c *gin.Context) {
	h.findReviews(c, bson.M{"scholarshipId": c.Param("scholarshipId")})
}

// ReviewsByUser returns the reviews written by one user, newest first.
func (h *Handler) ReviewsByUser(c *gin.Context) {
	h.findReviews(c, bson.M{"userEmail": normalizeEmail(c.Param("email"))})
}

// SubmitReview creates or updates the review belonging to an application.
// There is at most one review per (scholarship, user) pair: an existing one
// is overwritten in place. The application's reviewed flag is set afterwards;
// the sequence is not transactional, so the hourly sweep in services repairs
// a flag lost to a crash in between.
func (h *Handler) SubmitReview(c *gin.Context) {
	appID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	var input struct {
		RatingPoint   interface{} `json:"ratingPoint"`
		ReviewComment string      `json:"reviewComment"`
		UserName      string      `json:"userName"`
		UserPhoto     string      `json:"userPhoto"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rating := coerceInt(input.RatingPoint)
	comment := strings.TrimSpace(input.ReviewComment)

	ctx, cancel := requestContext(c)
	defer cancel()

	var app models.Application
	err = h.applications().FindOne(ctx, bson.M{"_id": appID}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch application"})
		return
	}

	email := normalizeEmail(app.Email())
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application has no applicant email"})
		return
	}

	scholarshipID, err := primitive.ObjectIDFromHex(app.ScholarshipID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "application has an invalid scholarship ID"})
		return
	}
	var scholarship models.Scholarship
	err = h.scholarships().FindOne(ctx, bson.M{"_id": scholarshipID}).Decode(&scholarship)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch scholarship"})
		return
	}

	now := time.Now()
	reviewFilter := bson.M{"scholarshipId": app.ScholarshipID, "userEmail": email}

	var existing models.Review
	err = h.reviews().FindOne(ctx, reviewFilter).Decode(&existing)
	switch {
	case err == nil:
		update := bson.M{
			"ratingPoint":   rating,
			"reviewComment": comment,
			"reviewDate":    now,
			"applicationId": appID.Hex(),
		}
		if input.UserName != "" {
			update["userName"] = input.UserName
		}
		if input.UserPhoto != "" {
			update["userPhoto"] = input.UserPhoto
		}
		if _, err := h.reviews().UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": update}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
			return
		}
	case err == mongo.ErrNoDocuments:
		review := models.Review{
			ScholarshipID:   app.ScholarshipID,
			ApplicationID:   appID.Hex(),
			ScholarshipName: scholarship.ScholarshipName,
			UniversityName:  scholarship.UniversityName,
			UserEmail:       email,
			UserName:        input.UserName,
			UserPhoto:       input.UserPhoto,
			RatingPoint:     rating,
			ReviewComment:   comment,
			ReviewDate:      now,
		}
		if _, err := h.reviews().InsertOne(ctx, review); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save review"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up review"})
		return
	}

	if _, err := h.applications().UpdateOne(ctx,
		bson.M{"_id": appID},
		bson.M{"$set": bson.M{"reviewed": true, "updatedAt": now}},
	); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to flag application as reviewed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review submitted"})
}

// UpdateReview changes rating and comment of a review directly by id.
func (h *Handler) UpdateReview(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return
	}

	var input struct {
		RatingPoint   interface{} `json:"ratingPoint"`
		ReviewComment string      `json:"reviewComment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := bson.M{
		"reviewComment": strings.TrimSpace(input.ReviewComment),
		"reviewDate":    time.Now(),
	}
	if input.RatingPoint != nil {
		update["ratingPoint"] = coerceInt(input.RatingPoint)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.reviews().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review updated"})
}

// DeleteReview removes a review by id.
func (h *Handler) DeleteReview(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.reviews().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
