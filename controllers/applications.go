package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	middlewares "scholarhub/middleware"
	"scholarhub/models"
)

const (
	defaultRecentLimit = 5
	maxRecentLimit     = 100
)

// emailFilter matches an application by either of the two address fields in
// use. New documents carry applicantEmail; old ones carry userEmail.
func emailFilter(email string) bson.M {
	return bson.M{"$or": []bson.M{
		{"applicantEmail": email},
		{"userEmail": email},
	}}
}

func (h *Handler) findApplications(c *gin.Context, filter bson.M, opts ...*options.FindOptions) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cursor, err := h.applications().Find(ctx, filter, opts...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch applications"})
		return
	}
	defer cursor.Close(ctx)

	applications := []bson.M{}
	if err := cursor.All(ctx, &applications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode applications"})
		return
	}
	c.JSON(http.StatusOK, applications)
}

// ListApplications returns the whole collection for any authenticated caller.
func (h *Handler) ListApplications(c *gin.Context) {
	h.findApplications(c, bson.M{})
}

// MyApplications returns the whole collection. The caller identity is not
// used as a filter; the frontend filters client-side.
func (h *Handler) MyApplications(c *gin.Context) {
	h.findApplications(c, bson.M{})
}

// ManageApplications returns the whole collection; the :email parameter is
// accepted but not applied as a filter.
func (h *Handler) ManageApplications(c *gin.Context) {
	h.findApplications(c, bson.M{})
}

// ApplicationsByUser returns every application for an email.
func (h *Handler) ApplicationsByUser(c *gin.Context) {
	email := normalizeEmail(c.Param("email"))
	h.findApplications(c, emailFilter(email))
}

// RecentApplications returns the newest applications for ?email, most recent
// first. Default 5, hard cap 100.
func (h *Handler) RecentApplications(c *gin.Context) {
	email := normalizeEmail(c.Query("email"))
	limit := clampLimit(c.Query("limit"), defaultRecentLimit, maxRecentLimit)

	opts := options.Find().
		SetSort(bson.D{{Key: "appliedAt", Value: -1}}).
		SetLimit(int64(limit))
	h.findApplications(c, emailFilter(email), opts)
}

// CreateApplication stores the submitted body and stamps timestamps and
// the pending/unpaid defaults.
func (h *Handler) CreateApplication(c *gin.Context) {
	var body bson.M
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	delete(body, "_id")

	now := time.Now()
	body["appliedAt"] = now
	body["createdAt"] = now
	if s, _ := body["applicationStatus"].(string); s == "" {
		body["applicationStatus"] = models.ApplicationPending
	}
	if s, _ := body["paymentStatus"].(string); s == "" {
		body["paymentStatus"] = models.PaymentUnpaid
	}
	if _, ok := body["reviewed"]; !ok {
		body["reviewed"] = false
	}
	if email, _ := body["applicantEmail"].(string); email != "" {
		body["applicantEmail"] = normalizeEmail(email)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.applications().InsertOne(ctx, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create application"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": result.InsertedID})
}

// GetApplication fetches one application by id.
func (h *Handler) GetApplication(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var application bson.M
	err = h.applications().FindOne(ctx, bson.M{"_id": objID}).Decode(&application)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch application"})
		return
	}
	c.JSON(http.StatusOK, application)
}

// UpdateApplication overwrites the supplied fields. No ownership check is
// applied beyond authentication.
func (h *Handler) UpdateApplication(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	var body bson.M
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	delete(body, "_id")
	body["updatedAt"] = time.Now()

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.applications().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": body})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update application"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application updated"})
}

// UpdateApplicationStatus sets the status. Moderator only. The applicant is
// notified by mail when a mailer is configured; delivery failure never fails
// the request.
func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	var input struct {
		ApplicationStatus string `json:"applicationStatus" binding:"required,oneof=pending processing completed rejected"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicationStatus must be pending, processing, completed or rejected"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.applications().UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"applicationStatus": input.ApplicationStatus, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	if h.mailer != nil {
		var app models.Application
		if err := h.applications().FindOne(ctx, bson.M{"_id": objID}).Decode(&app); err == nil && app.Email() != "" {
			go func(to, status string) {
				subject := "Your scholarship application was updated"
				body := fmt.Sprintf("The status of your application is now: %s", status)
				if err := h.mailer.Send(to, subject, body); err != nil {
					log.Println("status notification mail failed:", err)
				}
			}(app.Email(), input.ApplicationStatus)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

// UpdateApplicationFeedback sets the moderator feedback text.
func (h *Handler) UpdateApplicationFeedback(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	var input struct {
		Feedback string `json:"feedback"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.applications().UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"feedback": input.Feedback, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update feedback"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feedback updated"})
}

// DeleteApplication removes an application by id. No ownership check is
// applied beyond authentication.
func (h *Handler) DeleteApplication(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.applications().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete application"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "application deleted"})
}

// DashboardStats counts applications in total and per status. A non-admin,
// non-moderator caller would be scoped to their own email, but the route is
// admin-guarded, which makes that branch unreachable today. Kept as-is; see
// DESIGN.md.
func (h *Handler) DashboardStats(c *gin.Context) {
	email := c.GetString(middlewares.ContextEmail)
	role := c.GetString(middlewares.ContextRole)

	match := bson.M{}
	if email != "" && role != models.RoleAdmin && role != models.RoleModerator {
		match = emailFilter(email)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$applicationStatus",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := h.applications().Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate applications"})
		return
	}
	defer cursor.Close(ctx)

	var groups []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode counts"})
		return
	}

	counts := gin.H{
		models.ApplicationPending:    int64(0),
		models.ApplicationProcessing: int64(0),
		models.ApplicationCompleted:  int64(0),
		models.ApplicationRejected:   int64(0),
	}
	var total int64
	for _, g := range groups {
		total += g.Count
		if g.Status != "" {
			counts[g.Status] = g.Count
		}
	}
	counts["total"] = total
	c.JSON(http.StatusOK, counts)
}
