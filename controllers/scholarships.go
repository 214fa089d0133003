package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTopLimit = 6
	maxTopLimit     = 100
)

// ListScholarships returns every scholarship. Public.
func (h *Handler) ListScholarships(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cursor, err := h.scholarships().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch scholarships"})
		return
	}
	defer cursor.Close(ctx)

	scholarships := []bson.M{}
	if err := cursor.All(ctx, &scholarships); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode scholarships"})
		return
	}
	c.JSON(http.StatusOK, scholarships)
}

// TopScholarships returns the cheapest scholarships by application fee,
// ascending, at most ?limit records (default 6, capped).
func (h *Handler) TopScholarships(c *gin.Context) {
	limit := clampLimit(c.Query("limit"), defaultTopLimit, maxTopLimit)

	ctx, cancel := requestContext(c)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "applicationFees", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := h.scholarships().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch scholarships"})
		return
	}
	defer cursor.Close(ctx)

	scholarships := []bson.M{}
	if err := cursor.All(ctx, &scholarships); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode scholarships"})
		return
	}
	c.JSON(http.StatusOK, scholarships)
}

// GetScholarship fetches one scholarship by id.
func (h *Handler) GetScholarship(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scholarship ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var scholarship bson.M
	err = h.scholarships().FindOne(ctx, bson.M{"_id": objID}).Decode(&scholarship)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch scholarship"})
		return
	}
	c.JSON(http.StatusOK, scholarship)
}

// CreateScholarship stores the admin-supplied body as-is, plus timestamps.
func (h *Handler) CreateScholarship(c *gin.Context) {
	var body bson.M
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	delete(body, "_id")
	now := time.Now()
	body["createdAt"] = now
	body["updatedAt"] = now

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.scholarships().InsertOne(ctx, body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create scholarship"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": result.InsertedID})
}

// UpdateScholarship overwrites the supplied fields of a scholarship.
func (h *Handler) UpdateScholarship(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scholarship ID"})
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

	result, err := h.scholarships().UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": body})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update scholarship"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "scholarship updated"})
}

// DeleteScholarship removes a scholarship by id.
func (h *Handler) DeleteScholarship(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scholarship ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.scholarships().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete scholarship"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "scholarship not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "scholarship deleted"})
}
