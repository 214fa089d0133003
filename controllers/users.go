package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"scholarhub/models"
)

// ListUsers returns every user. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	cursor, err := h.users().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpsertUser creates a user on first sign-in and refreshes name/photo on
// later ones. Keyed on lowercased email; the role is only ever written on
// insert.
func (h *Handler) UpsertUser(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	email := normalizeEmail(input.Email)
	now := time.Now()

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.users().UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{
				"name":      input.Name,
				"photo":     input.Photo,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{
				"email":     email,
				"role":      models.RoleStudent,
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save user"})
		return
	}

	status := http.StatusOK
	if result.UpsertedCount > 0 {
		status = http.StatusCreated
	}

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}
	c.JSON(status, user)
}

// GetUserByEmail fetches one user; the email is lowercased before lookup.
func (h *Handler) GetUserByEmail(c *gin.Context) {
	email := normalizeEmail(c.Param("email"))

	ctx, cancel := requestContext(c)
	defer cancel()

	var user models.User
	err := h.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUserRole returns role, name and photo for an email. An unknown email is
// reported as a student, never as an error.
func (h *Handler) GetUserRole(c *gin.Context) {
	email := normalizeEmail(c.Param("email"))

	ctx, cancel := requestContext(c)
	defer cancel()

	var user models.User
	err := h.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusOK, gin.H{"role": models.RoleStudent, "name": "", "photo": ""})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}

	role := user.Role
	if role == "" {
		role = models.RoleStudent
	}
	c.JSON(http.StatusOK, gin.H{"role": role, "name": user.Name, "photo": user.Photo})
}

// UpdateProfile changes display name and photo for an email.
func (h *Handler) UpdateProfile(c *gin.Context) {
	email := normalizeEmail(c.Param("email"))

	var input struct {
		Name  string `json:"name"`
		Photo string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.users().UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"name": input.Name, "photo": input.Photo, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}

// UpdateUserRole sets the role for a user id. Admin only. The wildcard is
// named :email because the PATCH tree shares it with UpdateProfile, but its
// value here is the user id.
func (h *Handler) UpdateUserRole(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	var input struct {
		Role string `json:"role" binding:"required,oneof=student moderator admin"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be student, moderator or admin"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.users().UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"role": input.Role, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update role"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

// DeleteUser removes a user by id. Admin only.
func (h *Handler) DeleteUser(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.users().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
