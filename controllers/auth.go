package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"

	"scholarhub/models"
)

// CreateToken mints the bearer token the frontend attaches to every call.
// Sign-in itself happens upstream; this endpoint turns a signed-in email
// into a token carrying the stored role, defaulting to student for accounts
// not yet upserted.
func (h *Handler) CreateToken(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	email := normalizeEmail(input.Email)

	ctx, cancel := requestContext(c)
	defer cancel()

	role := models.RoleStudent
	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"email": email}).Decode(&user); err == nil && user.Role != "" {
		role = user.Role
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}
