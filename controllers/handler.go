package controllers

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"scholarhub/config"
	db "scholarhub/database"
	"scholarhub/payments"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, contentType, folder string) (string, error)
}

// Mailer sends a best-effort notification mail.
type Mailer interface {
	Send(to, subject, body string) error
}

// Handler carries everything the route handlers need. All dependencies are
// injected once at startup; the package keeps no globals.
type Handler struct {
	db       *mongo.Database
	gateway  payments.Gateway
	uploader Uploader
	mailer   Mailer
	cfg      *config.Config
}

// New builds the handler set. uploader and mailer may be nil; the endpoints
// that need them degrade gracefully.
func New(database *mongo.Database, gateway payments.Gateway, uploader Uploader, mailer Mailer, cfg *config.Config) *Handler {
	return &Handler{
		db:       database,
		gateway:  gateway,
		uploader: uploader,
		mailer:   mailer,
		cfg:      cfg,
	}
}

func (h *Handler) users() *mongo.Collection        { return h.db.Collection(db.UsersCollection) }
func (h *Handler) scholarships() *mongo.Collection { return h.db.Collection(db.ScholarshipsCollection) }
func (h *Handler) applications() *mongo.Collection { return h.db.Collection(db.ApplicationsCollection) }
func (h *Handler) reviews() *mongo.Collection      { return h.db.Collection(db.ReviewsCollection) }

// requestContext bounds a store call and is cancelled when the client
// disconnects.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// clampLimit parses a caller-supplied limit, falling back to def and capping
// at max.
func clampLimit(raw string, def, max int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// coerceInt accepts the loosely-typed numbers JSON clients send for ratings.
func coerceInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	default:
		return 0
	}
}
