package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"scholarhub/config"
	db "scholarhub/database"
	"scholarhub/models"
)

// testHandler connects to a scratch database and skips the test when no
// MongoDB is reachable.
func testHandler(t *testing.T) (*Handler, *mongo.Database) {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	client, err := db.Connect(uri)
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	database := client.Database("scholarhub_test")
	require.NoError(t, database.Drop(context.Background()))
	t.Cleanup(func() {
		database.Drop(context.Background())
		db.Disconnect(client)
	})

	cfg := &config.Config{JWTSecret: "test-secret", ClientBaseURL: "http://localhost:5173"}
	return New(database, nil, nil, nil, cfg), database
}

func testRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", h.UpsertUser)
	r.GET("/users/role/:email", h.GetUserRole)
	r.GET("/users/:email", h.GetUserByEmail)
	r.GET("/scholarships/top", h.TopScholarships)
	r.POST("/application", h.CreateApplication)
	r.GET("/application/recent", h.RecentApplications)
	r.PATCH("/application/:id/review", h.SubmitReview)
	r.GET("/application/dashboard/status", h.DashboardStats)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertUserIdempotent(t *testing.T) {
	h, database := testHandler(t)
	r := testRouter(h)
	ctx := context.Background()

	w := doJSON(r, http.MethodPost, "/users", `{"email":"Jane@Example.COM","name":"Jane","photo":"p1"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/users", `{"email":"jane@example.com","name":"Jane Doe","photo":"p2"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	count, err := database.Collection(db.UsersCollection).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var user models.User
	require.NoError(t, database.Collection(db.UsersCollection).
		FindOne(ctx, bson.M{"email": "jane@example.com"}).Decode(&user))
	assert.Equal(t, "Jane Doe", user.Name)
	assert.Equal(t, "p2", user.Photo)
	assert.Equal(t, models.RoleStudent, user.Role)
}

func TestUpsertUserNeverTouchesRole(t *testing.T) {
	h, database := testHandler(t)
	r := testRouter(h)
	ctx := context.Background()

	doJSON(r, http.MethodPost, "/users", `{"email":"admin@example.com","name":"Admin"}`)
	_, err := database.Collection(db.UsersCollection).UpdateOne(ctx,
		bson.M{"email": "admin@example.com"},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	require.NoError(t, err)

	doJSON(r, http.MethodPost, "/users", `{"email":"admin@example.com","name":"Admin Again"}`)

	var user models.User
	require.NoError(t, database.Collection(db.UsersCollection).
		FindOne(ctx, bson.M{"email": "admin@example.com"}).Decode(&user))
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "Admin Again", user.Name)
}

func TestUserRoleDefaultsToStudent(t *testing.T) {
	h, _ := testHandler(t)
	r := testRouter(h)

	w := doJSON(r, http.MethodGet, "/users/role/nobody@example.com", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleStudent, resp["role"])
}

func TestGetUserByEmailNotFound(t *testing.T) {
	h, _ := testHandler(t)
	r := testRouter(h)

	w := doJSON(r, http.MethodGet, "/users/nobody@example.com", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTopScholarships(t *testing.T) {
	h, database := testHandler(t)
	r := testRouter(h)
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := database.Collection(db.ScholarshipsCollection).InsertOne(ctx, bson.M{
			"scholarshipName": fmt.Sprintf("S%d", i),
			"applicationFees": float64(80 - 10*i),
		})
		require.NoError(t, err)
	}

	w := doJSON(r, http.MethodGet, "/scholarships/top", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.Scholarship
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].ApplicationFees, got[i].ApplicationFees)
	}

	w = doJSON(r, http.MethodGet, "/scholarships/top?limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	got = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 3)
}

func TestRecentApplications(t *testing.T) {
	h, database := testHandler(t)
	r := testRouter(h)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 7; i++ {
		_, err := database.Collection(db.ApplicationsCollection).InsertOne(ctx, bson.M{
			"applicantEmail":    "jane@example.com",
			"scholarshipId":     fmt.Sprintf("id-%d", i),
			"applicationStatus": models.ApplicationPending,
			"appliedAt":         base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	w := doJSON(r, http.MethodGet, "/application/recent?email=jane@example.com", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Application
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, "id-6", got[0].ScholarshipID) // newest first

	// A limit above the hard cap is clamped, never an error.
	w = doJSON(r, http.MethodGet, "/application/recent?email=jane@example.com&limit=500", "")
	require.Equal(t, http.StatusOK, w.Code)
	got = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.LessOrEqual(t, len(got), 100)
	assert.Len(t, got, 7)
}

func TestSubmitReviewUpsert(t *testing.T) {
	h, database := testHandler(t)
	r := testRouter(h)
	ctx := context.Background()

	scholarship, err := database.Collection(db.ScholarshipsCollection).InsertOne(ctx, bson.M{
		"scholarshipName": "STEM Excellence",
		"universityName":  "Example University",
		"applicationFees": 25.0,
	})
	require.NoError(t, err)
	scholarshipID := scholarship.InsertedID.(primitive.ObjectID).Hex()

	application, err := database.Collection(db.ApplicationsCollection).InsertOne(ctx, bson.M{
		"scholarshipId":     scholarshipID,
		"applicantEmail":    "jane@example.com",
		"applicationStatus": models.ApplicationPending,
		"reviewed":          false,
	})
	require.NoError(t, err)
	appID := application.InsertedID.(primitive.ObjectID).Hex()

	w := doJSON(r, http.MethodPatch, "/application/"+appID+"/review",
		`{"ratingPoint": 4, "reviewComment": "  solid program  ", "userName": "Jane"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPatch, "/application/"+appID+"/review",
		`{"ratingPoint": "5", "reviewComment": "even better"}`)
	require.Equal(t, http.StatusOK, w.Code)

	count, err := database.Collection(db.ReviewsCollection).CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var review models.Review
	require.NoError(t, database.Collection(db.ReviewsCollection).
		FindOne(ctx, bson.M{"scholarshipId": scholarshipID, "userEmail": "jane@example.com"}).
		Decode(&review))
	assert.Equal(t, 5, review.RatingPoint)
	assert.Equal(t, "even better", review.ReviewComment)
	assert.Equal(t, appID, review.ApplicationID)
	assert.Equal(t, "STEM Excellence", review.ScholarshipName)

	var app models.Application
	require.NoError(t, database.Collection(db.ApplicationsCollection).
		FindOne(ctx, bson.M{"_id": application.InsertedID}).Decode(&app))
	assert.True(t, app.Reviewed)
}

func TestSubmitReviewLegacyEmailField(t *testing.T) {
	h, database := testHandler(t)
	r := testRouter(h)
	ctx := context.Background()

	scholarship, err := database.Collection(db.ScholarshipsCollection).InsertOne(ctx, bson.M{
		"scholarshipName": "Arts Grant",
		"universityName":  "Example University",
	})
	require.NoError(t, err)

	application, err := database.Collection(db.ApplicationsCollection).InsertOne(ctx, bson.M{
		"scholarshipId": scholarship.InsertedID.(primitive.ObjectID).Hex(),
		"userEmail":     "legacy@example.com", // pre-rename field name
	})
	require.NoError(t, err)
	appID := application.InsertedID.(primitive.ObjectID).Hex()

	w := doJSON(r, http.MethodPatch, "/application/"+appID+"/review",
		`{"ratingPoint": 3, "reviewComment": "ok"}`)
	require.Equal(t, http.StatusOK, w.Code)

	count, err := database.Collection(db.ReviewsCollection).
		CountDocuments(ctx, bson.M{"userEmail": "legacy@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDashboardStats(t *testing.T) {
	h, database := testHandler(t)
	r := testRouter(h)
	ctx := context.Background()

	statuses := []string{
		models.ApplicationPending, models.ApplicationPending,
		models.ApplicationProcessing, models.ApplicationCompleted,
	}
	for _, s := range statuses {
		_, err := database.Collection(db.ApplicationsCollection).InsertOne(ctx, bson.M{
			"applicantEmail":    "jane@example.com",
			"applicationStatus": s,
		})
		require.NoError(t, err)
	}

	w := doJSON(r, http.MethodGet, "/application/dashboard/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(4), resp["total"])
	assert.Equal(t, int64(2), resp[models.ApplicationPending])
	assert.Equal(t, int64(1), resp[models.ApplicationProcessing])
	assert.Equal(t, int64(1), resp[models.ApplicationCompleted])
	assert.Equal(t, int64(0), resp[models.ApplicationRejected])
}
