package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"scholarhub/config"
	"scholarhub/controllers"
	middlewares "scholarhub/middleware"
)

// Setup wires the CORS policy, the route table and the middleware chains.
func Setup(r *gin.Engine, h *controllers.Handler, cfg *config.Config) {
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ScholarHub server is running")
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	auth := middlewares.VerifyToken([]byte(cfg.JWTSecret))
	admin := middlewares.RequireAdmin()
	moderator := middlewares.RequireModerator()

	r.POST("/auth/token", h.CreateToken)
	r.POST("/create-checkout-session", auth, h.CreateCheckoutSession)
	r.POST("/upload", auth, admin, h.UploadImage)

	// Users
	r.GET("/users", auth, admin, h.ListUsers)
	r.POST("/users", h.UpsertUser)
	r.GET("/users/role/:email", auth, h.GetUserRole)
	r.GET("/users/:email", auth, h.GetUserByEmail)
	// Gin allows one wildcard name per tree position, so the role route
	// reuses :email even though its value is a user id.
	r.PATCH("/users/:email", auth, h.UpdateProfile)
	r.PATCH("/users/:email/role", auth, admin, h.UpdateUserRole)
	r.DELETE("/users/:id", auth, admin, h.DeleteUser)

	// Scholarships
	r.GET("/scholarships", h.ListScholarships)
	r.GET("/scholarships/top", h.TopScholarships)
	r.GET("/scholarships/:id", h.GetScholarship)
	r.POST("/scholarships", auth, admin, h.CreateScholarship)
	r.PATCH("/scholarships/:id", auth, admin, h.UpdateScholarship)
	r.DELETE("/scholarships/:id", auth, admin, h.DeleteScholarship)

	// Applications
	r.GET("/application", auth, h.ListApplications)
	r.POST("/application", auth, h.CreateApplication)
	r.GET("/application/recent", auth, h.RecentApplications)
	r.GET("/application/dashboard/status", auth, admin, h.DashboardStats)
	r.GET("/application/user/:email", auth, h.ApplicationsByUser)
	r.GET("/application/:id", auth, h.GetApplication)
	r.GET("/my-application", auth, h.MyApplications)
	r.GET("/manage-application/:email", auth, h.ManageApplications)
	r.PATCH("/application/:id", auth, h.UpdateApplication)
	r.PATCH("/application/:id/status", auth, moderator, h.UpdateApplicationStatus)
	r.PATCH("/application/:id/feedback", auth, moderator, h.UpdateApplicationFeedback)
	r.PATCH("/application/:id/review", auth, h.SubmitReview)
	r.DELETE("/application/:id", auth, h.DeleteApplication)

	// Reviews
	r.GET("/reviews", h.ListReviews)
	r.GET("/reviews/scholarship/:scholarshipId", h.ReviewsByScholarship)
	r.GET("/reviews/user/:email", auth, h.ReviewsByUser)
	r.PATCH("/reviews/:id", auth, h.UpdateReview)
	r.DELETE("/reviews/:id", auth, h.DeleteReview)
}
