package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"scholarhub/config"
	"scholarhub/controllers"
	db "scholarhub/database"
	"scholarhub/gcs"
	"scholarhub/payments"
	"scholarhub/routes"
	"scholarhub/services"
	"scholarhub/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded:", err)
	}
	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGODB_URI not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	client, err := db.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		if err := db.Disconnect(client); err != nil {
			log.Println("Failed to disconnect MongoDB:", err)
		}
	}()
	log.Println("Connected to MongoDB")
	database := client.Database(cfg.MongoDB)

	gateway, err := payments.NewOmiseGateway(cfg.OmisePublic, cfg.OmiseSecret)
	if err != nil {
		log.Fatal("Failed to init payment gateway:", err)
	}

	// Uploads and mail are optional; the endpoints that use them report
	// themselves unavailable when unconfigured.
	var uploader controllers.Uploader
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" || cfg.GCSBucket != "" {
		u, err := gcs.NewUploader(context.Background(), cfg.GCSBucket, creds)
		if err != nil {
			log.Println("Warning: image uploads disabled:", err)
		} else {
			defer u.Close()
			uploader = u
		}
	}
	var mailer controllers.Mailer
	if cfg.EmailFrom != "" {
		mailer = &utils.Mailer{Addr: cfg.SMTPAddr, From: cfg.EmailFrom, Pass: cfg.EmailPass}
	}

	sweeper := services.NewReviewSweeper(database).Start()
	defer sweeper.Stop()

	h := controllers.New(database, gateway, uploader, mailer, cfg)

	r := gin.Default()
	routes.Setup(r, h, cfg)

	log.Println("Starting server on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
