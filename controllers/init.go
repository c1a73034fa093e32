package controllers

import (
	"os"

	"journal-review-api/config"
	"journal-review-api/repository"
	"journal-review-api/services"
)

var (
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository

	notificationService *services.NotificationService
	submissionService   *services.SubmissionService
	reviewService       *services.ReviewService
	publicationService  *services.PublicationService
	userService         *services.UserService
)

// InitServices wires repositories and services against the shared database
// handle. Call once at startup, after config.InitDB.
func InitServices() {
	db := config.DB

	userRepo = repository.NewUserRepository(db)
	tokenRepo = repository.NewTokenRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	fileRepo := repository.NewFileRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	volumeRepo := repository.NewVolumeRepository(db)
	issueRepo := repository.NewIssueRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	uploadRoot := os.Getenv("UPLOAD_PATH")
	if uploadRoot == "" {
		uploadRoot = "./uploads"
	}

	notificationService = services.NewNotificationService(notificationRepo, config.SendMail)
	submissionService = services.NewSubmissionService(submissionRepo, fileRepo, userRepo, reviewRepo, notificationService, uploadRoot)
	reviewService = services.NewReviewService(reviewRepo, submissionRepo, userRepo, notificationService)
	publicationService = services.NewPublicationService(volumeRepo, issueRepo, articleRepo, submissionRepo, userRepo, notificationService)
	userService = services.NewUserService(userRepo)
}
