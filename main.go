package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bizdesk-backend/auth"
	"bizdesk-backend/config"
	"bizdesk-backend/controllers"
	"bizdesk-backend/repository"
	"bizdesk-backend/routes"
	"bizdesk-backend/services"
	"bizdesk-backend/utils"
)

func sessionTTL() time.Duration {
	raw := os.Getenv("SESSION_TTL_HOURS")
	if raw == "" {
		return auth.DefaultSessionTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		log.Printf("invalid SESSION_TTL_HOURS %q, using default", raw)
		return auth.DefaultSessionTTL
	}
	return time.Duration(hours) * time.Hour
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	log.Println("Database connection established and migrations applied")

	// Session stores are per principal kind; an admin token never
	// verifies against the partner store.
	ttl := sessionTTL()
	adminSessions := auth.NewSessionStore("admin", ttl)
	partnerSessions := auth.NewSessionStore("partner", ttl)

	// Repositories
	stageRepo := repository.NewStageRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	timeslotRepo := repository.NewTimeslotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)
	clientRepo := repository.NewClientRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	faqRepo := repository.NewFAQRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Services
	mailer := utils.NewMailerFromEnv()
	bookingService := services.NewBookingService(db, timeslotRepo, bookingRepo, mailer)
	inquiryService := services.NewInquiryService(inquiryRepo, mailer)
	statsService := services.NewStatsService(inquiryRepo, bookingRepo)

	// Controllers
	publicController := controllers.NewPublicController(
		stageRepo, timeslotRepo, settingsRepo,
		blogRepo, faqRepo, testimonialRepo, packageRepo, analyticsRepo,
		inquiryService, bookingService,
	)
	authController := controllers.NewAuthController(adminRepo, partnerRepo, adminSessions, partnerSessions)
	adminController := controllers.NewAdminController(stageRepo, inquiryRepo, timeslotRepo, bookingRepo, statsService)
	contentController := controllers.NewContentController(
		blogRepo, faqRepo, testimonialRepo, packageRepo,
		templateRepo, settingsRepo, analyticsRepo,
	)
	partnerController := controllers.NewPartnerController(clientRepo)

	router := routes.SetupRouter(
		publicController, authController, adminController,
		contentController, partnerController,
		adminSessions, partnerSessions,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
