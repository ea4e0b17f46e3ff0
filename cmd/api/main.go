package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sshusain313/causeconnect-sub000/api/routes"
	"github.com/sshusain313/causeconnect-sub000/internal/config"
	"github.com/sshusain313/causeconnect-sub000/internal/handlers"
	"github.com/sshusain313/causeconnect-sub000/internal/repositories"
	mongorepo "github.com/sshusain313/causeconnect-sub000/internal/repositories/mongodb"
	"github.com/sshusain313/causeconnect-sub000/internal/services"
	"github.com/sshusain313/causeconnect-sub000/pkg/mailer"
	"github.com/sshusain313/causeconnect-sub000/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load(config.GetEnv("CONFIG_PATH", "."))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := mongodb.EnsureIndexes(context.Background(), db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// Repositories
	var userRepo repositories.UserRepository = mongorepo.NewUserRepository(db)
	var causeRepo repositories.CauseRepository = mongorepo.NewCauseRepository(db)
	var sponsorshipRepo repositories.SponsorshipRepository = mongorepo.NewSponsorshipRepository(db)
	var claimRepo repositories.ClaimRepository = mongorepo.NewClaimRepository(db)
	var otpRepo repositories.OTPRepository = mongorepo.NewOTPRepository(db)
	var locationRepo repositories.LocationRepository = mongorepo.NewLocationRepository(db)
	var distributionRepo repositories.DistributionRepository = mongorepo.NewDistributionRepository(db)

	// Services
	mail := mailer.NewMailer(cfg)
	authService := services.NewAuthService(userRepo, mail, cfg)
	userService := services.NewUserService(userRepo)
	causeService := services.NewCauseService(causeRepo, sponsorshipRepo, claimRepo)
	sponsorshipService := services.NewSponsorshipService(sponsorshipRepo, causeService)
	claimService := services.NewClaimService(claimRepo, causeService)
	otpService := services.NewOTPService(otpRepo, claimRepo, mail)
	locationService := services.NewLocationService(locationRepo, distributionRepo)
	distributionService := services.NewDistributionService(distributionRepo, sponsorshipRepo, locationRepo, mongoClient)

	// Handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:         handlers.NewAuthHandler(authService),
		UserHandler:         handlers.NewUserHandler(userService),
		CauseHandler:        handlers.NewCauseHandler(causeService),
		SponsorshipHandler:  handlers.NewSponsorshipHandler(sponsorshipService),
		ClaimHandler:        handlers.NewClaimHandler(claimService),
		OTPHandler:          handlers.NewOTPHandler(otpService),
		DistributionHandler: handlers.NewDistributionHandler(distributionService),
		LocationHandler:     handlers.NewLocationHandler(locationService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
