// @title School Admin API
// @version 1.0
// @description Staff API for students, lessons, activities and quiz scores.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"schooladmin/config"
	_ "schooladmin/docs"
	"schooladmin/internal/adapters/auth"
	"schooladmin/internal/adapters/email"
	"schooladmin/internal/adapters/report"
	"schooladmin/internal/adapters/storage"
	api "schooladmin/internal/delivery/http"
	"schooladmin/internal/delivery/http/controllers"
	"schooladmin/internal/delivery/http/middleware"
	"schooladmin/internal/realtime"
	"schooladmin/internal/repository/postgres"
	"schooladmin/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		cancelPing()
		log.Fatalf("ping database: %v", err)
	}
	cancelPing()

	store, err := storage.NewLocalStore(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:             cfg.Mail.AWSRegion,
			AccessKeyID:        cfg.Mail.AWSAccessKeyID,
			SecretAccessKey:    cfg.Mail.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Mail.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	hub := realtime.NewHub()
	timeout := cfg.RequestTimeout

	studentSvc := services.NewStudentService(postgres.NewStudentRepository(db), hub, timeout)
	lessonSvc := services.NewLessonService(postgres.NewLessonRepository(db), store, hub, timeout)
	activitySvc := services.NewActivityService(postgres.NewActivityRepository(db), store, hub, timeout)
	scoreSvc := services.NewScoreService(postgres.NewScoreRepository(db), report.NewScoresPDF("Quiz Scores", time.Local), hub, timeout)
	userSvc := services.NewUserService(
		postgres.NewUserRepository(db),
		postgres.NewRoleRepository(db),
		postgres.NewResetCodeRepository(db),
		auth.NewBcryptHasher(bcrypt.DefaultCost),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
		services.NewEmailService(mailer, email.NewTemplateRenderer(), logger),
	)

	router := api.NewRouter(api.Controllers{
		Users:      controllers.NewUserController(logger, userSvc),
		Students:   controllers.NewStudentController(logger, studentSvc),
		Lessons:    controllers.NewLessonController(logger, lessonSvc),
		Activities: controllers.NewActivityController(logger, activitySvc),
		Scores:     controllers.NewScoreController(logger, scoreSvc),
		Stream:     controllers.NewStreamController(logger, hub, studentSvc, lessonSvc, activitySvc, scoreSvc),
	}, auth.NewJWTVerifier(cfg.JWTSecret), http.Dir(store.Root()), logger)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, router))

	// No WriteTimeout: /stream responses stay open and clear their own deadline.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}
