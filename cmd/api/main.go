package main

import (
	"io"
	"log"
	"os"

	"github.com/tranquilopay/tranquilopay-api/internal/config"
	"github.com/tranquilopay/tranquilopay-api/internal/logging"
	"github.com/tranquilopay/tranquilopay-api/internal/repository/postgres"
	"github.com/tranquilopay/tranquilopay-api/internal/service"
	transporthttp "github.com/tranquilopay/tranquilopay-api/internal/transport/http"
	"github.com/tranquilopay/tranquilopay-api/internal/transport/mail"
	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogMirrorAddr != "" {
		mirror, err := logging.NewMirror(cfg.LogMirrorAddr)
		if err != nil {
			log.Printf("Warning: log mirror disabled: %v", err)
		} else {
			defer mirror.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, mirror))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	users := postgres.NewUserRepo(db)
	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	resetMailer := mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	authService := service.NewAuthService(users, jwtManager)
	resetService := service.NewPasswordResetService(users, resetMailer, cfg.ResetTokenTTL)
	paymentService := service.NewPaymentService(cfg.AsaasBaseURL, cfg.AsaasAPIKey)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService, resetService)
	transporthttp.RegisterUsers(e, authService, jwtManager)
	transporthttp.RegisterPayments(e, paymentService)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
