package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/amanisrajpoot/youandonly-sub000/internal/config"
	apphttp "github.com/amanisrajpoot/youandonly-sub000/internal/http"
	"github.com/amanisrajpoot/youandonly-sub000/internal/mailer"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/email"
	"github.com/amanisrajpoot/youandonly-sub000/internal/modules/payments"
)

func main() {
	// .env is optional; production uses real env vars
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var provider payments.Provider
	switch cfg.Payment.Provider {
	case "stripe":
		provider = payments.NewStripeProvider(cfg.Payment.StripeSecretKey, cfg.Payment.StripeWebhookSecret)
	default:
		provider = payments.NewMockProvider([]byte(cfg.Payment.MockWebhookSecret))
	}
	logger.Info("payment provider selected", "provider", provider.Name())

	var mail mailer.Service
	if cfg.SMTP.Host != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTP)
	} else {
		logger.Warn("SMTP_HOST not set, emails are collected in memory")
		mail = &mailer.Mock{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := email.NewDispatcher(db, mail, cfg.SMTP.From, cfg.SMTP.FromName, logger)
	go dispatcher.Run(ctx)

	r := apphttp.NewRouter(cfg, logger, db, provider)
	if err := r.Run(cfg.HTTP.Addr); err != nil {
		log.Fatal(err)
	}
}
