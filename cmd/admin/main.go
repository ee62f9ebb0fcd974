// Command admin runs database migrations and manages staff accounts.
package main

import (
	"database/sql"
	"errors"
	"log"
	"os"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"schooladmin/config"
	"schooladmin/internal/adapters/auth"
	"schooladmin/internal/adapters/email"
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
	if err := db.Ping(); err != nil {
		_ = db.Close()
		log.Fatalf("ping database: %v", err)
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
		_ = db.Close()
		log.Fatalf("mailer: %v", err)
	}

	cli := commandLine{
		db: db,
		users: services.NewUserService(
			postgres.NewUserRepository(db),
			postgres.NewRoleRepository(db),
			postgres.NewResetCodeRepository(db),
			auth.NewBcryptHasher(bcrypt.DefaultCost),
			auth.NewJWTIssuer(cfg.JWTSecret),
			cfg.JWTExpiry,
			services.NewEmailService(mailer, email.NewTemplateRenderer(), logger),
		),
		out: os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if !errors.Is(err, errHelp) {
			logger.Error("admin command failed", "err", err)
		}
		os.Exit(1)
	}
}
