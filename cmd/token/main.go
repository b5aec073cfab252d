package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mediqueue/backend/internal/application/services"
	"github.com/mediqueue/backend/internal/domain/entities"
	"github.com/mediqueue/backend/internal/seed"
	"github.com/mediqueue/backend/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// demoIdentities maps each role to the seeded user it signs in as by default
var demoIdentities = map[entities.Role]entities.Session{
	entities.RolePatient: {UserID: seed.DemoPatientID, Name: seed.DemoPatientName},
	entities.RoleDoctor:  {UserID: seed.DemoDoctorID, Name: "Dr. Smith"},
	entities.RoleAdmin:   {UserID: seed.DemoAdminID, Name: "Admin"},
}

func main() {
	roleFlag := flag.String("role", "patient", "session role: patient, doctor or admin")
	subject := flag.String("sub", "", "user id (defaults to the demo user for the role)")
	name := flag.String("name", "", "display name (defaults to the demo user for the role)")
	flag.Parse()

	// stdout carries only the token so it can be captured by scripts.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	role, err := entities.ParseRole(*roleFlag)
	if err != nil || role == entities.RoleAnonymous {
		log.Fatal().Str("role", *roleFlag).Msg("Role must be patient, doctor or admin")
	}

	session := demoIdentities[role]
	session.Role = role
	if *subject != "" {
		session.UserID = *subject
	}
	if *name != "" {
		session.Name = *name
	}

	sessions, err := services.NewSessionService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session service")
	}

	token, expiresAt, err := sessions.IssueToken(session)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to issue token")
	}

	log.Info().Str("user_id", session.UserID).Str("role", string(role)).Time("expires_at", expiresAt).Msg("Token issued")
	fmt.Fprintln(os.Stdout, token)
}
