// cmd/tools/seed/main.go
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/ScoreChallenge/internal/api/auth"
	"github.com/codr1/ScoreChallenge/internal/api/authz"
	"github.com/codr1/ScoreChallenge/internal/config"
	"github.com/codr1/ScoreChallenge/internal/db"
	"github.com/codr1/ScoreChallenge/internal/tournament"
)

func main() {
	var (
		configPath    = flag.String("config", "config/app.yaml", "Path to the YAML configuration file")
		fixturesPath  = flag.String("fixtures", "", "Tournament fixtures YAML to import")
		adminUsername = flag.String("admin-username", "", "Create an ADMIN account with this username")
		adminPassword = flag.String("admin-password", "", "Password for the ADMIN account")
		adminEmail    = flag.String("admin-email", "", "Optional email for the ADMIN account")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *fixturesPath == "" && *adminUsername == "" {
		log.Error().Msg("Nothing to do: pass -fixtures and/or -admin-username")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// Fixtures go first so the admin gets predictions for every match.
	if *fixturesPath != "" {
		fixtures, err := tournament.LoadFixtures(*fixturesPath)
		if err != nil {
			log.Fatal().Err(err).Str("fixtures", *fixturesPath).Msg("Failed to load fixtures")
		}
		summary, err := tournament.Import(ctx, database, fixtures)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to import fixtures")
		}
		log.Info().
			Int("teams", summary.Teams).
			Int("players", summary.Players).
			Int("matches", summary.Matches).
			Msg("Fixtures imported")
	}

	if *adminUsername != "" {
		if len(*adminPassword) < 8 {
			log.Fatal().Msg("-admin-password must be at least 8 characters")
		}
		hash, err := auth.HashPassword(*adminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash password")
		}
		user, err := auth.CreateAccount(ctx, database, *adminUsername, hash, *adminEmail, authz.RoleAdmin)
		if err != nil {
			if db.IsUniqueViolation(err) {
				log.Fatal().Str("username", *adminUsername).Msg("Username already exists")
			}
			log.Fatal().Err(err).Msg("Failed to create admin account")
		}
		log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("Admin account created")
	}
}
