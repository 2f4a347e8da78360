package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/z-reply/backend/internal/repository/postgres"
)

// usage: migrate [up|down|version|force <version>]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded, using system environment only")
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	m, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("create migrator")
	}
	defer func() { _ = m.Close() }()

	cmd := "up"
	if len(os.Args) >= 2 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		v, dirty, verr := m.Version()
		if verr == nil {
			fmt.Printf("version %d (dirty=%t)\n", v, dirty)
		}
		err = verr
	case "force":
		if len(os.Args) < 3 {
			log.Fatal().Msg("force requires a version")
		}
		version, perr := strconv.Atoi(os.Args[2])
		if perr != nil {
			log.Fatal().Err(perr).Msg("invalid version")
		}
		err = m.Force(version)
	default:
		log.Fatal().Str("command", cmd).Msg("unknown command")
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("migration failed")
	}

	fmt.Printf("migrate %s complete\n", cmd)
}
