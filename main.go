package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/models"
	"github.com/nisequence/two-sense/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Sessions stay valid for three days, then users have to log in again.
const tokenLifetime = 72 * time.Hour

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Sessions are signed with this secret, there is no insecure default
	tokenSecret, ok := os.LookupEnv("TOKEN_SECRET")
	if !ok || tokenSecret == "" {
		log.Fatal().Msg("TOKEN_SECRET must be set to a strong random string")
	}
	tokens := auth.NewTokenManager(tokenSecret, tokenLifetime)

	apiURL, ok := os.LookupEnv("API_URL")
	if !ok {
		apiURL = "http://localhost:8080"
	}

	url, err := url.Parse(apiURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create data directory
	dataDir := filepath.Join(".", "data")
	err = os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database, this also migrates all models
	err = models.Connect(filepath.Join(dataDir, "two-sense.db"))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, _, err := router.Config(url)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(tokens, r.Group("/"))

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
