package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/grovesmith/backend/internal/config"
	v1 "github.com/grovesmith/backend/internal/controllers/v1"
	"github.com/grovesmith/backend/internal/events"
	"github.com/grovesmith/backend/internal/models"
	"github.com/grovesmith/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title						Grovesmith
//	@description				The backend for Grovesmith, an allowance tracker that splits allowance into Give, Spend, Save and Invest.
//	@license.name				AGPL-3.0-or-later
//	@license.url				https://www.gnu.org/licenses/agpl-3.0.en.html
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if (cfg.LogFormat == "" && gin.IsDebugging()) || cfg.LogFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Connect to the database
	if cfg.DatabaseURL != "" {
		err = models.ConnectPostgres(cfg.DatabaseURL)
	} else {
		err = os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
		if err == nil {
			err = models.Connect(cfg.DBPath)
		}
	}
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Events are only sent when a broker is configured
	var publisher events.Publisher = events.Nop{}
	if cfg.AMQPURL != "" {
		publisher, err = events.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		log.Info().Str("exchange", cfg.AMQPExchange).Msg("publishing events")
	}

	co, err := v1.NewController(cfg, publisher)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(cfg)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	router.AttachRoutes(cfg, co, r.Group("/"))

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("backend startup complete")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	teardown()

	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("closing event publisher")
	}

	if sqlDB, err := models.DB.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info().Msg("backend stopped")
}
