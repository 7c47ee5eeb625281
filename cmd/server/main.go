package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/updeals/retailer-portal/deals"
	"github.com/updeals/retailer-portal/identity"
	"github.com/updeals/retailer-portal/internal/config"
	"github.com/updeals/retailer-portal/internal/metrics"
	"github.com/updeals/retailer-portal/profiles"
	"github.com/updeals/retailer-portal/retailers"
	"github.com/updeals/retailer-portal/server"
	"github.com/updeals/retailer-portal/session"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	c := config.New()
	if err := config.Validate(c); err != nil {
		return err
	}
	displayAppname(c.GetAppName())

	httpServer, cleanup, err := buildServer(c)
	if err != nil {
		return err
	}
	defer cleanup()

	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildServer(c config.Config) (*http.Server, func(), error) {
	identityClient, err := identity.NewClient(c.GetIdentityURL(), c.GetIdentityAnonKey())
	if err != nil {
		return nil, nil, err
	}

	verifier, err := buildVerifier(c, identityClient)
	if err != nil {
		return nil, nil, err
	}

	sessionStore, err := session.NewStore(verifier, c.GetSecureCookies(), session.WithMaxAge(c.GetSessionMaxAge()))
	if err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.New(context.Background(), c.GetDatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	profileRepo, err := profiles.NewPostgresRepo(pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	retailerRepo, err := retailers.NewPostgresRepo(pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	dealRepo, err := deals.NewPostgresRepo(pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	repos := server.Repos{
		Profiles:  profileRepo,
		Retailers: retailerRepo,
		Deals:     dealRepo,
	}

	srv, err := server.New(c, identityClient, sessionStore, repos, metrics.New())
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return &http.Server{Addr: c.GetPort(), Handler: srv}, pool.Close, nil
}

func buildVerifier(c config.Config, client *identity.Client) (identity.Verifier, error) {
	if c.GetVerifyMode() == config.VerifyModeLocal {
		return identity.NewLocalVerifier(c.GetIdentityJWTSecret())
	}
	return identity.NewRemoteVerifier(client)
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
