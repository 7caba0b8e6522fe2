package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/secmon-lab/ariadne/pkg/cli/config"
	httpctrl "github.com/secmon-lab/ariadne/pkg/controller/http"
	"github.com/secmon-lab/ariadne/pkg/service/classifier"
	"github.com/secmon-lab/ariadne/pkg/service/responder"
	"github.com/secmon-lab/ariadne/pkg/usecase"
	"github.com/secmon-lab/ariadne/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuth bool
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var searchCfg config.Search
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ARIADNE_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the anonymous user (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("ARIADNE_NO_AUTH"),
			Destination: &noAuth,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, searchCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := appCfg.Configure(); err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			if err := sentryCfg.Configure(c.Version); err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			// Configure LLM backend
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}

			var rspOpts []responder.Option
			if appCfg.Responder.Apology != "" {
				rspOpts = append(rspOpts, responder.WithApology(appCfg.Responder.Apology))
			}
			if appCfg.Responder.MaxHistoryTurns > 0 {
				rspOpts = append(rspOpts, responder.WithMaxHistoryTurns(appCfg.Responder.MaxHistoryTurns))
			}
			rsp, err := responder.New(llmClient, rspOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize responder")
			}

			// Configure authentication
			var authUC usecase.AuthUseCaseInterface
			if noAuth {
				logging.Default().Warn("Running in no-auth mode (development only)")
				authUC = usecase.NewNoAuthnUseCase()
			} else {
				authUC = usecase.NewAuthUseCase(repo)
			}

			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
				usecase.WithClassifier(classifier.New(classifier.Config{
					Indicators: appCfg.Classifier.Indicators,
					Recency:    appCfg.Classifier.Recency,
				})),
			}

			// Configure web search grounding if credentials are present
			searchSvc, err := searchCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure web search")
			}
			if searchSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSearch(searchSvc))
				logging.Default().Info("Web search grounding enabled")
			} else {
				logging.Default().Info("Web search not configured, answers will not be grounded")
			}

			uc := usecase.New(repo, rsp, ucOpts...)

			httpHandler, err := httpctrl.New(uc, httpctrl.WithAuth(authUC))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				// Create shutdown context with timeout
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				// Attempt graceful shutdown
				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
