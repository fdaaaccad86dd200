// Command sutra-server serves the NeuralSutra tools over HTTP.
//
// Usage:
//
//	sutra-server -port 8080 [-classifier model -vocab vocab.json -model-url URL]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNikhilTadepalli/NeuralSutra/compiler"
	"github.com/SaiNikhilTadepalli/NeuralSutra/engine"
	"github.com/SaiNikhilTadepalli/NeuralSutra/internal/config"
	"github.com/SaiNikhilTadepalli/NeuralSutra/tools"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "sutra-server:", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	fs := config.NewFlagSet("sutra-server")
	port := fs.Int("port", 8080, "port to listen on [8080]")
	logLevel := fs.String("log-level", "info", "log level: debug | info | warn | error [info]")
	classifier := fs.String("classifier", config.ClassifierRules, "intent classifier: rules | model [rules]")
	vocab := fs.String("vocab", "", "vocabulary JSON for -classifier=model")
	modelURL := fs.String("model-url", "", "model server endpoint for -classifier=model")
	maxPasses := fs.Int("max-passes", compiler.DefaultMaxPasses, "maximum compiler passes")
	if err := fs.Parse(argv); err != nil {
		return err
	}

	logger, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		return err
	}
	cls, err := config.BuildClassifier(*classifier, *vocab, *modelURL)
	if err != nil {
		return err
	}
	h := tools.NewHandler(engine.New(engine.WithLogger(logger)), cls,
		compiler.WithMaxPasses(*maxPasses),
		compiler.WithLogger(logger),
	)

	addr := fmt.Sprintf(":%d", *port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(h, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "classifier", *classifier)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
