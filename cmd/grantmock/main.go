// Command grantmock serves an in-memory stand-in for the evaluation backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginlib "github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fwojciec/grantview/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the grantmock command.
func NewRootCommand() *cobra.Command {
	var (
		addr    string
		latency time.Duration
		fail    bool
		seed    uint64
		debug   bool
	)
	cmd := &cobra.Command{
		Use:           "grantmock",
		Short:         "Serve a stand-in evaluation backend with generated results",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if debug {
				level = slog.LevelDebug
			} else {
				ginlib.SetMode(ginlib.ReleaseMode)
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			opts := []gin.Option{
				gin.WithLatency(latency),
				gin.WithSubmitFailure(fail),
				gin.WithLogger(logger),
			}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, gin.WithSeed(seed))
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return Serve(cmd.Context(), ln, gin.NewServer(opts...).Handler(), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8000", "Listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Delay before answering each submission")
	cmd.Flags().BoolVar(&fail, "fail-submissions", false, "Answer every submission with a server error")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for generated scores")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose logging")
	return cmd
}

// Serve runs handler on ln until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", slog.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
