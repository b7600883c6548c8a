// Command gds runs graph algorithms from the registry against a graph
// loaded from YAML or CSV files.
//
//	gds list
//	gds run wcc --graph graph.yaml --mode stats
//	gds run pageRank --nodes nodes.csv --relationships rels.csv --config '{"maxIterations": 40}'
//	gds run --file run.yaml --progress
//	gds estimate louvain --graph graph.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-gds/pkg/logging"
	"github.com/dd0wney/cluso-gds/pkg/metrics"
)

var (
	logLevel    string
	metricsAddr string

	rootCmd = &cobra.Command{
		Use:           "gds",
		Short:         "Run graph algorithms over an in-memory graph",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetDefaultLogger(logging.NewJSONLogger(os.Stderr, logging.ParseLevel(logLevel)))
			if metricsAddr != "" {
				serveMetrics(cmd.Context(), metricsAddr)
			}
		},
	}
)

func main() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")
	rootCmd.AddCommand(newListCmd(), newRunCmd(), newEstimateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// serveMetrics exposes the default registry until ctx ends
func serveMetrics(ctx context.Context, addr string) {
	m := metrics.DefaultRegistry()
	srv := &http.Server{Addr: addr, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go m.SampleSystemMetrics(ctx, 5*time.Second)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn("metrics server stopped", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
}
