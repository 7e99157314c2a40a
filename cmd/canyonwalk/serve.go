package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canyonwalk/internal/metrics"
	"github.com/vovakirdan/canyonwalk/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the canyonwalk SSH server",
	Long: `Start an SSH server that lets users connect and explore maps.

Each SSH connection gets its own session with a map picker menu.
Runs are stored per-server (all users share the same run board).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.canyonwalk/host_key

With --metrics, Prometheus metrics are served at /metrics on that address.

Examples:
  canyonwalk serve                           # Listen on :23234
  canyonwalk serve --ssh :2222               # Listen on port 2222
  canyonwalk serve --metrics :9090           # Also expose /metrics
  canyonwalk serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for the Prometheus /metrics endpoint (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	explore, err := loadConfig()
	if err != nil {
		return err
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Input = explore.Input
	cfg.Metrics = metrics.Default()

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("canyonwalk-ssh"))
	if err != nil {
		return err
	}

	if flagMetricsAddr != "" {
		go serveMetrics(flagMetricsAddr, cfg.Metrics)
	}

	logger.Info("connect with", "cmd", "ssh localhost -p 23234")
	return server.ListenAndServe()
}

func serveMetrics(addr string, m *metrics.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("serving metrics", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server", "error", err)
	}
}
