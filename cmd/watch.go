package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mj1618/trade-overlay/internal/engine"
	"github.com/mj1618/trade-overlay/internal/logging"
	"github.com/mj1618/trade-overlay/internal/metrics"
	"github.com/mj1618/trade-overlay/internal/settings"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the overlay engine and stream updates as JSONL",
	Long: `Track the game window, follow its chat log, and manage trade offers.

Each line on stdout is a JSON object for one update: game state changes,
the located chat log, the pending offers, and the highlight state. Nothing is
emitted while the state is stable.

Output is always JSONL regardless of the --format flag.

The settings file is watched and re-applied when it changes. Use Ctrl+C or
--duration to stop.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("dry-run", false, "Log chat commands instead of typing them into the game")
	watchCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	watchCmd.Flags().Int("duration", 0, "Max seconds to run (0 = until Ctrl+C)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	durationSec, _ := cmd.Flags().GetInt("duration")

	ctx, stop := signalContext(cmd.Context(), durationSec)
	defer stop()

	m := metrics.New()
	eng, err := newEngine(ctx, dryRun, m)
	if err != nil {
		return err
	}
	log := logging.NewLogger("watch")

	if metricsAddr != "" {
		srv := startMetricsServer(metricsAddr, m, log)
		defer srv.Close()
	}
	if w := startSettingsWatcher(ctx, eng, log); w != nil {
		defer w.Close()
	}

	updates := eng.Subscribe()
	defer eng.Unsubscribe(updates)

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)

	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	start := time.Now()
	eventCount := 0
	for {
		select {
		case u := <-updates:
			enc.Encode(u)
			eventCount++
		case err := <-done:
			enc.Encode(map[string]interface{}{
				"kind":    "done",
				"ts":      time.Now().Unix(),
				"elapsed": fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
				"events":  eventCount,
			})
			return err
		}
	}
}

// signalContext is cancelled on SIGINT/SIGTERM, or after durationSec when set.
func signalContext(parent context.Context, durationSec int) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	if durationSec <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(durationSec)*time.Second)
	return ctx, func() {
		cancel()
		stop()
	}
}

func startMetricsServer(addr string, m *metrics.Metrics, log *logrus.Entry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.WithField("addr", addr).Info("Serving metrics")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("Metrics server failed")
		}
	}()
	return srv
}

// startSettingsWatcher re-applies the settings file to the engine and the
// loggers whenever it changes. It returns nil when the file's directory cannot
// be watched.
func startSettingsWatcher(ctx context.Context, eng *engine.Engine, log *logrus.Entry) *settings.Watcher {
	if settingsStore == nil {
		return nil
	}
	w, err := settings.NewWatcher(settingsStore, 0, func(s *settings.Settings) {
		logging.Configure(s.Logging)
		eng.SettingsChanged(s)
	})
	if err != nil {
		log.WithError(err).WithField("dir", filepath.Dir(settingsStore.Path())).
			Debug("Settings file not watched")
		return nil
	}
	go w.Start(ctx)
	return w
}
