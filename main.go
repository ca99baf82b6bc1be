package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sitewarden/sitewarden/cmd/cleanup"
	"github.com/sitewarden/sitewarden/cmd/download"
	"github.com/sitewarden/sitewarden/cmd/downloads"
	"github.com/sitewarden/sitewarden/cmd/purge"
	"github.com/sitewarden/sitewarden/cmd/remove"
	"github.com/sitewarden/sitewarden/cmd/show"
	"github.com/sitewarden/sitewarden/cmd/sites"
	"github.com/sitewarden/sitewarden/internal/buildinfo"
	"github.com/sitewarden/sitewarden/internal/conf"
	"github.com/sitewarden/sitewarden/internal/logging"
	"github.com/sitewarden/sitewarden/internal/observability/metrics"
	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	if settings.Log.Enabled && settings.Log.Path != "" {
		closeLog, err := logging.InitWithFile(settings.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			return 1
		}
		defer closeLog() //nolint:errcheck // nothing to do with a close error at exit
	} else {
		logging.Init()
	}
	syncMetrics, err := metrics.NewSyncMetrics(prometheus.NewRegistry())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing metrics: %v\n", err)
		return 1
	}
	ctx := conf.NewContext(settings, logging.Structured(), syncMetrics)

	rootCmd := &cobra.Command{
		Use:     "sitewarden",
		Version: buildinfo.String(),
		Short:   "Field-inspection tracking: offline cache and sync tools",
		Long: `sitewarden manages the offline cache of a field-inspection tracking tool:
it lists sites, shows inspection history, downloads per-site offline bundles,
and maintains their retention lifecycle.`,
	}

	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")

	rootCmd.AddCommand(
		sites.Command(ctx),
		show.Command(ctx),
		download.Command(ctx),
		downloads.Command(ctx),
		cleanup.Command(ctx),
		remove.Command(ctx),
		purge.Command(ctx),
	)

	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}
