package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"headlinewatch/lib/restyutil"
	"headlinewatch/lib/scrapers/elpais"
	"headlinewatch/lib/telemetry"
	"headlinewatch/lib/translate"

	"github.com/spf13/cobra"
)

var verbose *bool

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging and http message dumps.")
}

var rootCmd = &cobra.Command{
	Use:   "headlinewatch",
	Short: "headlinewatch scrapes El País opinion headlines, translates them and reports repeated words.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)

		err := telemetry.SetupFromEnv(cmd.Context(), "headlinewatch")
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no telemetry.json5 found, telemetry disabled")
		} else if err != nil {
			slog.Warn("failed to set up telemetry", "err", err)
		} else {
			telemetry.InstrumentPerfStats(cmd.Context())
		}

		if *verbose {
			out := restyutil.NewFilesystemOutput(".dev/resty/headlinewatch")
			translate.SetRestyInstrumentOutput(out)
			elpais.SetRestyInstrumentOutput(out)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if shutdownErr := telemetry.Shutdown(context.Background()); shutdownErr != nil {
		slog.Warn("failed to shut down telemetry", "err", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
