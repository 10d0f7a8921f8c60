package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cifar-sched/internal/dispatch"
	"github.com/pdiddy/cifar-sched/internal/history"
	applog "github.com/pdiddy/cifar-sched/internal/log"
	"github.com/pdiddy/cifar-sched/internal/schedule"
	"github.com/pdiddy/cifar-sched/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the converter for every version pair in the schedule",
	Long: `Run invokes the converter once per version pair, waiting for each
conversion to finish before starting the next. Converter exit codes are
reported but ignored: the command fails only when the schedule itself is
broken (more out_versions than in_versions) or the run is interrupted.

Without --schedule the built-in low-res schedule (0 -> 1) is used.`,
	Args: cobra.NoArgs,
	RunE: runDispatch,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runDispatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	return dispatchSchedule(cmd.Context(), cfg, os.Stdout)
}

// dispatchSchedule runs the configured schedule, recording invocations when
// a history database is configured. Converter failures never produce an
// error; a broken schedule or an interrupted run does.
func dispatchSchedule(ctx context.Context, cfg types.DispatchConfig, w io.Writer) error {
	s, err := resolveSchedule(cfg)
	if err != nil {
		return err
	}

	var opts []dispatch.Option
	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("opening history: %w", err)
		}
		defer store.Close()
		opts = append(opts, dispatch.WithRecorder(store))
	}

	applog.WithComponent("cli").Info("dispatching",
		"schedule", s.Name, "pairs", len(s.OutVersions), "converter", cfg.Converter.Script)

	d := dispatch.New(cfg.Converter, opts...)
	if _, err := d.Run(ctx, s, w); err != nil {
		return fmt.Errorf("schedule %s: %w", s.Name, err)
	}
	return nil
}

// resolveSchedule loads the configured schedule file, or returns the
// built-in schedule when none is set.
func resolveSchedule(cfg types.DispatchConfig) (types.Schedule, error) {
	if cfg.SchedulePath == "" {
		return schedule.Default(), nil
	}
	return schedule.Load(cfg.SchedulePath)
}
