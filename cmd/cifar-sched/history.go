package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cifar-sched/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded converter invocations",
	Long: `History lists invocations recorded by run --history, most recent
first.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", history.DefaultLimit, "maximum number of invocations to list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if cfg.HistoryPath == "" {
		return fmt.Errorf("no history database configured; pass --history or set history in the config file")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	return listHistory(cmd.Context(), cfg.HistoryPath, limit, os.Stdout)
}

// listHistory writes up to limit recorded invocations to w as a table. A
// missing database is reported, not created.
func listHistory(ctx context.Context, path string, limit int, w io.Writer) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(w, "No history recorded.")
		return nil
	}

	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	invs, err := store.List(ctx, limit)
	if err != nil {
		return err
	}
	if len(invs) == 0 {
		fmt.Fprintln(w, "No invocations recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSCHEDULE\tPAIR\tEXIT\tDURATION\tCOMMAND")
	for _, inv := range invs {
		fmt.Fprintf(tw, "%s\t%s\t%d -> %d\t%d\t%s\t%s\n",
			inv.StartedAt.Local().Format(time.DateTime), inv.Schedule,
			inv.InVersion, inv.OutVersion, inv.ExitCode,
			inv.Duration().Round(time.Millisecond), strings.Join(inv.Args, " "))
	}
	return tw.Flush()
}
