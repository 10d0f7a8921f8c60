package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cifar-sched/internal/schedule"
	"github.com/pdiddy/cifar-sched/pkg/types"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the converter commands a run would execute",
	Long: `Plan prints the command line for each version pair of the schedule
without running anything. With --write, the resolved schedule is also saved
as a YAML file that can be edited and passed to run --schedule.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().String("write", "", "save the resolved schedule to this YAML file")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	s, err := resolveSchedule(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Schedule %s: %d pair(s)\n", s.Name, len(s.OutVersions))
	for i, p := range schedule.Pairs(s) {
		argv := cfg.Converter.Argv(strconv.Itoa(p.In), strconv.Itoa(p.Out))
		fmt.Printf("  %d: %s\n", i, strings.Join(argv, " "))
	}
	if msg := mismatchWarning(s); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	if path, _ := cmd.Flags().GetString("write"); path != "" {
		if err := schedule.Write(path, s); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}

// mismatchWarning describes how a run will treat a schedule whose version
// lists differ in length, or returns "" when they match.
func mismatchWarning(s types.Schedule) string {
	err := schedule.Validate(s)
	if err == nil {
		return ""
	}
	if len(s.InVersions) < len(s.OutVersions) {
		return fmt.Sprintf("warning: %v; run will stop at index %d", err, len(s.InVersions))
	}
	return fmt.Sprintf("warning: %v; extra in_versions are ignored", err)
}
