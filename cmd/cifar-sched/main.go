// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cifar-sched CLI, which runs the
// dataset converter over a schedule of version pairs.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	applog "github.com/pdiddy/cifar-sched/internal/log"
	"github.com/pdiddy/cifar-sched/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultInterpreter = "python"
	defaultScript      = "cifar-convert.py"
)

// rootCmd is the base command for the cifar-sched CLI.
var rootCmd = &cobra.Command{
	Use:   "cifar-sched",
	Short: "Schedule CIFAR-10 dataset conversions",
	Long: `cifar-sched runs the external dataset converter once per version pair,
one conversion at a time, in schedule order. Each pair passes the source and
destination dataset versions to the converter as two positional arguments.

A failed conversion is reported but does not stop the remaining ones.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applog.Setup(viper.GetString("log_level"), os.Stderr)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cifar-sched.yaml or ~/.config/cifar-sched/config.yaml)")
	addConfigFlags(rootCmd.PersistentFlags())
	bindConfig(viper.GetViper(), rootCmd.PersistentFlags())
}

// addConfigFlags defines the flags that map onto configuration keys.
func addConfigFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level: debug, info, warn, or error")
	fs.String("history", "", "SQLite database recording every invocation (disabled when empty)")
	fs.String("schedule", "", "YAML schedule file (default: built-in low-res schedule)")
	fs.String("interpreter", defaultInterpreter, "program that runs the converter script; empty runs the script directly")
	fs.String("script", defaultScript, "converter entry point")
	fs.String("dir", "", "working directory for the converter")
}

// bindConfig binds the flags in fs to their configuration keys and enables
// CIFAR_SCHED_ environment overrides (converter.script becomes
// CIFAR_SCHED_CONVERTER_SCRIPT).
func bindConfig(v *viper.Viper, fs *pflag.FlagSet) {
	for key, flag := range map[string]string{
		"log_level":             "log-level",
		"history":               "history",
		"schedule":              "schedule",
		"converter.interpreter": "interpreter",
		"converter.script":      "script",
		"converter.dir":         "dir",
	} {
		_ = v.BindPFlag(key, fs.Lookup(flag))
	}

	v.SetEnvPrefix("CIFAR_SCHED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cifar-sched")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cifar-sched"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the dispatch configuration from flags, config file,
// and environment.
func loadConfig(v *viper.Viper) (types.DispatchConfig, error) {
	var cfg types.DispatchConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
