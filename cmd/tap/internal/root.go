// Package internal contains the tap command set.
package internal

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tapbuild/tap/internal/config"
)

// Version is set via -ldflags at release time.
var Version = "dev"

var (
	backendOverride string
	modeName        string
	verbose         bool

	cfg = &config.Configuration{}
)

var rootCmd = &cobra.Command{
	Use:   "tap",
	Short: "tap is a uniform front end for native build systems",
	Long: `tap drives Make, CMake and Meson projects through one set of verbs:
build, run, clean and install. It detects which build system owns the
current project and translates each verb into that backend's own
invocation.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&backendOverride, "backend", "b", "", "force the build system (make, cmake or meson)")
	rootCmd.PersistentFlags().StringVarP(&modeName, "mode", "m", "", "build mode (default \"debug\")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command. This is called by main.main().
// An interrupt cancels the command context; the active child process
// receives the signal and tap waits for it to terminate.
func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	)
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// initConfig loads the layered configuration and applies it beneath
// any explicitly set flags.
func initConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("cannot determine working directory", "err", err)
		return
	}
	loaded, err := config.Load(cwd)
	if err != nil {
		log.Warn("configuration ignored", "err", err)
		return
	}
	cfg = loaded

	if cfg.Verbose {
		verbose = true
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
