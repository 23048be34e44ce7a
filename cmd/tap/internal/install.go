package internal

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tapbuild/tap/internal/installer"
)

var installPrefix string

var installCmd = &cobra.Command{
	Use:     "install",
	Aliases: []string{"i"},
	Short:   "Build the current project and install its artifacts",
	Long: `Install builds the project for the selected mode, then copies the
produced binaries into <prefix>/bin (and libraries into <prefix>/lib).
Without --prefix the target is /usr/local for elevated callers and the
per-user local root otherwise.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installPrefix, "prefix", "", "install prefix (overrides privilege-based resolution)")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	override := installPrefix
	if override == "" {
		override = cfg.DefaultPrefix
	}
	prefix, err := installer.ResolvePrefix(override, installer.DetectPrivilege())
	if err != nil {
		return err
	}

	if err := s.adapter.Build(cmd.Context(), s.mode); err != nil {
		return err
	}
	artifacts, err := s.adapter.Artifacts(s.mode)
	if err != nil {
		return err
	}

	result, err := installer.Install(artifacts, prefix)
	if err != nil {
		return err
	}
	log.Info("installed", "artifacts", len(result.Installed), "prefix", result.Prefix)
	return nil
}
