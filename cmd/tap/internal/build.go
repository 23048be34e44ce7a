package internal

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Build the current project",
	Long:    `Build invokes the detected backend's build step for the selected mode.`,
	Args:    cobra.NoArgs,
	RunE:    runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	return s.adapter.Build(cmd.Context(), s.mode)
}
