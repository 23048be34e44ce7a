package internal

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:     "clean",
	Aliases: []string{"c"},
	Short:   "Remove build outputs",
	Long: `Clean removes the backend's build outputs for the selected mode, or
for every mode when -m is not given. Source files are never touched.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	m, err := modeIfRequested(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	return s.adapter.Clean(cmd.Context(), m)
}
