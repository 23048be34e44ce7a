package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:     "run <executable> [-- args...]",
	Aliases: []string{"r"},
	Short:   "Build the current project, then launch one of its executables",
	Long: `Run builds the project for the selected mode, resolves the named
executable under the backend's output convention and launches it.
Everything after "--" is handed to the executable verbatim; tap never
interprets it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	executable, passthrough, err := splitRunArgs(args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := s.adapter.Build(cmd.Context(), s.mode); err != nil {
		return err
	}
	return s.adapter.Run(cmd.Context(), executable, s.mode, passthrough)
}

// splitRunArgs separates the run target from its passthrough
// arguments. dash is the index of the first argument that followed
// "--" (-1 when absent); the executable must come before it.
func splitRunArgs(args []string, dash int) (string, []string, error) {
	if dash == 0 {
		return "", nil, fmt.Errorf("missing executable name before \"--\"")
	}
	return args[0], args[1:], nil
}
