package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Machine int
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the signal graph of a machine",
		Long: `Assemble a stored machine from its current rotor state and print the
node and edge counts of its signal graph, by part.

Examples:
  rotorgraph inspect --key isTrav
  rotorgraph inspect --machine 2 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Machine, "machine", "m", 1, "machine order within the quorum")

	return cmd
}

func runInspect(opts *InspectOptions, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := commandContext(cmd)
	m, err := s.machine(ctx, opts.Machine)
	if err != nil {
		return err
	}

	mech, err := s.engine.Mechanics(ctx, m)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to assemble machine", err)
	}
	census := mech.Census()

	p := &Printer{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return p.Success(census, func(w io.Writer) {
		fmt.Fprintf(w, "Machine %s: %d nodes, %d edges\n", census.Machine, census.Nodes, census.Edges)
		fmt.Fprintln(w, "Nodes:")
		for _, part := range slices.Sorted(maps.Keys(census.ByNode)) {
			fmt.Fprintf(w, "  %-10s %d\n", part, census.ByNode[part])
		}
		fmt.Fprintln(w, "Edges:")
		for _, part := range slices.Sorted(maps.Keys(census.ByEdge)) {
			fmt.Fprintf(w, "  %-10s %d\n", part, census.ByEdge[part])
		}
	})
}
