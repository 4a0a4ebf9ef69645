package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/rotorgraph/internal/quorum"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Machines int
	Rotors   int
	Base     int
	LayerBy  string
}

// InitResult is the output of init.
type InitResult struct {
	Quorum   string        `json:"quorum"`
	Key      string        `json:"key"`
	Machines []MachineInfo `json:"machines"`
}

// MachineInfo summarises one built machine.
type MachineInfo struct {
	ID       string `json:"id"`
	Order    int    `json:"order"`
	Alphabet string `json:"alphabet"`
	Rotors   int    `json:"rotors"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Build a quorum of machines",
		Long: `Build a quorum from the config file (or the defaults) and store it.

Each machine gets combinations, rotors, a reflector and a plugboard.
Flags override values from the config file.

Examples:
  rotorgraph init --key isTrav
  rotorgraph init --config quorum.yaml --rotors 3 --machines 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Machines, "machines", 0, "number of machines")
	cmd.Flags().IntVar(&opts.Rotors, "rotors", 0, "rotors per machine")
	cmd.Flags().IntVar(&opts.Base, "base", 0, "alphabet size taken from the main alphabet")
	cmd.Flags().StringVar(&opts.LayerBy, "layer-by", "", "word separator")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	s, err := openSession(opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	flags := cmd.Flags()
	if flags.Changed("machines") {
		s.def.MachineCount = opts.Machines
	}
	if flags.Changed("rotors") {
		s.def.RotorCount = opts.Rotors
	}
	if flags.Changed("base") {
		s.def.BaseCount = opts.Base
	}
	if flags.Changed("layer-by") {
		s.def.LayerBy = opts.LayerBy
	}
	if err := s.def.Validate(); err != nil {
		return WrapExitError(ExitCommandError, "invalid quorum", err)
	}

	built, err := quorum.Build(commandContext(cmd), s.engine, s.def)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build quorum", err)
	}

	result := InitResult{Quorum: built.Quorum.ID, Key: built.Quorum.Key}
	for _, m := range built.Machines {
		result.Machines = append(result.Machines, MachineInfo{
			ID: m.ID, Order: m.Order, Alphabet: m.Alphabet, Rotors: len(m.Rotors),
		})
	}

	p := &Printer{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return p.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "Quorum %s (key %s)\n", result.Quorum, result.Key)
		for _, m := range result.Machines {
			fmt.Fprintf(w, "  machine %d: %s, %d rotors over %q\n", m.Order, m.ID, m.Rotors, m.Alphabet)
		}
	})
}
