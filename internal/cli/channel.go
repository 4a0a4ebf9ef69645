package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rotorgraph/internal/engine"
)

// ChannelOptions holds flags for the channel command.
type ChannelOptions struct {
	*RootOptions
	Machine int
	Decrypt bool
}

// NewChannelCommand creates the channel command.
func NewChannelCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChannelOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "channel <text>...",
		Short: "Encrypt or decrypt text on a machine",
		Long: `Run text through a stored machine.

The text is split into channels on the machine's separator. The first key
press rescrambles the machine from its seed, so the same text always
produces the same output. The machine is reciprocal: feeding the output
back in restores the input.

Examples:
  rotorgraph channel --key isTrav "hi there"
  rotorgraph channel --key isTrav --decrypt "qs mfvxc"
  rotorgraph channel --machine 2 --format json hello`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChannel(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Machine, "machine", "m", 1, "machine order within the quorum")
	cmd.Flags().BoolVarP(&opts.Decrypt, "decrypt", "d", false, "decrypt instead of encrypt")

	return cmd
}

func runChannel(opts *ChannelOptions, text string, cmd *cobra.Command) error {
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

	run := s.engine.Channel
	if opts.Decrypt {
		run = s.engine.DecryptChannel
	}
	result, err := run(ctx, m, text)
	if err != nil {
		return WrapExitError(ExitFailure, "cipher failed", err)
	}

	p := &Printer{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return p.Success(result, func(w io.Writer) {
		fmt.Fprintln(w, result.Scrambled)
		if opts.Verbose {
			printMessages(w, result)
		}
	})
}

func printMessages(w io.Writer, result engine.ChannelResult) {
	for i, msg := range result.Messages {
		fmt.Fprintf(w, "  channel %d: %q -> %q\n", i+1, msg.Original, msg.Scrambled)
	}
}
