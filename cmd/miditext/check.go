package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go-midimsg/midi"
)

func checkCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <line>...",
		Short: "Parse message lines and show how they encode",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var failed bool
			for _, line := range args {
				m, err := a.registry.Parse(line)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%q: %s\n", line, a.theme.Error(err))
					failed = true
					continue
				}
				fmt.Fprintln(out, a.theme.Message(m, true))
				fmt.Fprintf(out, "  bytes:  %s\n", a.theme.Hex(m, a.cfg.HexSeparator))
				fmt.Fprintf(out, "  gomidi: %s\n", midi.Describe(m))
			}
			if failed {
				return errLinesFailed
			}
			return nil
		},
	}
}
