package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go-midimsg/midi"
)

func typesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the known message types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.theme.Header(fmt.Sprintf("%-6s %-16s %-5s %s", "status", "type", "size", "signature")))
			for _, s := range a.registry.Specs() {
				size := "-"
				if s.Size != midi.SizeUnbounded {
					size = strconv.Itoa(s.Size)
				}
				fmt.Fprintf(out, "0x%02X   %-16s %-5s %s\n", s.StatusByte, s.Type, size, a.theme.Dim(s.Signature()))
			}
			return nil
		},
	}
}
