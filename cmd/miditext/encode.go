package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/spf13/cobra"

	"go-midimsg/debug"
)

// errLinesFailed is returned when at least one input line did not parse
var errLinesFailed = errors.New("some lines failed to parse")

func encodeCmd(a *app) *cobra.Command {
	var (
		includeTime bool
		sep         string
		stop        bool
	)
	cmd := &cobra.Command{
		Use:   "encode [file...]",
		Short: "Encode message text lines as hex bytes",
		Long: `Reads one message per line from the given files, or stdin, and prints
the encoded bytes followed by the message text. '#' starts a comment.
Lines that fail to parse are reported on stderr with their line number
and do not stop the rest of the input unless --stop is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("time") {
				a.cfg.IncludeTime = includeTime
			}
			if cmd.Flags().Changed("sep") {
				a.cfg.HexSeparator = sep
			}
			if cmd.Flags().Changed("stop") {
				a.cfg.StopOnError = stop
			}

			if len(args) == 0 {
				return a.encode(cmd.OutOrStdout(), cmd.ErrOrStderr(), "", cmd.InOrStdin())
			}
			var failed bool
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				err = a.encode(cmd.OutOrStdout(), cmd.ErrOrStderr(), path, f)
				f.Close()
				if errors.Is(err, errLinesFailed) && !a.cfg.StopOnError {
					failed = true
					continue
				}
				if err != nil {
					return err
				}
			}
			if failed {
				return errLinesFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&includeTime, "time", "t", false, "Include message time in the text column")
	cmd.Flags().StringVar(&sep, "sep", " ", "Separator between hex bytes")
	cmd.Flags().BoolVar(&stop, "stop", false, "Stop at the first line that fails")
	return cmd
}

// encode streams messages from r to out. name prefixes error lines when set.
func (a *app) encode(out, errOut io.Writer, name string, r io.Reader) error {
	var scanErr error
	failures := 0
	for m, err := range a.registry.ParseStream(scanLines(r, &scanErr)) {
		if err != nil {
			failures++
			if name != "" {
				fmt.Fprintf(errOut, "%s: %s\n", name, a.theme.Error(err))
			} else {
				fmt.Fprintln(errOut, a.theme.Error(err))
			}
			if a.cfg.StopOnError {
				break
			}
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", a.theme.Hex(m, a.cfg.HexSeparator), a.theme.Message(m, a.cfg.IncludeTime))
	}
	if scanErr != nil {
		return fmt.Errorf("read %s: %w", displayName(name), scanErr)
	}
	debug.Log("encode", "%s: %d failures", displayName(name), failures)
	if failures > 0 {
		return errLinesFailed
	}
	return nil
}

func displayName(name string) string {
	if name == "" {
		return "stdin"
	}
	return name
}

func scanLines(r io.Reader, scanErr *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		s := bufio.NewScanner(r)
		for s.Scan() {
			if !yield(s.Text()) {
				return
			}
		}
		*scanErr = s.Err()
	}
}
