package main

import (
	"github.com/spf13/cobra"

	"go-midimsg/config"
	"go-midimsg/debug"
	"go-midimsg/midi"
	"go-midimsg/theme"
)

// app is the state shared by all subcommands, filled in before they run
type app struct {
	configPath string
	debug      bool
	noColor    bool

	cfg      *config.Config
	theme    *theme.Theme
	registry *midi.Registry
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.debug {
		cfg.Debug = true
	}
	if a.noColor {
		cfg.Color = false
	}
	a.cfg = cfg

	if cfg.Debug {
		if err := debug.Enable(); err != nil {
			return err
		}
		if err := debug.SetLevel(cfg.LogLevel); err != nil {
			return err
		}
	}

	if !cfg.Color {
		a.theme = theme.NewPlain()
	} else {
		var palette *theme.Palette
		if cfg.Palette != "" {
			palette, err = theme.LoadGPL(cfg.Palette)
			if err != nil {
				debug.Warn("config", "palette: %v", err)
			}
		}
		a.theme = theme.New(palette)
	}

	a.registry = midi.DefaultRegistry()
	debug.Log("config", "config=%q color=%v include_time=%v", a.configPath, cfg.Color, cfg.IncludeTime)
	return nil
}

// RootCmd returns the root cobra command of miditext
func RootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "miditext",
		Short:         "Convert MIDI messages between text and bytes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			debug.Disable()
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (default ~/.config/go-midimsg/config.toml)")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Write a debug log")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable styled output")

	cmd.AddCommand(encodeCmd(a))
	cmd.AddCommand(checkCmd(a))
	cmd.AddCommand(typesCmd(a))
	cmd.AddCommand(replCmd(a))
	return cmd
}
