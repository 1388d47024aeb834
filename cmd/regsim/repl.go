package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	"github.com/ezrec/regio/script"
)

func newReplCommand(e *env) *cobra.Command {
	var restore string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive Starlark register console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			chip, err := e.chip()
			if err != nil {
				return
			}

			m, err := e.machine(restore)
			if err != nil {
				return
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          chip.Name + "> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return
			}
			defer rl.Close()

			rt := script.New(m.Bus, chip)
			rt.Verbose = e.cfg.Verbose
			rt.Output = rl.Stdout()

			return repl(rl, rt)
		},
	}

	cmd.Flags().StringVar(&restore, "restore", "", "Snapshot ID or name to start from")

	return cmd
}

// lineReader is the part of a readline instance the console uses.
type lineReader interface {
	Readline() (string, error)
	Stdout() io.Writer
	Stderr() io.Writer
}

func repl(rl lineReader, rt *script.Runtime) (err error) {
	for {
		line, rerr := rl.Readline()
		if errors.Is(rerr, readline.ErrInterrupt) {
			continue
		}
		if rerr != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		value, lerr := rt.Line(line)
		if lerr != nil {
			fmt.Fprintln(rl.Stderr(), lerr)
			continue
		}
		if value != nil && value != starlark.None {
			fmt.Fprintln(rl.Stdout(), value)
		}
	}
}
