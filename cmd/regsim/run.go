package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/regio/machine"
	"github.com/ezrec/regio/script"
)

func newRunCommand(e *env) *cobra.Command {
	var restore, save string
	var ticks uint64
	var trace bool

	cmd := &cobra.Command{
		Use:   "run <script.star>",
		Short: "Run a Starlark register script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return
			}

			chip, err := e.chip()
			if err != nil {
				return
			}

			m, err := e.machine(restore)
			if err != nil {
				return
			}
			m.Bus.Record = trace

			rt := script.New(m.Bus, chip)
			rt.Verbose = e.cfg.Verbose
			rt.Output = cmd.OutOrStdout()

			err = rt.Exec(args[0], src)
			if err != nil {
				return
			}

			if ticks != 0 {
				m.Advance(ticks)
			}

			report(cmd.OutOrStdout(), cmd.ErrOrStderr(), m)

			if save != "" {
				st, err := e.store()
				if err != nil {
					return err
				}
				defer st.Close()

				id, err := st.Save(save, m.Image())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %v %v\n", id, save)
			}

			return
		},
	}

	cmd.Flags().StringVar(&restore, "restore", "", "Snapshot ID or name to start from")
	cmd.Flags().StringVar(&save, "save", "", "Save the final registers under this name")
	cmd.Flags().Uint64Var(&ticks, "ticks", 0, "Clock ticks to run after the script")
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every bus access")

	return cmd
}

// report prints the recorded trace and any rejected stores.
func report(out, errs io.Writer, m *machine.Machine) {
	for _, access := range m.Bus.Trace {
		fmt.Fprintln(out, access)
	}
	for _, v := range m.Violations {
		fmt.Fprintf(errs, "warning: %v\n", v)
	}
	if m.Resets != 0 {
		fmt.Fprintf(errs, "warning: %d resets\n", m.Resets)
	}
}
