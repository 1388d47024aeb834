package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/regio/demo"
)

func newDemoCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in example programs",
	}

	var ticks, step uint64
	blinker := &cobra.Command{
		Use:   "blinker",
		Short: "Toggle P1.0 from a TA0 interrupt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			m, err := e.machine("")
			if err != nil {
				return
			}

			if step == 0 {
				step = 1
			}

			m.Bus.Record = e.cfg.Verbose
			demo.Blinker(m)
			report(cmd.OutOrStdout(), cmd.ErrOrStderr(), m)
			m.Bus.Record = false

			out := m.Board.P1.OUT.Read()
			fmt.Fprintf(cmd.OutOrStdout(), "%8d P1.OUT 0x%02x\n", m.Ticks, out)
			for m.Ticks < ticks {
				m.Advance(min(step, ticks-m.Ticks))
				if now := m.Board.P1.OUT.Read(); now != out {
					out = now
					fmt.Fprintf(cmd.OutOrStdout(), "%8d P1.OUT 0x%02x\n", m.Ticks, out)
				}
			}
			return
		},
	}
	blinker.Flags().Uint64Var(&ticks, "ticks", 4*demo.BLINK_TICKS, "Clock ticks to run")
	blinker.Flags().Uint64Var(&step, "step", 1, "Ticks between output samples")
	cmd.AddCommand(blinker)

	cmd.AddCommand(&cobra.Command{
		Use:   "docs",
		Short: "Trace the register access examples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			m, err := e.machine("")
			if err != nil {
				return
			}

			examples := []struct {
				name string
				fn   func()
			}{
				{"full register", func() { demo.FullRegister(m.Board) }},
				{"single bit", func() { demo.SingleBit(m.Board) }},
				{"bit range", func() { demo.BitRange(m.Board) }},
				{"alternate", func() { demo.Alternate(m.Board, 2) }},
			}

			for _, ex := range examples {
				m.Bus.Reset()
				m.Bus.Record = true
				ex.fn()
				fmt.Fprintf(cmd.OutOrStdout(), "# %v: %d loads, %d stores\n", ex.name, m.Bus.Loads, m.Bus.Stores)
				for _, access := range m.Bus.Trace {
					fmt.Fprintln(cmd.OutOrStdout(), access)
				}
			}
			return
		},
	})

	return cmd
}
