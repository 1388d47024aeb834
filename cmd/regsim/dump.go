package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/regio/layout"
	"github.com/ezrec/regio/machine"
)

func newDumpCommand(e *env) *cobra.Command {
	var restore string
	var all bool

	cmd := &cobra.Command{
		Use:   "dump [peripheral]",
		Short: "Print decoded registers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			chip, err := e.chip()
			if err != nil {
				return
			}

			m, err := e.machine(restore)
			if err != nil {
				return
			}

			var peripheral string
			if len(args) == 1 {
				peripheral = args[0]
			}

			return dump(cmd.OutOrStdout(), chip, m, peripheral, all)
		},
	}

	cmd.Flags().StringVar(&restore, "restore", "", "Snapshot ID or name to dump")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include registers that read as zero")

	return cmd
}

// dump prints the registers of one peripheral, or of all when peripheral is
// empty. Values are peeked so reads with side effects are not triggered.
func dump(out io.Writer, chip *layout.Chip, m *machine.Machine, peripheral string, all bool) (err error) {
	found := false
	for path, ref := range chip.Registers() {
		if peripheral != "" && ref.Peripheral.Name != peripheral {
			continue
		}
		found = true

		value := m.Peek(ref.Addr(), int(ref.Register.Width/8))
		if value == 0 && !all {
			continue
		}

		var fields []string
		for _, d := range ref.Register.Decode(value) {
			fields = append(fields, d.String())
		}

		fmt.Fprintf(out, "%-12s 0x%04x  0x%0*x  %v\n",
			path, ref.Addr(), int(ref.Register.Width/4), value, strings.Join(fields, " "))
	}

	if !found {
		err = &layout.ErrLayout{Path: peripheral, Err: layout.ErrNotFound}
	}
	return
}
