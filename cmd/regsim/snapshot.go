package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/regio/machine"
)

func newSnapshotCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage saved register images",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List snapshots, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			st, err := e.store()
			if err != nil {
				return
			}
			defer st.Close()

			snaps, err := st.List()
			if err != nil {
				return
			}
			for _, snap := range snaps {
				fmt.Fprintln(cmd.OutOrStdout(), snap)
			}
			return
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id|name>",
		Short: "Print the decoded registers of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			chip, err := e.chip()
			if err != nil {
				return
			}

			st, err := e.store()
			if err != nil {
				return
			}
			defer st.Close()

			snap, err := st.Find(args[0])
			if err != nil {
				return
			}

			m := machine.New()
			m.Restore(snap.Memory())

			fmt.Fprintln(cmd.OutOrStdout(), snap)
			return dump(cmd.OutOrStdout(), chip, m, "", false)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			st, err := e.store()
			if err != nil {
				return
			}
			defer st.Close()

			snap, err := st.Find(args[0])
			if err != nil {
				return
			}
			return st.Delete(snap.ID)
		},
	})

	return cmd
}
