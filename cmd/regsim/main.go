// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// regsim runs register scripts against a simulated MSP430FR5994.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/regio/config"
	"github.com/ezrec/regio/layout"
	"github.com/ezrec/regio/machine"
	"github.com/ezrec/regio/snapshot"
	"github.com/ezrec/regio/translate"
)

// env is the state shared by every sub-command.
type env struct {
	configPath string
	verbose    bool
	lang       string

	cfg *config.Config
}

func (e *env) setup() (err error) {
	e.cfg, err = config.Load(e.configPath)
	if err != nil {
		return
	}

	if e.verbose {
		e.cfg.Verbose = true
	}
	if e.lang != "" {
		e.cfg.Lang = e.lang
	}
	if e.cfg.Lang != "" {
		err = translate.SetLanguage(e.cfg.Lang)
		if err != nil {
			return
		}
	}

	return
}

func (e *env) chip() (*layout.Chip, error) {
	return e.cfg.Chip()
}

func (e *env) store() (st *snapshot.Store, err error) {
	st, err = snapshot.Open(e.cfg.Database)
	if err != nil {
		return
	}
	st.Verbose = e.cfg.Verbose
	return
}

// machine creates a machine, restored from the snapshot ref if not empty.
func (e *env) machine(ref string) (m *machine.Machine, err error) {
	m = machine.New()
	m.Verbose = e.cfg.Verbose
	m.Bus.Verbose = e.cfg.Verbose

	if ref == "" {
		return
	}

	st, err := e.store()
	if err != nil {
		return
	}
	defer st.Close()

	snap, err := st.Find(ref)
	if err != nil {
		return
	}
	m.Restore(snap.Memory())
	return
}

// NewRootCommand builds the command tree.
func NewRootCommand(out io.Writer) *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "regsim",
		Short:         "Simulated MSP430FR5994 register console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
	}
	cmd.SetOut(out)

	cmd.PersistentFlags().StringVar(&e.configPath, "config", config.DefaultPath(), "Config file")
	cmd.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "Verbose mode")
	cmd.PersistentFlags().StringVar(&e.lang, "lang", "", "Message language (BCP 47 tag)")

	cmd.AddCommand(newRunCommand(e))
	cmd.AddCommand(newDumpCommand(e))
	cmd.AddCommand(newSnapshotCommand(e))
	cmd.AddCommand(newReplCommand(e))
	cmd.AddCommand(newDemoCommand(e))

	return cmd
}

func main() {
	log.SetFlags(log.Lmicroseconds)

	cmd := NewRootCommand(os.Stdout)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", cmd.Name(), err)
		os.Exit(1)
	}
}
