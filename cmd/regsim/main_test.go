package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/regio/config"
	"github.com/ezrec/regio/layout"
	"github.com/ezrec/regio/machine"
	"github.com/ezrec/regio/script"
)

// regsim runs the command line args against a private config and database.
func regsim(t *testing.T, dir string, args ...string) (stdout, stderr string, err error) {
	path := filepath.Join(dir, "config.yaml")
	if _, serr := os.Stat(path); serr != nil {
		cfg := &config.Config{Database: filepath.Join(dir, "snapshots.db")}
		if err := cfg.Save(path, false); err != nil {
			t.Fatal(err)
		}
	}

	out := &bytes.Buffer{}
	errs := &bytes.Buffer{}
	cmd := NewRootCommand(out)
	cmd.SetErr(errs)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err = cmd.Execute()

	stdout = out.String()
	stderr = errs.String()
	return
}

func TestRun_SaveDumpDelete(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "led.star")
	assert.NoError(os.WriteFile(file, []byte(`
write("P1.DIR", 0x03)
write("P1.OUT", 0xae)
print("led", hex(read("P1.OUT")))
`), 0o644))

	stdout, _, err := regsim(t, dir, "run", file, "--save", "led")
	assert.NoError(err)
	assert.Contains(stdout, "led 0xae\n")
	assert.Contains(stdout, "saved ")

	stdout, _, err = regsim(t, dir, "snapshot", "list")
	assert.NoError(err)
	assert.Contains(stdout, " led (")

	stdout, _, err = regsim(t, dir, "dump", "P1", "--restore", "led")
	assert.NoError(err)
	assert.Contains(stdout, "P1.OUT       0x0202  0xae")
	assert.Contains(stdout, "P1.DIR       0x0204  0x03")
	assert.NotContains(stdout, "P2.")

	stdout, _, err = regsim(t, dir, "snapshot", "show", "led")
	assert.NoError(err)
	assert.Contains(stdout, "P1.OUT")
	assert.Contains(stdout, "CS.CTL2      0x0164  0x0033  SELA=LFXTCLK SELS=DCOCLK SELM=DCOCLK")

	_, _, err = regsim(t, dir, "snapshot", "delete", "led")
	assert.NoError(err)

	_, _, err = regsim(t, dir, "dump", "--restore", "led")
	assert.Error(err)
}

func TestRun_Trace(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "wdt.star")
	assert.NoError(os.WriteFile(file, []byte(`
write("WDT.CTL", 0x1234)
`), 0o644))

	stdout, stderr, err := regsim(t, dir, "run", "--trace", file)
	assert.NoError(err)
	assert.Contains(stdout, "W16 0x015c <- 0x1234")
	assert.Contains(stderr, "rejected")
	assert.Contains(stderr, "1 resets")
}

func TestDump_Unknown(t *testing.T) {
	assert := assert.New(t)

	_, _, err := regsim(t, t.TempDir(), "dump", "NOPE")
	assert.ErrorIs(err, layout.ErrNotFound)
}

func TestDemo_Blinker(t *testing.T) {
	assert := assert.New(t)

	stdout, _, err := regsim(t, t.TempDir(), "demo", "blinker", "--ticks", "32768")
	assert.NoError(err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if assert.Len(lines, 3) {
		assert.Contains(lines[0], "P1.OUT 0x02")
		assert.Contains(lines[1], "P1.OUT 0x03")
		assert.Contains(lines[2], "P1.OUT 0x02")
	}
}

func TestDemo_Docs(t *testing.T) {
	assert := assert.New(t)

	stdout, _, err := regsim(t, t.TempDir(), "demo", "docs")
	assert.NoError(err)
	assert.Contains(stdout, "# full register: 3 loads, 4 stores")
	assert.Contains(stdout, "W8 0x0202 <- 0xae")
}

type fakeLines struct {
	lines []string
	out   bytes.Buffer
	errs  bytes.Buffer
}

func (fl *fakeLines) Readline() (line string, err error) {
	if len(fl.lines) == 0 {
		err = io.EOF
		return
	}
	line, fl.lines = fl.lines[0], fl.lines[1:]
	if line == "^C" {
		err = readline.ErrInterrupt
	}
	return
}

func (fl *fakeLines) Stdout() io.Writer { return &fl.out }
func (fl *fakeLines) Stderr() io.Writer { return &fl.errs }

func TestRepl(t *testing.T) {
	assert := assert.New(t)

	chip, err := layout.Default()
	assert.NoError(err)

	m := machine.New()
	rt := script.New(m.Bus, chip)

	fl := &fakeLines{lines: []string{
		`write("P3.OUT", 0x42)`,
		"",
		"^C",
		`x = read("P3.OUT")`,
		`hex(x)`,
		`read("P3.NOPE")`,
	}}
	rt.Output = &fl.out

	assert.NoError(repl(fl, rt))
	assert.Equal("\"0x42\"\n", fl.out.String())
	assert.Contains(fl.errs.String(), "P3.NOPE")
	assert.Equal(uint8(0x42), m.Board.P3.OUT.Read())
}
