package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
	"golang.org/x/term"
)

//
// Ensure we are connected to a tty!
//

func checkTerminal() {

	if !term.IsTerminal(2) {
		crash("")
	}

	if !term.IsTerminal(0) {
		crash("Standard input must be a terminal")
	}

	if !term.IsTerminal(1) {
		crash("Standard output must be a terminal")
	}
}

func terminalWidth() int {

	cols, _, err := term.GetSize(0)
	if err != nil {
		crash("Unable to read terminal parameters")
	}

	return cols
}

//
// We create two Liner instances.  One for the command loop, and one
// for any INPUT statements.  We do this because we want a scrollback
// history for commands, but not for user input.  They must be closed
// in LIFO order, as Close restores the terminal to its previous
// state
//

var cmdLiner *liner.State
var inputLiner *liner.State

func setupLiners() {

	cmdLiner = setupLiner(false)
	inputLiner = setupLiner(true)
}

func setupLiner(allowCtrlC bool) *liner.State {

	l := liner.NewLiner()

	l.SetMultiLineMode(allowCtrlC)

	return l
}

func cleanupLiners() {

	cleanupLiner(&inputLiner)
	cleanupLiner(&cmdLiner)
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

//
// Read a line from the terminal, with editing and optional history.
// The boolean result reports EOF (^D at the start of a line)
//

func readLine(l *liner.State, prompt string, history bool) (string, bool) {

	s, err := l.Prompt(prompt)

	if err != nil {
		if err == io.EOF {
			return "", true
		} else if err == liner.ErrPromptAborted {
			return "", false
		}

		crash(fmt.Sprintf("readLine error: %q\n", err))
	}

	if history && s != "" {
		l.AppendHistory(s)
	}

	return s, false
}

//
// Print a fatal message and abort the process.  Make sure to call
// cleanupLiners, so the terminal state is sane
//

func crash(msg string) {

	cleanupLiners()

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}

//
// Run statistics.  CPU times come from /proc/self/stat, scaled by
// the clock tick rate
//

var stats struct {
	enabled bool
	elapsed time.Time
	utime   int64
	stime   int64
}

func initClock() {

	stats.elapsed = time.Now()
	stats.utime, stats.stime = getCPUInfo()
}

func printStatistics(statements int64) {

	elapsed := time.Since(stats.elapsed)
	utime, stime := getCPUInfo()

	fmt.Printf("%d statements / elapsed = %s / user = %s / system = %s\n",
		statements, formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-stats.utime), formatCPUTime(stime-stats.stime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck == 0 {
		return 0, 0
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0
	}

	utime, _ := strconv.ParseInt(fields[13], 10, 64)
	stime, _ := strconv.ParseInt(fields[14], 10, 64)

	return utime / clktck, stime / clktck
}
