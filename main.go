package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"microbasic/basic"
)

const myPrompt = "% "

const basFileSuffix = ".bas"

var session *basic.Interp

func main() {

	defer cleanupLiners()

	checkTerminal()
	setupLiners()

	session = basic.New()
	session.SetWidth(terminalWidth())

	//
	// INPUT reads go through the bare liner instance; ^C during an
	// INPUT surfaces as an error, which the session reports as an
	// interrupted run
	//

	session.ReadLine = func(prompt string) (string, error) {
		return inputLiner.Prompt(prompt)
	}

	switch len(os.Args) {
	default:
		crash("Usage: microbasic [program]")

	case 1:
		// nothing to do

	case 2:
		if fname, ok := validateProgramFilename(os.Args[1]); !ok {
			fmt.Println("Invalid filename!")
		} else {
			executeOld(fname)
		}
	}

	fmt.Printf("microbasic %s  session %s\n", basic.VERSION, session.ID())

	go sigHdlr()

	//
	// Loop forever, or until we quit
	//

	for {
		line, eof := readLine(cmdLiner, myPrompt, true)
		if eof {
			return
		}

		if !dispatch(line) {
			return
		}
	}
}

//
// Signal handling: ^C interrupts a running program, window size
// changes re-size the print zones
//

func sigHdlr() {

	ch := make(chan os.Signal, 1)

	signal.Ignore(syscall.SIGTSTP)

	signal.Notify(ch, syscall.SIGINT)
	signal.Notify(ch, syscall.SIGWINCH)

	for {
		switch <-ch {

		case syscall.SIGWINCH:
			session.SetWidth(terminalWidth())

		case syscall.SIGINT:
			session.Interrupt()
		}
	}
}
