package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goforj/godump"
)

//
// Command dispatch.  A line starting with a digit edits the stored
// program (bare number deletes the line); a recognized command word
// runs a command; anything else executes as an immediate statement
//

func dispatch(line string) bool {

	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}

	if line[0] >= '0' && line[0] <= '9' {
		editLine(line)
		return true
	}

	word, arg := splitCommand(line)

	switch word {
	default:
		reportError(session.ExecuteLine(line))

	case "BYE", "QUIT", "EXIT":
		return false

	case "RUN":
		executeRun()

	case "LIST":
		for _, l := range session.Listing() {
			fmt.Println(l)
		}

	case "NEW":
		session.Init()

	case "OLD", "LOAD":
		if fname, ok := validateProgramFilename(arg); !ok {
			fmt.Println("Invalid filename!")
		} else {
			executeOld(fname)
		}

	case "SAVE":
		if fname, ok := validateProgramFilename(arg); !ok {
			fmt.Println("Invalid filename!")
		} else {
			executeSave(fname)
		}

	case "DUMP":
		godump.Dump(session.Snapshot())

	case "TRACE":
		session.TraceExec = !session.TraceExec
		fmt.Printf("trace %s\n", switchSetting(session.TraceExec))

	case "STATS":
		stats.enabled = !stats.enabled
		fmt.Printf("stats %s\n", switchSetting(stats.enabled))

	case "HELP":
		executeHelp()
	}

	return true
}

func splitCommand(line string) (string, string) {

	parts := strings.SplitN(line, " ", 2)

	word := strings.ToUpper(parts[0])

	if len(parts) == 2 {
		return word, strings.TrimSpace(parts[1])
	}

	return word, ""
}

//
// NNN text inserts or replaces line NNN; a bare NNN deletes it
//

func editLine(line string) {

	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}

	number, err := strconv.Atoi(line[:i])
	if err != nil {
		fmt.Println("Illegal line number")
		return
	}

	text := strings.TrimSpace(line[i:])

	if text == "" {
		found, err := session.DeleteLine(number)
		if err == nil && !found {
			fmt.Printf("Line %d not found\n", number)
		}
		reportError(err)
		return
	}

	reportError(session.InsertLine(number, text))
}

func executeRun() {

	initClock()

	reportError(session.Run())

	if stats.enabled {
		printStatistics(session.Statements())
	}
}

func executeOld(fname string) {

	data, err := os.ReadFile(fname)
	if err != nil {
		fmt.Printf("Cannot read %s (%v)\n", fname, err)
		return
	}

	reportError(session.LoadProgram(string(data)))
}

func executeSave(fname string) {

	text := strings.Join(session.Listing(), "\n")
	if text != "" {
		text += "\n"
	}

	if err := os.WriteFile(fname, []byte(text), 0644); err != nil {
		fmt.Printf("Cannot write %s (%v)\n", fname, err)
	}
}

func executeHelp() {

	fmt.Println("bye            exit the interpreter")
	fmt.Println("dump           dump session state")
	fmt.Println("list           list the current program")
	fmt.Println("load <file>    load a program (alias: old)")
	fmt.Println("new            erase program and variables")
	fmt.Println("run            execute the current program")
	fmt.Println("save <file>    save the current program")
	fmt.Println("stats          toggle run statistics")
	fmt.Println("trace          toggle statement tracing")
	fmt.Println("NNN <text>     insert or replace line NNN")
	fmt.Println("NNN            delete line NNN")
	fmt.Println("anything else  execute as an immediate statement")
}

//
// Take a filename for a source program and sanity check any
// possible suffix.  If no suffix, append ".bas" and return the
// new filename
//

func validateProgramFilename(filename string) (string, bool) {

	if filename == "" || strings.ContainsAny(filename, " \t") {
		return "", false
	}

	parts := strings.Split(filename, ".")

	switch len(parts) {
	default:
		return "", false

	case 1:
		return filename + basFileSuffix, true

	case 2:
		if "."+parts[1] != basFileSuffix {
			return "", false
		}
		return filename, true
	}
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	}

	return "OFF"
}

func reportError(err error) {

	if err != nil {
		fmt.Println(err.Error())
	}
}
