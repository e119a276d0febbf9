package basic

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

func init() {

	initErrors()
	initKeywords()
}

//
// New returns an idle session with an empty program and symbol
// table.  Sessions are independent; nothing is shared between two
// of them
//

func New() *Interp {

	ip := &Interp{
		id:  uuid.NewString(),
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	ip.initSymbolTable()

	return ip
}

func (ip *Interp) ID() string {

	return ip.id
}

//
// Init resets the session to empty and idle: no program, no
// variables, no pending error
//

func (ip *Interp) Init() {

	ip.clearProgram()
	ip.initSymbolTable()
	ip.lastErr = nil
	ip.numStatements = 0
}

func (ip *Interp) resetRun() {

	ip.forStack = nil
	ip.gosubStack = nil
	ip.dataIndex = 0
	ip.curLine = 0
	ip.running = false
}

//
// Run executes the stored program from its lowest-numbered line
// until END/STOP, an error, or the table is exhausted.  Each run
// starts with fresh control stacks and a rewound data cursor;
// variables persist so immediate-mode state stays usable
//

func (ip *Interp) Run() error {

	return ip.guard(func() {
		ip.resetRun()
		ip.numStatements = 0

		ip.running = true
		ip.runFrom(ip.lineFirst())
		ip.running = false
		ip.curLine = 0
	})
}

//
// ExecuteLine runs one ad-hoc statement line against the live
// session.  A jump outcome (immediate GOTO/GOSUB) starts program
// execution at the target line
//

func (ip *Interp) ExecuteLine(text string) error {

	return ip.guard(func() {
		line := strings.Trim(text, " \t\r\n")
		if line == "" {
			return
		}

		runtimeCheck(len(line) <= maxLineLen, ELINETOOLONG)

		ip.curLine = 0

		lx := newLexer(line)
		out := ip.execStatements(&lx, 0)

		switch out.kind {
		case outJump:
			node := ip.lineLookup(out.target)
			basicAssert(node != nil, "jump to vanished line")

			ip.running = true
			ip.runFrom(node)
			ip.running = false
			ip.curLine = 0

		case outHalt:
			ip.running = false
		}
	})
}

//
// Err reports the current (code, message) error pair, or nil after
// a clean call.  It is overwritten by each failure
//

func (ip *Interp) Err() *Error {

	return ip.lastErr
}

//
// Interrupt asks a running program to stop.  Safe to call from a
// signal handler goroutine; the run loop notices between statements
//

func (ip *Interp) Interrupt() {

	ip.interrupted = true
}

func (ip *Interp) Running() bool {

	return ip.running
}

//
// Statements reports how many statements the last run executed
//

func (ip *Interp) Statements() int64 {

	return ip.numStatements
}

//
// Snapshot captures the session state for debugging dumps
//

type Snapshot struct {
	ID         string
	Lines      []string
	Variables  map[string]any
	ForStack   []ForFrame
	GosubStack []int
	DataIndex  int
	DataCount  int
	Statements int64
}

type ForFrame struct {
	Var   string
	Limit float64
	Step  float64
	Line  int
}

func (ip *Interp) Snapshot() Snapshot {

	snap := Snapshot{
		ID:         ip.id,
		Lines:      ip.Listing(),
		Variables:  make(map[string]any),
		DataIndex:  ip.dataIndex,
		DataCount:  len(ip.dataPool),
		Statements: ip.numStatements,
	}

	for name, sym := range ip.symtab {
		switch v := sym.value.(type) {
		case *numberValue:
			snap.Variables[name] = v.f

		case *stringValue:
			snap.Variables[name] = v.s

		case *numberArray:
			snap.Variables[name] = v.elems

		case *stringArray:
			snap.Variables[name] = v.elems
		}
	}

	for _, f := range ip.forStack {
		snap.ForStack = append(snap.ForStack, ForFrame{
			Var:   f.varName,
			Limit: f.limit,
			Step:  f.step,
			Line:  int(f.forLine),
		})
	}

	for _, f := range ip.gosubStack {
		snap.GosubStack = append(snap.GosubStack, int(f.returnLine))
	}

	return snap
}
