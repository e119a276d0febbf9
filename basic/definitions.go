package basic

import (
	"bufio"
	"io"
	"math/rand"

	"github.com/danswartzendruber/avl"
)

//
// Constants
//

const VERSION = "1.0.3"

const forStackMax = 32
const gosubStackMax = 32

const maxVariables = 256
const maxVariableLen = 31

const maxLineLen = 256
const maxProgramSize = 16384

const maxArrayDims = 3
const maxArrayElems = 100000

//
// IF may guard another IF (or any other statement), and the statement
// separator re-enters the dispatcher as well, so statement execution
// is recursive.  Parenthesized expressions recurse too.  Both depths
// are bounded so a hostile program gets an error, not a blown stack
//

const stmtDepthMax = 32
const exprDepthMax = 64

const zoneWidth = 14

const executePrompt = "? "

//
// Token values.  The lexer hands these to the evaluator and the
// statement dispatcher
//

const (
	EOL = iota
	NUMBER
	STRING
	VARIABLE
	FUNCTION
	PRINT
	INPUT
	LET
	IF
	THEN
	ELSE
	FOR
	TO
	STEP
	NEXT
	GOSUB
	RETURN
	GOTO
	READ
	DATA
	DIM
	END
	STOP
	REM
	AND
	OR
	NOT
	COMMA
	SEMI
	COLON
	LPAR
	RPAR
	PLUS
	MINUS
	STAR
	SLASH
	EQ
	LT
	GT
	LE
	GE
	NE
)

//
// Type definitions
//

type token struct {
	tok  int
	text string
	num  float64
}

//
// One numbered program line.  The AVL package keeps these ordered
// by line number, which gives us replace-on-duplicate inserts and
// cheap in-order traversal for the run loop and LIST
//

type lineNode struct {
	avl    avl.AvlNode
	number int16
	text   string
}

//
// Variable payloads.  Exactly one variant per kind, and a variable
// cannot exist without one
//

type symValue interface {
	kindName() string
}

type numberValue struct {
	f float64
}

type stringValue struct {
	s string
}

type numberArray struct {
	dims  []int
	elems []float64
}

type stringArray struct {
	dims  []int
	elems []string
}

func (*numberValue) kindName() string { return "number" }
func (*stringValue) kindName() string { return "string" }
func (*numberArray) kindName() string { return "number array" }
func (*stringArray) kindName() string { return "string array" }

type symtabNode struct {
	name  string
	value symValue
}

//
// Control flow frames
//

type forFrame struct {
	varName string
	limit   float64
	step    float64
	forLine int16
}

type gosubFrame struct {
	returnLine int16
}

//
// Statement outcome.  The run loop honors all three; a failure
// propagates as an error instead
//

const (
	outNext = iota
	outJump
	outHalt
)

type outcome struct {
	kind   int
	target int16
}

//
// DATA pool entries are the literal values as declared; READ coerces
// to the target variable kind
//

type dataItem struct {
	num   float64
	str   string
	isStr bool
}

//
// ReadLineFunc supplies one line of console input.  The prompt is
// printed (or passed to a line editor) before blocking
//

type ReadLineFunc func(prompt string) (string, error)

//
// Interp is the interpreter session.  All state lives here; two
// sessions share nothing, so independent programs can run side by
// side in one process
//

type Interp struct {
	id string

	program     *avl.AvlNode
	programSize int

	symtab map[string]*symtabNode

	forStack   []forFrame
	gosubStack []gosubFrame

	dataPool  []dataItem
	dataIndex int

	curLine int16
	running bool
	lastErr *Error

	interrupted bool

	// print zone state
	cursorPos  int
	outputZone int
	numZones   int

	// statistics for the harness
	numStatements int64

	rng *rand.Rand

	stdinReader *bufio.Reader

	Output   io.Writer
	ReadLine ReadLineFunc

	TraceExec bool
}
