package basic

import (
	"strconv"
	"strings"

	"github.com/danswartzendruber/avl"
)

//
// A set of wrapper routines to the AVL package.  We do this to hide
// the AVL interface from the interpreter code.  The tree is keyed by
// line number, so in-order traversal is ascending program order
//

func cmpInt16Key(key any, node any) int {

	return int(key.(int16)) - int(node.(*lineNode).number)
}

func cmpLineNode(node1, node2 any) int {

	return int(node1.(*lineNode).number) - int(node2.(*lineNode).number)
}

func (ip *Interp) lineFirst() *lineNode {

	p := avl.AvlTreeFirstInOrder(ip.program)
	if p != nil {
		return p.(*lineNode)
	}

	return nil
}

func (ip *Interp) lineLookup(number int16) *lineNode {

	p := avl.AvlTreeLookup(ip.program, number, cmpInt16Key)
	if p != nil {
		return p.(*lineNode)
	}

	return nil
}

func lineNext(node *lineNode) *lineNode {

	p := avl.AvlTreeNextInOrder(&node.avl)
	if p != nil {
		return p.(*lineNode)
	}

	return nil
}

//
// lineInsert implements replace-on-duplicate: an existing node with
// the same number is removed first.  Any edit invalidates the run
// state and the data pool, so both are rebuilt
//

func (ip *Interp) lineInsert(number int16, text string) {

	if old := ip.lineLookup(number); old != nil {
		avl.AvlTreeRemove(&ip.program, &old.avl)
		ip.programSize -= len(old.text) + 1
	}

	ip.programSize += len(text) + 1
	runtimeCheck(ip.programSize <= maxProgramSize, EPROGRAMTOOLARGE)

	node := &lineNode{number: number, text: text}

	p := avl.AvlTreeInsert(&ip.program, &node.avl, node, cmpLineNode)
	basicAssert(p == nil, "duplicate line survived removal")

	ip.resetRun()
	ip.rebuildDataPool()
}

func (ip *Interp) lineDelete(number int16) bool {

	node := ip.lineLookup(number)
	if node == nil {
		return false
	}

	avl.AvlTreeRemove(&ip.program, &node.avl)
	ip.programSize -= len(node.text) + 1

	ip.resetRun()
	ip.rebuildDataPool()

	return true
}

func (ip *Interp) clearProgram() {

	ip.program = nil
	ip.programSize = 0
	ip.dataPool = nil
	ip.resetRun()
}

//
// parseLineNumber picks the leading decimal line number off a
// logical program line, returning the number and the statement text
// that follows it
//

func parseLineNumber(line string) (int16, string) {

	i := 0
	for i < len(line) && isDigit(line[i]) {
		i++
	}

	if i == 0 {
		runtimeErrorf(EILLEGALLINENUMBER, "%.20s", line)
	}

	var n int
	for _, ch := range line[:i] {
		n = n*10 + int(ch-'0')
		if n > 32767 {
			runtimeErrorf(EILLEGALLINENUMBER, "%s", line[:i])
		}
	}

	return int16(n), strings.TrimLeft(line[i:], " \t")
}

//
// rebuildDataPool rescans the program for DATA statements and
// collects their values in line order.  DATA is recognized as the
// first statement of a line; the values land in the pool at (re)load
// or edit time, and running the program only resets the read cursor
//

func (ip *Interp) rebuildDataPool() {

	ip.dataPool = nil
	ip.dataIndex = 0

	for node := ip.lineFirst(); node != nil; node = lineNext(node) {
		lx := newLexer(node.text)
		if lx.peek().tok != DATA {
			continue
		}
		lx.next()

		ip.collectDataValues(&lx)
	}
}

//
// DATA values are signed numeric literals or quoted strings,
// comma-separated, up to end of line or a statement separator
//

func (ip *Interp) collectDataValues(lx *lexer) {

	for {
		t := lx.next()

		neg := false
		if t.tok == MINUS || t.tok == PLUS {
			neg = t.tok == MINUS
			t = lx.next()
		}

		switch t.tok {
		default:
			runtimeError(ESYNTAXERROR)

		case NUMBER:
			if neg {
				t.num = -t.num
			}
			ip.dataPool = append(ip.dataPool, dataItem{num: t.num})

		case STRING:
			ip.dataPool = append(ip.dataPool, dataItem{str: t.text, isStr: true})
		}

		t = lx.next()
		if t.tok == EOL || t.tok == COLON {
			return
		}

		runtimeCheck(t.tok == COMMA, ESYNTAXERROR)
	}
}

//
// LoadProgram parses a full program text and replaces the stored
// program.  Each non-blank line must begin with a line number.
// Loading resets variables, the control stacks and the data cursor
//

func (ip *Interp) LoadProgram(text string) error {

	return ip.guard(func() {
		ip.clearProgram()
		ip.initSymbolTable()

		for _, raw := range strings.Split(text, "\n") {
			line := strings.Trim(raw, " \t\r")
			if line == "" {
				continue
			}

			runtimeCheck(len(line) <= maxLineLen, ELINETOOLONG)

			number, stmt := parseLineNumber(line)
			ip.lineInsert(number, stmt)
		}
	})
}

//
// InsertLine and DeleteLine support line-at-a-time program editing.
// An empty statement text deletes the line, mirroring classic BASIC
// editing
//

func (ip *Interp) InsertLine(number int, text string) error {

	return ip.guard(func() {
		if number < 0 || number > 32767 {
			runtimeErrorf(EILLEGALLINENUMBER, "%d", number)
		}

		text = strings.Trim(text, " \t")
		if text == "" {
			ip.lineDelete(int16(number))
			return
		}

		runtimeCheck(len(text) <= maxLineLen, ELINETOOLONG)

		ip.lineInsert(int16(number), text)
	})
}

func (ip *Interp) DeleteLine(number int) (bool, error) {

	if number < 0 || number > 32767 {
		return false, nil
	}

	found := false
	err := ip.guard(func() {
		found = ip.lineDelete(int16(number))
	})

	return found, err
}

//
// Listing returns the stored program in ascending line order,
// formatted one statement per entry.  LIST and SAVE in the harness
// are built on this
//

func (ip *Interp) Listing() []string {

	var out []string

	for node := ip.lineFirst(); node != nil; node = lineNext(node) {
		out = append(out, formatLine(node))
	}

	return out
}

func formatLine(node *lineNode) string {

	return strings.TrimRight(
		strconv.Itoa(int(node.number))+" "+node.text, " ")
}
