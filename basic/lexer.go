package basic

import (
	"strings"
	"unicode"
)

var keywordMap map[string]int

func initKeywords() {

	if keywordMap != nil {
		return
	}

	keywordMap = map[string]int{
		"PRINT":  PRINT,
		"INPUT":  INPUT,
		"LET":    LET,
		"IF":     IF,
		"THEN":   THEN,
		"ELSE":   ELSE,
		"FOR":    FOR,
		"TO":     TO,
		"STEP":   STEP,
		"NEXT":   NEXT,
		"GOSUB":  GOSUB,
		"RETURN": RETURN,
		"GOTO":   GOTO,
		"READ":   READ,
		"DATA":   DATA,
		"DIM":    DIM,
		"END":    END,
		"STOP":   STOP,
		"REM":    REM,
		"AND":    AND,
		"OR":     OR,
		"NOT":    NOT,
	}
}

//
// lexer is a cursor into one line of text.  next() produces one
// token and advances past it.  The struct has value semantics on
// purpose: the dispatcher copies it to rewind, e.g. when a bare
// variable at statement start turns out to be an implicit LET
//

type lexer struct {
	line string
	pos  int
}

func newLexer(line string) lexer {

	initKeywords()

	return lexer{line: line}
}

func (lx *lexer) skipBlanks() {

	for lx.pos < len(lx.line) &&
		(lx.line[lx.pos] == ' ' || lx.line[lx.pos] == '\t') {
		lx.pos++
	}
}

//
// peek returns the next token without consuming it
//

func (lx *lexer) peek() token {

	cp := *lx

	return cp.next()
}

func (lx *lexer) next() token {

	lx.skipBlanks()

	if lx.pos >= len(lx.line) {
		return token{tok: EOL}
	}

	ch := lx.line[lx.pos]

	switch {
	case isDigit(ch) || (ch == '.' && lx.pos+1 < len(lx.line) &&
		isDigit(lx.line[lx.pos+1])):
		return lx.lexNumber()

	case ch == '"':
		return lx.lexString()

	case isLetter(ch):
		return lx.lexWord()
	}

	lx.pos++

	switch ch {
	case '+':
		return token{tok: PLUS}

	case '-':
		return token{tok: MINUS}

	case '*':
		return token{tok: STAR}

	case '/':
		return token{tok: SLASH}

	case '=':
		return token{tok: EQ}

	case '<':
		if lx.pos < len(lx.line) && lx.line[lx.pos] == '=' {
			lx.pos++
			return token{tok: LE}
		} else if lx.pos < len(lx.line) && lx.line[lx.pos] == '>' {
			lx.pos++
			return token{tok: NE}
		}
		return token{tok: LT}

	case '>':
		if lx.pos < len(lx.line) && lx.line[lx.pos] == '=' {
			lx.pos++
			return token{tok: GE}
		}
		return token{tok: GT}

	case '(':
		return token{tok: LPAR}

	case ')':
		return token{tok: RPAR}

	case ',':
		return token{tok: COMMA}

	case ';':
		return token{tok: SEMI}

	case ':':
		return token{tok: COLON}
	}

	runtimeErrorf(ESYNTAXERROR, "unexpected character %q", string(ch))

	return token{} // not reached
}

//
// Numeric literals are plain decimal, an integer part and an
// optional fraction, accumulated digit by digit.  No exponent
// notation, no overflow checking
//

func (lx *lexer) lexNumber() token {

	var val float64

	for lx.pos < len(lx.line) && isDigit(lx.line[lx.pos]) {
		val = val*10 + float64(lx.line[lx.pos]-'0')
		lx.pos++
	}

	if lx.pos < len(lx.line) && lx.line[lx.pos] == '.' {
		lx.pos++

		scale := 0.1
		for lx.pos < len(lx.line) && isDigit(lx.line[lx.pos]) {
			val += float64(lx.line[lx.pos]-'0') * scale
			scale /= 10
			lx.pos++
		}
	}

	return token{tok: NUMBER, num: val}
}

//
// String literals have no escape sequences.  An unterminated string
// yields the text scanned so far; the statement that consumes it
// will usually hit end-of-line right after and complain there
//

func (lx *lexer) lexString() token {

	lx.pos++ // opening quote

	start := lx.pos

	for lx.pos < len(lx.line) && lx.line[lx.pos] != '"' {
		lx.pos++
	}

	text := lx.line[start:lx.pos]

	if lx.pos < len(lx.line) {
		lx.pos++ // closing quote
	}

	return token{tok: STRING, text: text}
}

//
// Identifiers are letters followed by letters or digits, case-folded
// to upper case.  Keywords win; a one-character name is always a
// variable; a longer name immediately followed by '(' is a
// function-name token (built-in function or array reference), and a
// variable otherwise
//

func (lx *lexer) lexWord() token {

	start := lx.pos

	for lx.pos < len(lx.line) &&
		(isLetter(lx.line[lx.pos]) || isDigit(lx.line[lx.pos])) {
		lx.pos++
	}

	word := strings.ToUpper(lx.line[start:lx.pos])

	if len(word) > maxVariableLen {
		runtimeErrorf(ESYNTAXERROR, "name too long: %s", word)
	}

	if kw, ok := keywordMap[word]; ok {
		return token{tok: kw, text: word}
	}

	if len(word) > 1 && lx.pos < len(lx.line) && lx.line[lx.pos] == '(' {
		return token{tok: FUNCTION, text: word}
	}

	return token{tok: VARIABLE, text: word}
}

func isDigit(ch byte) bool {

	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {

	return unicode.IsLetter(rune(ch))
}
