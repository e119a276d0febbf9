package basic

import "fmt"

//
// Manifest constants for the interpreter error messages.  Every
// message carries a numeric code via the errorMap; the session's
// error surface is the (code, message) pair of the most recent
// failure
//

const (
	ESYNTAXERROR        = "Syntax error"
	EOUTOFMEMORY        = "Out of memory"
	EUNDEFINEDVARIABLE  = "Undefined variable"
	ETYPEMISMATCH       = "Type mismatch"
	EDIVISIONBYZERO     = "Division by 0"
	ESUBSCRIPTERROR     = "Subscript out of range"
	EFOROVERFLOW        = "FOR stack overflow"
	EGOSUBOVERFLOW      = "GOSUB stack overflow"
	EPROGRAMTOOLARGE    = "Program too large"
	ELINENOTFOUND       = "Line not found"
	ENEXTWITHOUTFOR     = "NEXT without FOR"
	ERETURNWITHOUTGOSUB = "RETURN without GOSUB"
	EOUTOFDATA          = "Out of data"
	ELINETOOLONG        = "Line too long"
	EILLEGALLINENUMBER  = "Illegal line number"
	EARGUMENTERROR      = "Illegal function argument"
	ESTMTTOODEEP        = "Statement nesting too deep"
	EEXPRTOODEEP        = "Expression nesting too deep"
	EINTERRUPTED        = "Interrupted"
	EIOERROR            = "I/O error"
)

var errorMap map[string]int16

func initErrors() {

	if errorMap != nil {
		return
	}

	errorMap = make(map[string]int16)

	errorMap[ESYNTAXERROR] = 1
	errorMap[EOUTOFMEMORY] = 2
	errorMap[EUNDEFINEDVARIABLE] = 3
	errorMap[ETYPEMISMATCH] = 4
	errorMap[EDIVISIONBYZERO] = 5
	errorMap[ESUBSCRIPTERROR] = 6
	errorMap[EFOROVERFLOW] = 7
	errorMap[EGOSUBOVERFLOW] = 7
	errorMap[EPROGRAMTOOLARGE] = 8
	errorMap[ELINENOTFOUND] = 9
	errorMap[ENEXTWITHOUTFOR] = 10
	errorMap[ERETURNWITHOUTGOSUB] = 11
	errorMap[EOUTOFDATA] = 12
	errorMap[ELINETOOLONG] = 13
	errorMap[EILLEGALLINENUMBER] = 14
	errorMap[EARGUMENTERROR] = 15
	errorMap[ESTMTTOODEEP] = 16
	errorMap[EEXPRTOODEEP] = 16
	errorMap[EINTERRUPTED] = 17
	errorMap[EIOERROR] = 18
}

//
// We return -1 on a failed lookup, which can only happen for a
// detail message built with runtimeErrorf; the base message decides
// the code in that case
//

func getErrorNo(msg string) int16 {

	if err, ok := errorMap[msg]; ok {
		return err
	}

	return -1
}

//
// Error is the session's error surface.  Code identifies the error
// kind, Msg is the human-readable message, Line is the program line
// that was executing, or 0 in immediate mode
//

type Error struct {
	Code int16
	Msg  string
	Line int16
}

func (e *Error) Error() string {

	if e.Line != 0 {
		return fmt.Sprintf("%s at line %d", e.Msg, e.Line)
	}

	return e.Msg
}

//
// Internal propagation is by panic.  The session entry points wrap
// everything in guard(), which recovers the payload and records it
// as the current error.  Nothing escapes the package boundary as a
// panic unless it is a genuine bug
//

type runtimeErrorInfo struct {
	msg  string
	code int16
}

func runtimeError(msg string) {

	panic(&runtimeErrorInfo{msg: msg, code: getErrorNo(msg)})
}

//
// runtimeErrorf keeps the numeric code of the base message while
// attaching detail, e.g. "Line not found (GOTO 999)"
//

func runtimeErrorf(base string, f string, args ...any) {

	msg := base + " (" + fmt.Sprintf(f, args...) + ")"

	panic(&runtimeErrorInfo{msg: msg, code: getErrorNo(base)})
}

func runtimeCheck(chk bool, msg string) {

	if !chk {
		runtimeError(msg)
	}
}

//
// Interpreter-internal invariant failures.  These are bugs, not user
// errors, so they do not go through the error surface
//

func basicAssert(chk bool, msg string) {

	if !chk {
		panic("internal error: " + msg)
	}
}

//
// guard runs f, converting a runtime error panic into the session's
// current error.  Any other panic is a bug and is re-raised
//

func (ip *Interp) guard(f func()) (err error) {

	defer func() {
		e := recover()
		if e == nil {
			return
		}

		re, ok := e.(*runtimeErrorInfo)
		if !ok {
			panic(e)
		}

		ip.lastErr = &Error{Code: re.code, Msg: re.msg, Line: ip.curLine}
		ip.running = false
		err = ip.lastErr
	}()

	ip.lastErr = nil

	f()

	return nil
}
