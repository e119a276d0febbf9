package basic

//
// Statement execution.  One handler per verb; each consumes its own
// tokens from the shared lexer cursor and reports a tagged outcome.
// The run loop honors all three outcome kinds; collapsing the jump
// case into a boolean would lose GOTO/GOSUB/FOR-NEXT entirely
//

//
// execStatements runs every statement on one line, chaining across
// ':' separators.  A jump or halt from any statement abandons the
// rest of the line
//

func (ip *Interp) execStatements(lx *lexer, depth int) outcome {

	for {
		out := ip.executeStatement(lx, depth)
		if out.kind != outNext {
			return out
		}

		t := lx.next()
		if t.tok == EOL {
			return outcome{kind: outNext}
		}

		runtimeCheck(t.tok == COLON, ESYNTAXERROR)
	}
}

func (ip *Interp) executeStatement(lx *lexer, depth int) outcome {

	runtimeCheck(depth < stmtDepthMax, ESTMTTOODEEP)

	ip.numStatements++

	save := *lx
	t := lx.next()

	switch t.tok {
	default:
		runtimeError(ESYNTAXERROR)

	case EOL:
		return outcome{kind: outNext}

	case PRINT:
		return ip.executePrint(lx)

	case INPUT:
		return ip.executeInput(lx)

	case LET:
		return ip.executeLet(lx)

	//
	// A bare variable or array reference at statement start is an
	// implicit LET; rewind so the handler sees the whole target
	//

	case VARIABLE, FUNCTION:
		*lx = save
		return ip.executeLet(lx)

	case IF:
		return ip.executeIf(lx, depth)

	case FOR:
		return ip.executeFor(lx)

	case NEXT:
		return ip.executeNext(lx)

	case GOSUB:
		return ip.executeGosub(lx)

	case RETURN:
		return ip.executeReturn()

	case GOTO:
		return ip.executeGoto(lx)

	case READ:
		return ip.executeRead(lx)

	case DATA:
		// the pool was built at load time; skip the values
		for lx.peek().tok != EOL && lx.peek().tok != COLON {
			lx.next()
		}
		return outcome{kind: outNext}

	case DIM:
		return ip.executeDim(lx)

	case END, STOP:
		ip.running = false
		return outcome{kind: outHalt}

	case REM:
		lx.pos = len(lx.line)
		return outcome{kind: outNext}
	}

	return outcome{} // not reached
}

//
// PRINT: string literals print raw, expressions print with fixed
// 6-decimal formatting.  ';' abuts items, ',' advances to the next
// print zone, and a trailing ';' suppresses the newline
//

func (ip *Interp) executePrint(lx *lexer) outcome {

	lastSep := 0

	for {
		t := lx.peek()

		switch t.tok {
		default:
			ip.write(formatNumber(ip.evalExpression(lx, 0)))
			lastSep = 0
			continue

		case EOL, COLON:
			if lastSep != SEMI {
				ip.newline()
			}
			return outcome{kind: outNext}

		case STRING:
			lx.next()
			ip.write(t.text)
			lastSep = 0

		case COMMA:
			lx.next()
			ip.tabZone()
			lastSep = COMMA

		case SEMI:
			lx.next()
			lastSep = SEMI
		}
	}
}

//
// INPUT: a leading string literal is echoed as a prompt, then each
// variable blocks for one line of input with a '? ' marker.  The
// conversion is permissive: non-numeric input reads as 0
//

func (ip *Interp) executeInput(lx *lexer) outcome {

	for {
		t := lx.peek()

		switch t.tok {
		default:
			runtimeError(ESYNTAXERROR)

		case EOL, COLON:
			return outcome{kind: outNext}

		case STRING:
			lx.next()
			ip.write(t.text)

		case COMMA, SEMI:
			lx.next()

		case VARIABLE, FUNCTION:
			lx.next()

			var subs []int
			if t.tok == FUNCTION || lx.peek().tok == LPAR {
				subs = ip.parseSubscripts(lx, 0)
			}

			line := ip.readLine(executePrompt)

			if subs != nil {
				ip.storeElement(t.text, subs, convertFloat(line))
			} else {
				ip.storeScalar(t.text, convertFloat(line))
			}
		}
	}
}

//
// LET, explicit or implicit.  The target is a scalar or an element
// of a DIMed array.  The right side is evaluated in full before the
// store, so a failed expression leaves the target untouched
//

func (ip *Interp) executeLet(lx *lexer) outcome {

	t := lx.next()
	runtimeCheck(t.tok == VARIABLE || t.tok == FUNCTION, ESYNTAXERROR)

	name := t.text

	var subs []int
	if t.tok == FUNCTION || lx.peek().tok == LPAR {
		subs = ip.parseSubscripts(lx, 0)
	}

	t = lx.next()
	runtimeCheck(t.tok == EQ, ESYNTAXERROR)

	val := ip.evalExpression(lx, 0)

	if subs != nil {
		ip.storeElement(name, subs, val)
	} else {
		ip.storeScalar(name, val)
	}

	return outcome{kind: outNext}
}

//
// IF evaluates the condition, requires THEN, and when true executes
// the remainder of the line as a fresh statement.  That statement
// may itself be an IF, hence the depth guard.  When false the rest
// of the line is skipped
//

func (ip *Interp) executeIf(lx *lexer, depth int) outcome {

	cond := ip.evalExpression(lx, 0)

	t := lx.next()
	runtimeCheck(t.tok == THEN, ESYNTAXERROR)

	if cond == 0 {
		lx.pos = len(lx.line)
		return outcome{kind: outNext}
	}

	return ip.executeStatement(lx, depth+1)
}

//
// FOR assigns the initial value and pushes a frame bound to the
// current line.  The loop condition is not pre-checked; NEXT does
// the increment-and-test
//

func (ip *Interp) executeFor(lx *lexer) outcome {

	t := lx.next()
	runtimeCheck(t.tok == VARIABLE, ESYNTAXERROR)
	name := t.text

	t = lx.next()
	runtimeCheck(t.tok == EQ, ESYNTAXERROR)

	initial := ip.evalExpression(lx, 0)

	t = lx.next()
	runtimeCheck(t.tok == TO, ESYNTAXERROR)

	limit := ip.evalExpression(lx, 0)

	step := 1.0
	if lx.peek().tok == STEP {
		lx.next()
		step = ip.evalExpression(lx, 0)
	}

	ip.storeScalar(name, initial)

	runtimeCheck(len(ip.forStack) < forStackMax, EFOROVERFLOW)

	ip.forStack = append(ip.forStack, forFrame{
		varName: name,
		limit:   limit,
		step:    step,
		forLine: ip.curLine,
	})

	return outcome{kind: outNext}
}

//
// NEXT increments the loop variable by the step, then tests against
// the stored limit honoring the step's sign.  While the loop
// continues, execution jumps back to the line after the FOR line and
// the frame stays pushed; on termination the frame pops and control
// falls through
//

func (ip *Interp) executeNext(lx *lexer) outcome {

	var name string
	if lx.peek().tok == VARIABLE {
		name = lx.next().text
	}

	runtimeCheck(len(ip.forStack) > 0, ENEXTWITHOUTFOR)

	frame := &ip.forStack[len(ip.forStack)-1]

	if name != "" && name != frame.varName {
		runtimeErrorf(ENEXTWITHOUTFOR, "NEXT %s inside FOR %s",
			name, frame.varName)
	}

	val := ip.fetchScalar(frame.varName) + frame.step
	ip.storeScalar(frame.varName, val)

	continuing := val <= frame.limit
	if frame.step < 0 {
		continuing = val >= frame.limit
	}

	if continuing {
		if forLine := ip.lineLookup(frame.forLine); forLine != nil {
			if body := lineNext(forLine); body != nil {
				return outcome{kind: outJump, target: body.number}
			}
		}
	}

	ip.forStack = ip.forStack[:len(ip.forStack)-1]

	return outcome{kind: outNext}
}

//
// GOSUB pushes the current line and jumps; RETURN pops and resumes
// at the line following the saved one.  GOTO is GOSUB without the
// bookkeeping.  All three verify the target line exists
//

func (ip *Interp) executeGosub(lx *lexer) outcome {

	target := ip.parseLineTarget(lx, "GOSUB")

	runtimeCheck(len(ip.gosubStack) < gosubStackMax, EGOSUBOVERFLOW)

	ip.gosubStack = append(ip.gosubStack, gosubFrame{returnLine: ip.curLine})

	return outcome{kind: outJump, target: target}
}

func (ip *Interp) executeReturn() outcome {

	runtimeCheck(len(ip.gosubStack) > 0, ERETURNWITHOUTGOSUB)

	frame := ip.gosubStack[len(ip.gosubStack)-1]
	ip.gosubStack = ip.gosubStack[:len(ip.gosubStack)-1]

	from := ip.lineLookup(frame.returnLine)
	if from == nil {
		// GOSUB issued from immediate mode; nothing to resume
		return outcome{kind: outHalt}
	}

	next := lineNext(from)
	if next == nil {
		return outcome{kind: outHalt}
	}

	return outcome{kind: outJump, target: next.number}
}

func (ip *Interp) executeGoto(lx *lexer) outcome {

	return outcome{kind: outJump, target: ip.parseLineTarget(lx, "GOTO")}
}

func (ip *Interp) parseLineTarget(lx *lexer, verb string) int16 {

	t := lx.next()
	runtimeCheck(t.tok == NUMBER, ESYNTAXERROR)

	n := int(t.num)
	if n < 0 || n > 32767 || float64(n) != t.num {
		runtimeErrorf(EILLEGALLINENUMBER, "%s %g", verb, t.num)
	}

	if ip.lineLookup(int16(n)) == nil {
		runtimeErrorf(ELINENOTFOUND, "%s %d", verb, n)
	}

	return int16(n)
}

//
// READ assigns the next values from the data pool, advancing the
// shared cursor.  Exhausting the pool is an error
//

func (ip *Interp) executeRead(lx *lexer) outcome {

	for {
		t := lx.next()
		runtimeCheck(t.tok == VARIABLE || t.tok == FUNCTION, ESYNTAXERROR)

		val := ip.nextDataValue()

		if t.tok == FUNCTION || lx.peek().tok == LPAR {
			subs := ip.parseSubscripts(lx, 0)
			ip.storeElement(t.text, subs, val)
		} else {
			ip.storeScalar(t.text, val)
		}

		t = lx.peek()
		if t.tok == EOL || t.tok == COLON {
			return outcome{kind: outNext}
		}

		runtimeCheck(t.tok == COMMA, ESYNTAXERROR)
		lx.next()
	}
}

func (ip *Interp) nextDataValue() float64 {

	runtimeCheck(ip.dataIndex < len(ip.dataPool), EOUTOFDATA)

	item := ip.dataPool[ip.dataIndex]
	ip.dataIndex++

	if item.isStr {
		return convertFloat(item.str)
	}

	return item.num
}

//
// DIM declares one or more arrays, 1 to 3 dimensions each,
// zero-initialized
//

func (ip *Interp) executeDim(lx *lexer) outcome {

	for {
		t := lx.next()
		runtimeCheck(t.tok == VARIABLE || t.tok == FUNCTION, ESYNTAXERROR)

		ip.createArray(t.text, ip.parseSubscripts(lx, 0), false)

		if lx.peek().tok != COMMA {
			return outcome{kind: outNext}
		}
		lx.next()
	}
}

//
// The run loop.  Execution proceeds in line-number order until a
// halt, an error, or the table is exhausted; jump outcomes move the
// cursor through the program table
//

func (ip *Interp) runFrom(node *lineNode) {

	for node != nil && ip.running {
		ip.checkInterrupt()

		ip.curLine = node.number

		if ip.TraceExec {
			ip.traceLine(node)
		}

		out := ip.execStatements(&lexer{line: node.text}, 0)

		switch out.kind {
		case outNext:
			node = lineNext(node)

		case outJump:
			node = ip.lineLookup(out.target)
			basicAssert(node != nil, "jump to vanished line")

		case outHalt:
			return
		}
	}
}

func (ip *Interp) checkInterrupt() {

	if ip.interrupted {
		ip.interrupted = false
		runtimeError(EINTERRUPTED)
	}
}
