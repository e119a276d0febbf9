package basic

import "math"

//
// Recursive-descent expression evaluation.  Relational operators
// live in the additive tier on purpose, yielding 1.0 or 0.0, so
// comparisons chain left to right instead of binding looser than
// addition.  Multiplicative operators bind tighter, unary sign
// tighter still
//
//	expression := term ( (+ - = < <= <> > >=) term )*
//	term       := factor ( (* /) factor )*
//	factor     := [+ -] ( NUMBER | ( expr ) | var | fn ( expr ) )
//

func (ip *Interp) evalExpression(lx *lexer, depth int) float64 {

	runtimeCheck(depth < exprDepthMax, EEXPRTOODEEP)

	val := ip.evalTerm(lx, depth)

	for {
		switch lx.peek().tok {
		default:
			return val

		case PLUS:
			lx.next()
			val += ip.evalTerm(lx, depth)

		case MINUS:
			lx.next()
			val -= ip.evalTerm(lx, depth)

		case EQ:
			lx.next()
			val = boolFloat(val == ip.evalTerm(lx, depth))

		case NE:
			lx.next()
			val = boolFloat(val != ip.evalTerm(lx, depth))

		case LT:
			lx.next()
			val = boolFloat(val < ip.evalTerm(lx, depth))

		case LE:
			lx.next()
			val = boolFloat(val <= ip.evalTerm(lx, depth))

		case GT:
			lx.next()
			val = boolFloat(val > ip.evalTerm(lx, depth))

		case GE:
			lx.next()
			val = boolFloat(val >= ip.evalTerm(lx, depth))
		}
	}
}

func (ip *Interp) evalTerm(lx *lexer, depth int) float64 {

	val := ip.evalFactor(lx, depth)

	for {
		switch lx.peek().tok {
		default:
			return val

		case STAR:
			lx.next()
			val *= ip.evalFactor(lx, depth)

		case SLASH:
			lx.next()
			divisor := ip.evalFactor(lx, depth)
			runtimeCheck(divisor != 0, EDIVISIONBYZERO)
			val /= divisor
		}
	}
}

func (ip *Interp) evalFactor(lx *lexer, depth int) float64 {

	t := lx.next()

	neg := false
	if t.tok == MINUS || t.tok == PLUS {
		neg = t.tok == MINUS
		t = lx.next()
	}

	var val float64

	switch t.tok {
	default:
		runtimeError(ESYNTAXERROR)

	case AND, OR, NOT:
		// recognized by the lexer but not part of the grammar
		runtimeError(ESYNTAXERROR)

	case NUMBER:
		val = t.num

	case LPAR:
		val = ip.evalExpression(lx, depth+1)
		t = lx.next()
		runtimeCheck(t.tok == RPAR, ESYNTAXERROR)

	case VARIABLE:
		if lx.peek().tok == LPAR {
			val = ip.fetchElement(t.text, ip.parseSubscripts(lx, depth))
		} else {
			val = ip.fetchScalar(t.text)
		}

	case FUNCTION:
		val = ip.evalFunction(lx, t.text, depth)
	}

	if neg {
		val = -val
	}

	return val
}

//
// A function-name token is either a built-in function or a reference
// into a DIMed array; anything else in operand position is a syntax
// error
//

func (ip *Interp) evalFunction(lx *lexer, name string, depth int) float64 {

	if fn, ok := builtinFuncs[name]; ok {
		t := lx.next()
		runtimeCheck(t.tok == LPAR, ESYNTAXERROR)

		arg := ip.evalExpression(lx, depth+1)

		t = lx.next()
		runtimeCheck(t.tok == RPAR, ESYNTAXERROR)

		return fn(ip, arg)
	}

	if sym := ip.lookupSymbol(name); sym != nil {
		return ip.fetchElement(name, ip.parseSubscripts(lx, depth))
	}

	runtimeErrorf(ESYNTAXERROR, "unknown function %s", name)

	return 0 // not reached
}

//
// parseSubscripts consumes '(' expr [, expr]... ')' and truncates
// each value to an integer subscript
//

func (ip *Interp) parseSubscripts(lx *lexer, depth int) []int {

	t := lx.next()
	runtimeCheck(t.tok == LPAR, ESYNTAXERROR)

	var subs []int

	for {
		subs = append(subs, int(ip.evalExpression(lx, depth+1)))

		t = lx.next()
		if t.tok == RPAR {
			return subs
		}

		runtimeCheck(t.tok == COMMA, ESYNTAXERROR)
		runtimeCheck(len(subs) < maxArrayDims, ESUBSCRIPTERROR)
	}
}

func boolFloat(b bool) float64 {

	if b {
		return 1.0
	}

	return 0.0
}

//
// Built-in functions.  All take one numeric argument and return a
// number
//

var builtinFuncs = map[string]func(*Interp, float64) float64{
	"ABS": func(_ *Interp, x float64) float64 { return math.Abs(x) },
	"SQR": func(_ *Interp, x float64) float64 {
		runtimeCheck(x >= 0, EARGUMENTERROR)
		return math.Sqrt(x)
	},
	"SIN": func(_ *Interp, x float64) float64 { return math.Sin(x) },
	"COS": func(_ *Interp, x float64) float64 { return math.Cos(x) },
	"TAN": func(_ *Interp, x float64) float64 { return math.Tan(x) },
	"LOG": func(_ *Interp, x float64) float64 {
		runtimeCheck(x > 0, EARGUMENTERROR)
		return math.Log(x)
	},
	"EXP": func(_ *Interp, x float64) float64 { return math.Exp(x) },
	"INT": func(_ *Interp, x float64) float64 { return math.Floor(x) },
	"SGN": func(_ *Interp, x float64) float64 {
		if x > 0 {
			return 1
		} else if x < 0 {
			return -1
		}
		return 0
	},
	"RND": func(ip *Interp, x float64) float64 {
		return x * ip.rng.Float64()
	},
}
