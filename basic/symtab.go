package basic

import (
	"strconv"
	"strings"
)

//
// The symbol table maps case-folded names to variables.  A variable
// gets its kind at creation, via its payload variant, and keeps it
// for the life of the session
//

func (ip *Interp) initSymbolTable() {

	ip.symtab = make(map[string]*symtabNode)
}

func (ip *Interp) lookupSymbol(name string) *symtabNode {

	return ip.symtab[name]
}

func (ip *Interp) createSymbol(name string, value symValue) *symtabNode {

	basicAssert(value != nil, "variable created without a kind")

	runtimeCheck(len(ip.symtab) < maxVariables, EOUTOFMEMORY)

	sym := &symtabNode{name: name, value: value}
	ip.symtab[name] = sym

	return sym
}

//
// Scalar access.  Reading an unknown name is an error, not an
// implicit zero.  A string scalar read in numeric context coerces
// permissively; an array read as a scalar is a type mismatch
//

func (ip *Interp) fetchScalar(name string) float64 {

	sym := ip.lookupSymbol(name)
	if sym == nil {
		runtimeErrorf(EUNDEFINEDVARIABLE, "%s", name)
	}

	switch v := sym.value.(type) {
	default:
		runtimeErrorf(ETYPEMISMATCH, "%s is a %s", name, v.kindName())
		return 0

	case *numberValue:
		return v.f

	case *stringValue:
		return convertFloat(v.s)
	}
}

func (ip *Interp) storeScalar(name string, f float64) {

	sym := ip.lookupSymbol(name)
	if sym == nil {
		ip.createSymbol(name, &numberValue{f: f})
		return
	}

	v, ok := sym.value.(*numberValue)
	if !ok {
		runtimeErrorf(ETYPEMISMATCH, "%s is a %s", name, sym.value.kindName())
	}

	v.f = f
}

func (ip *Interp) storeScalarString(name string, s string) {

	sym := ip.lookupSymbol(name)
	if sym == nil {
		ip.createSymbol(name, &stringValue{s: s})
		return
	}

	v, ok := sym.value.(*stringValue)
	if !ok {
		runtimeErrorf(ETYPEMISMATCH, "%s is a %s", name, sym.value.kindName())
	}

	v.s = s
}

//
// Array management.  Arrays are 1 to 3 dimensions, 1-based, with a
// flat row-major backing store sized to the product of the extents
//

func (ip *Interp) createArray(name string, dims []int, isString bool) {

	runtimeCheck(len(dims) >= 1 && len(dims) <= maxArrayDims,
		ESUBSCRIPTERROR)

	size := 1
	for _, d := range dims {
		runtimeCheck(d >= 1, ESUBSCRIPTERROR)
		size *= d
		runtimeCheck(size <= maxArrayElems, EOUTOFMEMORY)
	}

	bounds := make([]int, len(dims))
	copy(bounds, dims)

	sym := ip.lookupSymbol(name)
	if sym == nil {
		if isString {
			ip.createSymbol(name, &stringArray{dims: bounds,
				elems: make([]string, size)})
		} else {
			ip.createSymbol(name, &numberArray{dims: bounds,
				elems: make([]float64, size)})
		}
		return
	}

	//
	// Re-DIM of a same-kind array reallocates zeroed storage so a
	// program can be run twice without clearing the session
	//

	switch sym.value.(type) {
	default:
		runtimeErrorf(ETYPEMISMATCH, "%s is a %s", name, sym.value.kindName())

	case *numberArray:
		runtimeCheck(!isString, ETYPEMISMATCH)
		sym.value = &numberArray{dims: bounds, elems: make([]float64, size)}

	case *stringArray:
		runtimeCheck(isString, ETYPEMISMATCH)
		sym.value = &stringArray{dims: bounds, elems: make([]string, size)}
	}
}

//
// computeIndex checks every subscript against its declared extent
// and flattens to the row-major element index
//

func computeIndex(dims []int, subs []int) int {

	if len(subs) != len(dims) {
		runtimeErrorf(ESUBSCRIPTERROR, "%d subscripts for %d dimensions",
			len(subs), len(dims))
	}

	idx := 0
	for i, s := range subs {
		if s < 1 || s > dims[i] {
			runtimeErrorf(ESUBSCRIPTERROR, "subscript %d of %d", s, dims[i])
		}
		idx = idx*dims[i] + (s - 1)
	}

	return idx
}

func (ip *Interp) fetchElement(name string, subs []int) float64 {

	sym := ip.lookupSymbol(name)
	if sym == nil {
		runtimeErrorf(EUNDEFINEDVARIABLE, "%s", name)
	}

	switch v := sym.value.(type) {
	default:
		runtimeErrorf(ETYPEMISMATCH, "%s is a %s", name, v.kindName())
		return 0

	case *numberArray:
		return v.elems[computeIndex(v.dims, subs)]

	case *stringArray:
		return convertFloat(v.elems[computeIndex(v.dims, subs)])
	}
}

func (ip *Interp) storeElement(name string, subs []int, f float64) {

	sym := ip.lookupSymbol(name)
	if sym == nil {
		runtimeErrorf(EUNDEFINEDVARIABLE, "%s", name)
	}

	v, ok := sym.value.(*numberArray)
	if !ok {
		runtimeErrorf(ETYPEMISMATCH, "%s is a %s", name, sym.value.kindName())
	}

	v.elems[computeIndex(v.dims, subs)] = f
}

//
// Permissive string-to-number conversion, used for string values in
// numeric context and for INPUT.  Anything unparseable reads as 0
//

func convertFloat(s string) float64 {

	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}

	return f
}
