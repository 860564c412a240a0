package types

import "strings"

// Function holds an argument sequence and a return sequence.
type Function struct {
	Args    TySeq
	Returns TySeq
}

func (f Function) String() string {
	return "(" + f.Args.String() + ") -> (" + f.Returns.String() + ")"
}

func (f Function) FreeTVars() []TVar {
	return uniqueTVars(append(f.Args.FreeTVars(), f.Returns.FreeTVars()...))
}

// FunctionShape is the payload of a Functions(F) value (spec §3).
type FunctionShape interface {
	isFunctionShape()
	String() string
}

// FuncAll is the unrefined "any function" shape; subsumes everything.
type FuncAll struct{}

// FuncSimple is a single function signature; equivalent to FuncMulti{[f]}.
type FuncSimple struct{ Fn Function }

// FuncMulti is an overload set: the function may be called as any one of
// the listed signatures.
type FuncMulti struct{ Fns []Function }

func (FuncAll) isFunctionShape()    {}
func (FuncSimple) isFunctionShape() {}
func (FuncMulti) isFunctionShape()  {}

func (FuncAll) String() string    { return "function" }
func (f FuncSimple) String() string { return f.Fn.String() }
func (f FuncMulti) String() string {
	parts := make([]string, len(f.Fns))
	for i, fn := range f.Fns {
		parts[i] = fn.String()
	}
	return strings.Join(parts, " & ")
}

// AsMulti returns the FuncMulti view of any FunctionShape, used so lattice
// code can always iterate overload members uniformly (spec §4.B Functions:
// "Simple(f) is Multi([f])").
func AsMulti(f FunctionShape) ([]Function, bool) {
	switch v := f.(type) {
	case FuncSimple:
		return []Function{v.Fn}, true
	case FuncMulti:
		return v.Fns, true
	default:
		return nil, false
	}
}

// TFunctions is the Functions(F) variant.
type TFunctions struct{ F FunctionShape }

func (TFunctions) isT()         {}
func (TFunctions) Flags() Flags { return FlagFunction }
func (t TFunctions) String() string { return t.F.String() }

func (t TFunctions) FreeTVars() []TVar {
	fns, ok := AsMulti(t.F)
	if !ok {
		return nil
	}
	var vs []TVar
	for _, fn := range fns {
		vs = append(vs, fn.FreeTVars()...)
	}
	return uniqueTVars(vs)
}
