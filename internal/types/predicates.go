package types

// IsIntegral reports whether t's flags guarantee every inhabitant is an
// integer number (spec §4.A predicates).
func IsIntegral(t T) bool {
	f := t.Flags()
	return f.Has(FlagInteger) && f.IsSubsetOf(FlagNumber|FlagInteger)
}

// IsNumeric reports whether t may contain numbers (of any shape).
func IsNumeric(t T) bool {
	return t.Flags().Has(FlagNumber)
}

// IsStringy reports whether t may contain strings.
func IsStringy(t T) bool {
	return t.Flags().Has(FlagString)
}

// IsTabular reports whether t may contain tables.
func IsTabular(t T) bool {
	return t.Flags().Has(FlagTable)
}

// IsCallable reports whether t may be invoked as a function.
func IsCallable(t T) bool {
	return t.Flags().Has(FlagFunction)
}

// HasTrue reports whether t's boolean component admits the literal true.
func HasTrue(t T) bool {
	switch v := t.(type) {
	case TTrue, TBoolean:
		return true
	case TUnion:
		return v.U.HasTrue
	default:
		return false
	}
}

// HasFalse reports whether t's boolean component admits the literal false.
func HasFalse(t T) bool {
	switch v := t.(type) {
	case TFalse, TBoolean:
		return true
	case TUnion:
		return v.U.HasFalse
	default:
		return false
	}
}

// HasNil reports whether t admits nil.
func HasNil(t T) bool {
	switch v := t.(type) {
	case TNil:
		return true
	case TUnion:
		return v.U.HasNil
	default:
		return false
	}
}

// IsDynamic reports whether t is (or is equivalent to) the unrefined
// dynamic type. A free TVar is deliberately excluded: it is permissive
// like Dynamic for flag purposes but is not the Dynamic variant itself.
func IsDynamic(t T) bool {
	_, ok := t.(TDynamic)
	return ok
}

// IsNone reports whether t is the bottom type (the empty union).
func IsNone(t T) bool {
	_, ok := t.(TNone)
	return ok
}
