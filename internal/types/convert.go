package types

// The two implicit conversions of the language: int widens to float, and any
// type moves into a nullable of itself (transitively, so int also moves into
// float?). Everything else needs an explicit cast.

// ImplicitlyConverts reports whether a value of type from converts to type to
// without a cast and without the two types being equal.
func ImplicitlyConverts(from, to Type) bool {
	if from.Equals(TypeInt) && to.Equals(TypeFloat) {
		return true
	}
	if n, ok := to.(*NullableType); ok {
		if IsNull(from) {
			return true
		}
		if from.Equals(n.Inner) {
			return true
		}
		return ImplicitlyConverts(from, n.Inner)
	}
	return false
}

// ConvertsTo reports whether a value of type from is usable where type to is
// expected: the types are equal or an implicit conversion exists.
func ConvertsTo(from, to Type) bool {
	return from.Equals(to) || ImplicitlyConverts(from, to)
}

// CastConverts reports whether an explicit cast from one type to the other is
// valid: anything ConvertsTo allows, plus any numeric to numeric cast.
func CastConverts(from, to Type) bool {
	if ConvertsTo(from, to) {
		return true
	}
	return IsNumeric(from) && IsNumeric(to)
}
