package evaluator

import (
	"math"
)

// strictEquals implements === semantics: equal only if same dynamic type and
// same value. All numeric kinds count as one "number" type. Arrays and
// objects are equal only if they are the identical reference; there is no
// deep equality.
func strictEquals(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	if isUndefined(a) || isUndefined(b) {
		return isUndefined(a) && isUndefined(b)
	}

	return sameReference(a, b)
}

// looseEquals implements == coercion semantics:
//   - null and undefined equal each other and nothing else,
//   - booleans coerce to numbers,
//   - a number compared to a string parses the string as a number
//     (empty string is 0, non-numeric strings compare unequal),
//   - arrays and objects compare by reference identity.
func looseEquals(a, b any) bool {
	an, bn := isNullish(a), isNullish(b)
	if an || bn {
		return an && bn
	}

	if av, ok := a.(bool); ok {
		return looseEquals(boolToNumber(av), b)
	}
	if bv, ok := b.(bool); ok {
		return looseEquals(a, boolToNumber(bv))
	}

	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	switch {
	case aNum && bNum:
		return fa == fb
	case aNum:
		if s, ok := b.(string); ok {
			return fa == stringToNumber(s) // false when NaN
		}
		return false
	case bNum:
		if s, ok := a.(string); ok {
			return stringToNumber(s) == fb
		}
		return false
	}

	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}

	return sameReference(a, b)
}

// compareNumbers implements <, <=, > and >= after coercing both operands
// toward numeric with the same table as loose equality. Any NaN operand
// makes the comparison false.
func compareNumbers(op string, a, b any) bool {
	fa := toNumber(a)
	fb := toNumber(b)
	if math.IsNaN(fa) || math.IsNaN(fb) {
		return false
	}

	switch op {
	case "<":
		return fa < fb
	case "<=":
		return fa <= fb
	case ">":
		return fa > fb
	case ">=":
		return fa >= fb
	default:
		return false
	}
}
