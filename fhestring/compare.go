package fhestring

// ---- §4.6 Comparison ----

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Eq reports whether a and b are equal. Both operands must be reusable:
// equality otherwise cannot distinguish "shorter string" from "string
// with hidden interior padding that happens to compare equal up to the
// shorter one's length".
func (sk *ServerKey) Eq(a, b FheString) CBool {
	AssertIsReusable(a)
	AssertIsReusable(b)
	if !a.isEncrypted && !b.isEncrypted {
		return sk.MakeTrivialBool(string(a.chars) == string(b.chars))
	}
	hiddenA, hiddenB := sk.Len(a), sk.Len(b)
	ea, eb := sk.ExtendEqually(hiddenA, hiddenB)
	lenEq := newCBool(sk.eval.Eq(ea, eb))

	n := maxInt(a.Len(), b.Len())
	acs := sk.extendWithZero(sk.toCChars(a), n-a.Len())
	bcs := sk.extendWithZero(sk.toCChars(b), n-b.Len())
	eqs := ZipParallel(acs, bcs, func(x, y CChar) CBool { return sk.charEq(x, y) })
	return sk.And(lenEq, sk.All(eqs))
}

// Ne reports whether a and b are not equal.
func (sk *ServerKey) Ne(a, b FheString) CBool {
	return sk.Not(sk.Eq(a, b))
}

// Lt reports whether a < b lexicographically. Comparison crops to the
// two strings' common-prefix length (a clear quantity, since it is
// derived from FheString.Len(), not a hidden length), then walks the
// shared prefix with a sequential "all positions before k were equal"
// fold (so the result of comparing position k only counts when every
// earlier position tied) before correcting for the case where b is the
// longer, cropped operand: a tie on the whole shared prefix means a < b
// exactly when b still has real (non-hidden-empty) characters left over.
func (sk *ServerKey) Lt(a, b FheString) CBool {
	if !a.isEncrypted && !b.isEncrypted {
		return sk.MakeTrivialBool(string(a.chars) < string(b.chars))
	}
	common := a.Len()
	if b.Len() < common {
		common = b.Len()
	}
	acs := sk.toCChars(a)
	bcs := sk.toCChars(b)

	allBeforeEq := sk.MakeTrivialBool(true)
	existsI := sk.MakeTrivialBool(false)
	for k := 0; k < common; k++ {
		isLtK := newCBool(sk.eval.Lt(acs[k].c, bcs[k].c))
		isEqK := sk.charEq(acs[k], bcs[k])
		andedWithLt := sk.And(allBeforeEq, isLtK)
		existsI = sk.Or(existsI, andedWithLt)
		allBeforeEq = sk.And(allBeforeEq, isEqK)
	}

	if b.Len() > common {
		suffixB := b.SubString(common, b.Len()-1)
		isEmptySuffixB := sk.IsEmpty(suffixB)
		term := sk.And(allBeforeEq, sk.Not(isEmptySuffixB))
		existsI = sk.Or(existsI, term)
	}
	return existsI
}

// Le reports whether a <= b.
func (sk *ServerKey) Le(a, b FheString) CBool { return sk.Not(sk.Lt(b, a)) }

// Gt reports whether a > b.
func (sk *ServerKey) Gt(a, b FheString) CBool { return sk.Lt(b, a) }

// Ge reports whether a >= b.
func (sk *ServerKey) Ge(a, b FheString) CBool { return sk.Not(sk.Lt(a, b)) }
