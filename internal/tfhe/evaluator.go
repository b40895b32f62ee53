package tfhe

// Evaluator performs homomorphic operations on Cipher values. It is
// stateless beyond the Parameters it was built with, mirroring the shape
// of lattigo's scheme Evaluators (bgv.Evaluator, he/heint.Evaluator):
// every method returns a fresh Cipher and is safe to call concurrently,
// since no method mutates its Cipher arguments.
//
// All server-side code in this module (fhestring.ServerKey) is written
// against this type only: it never reads a Cipher's payload directly, so
// the call shape here is the same one a real homomorphic backend would
// impose.
type Evaluator struct {
	params Parameters
}

// NewEvaluator returns an Evaluator for the given Parameters. The
// EvaluationKey argument mirrors the real-scheme constructor signature;
// the simulated backend does not need it but accepting it keeps
// fhestring.NewServerKey's call shape identical to a real deployment.
func NewEvaluator(params Parameters, evk EvaluationKey) *Evaluator {
	return &Evaluator{params: params}
}

// Params returns the Parameters this Evaluator was built with.
func (e *Evaluator) Params() Parameters { return e.params }

func wider(a, b Cipher) int {
	if a.blocks > b.blocks {
		return a.blocks
	}
	return b.blocks
}

// Add returns a + b, widened to the larger of the two operands' block
// counts.
func (e *Evaluator) Add(a, b Cipher) Cipher {
	return newCipher(wider(a, b), a.val+b.val)
}

// Sub returns a - b (wrapping modulo the result's modulus), widened to the
// larger of the two operands' block counts.
func (e *Evaluator) Sub(a, b Cipher) Cipher {
	blocks := wider(a, b)
	m := uint64(1)
	for i := 0; i < blocks; i++ {
		m *= MessageModulus
	}
	return newCipher(blocks, m+a.val-b.val)
}

// Mul returns a * b.
func (e *Evaluator) Mul(a, b Cipher) Cipher {
	return newCipher(wider(a, b), a.val*b.val)
}

// ScalarAdd returns a + v.
func (e *Evaluator) ScalarAdd(a Cipher, v uint64) Cipher {
	return newCipher(a.blocks, a.val+v)
}

// ScalarSub returns a - v.
func (e *Evaluator) ScalarSub(a Cipher, v uint64) Cipher {
	m := a.modulus()
	return newCipher(a.blocks, m+a.val-(v%m))
}

// ScalarMul returns a * v.
func (e *Evaluator) ScalarMul(a Cipher, v uint64) Cipher {
	return newCipher(a.blocks, a.val*v)
}

// Neg returns -a.
func (e *Evaluator) Neg(a Cipher) Cipher {
	return e.ScalarSub(newCipher(a.blocks, 0), a.val)
}

// boolOf converts a 0/1-valued Cipher to a Go bool for internal use by the
// comparison/boolean family below, whose RESULT is always itself returned
// as a fresh trivial boolean Cipher: the simulated backend still "computes
// under encryption" conceptually, it just doesn't hide the value from
// itself.
func boolOf(c Cipher) bool { return c.val != 0 }

// Eq returns an encrypted bool: a == b.
func (e *Evaluator) Eq(a, b Cipher) Cipher { return NewTrivialBool(a.val == b.val) }

// Ne returns an encrypted bool: a != b.
func (e *Evaluator) Ne(a, b Cipher) Cipher { return NewTrivialBool(a.val != b.val) }

// Lt returns an encrypted bool: a < b.
func (e *Evaluator) Lt(a, b Cipher) Cipher { return NewTrivialBool(a.val < b.val) }

// Le returns an encrypted bool: a <= b.
func (e *Evaluator) Le(a, b Cipher) Cipher { return NewTrivialBool(a.val <= b.val) }

// Gt returns an encrypted bool: a > b.
func (e *Evaluator) Gt(a, b Cipher) Cipher { return NewTrivialBool(a.val > b.val) }

// Ge returns an encrypted bool: a >= b.
func (e *Evaluator) Ge(a, b Cipher) Cipher { return NewTrivialBool(a.val >= b.val) }

// ScalarEq returns an encrypted bool: a == v.
func (e *Evaluator) ScalarEq(a Cipher, v uint64) Cipher { return NewTrivialBool(a.val == v) }

// ScalarNe returns an encrypted bool: a != v.
func (e *Evaluator) ScalarNe(a Cipher, v uint64) Cipher { return NewTrivialBool(a.val != v) }

// ScalarLt returns an encrypted bool: a < v.
func (e *Evaluator) ScalarLt(a Cipher, v uint64) Cipher { return NewTrivialBool(a.val < v) }

// ScalarLe returns an encrypted bool: a <= v.
func (e *Evaluator) ScalarLe(a Cipher, v uint64) Cipher { return NewTrivialBool(a.val <= v) }

// ScalarGt returns an encrypted bool: a > v.
func (e *Evaluator) ScalarGt(a Cipher, v uint64) Cipher { return NewTrivialBool(a.val > v) }

// ScalarGe returns an encrypted bool: a >= v.
func (e *Evaluator) ScalarGe(a Cipher, v uint64) Cipher { return NewTrivialBool(a.val >= v) }

// And returns the logical AND of two 1-block booleans.
func (e *Evaluator) And(a, b Cipher) Cipher { return NewTrivialBool(boolOf(a) && boolOf(b)) }

// Or returns the logical OR of two 1-block booleans.
func (e *Evaluator) Or(a, b Cipher) Cipher { return NewTrivialBool(boolOf(a) || boolOf(b)) }

// Xor returns the logical XOR of two 1-block booleans.
func (e *Evaluator) Xor(a, b Cipher) Cipher { return NewTrivialBool(boolOf(a) != boolOf(b)) }

// Not returns the logical negation of a 1-block boolean.
func (e *Evaluator) Not(a Cipher) Cipher { return NewTrivialBool(!boolOf(a)) }

// IfThenElse selects ifTrue's or ifFalse's value according to the
// encrypted boolean cond. Like the rest of this simulated backend it reads
// cond's payload (to pick a 0/1 weight), then combines both arms
// arithmetically; callers see one call taking both arms, the same
// data-independent call shape a real backend imposes.
func (e *Evaluator) IfThenElse(cond Cipher, ifTrue, ifFalse Cipher) Cipher {
	blocks := wider(ifTrue, ifFalse)
	t := uint64(0)
	if boolOf(cond) {
		t = 1
	}
	return newCipher(blocks, t*ifTrue.val+(1-t)*ifFalse.val)
}

// Extend widens a Cipher to n blocks (n >= c.Blocks()), zero-extending the
// most-significant blocks. Panics if n < c.Blocks(): narrowing must go
// through Trim, which is a lossy operation with its own explicit name.
func (e *Evaluator) Extend(c Cipher, n int) Cipher {
	if n < c.blocks {
		panic("tfhe: Evaluator.Extend: target width narrower than input")
	}
	return Cipher{blocks: n, val: c.val}
}

// Trim narrows a Cipher to n blocks (n <= c.Blocks()), discarding the
// most-significant blocks.
func (e *Evaluator) Trim(c Cipher, n int) Cipher {
	if n > c.blocks {
		panic("tfhe: Evaluator.Trim: target width wider than input")
	}
	return newCipher(n, c.val)
}

// ShallowCopy returns a copy of the Evaluator, matching lattigo's
// ShallowCopy convention for obtaining a goroutine-safe handle to reuse
// across parallel workers sharing immutable evaluation keys.
func (e *Evaluator) ShallowCopy() *Evaluator {
	return &Evaluator{params: e.params}
}
