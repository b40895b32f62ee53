package fhestring

import (
	"math/bits"

	"github.com/Lcressot/fhe-string-bounty/internal/parallel"
	"github.com/Lcressot/fhe-string-bounty/internal/tfhe"
)

// ServerKey performs every oblivious operation this module exposes. It
// holds no secret material, only an Evaluator bound to the
// EvaluationKey derived from some ClientKey, matching the ServerKey{key:
// IntegerServerKey} wrapper of the reference implementation.
type ServerKey struct {
	params tfhe.Parameters
	eval   *tfhe.Evaluator
}

// NewServerKey builds a ServerKey from Parameters and an EvaluationKey.
func NewServerKey(params tfhe.Parameters, evk tfhe.EvaluationKey) *ServerKey {
	return &ServerKey{params: params, eval: tfhe.NewEvaluator(params, evk)}
}

// Parameters returns this ServerKey's Parameters.
func (sk *ServerKey) Parameters() tfhe.Parameters { return sk.params }

// ShallowCopy returns a ServerKey sharing the same evaluation key but
// with its own Evaluator handle, for safe reuse across goroutines that
// each do in-place work with scratch state.
func (sk *ServerKey) ShallowCopy() *ServerKey {
	return &ServerKey{params: sk.params, eval: sk.eval.ShallowCopy()}
}

// ---- §4.1 ServerKey utility layer ----

// MakeTrivialBool lifts a known clear boolean into a CBool with no real
// encryption, for use as a neutral element in reductions or as a
// known-constant operand.
func (sk *ServerKey) MakeTrivialBool(b bool) CBool {
	return newCBool(tfhe.NewTrivialBool(b))
}

// Not returns the logical negation of b.
func (sk *ServerKey) Not(b CBool) CBool {
	return newCBool(sk.eval.Not(b.c))
}

// And returns the logical AND of a and b.
func (sk *ServerKey) And(a, b CBool) CBool {
	return newCBool(sk.eval.And(a.c, b.c))
}

// Or returns the logical OR of a and b.
func (sk *ServerKey) Or(a, b CBool) CBool {
	return newCBool(sk.eval.Or(a.c, b.c))
}

// All obliviously reduces bs with AND. Returns MakeTrivialBool(true) for
// an empty slice (the identity element for AND), matching the reference
// all()'s behavior on an empty vector.
func (sk *ServerKey) All(bs []CBool) CBool {
	return sk.treeReduce(bs, true, sk.eval.And)
}

// Any obliviously reduces bs with OR. Returns MakeTrivialBool(false) for
// an empty slice, the identity element for OR.
func (sk *ServerKey) Any(bs []CBool) CBool {
	return sk.treeReduce(bs, false, sk.eval.Or)
}

func (sk *ServerKey) treeReduce(bs []CBool, identity bool, op func(a, b tfhe.Cipher) tfhe.Cipher) CBool {
	if len(bs) == 0 {
		return sk.MakeTrivialBool(identity)
	}
	cur := make([]tfhe.Cipher, len(bs))
	for i, b := range bs {
		cur[i] = b.c
	}
	// Pairwise tree reduction: each level's pairs are independent, so the
	// per-level work is run through the same bounded worker pool the rest
	// of the oblivious kernels use (spec.md §5).
	for len(cur) > 1 {
		next := make([]tfhe.Cipher, (len(cur)+1)/2)
		parallel.MapNoError(len(next), func(i int) {
			if 2*i+1 < len(cur) {
				next[i] = op(cur[2*i], cur[2*i+1])
			} else {
				next[i] = cur[2*i]
			}
		})
		cur = next
	}
	return newCBool(cur[0])
}

// ApplyParallel calls f(i) for every index in [0, n) with bounded
// concurrency and collects the results in order, matching the
// apply_parallelized_vec helper of the reference implementation.
func (sk *ServerKey) ApplyParallel(n int, f func(i int) CChar) []CChar {
	out := make([]CChar, n)
	parallel.MapNoError(n, func(i int) { out[i] = f(i) })
	return out
}

// ApplyParallelBool is ApplyParallel for CBool-valued steps.
func (sk *ServerKey) ApplyParallelBool(n int, f func(i int) CBool) []CBool {
	out := make([]CBool, n)
	parallel.MapNoError(n, func(i int) { out[i] = f(i) })
	return out
}

// ZipParallel calls f(a[i], b[i]) for every index with bounded
// concurrency, matching the reference's zip_parallel pattern used
// throughout the pattern-match and trim kernels.
func ZipParallel[A, B, R any](a []A, b []B, f func(x A, y B) R) []R {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]R, n)
	parallel.MapNoError(n, func(i int) { out[i] = f(a[i], b[i]) })
	return out
}

// ExtendEqually widens a and b to the same number of radix blocks (the
// wider of the two), so that subsequent arithmetic between them does not
// silently truncate.
func (sk *ServerKey) ExtendEqually(a, b tfhe.Cipher) (tfhe.Cipher, tfhe.Cipher) {
	n := a.Blocks()
	if b.Blocks() > n {
		n = b.Blocks()
	}
	return sk.eval.Extend(a, n), sk.eval.Extend(b, n)
}

// ComputeBlocksForLen returns a number of radix blocks wide enough to
// represent any value in [0, n]: the bit length of n+1, plus one (1 for
// n == 0). Since each block holds 2 bits this is about twice the width
// strictly needed; the spare headroom keeps intermediate sums (e.g.
// hidden-length computations that may transiently overflow by one before
// a final correction) from wrapping.
func ComputeBlocksForLen(n int) int {
	if n < 0 {
		panic("fhestring: ComputeBlocksForLen: negative length")
	}
	if n == 0 {
		return 1
	}
	return bits.Len(uint(n+1)) + 1
}

// SetZeroWhereIndices returns a copy of chars in which every index listed
// in zeroAt is replaced by an encrypted zero byte wherever its encrypted
// flag is true. Each listed index is rewritten via IfThenElse against its
// flag rather than by slicing, so which listed indices were zeroed is not
// observable from the shape of the computation; indices absent from
// zeroAt are copied unchanged.
func (sk *ServerKey) SetZeroWhereIndices(chars []CChar, zeroAt map[int]CBool) []CChar {
	out := make([]CChar, len(chars))
	zero := tfhe.NewTrivialCipher(sk.params.CharBlocks(), 0)
	parallel.MapNoError(len(chars), func(i int) {
		cond, ok := zeroAt[i]
		if !ok {
			out[i] = chars[i]
			return
		}
		out[i] = newCChar(sk.eval.IfThenElse(cond.c, zero, chars[i].c))
	})
	return out
}

// SetZeroWhere returns a copy of chars with every position i replaced by
// zero wherever cond[i] is true.
func (sk *ServerKey) SetZeroWhere(chars []CChar, cond []CBool) []CChar {
	out := make([]CChar, len(chars))
	zero := tfhe.NewTrivialCipher(sk.params.CharBlocks(), 0)
	parallel.MapNoError(len(chars), func(i int) {
		out[i] = newCChar(sk.eval.IfThenElse(cond[i].c, zero, chars[i].c))
	})
	return out
}

// IfThenElseChar obliviously selects a or b according to cond.
func (sk *ServerKey) IfThenElseChar(cond CBool, a, b CChar) CChar {
	return newCChar(sk.eval.IfThenElse(cond.c, a.c, b.c))
}

// IfThenElseUint obliviously selects a or b according to cond.
func (sk *ServerKey) IfThenElseUint(cond CBool, a, b tfhe.Cipher) tfhe.Cipher {
	return sk.eval.IfThenElse(cond.c, a, b)
}

// IfThenElseFheString obliviously blends two FheString values of the same
// encryption mode and equal underlying length according to cond. StripPrefix
// uses it to pick between the stripped and the unchanged value, and the
// rsplit_terminator path of the split engine to shift fields down, without
// branching on which case applies.
func (sk *ServerKey) IfThenElseFheString(cond CBool, a, b FheString) FheString {
	if a.isEncrypted != b.isEncrypted {
		panic("fhestring: IfThenElseFheString: mixed clear/encrypted operands")
	}
	if !a.isEncrypted {
		panic("fhestring: IfThenElseFheString: operands must be encrypted")
	}
	if len(a.fheChars) != len(b.fheChars) {
		panic("fhestring: IfThenElseFheString: operands must have equal underlying length")
	}
	out := ZipParallel(a.fheChars, b.fheChars, func(x, y CChar) CChar {
		return sk.IfThenElseChar(cond, x, y)
	})
	return FheString{
		fheChars:    out,
		isEncrypted: true,
		isPadded:    a.isPadded || b.isPadded,
		isReusable:  a.isReusable && b.isReusable,
	}
}

// AsEncrypted normalizes s into encrypted-mode representation (trivially
// encrypting clear bytes if needed), so operations that blend an operand
// against an oblivious condition have a uniform []CChar to work with
// regardless of whether the caller passed a clear or encrypted string.
func (sk *ServerKey) AsEncrypted(s FheString) FheString {
	if s.isEncrypted {
		return s
	}
	return FheString{
		fheChars:    sk.toCChars(s),
		isEncrypted: true,
		isPadded:    false,
		isReusable:  true,
	}
}

// AssertIsReusable panics if s is encrypted and not reusable: the
// reference implementation's contract for eq/ne/find/rfind and several
// other operations that cannot tolerate hidden interior zero bytes.
func AssertIsReusable(s FheString) {
	if s.isEncrypted && !s.isReusable {
		panic("fhestring: operand is not reusable (may contain interior zero padding)")
	}
}
