package fhestring

import (
	"github.com/Lcressot/fhe-string-bounty/internal/parallel"
	"github.com/Lcressot/fhe-string-bounty/internal/tfhe"
)

// ---- §4.11 Reusability repair ----

// cumSum returns the sequential inclusive prefix sum of counts. This step
// cannot be parallelized across index: each partial sum depends on the
// one before it. compactGather uses it for its per-position ranks (and so
// MakeReusable and LeftShift do); the split engine's field-id fold and the
// trim kernels' monotone-run scans are separate inline loops.
func (sk *ServerKey) cumSum(counts []tfhe.Cipher, blocks int) []tfhe.Cipher {
	out := make([]tfhe.Cipher, len(counts))
	acc := tfhe.NewTrivialCipher(blocks, 0)
	for i, c := range counts {
		acc = sk.eval.Add(acc, sk.eval.Extend(c, blocks))
		out[i] = acc
	}
	return out
}

// compactGather removes every position for which removeFlag[i] is true,
// sliding the surviving characters left so they occupy a contiguous
// prefix (trailing positions become zero padding), without ever
// branching on which positions were removed. It is the shared primitive
// behind MakeReusable, LeftShift and the reusable variants of the trim
// and strip operations, all of which reduce to "keep characters matching
// some per-position predicate, in order, packed to the front".
//
// Per-index rank computation is the one genuinely sequential step (it's a
// prefix sum); the O(n^2) per-target-position gather that follows has no
// cross-index data dependency and runs through the bounded worker pool.
func (sk *ServerKey) compactGather(chars []CChar, removeFlag []CBool) []CChar {
	n := len(chars)
	blocks := ComputeBlocksForLen(n)
	keepCounts := make([]tfhe.Cipher, n)
	for i, f := range removeFlag {
		keepCounts[i] = sk.eval.IfThenElse(f.c, tfhe.NewTrivialCipher(1, 0), tfhe.NewTrivialCipher(1, 1))
	}
	rank := sk.cumSum(keepCounts, blocks)

	zero := tfhe.NewTrivialCipher(sk.params.CharBlocks(), 0)
	out := make([]CChar, n)
	parallel.MapNoError(n, func(t int) {
		acc := zero
		target := uint64(t + 1)
		for i := 0; i < n; i++ {
			isKept := sk.Not(removeFlag[i])
			rankHits := newCBool(sk.eval.ScalarEq(rank[i], target))
			sel := sk.And(isKept, rankHits)
			acc = sk.eval.IfThenElse(sel.c, chars[i].c, acc)
		}
		out[t] = newCChar(acc)
	})
	return out
}

// MakeReusable repairs a non-reusable encrypted FheString (one that may
// carry interior zero bytes, e.g. the output of TrimStart or SetZeroWhere)
// into an equivalent reusable value: every non-zero character is packed
// to the front, in order, with the vacated tail becoming padding. Panics
// if s is already reusable, matching the reference implementation's
// contract (MakeReusable is a repair step, not an idempotent no-op).
func (sk *ServerKey) MakeReusable(s FheString) FheString {
	if !s.isEncrypted {
		return s
	}
	if s.isReusable {
		panic("fhestring: MakeReusable: value is already reusable")
	}
	zero := tfhe.NewTrivialCipher(sk.params.CharBlocks(), 0)
	removeFlag := sk.ApplyParallelBool(len(s.fheChars), func(i int) CBool {
		return newCBool(sk.eval.Eq(s.fheChars[i].c, zero))
	})
	out := sk.compactGather(s.fheChars, removeFlag)
	return FheString{fheChars: out, isEncrypted: true, isPadded: true, isReusable: true}
}

// LeftShift removes the characters at the given flagged positions and
// packs the remainder to the front (padding the vacated tail), the
// one-hot "gather by target rank" operation the reference implementation
// calls left_shift / left_shift_field.
func (sk *ServerKey) LeftShift(s FheString, removeFlag []CBool) FheString {
	chars := sk.toCChars(s)
	out := sk.compactGather(chars, removeFlag)
	return FheString{fheChars: out, isEncrypted: true, isPadded: true, isReusable: true}
}

// LeftShiftReverse is LeftShift applied to the reverse of s, with the
// result reversed back: the surviving characters end up packed against
// the END of the value behind a leading zero run, so the result is
// marked padded and not reusable.
func (sk *ServerKey) LeftShiftReverse(s FheString, removeFlag []CBool) FheString {
	rev := s.Reverse()
	revFlags := make([]CBool, len(removeFlag))
	for i, f := range removeFlag {
		revFlags[len(revFlags)-1-i] = f
	}
	shifted := sk.LeftShift(rev, revFlags)
	return shifted.Reverse()
}
