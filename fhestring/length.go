package fhestring

import "github.com/Lcressot/fhe-string-bounty/internal/tfhe"

// ---- §4.2 Hidden-length and emptiness ----

// Len returns the hidden logical length of s: the count of non-zero
// characters, counted without branching on any individual character's
// value. For a clear (unpadded) value this always equals s.Len(); for a
// padded encrypted value this obliviously recovers the logical length by
// counting non-zero positions, which is only meaningful when s carries at
// most its documented single trailing zero run (i.e. is effectively
// reusable or freshly produced by an operation that maintains that
// shape).
func (sk *ServerKey) Len(s FheString) tfhe.Cipher {
	if !s.isEncrypted {
		return tfhe.NewTrivialCipher(ComputeBlocksForLen(len(s.chars)), uint64(len(s.chars)))
	}
	n := len(s.fheChars)
	if n == 0 {
		return tfhe.NewTrivialCipher(ComputeBlocksForLen(0), 0)
	}
	blocks := ComputeBlocksForLen(n)
	zero := tfhe.NewTrivialCipher(s.fheChars[0].c.Blocks(), 0)
	flags := sk.ApplyParallelBool(n, func(i int) CBool {
		return newCBool(sk.eval.Ne(s.fheChars[i].c, zero))
	})
	acc := tfhe.NewTrivialCipher(blocks, 0)
	for _, f := range flags {
		one := tfhe.NewTrivialCipher(blocks, 0)
		t := sk.eval.IfThenElse(f.c, tfhe.NewTrivialCipher(blocks, 1), one)
		acc = sk.eval.Add(acc, t)
	}
	return acc
}

// IsEmptyIndices returns, for each index i in [0, n), an encrypted flag
// meaning "the hidden length is exactly i", for callers that need to
// obliviously select a behavior based on the hidden length without ever
// decrypting it. No operation in this package calls it.
func (sk *ServerKey) IsEmptyIndices(s FheString, n int) []CBool {
	hiddenLen := sk.Len(s)
	out := make([]CBool, n)
	for i := 0; i < n; i++ {
		out[i] = newCBool(sk.eval.ScalarEq(hiddenLen, uint64(i)))
	}
	return out
}

// IsEmpty returns an encrypted flag: s's hidden length is zero.
func (sk *ServerKey) IsEmpty(s FheString) CBool {
	if !s.isEncrypted {
		return sk.MakeTrivialBool(len(s.chars) == 0)
	}
	if len(s.fheChars) == 0 {
		return sk.MakeTrivialBool(true)
	}
	return newCBool(sk.eval.ScalarEq(sk.Len(s), 0))
}
