package fhestring

import (
	"github.com/Lcressot/fhe-string-bounty/internal/parallel"
	"github.com/Lcressot/fhe-string-bounty/internal/tfhe"
)

// ---- §4.8 Trim / strip ----

func (sk *ServerKey) isWhitespace(c CChar) CBool {
	sp := newCChar(tfhe.NewTrivialCipher(c.c.Blocks(), ' '))
	nl := newCChar(tfhe.NewTrivialCipher(c.c.Blocks(), '\n'))
	tab := newCChar(tfhe.NewTrivialCipher(c.c.Blocks(), '\t'))
	return sk.Or(sk.Or(sk.charEq(c, sp), sk.charEq(c, nl)), sk.charEq(c, tab))
}

// keepStartingWhitespacesOnly returns, for each position, whether it is
// part of the leading run of whitespace characters. This is a SEQUENTIAL
// prefix fold: position i is in the run only if position i-1 was too.
func (sk *ServerKey) keepStartingWhitespacesOnly(chars []CChar) []CBool {
	out := make([]CBool, len(chars))
	run := sk.MakeTrivialBool(true)
	for i, c := range chars {
		run = sk.And(run, sk.isWhitespace(c))
		out[i] = run
	}
	return out
}

// keepEndingWhitespacesOnly returns, for each position, whether it is
// part of the trailing run of whitespace characters, scanning from the
// right (also sequential). Zero padding bytes count as part of the run,
// so whitespace just before a padded tail is still reached.
func (sk *ServerKey) keepEndingWhitespacesOnly(chars []CChar) []CBool {
	out := make([]CBool, len(chars))
	run := sk.MakeTrivialBool(true)
	zero := newCChar(tfhe.NewTrivialCipher(sk.params.CharBlocks(), 0))
	for i := len(chars) - 1; i >= 0; i-- {
		run = sk.And(run, sk.Or(sk.isWhitespace(chars[i]), sk.charEq(chars[i], zero)))
		out[i] = run
	}
	return out
}

// TrimStart zeroes s's leading whitespace run. The result is padded and
// no longer reusable: the zeroed run now sits at the FRONT, which the
// reusability invariant (at most one trailing zero run) forbids.
func (sk *ServerKey) TrimStart(s FheString) FheString {
	if !s.isEncrypted {
		i := 0
		for i < len(s.chars) && isWhitespaceByte(s.chars[i]) {
			i++
		}
		return FromBytes(s.chars[i:])
	}
	flags := sk.keepStartingWhitespacesOnly(s.fheChars)
	out := sk.SetZeroWhere(s.fheChars, flags)
	return FheString{fheChars: out, isEncrypted: true, isPadded: true, isReusable: false}
}

// TrimStartReusable is TrimStart followed by compaction, so the result
// stays reusable (the leading run is removed, not merely zeroed).
func (sk *ServerKey) TrimStartReusable(s FheString) FheString {
	if !s.isEncrypted {
		return sk.TrimStart(s)
	}
	flags := sk.keepStartingWhitespacesOnly(s.fheChars)
	return sk.LeftShift(s, flags)
}

// TrimEnd zeroes s's trailing whitespace run. Unlike TrimStart, the
// result STAYS reusable: a trailing zero run is exactly what the
// reusability invariant already allows.
func (sk *ServerKey) TrimEnd(s FheString) FheString {
	if !s.isEncrypted {
		i := len(s.chars)
		for i > 0 && isWhitespaceByte(s.chars[i-1]) {
			i--
		}
		return FromBytes(s.chars[:i])
	}
	flags := sk.keepEndingWhitespacesOnly(s.fheChars)
	out := sk.SetZeroWhere(s.fheChars, flags)
	padded := len(out) > 0
	return FheString{fheChars: out, isEncrypted: true, isPadded: padded, isReusable: true}
}

// TrimEndReusable is TrimEnd: the result is already reusable.
func (sk *ServerKey) TrimEndReusable(s FheString) FheString { return sk.TrimEnd(s) }

// Trim removes both leading and trailing whitespace.
func (sk *ServerKey) Trim(s FheString) FheString {
	return sk.TrimStart(sk.TrimEnd(s))
}

// TrimReusable removes both leading and trailing whitespace, keeping the
// result reusable.
func (sk *ServerKey) TrimReusable(s FheString) FheString {
	return sk.TrimStartReusable(sk.TrimEnd(s))
}

func isWhitespaceByte(b byte) bool { return b == ' ' || b == '\n' || b == '\t' }

// dropFirstN returns s with its first n characters removed (n may be an
// encrypted count), packing the remainder to the front. This is the
// shared primitive behind StripPrefix: whether the amount to drop is
// known in clear (an unpadded prefix's length) or only known under
// encryption (a padded prefix's hidden length), the gather below handles
// both uniformly by comparing against an Extended copy of n.
func (sk *ServerKey) dropFirstN(s FheString, n tfhe.Cipher) FheString {
	chars := sk.toCChars(s)
	l := len(chars)
	blocks := ComputeBlocksForLen(l)
	nExt := sk.eval.Extend(n, blocks)
	zero := tfhe.NewTrivialCipher(sk.params.CharBlocks(), 0)
	out := make([]CChar, l)
	parallel.MapNoError(l, func(t int) {
		acc := zero
		for i := 0; i < l; i++ {
			sum := sk.eval.ScalarAdd(nExt, uint64(t))
			eqI := newCBool(sk.eval.ScalarEq(sum, uint64(i)))
			acc = sk.eval.IfThenElse(eqI.c, chars[i].c, acc)
		}
		out[t] = newCChar(acc)
	})
	return FheString{fheChars: out, isEncrypted: true, isPadded: true, isReusable: true}
}

// dropLastN is dropFirstN from the other end.
func (sk *ServerKey) dropLastN(s FheString, n tfhe.Cipher) FheString {
	rev := sk.dropFirstN(s.Reverse(), n)
	return rev.Reverse()
}

// StripPrefix removes prefix from the front of s if present, reporting
// whether it was found. If not found, s is returned unchanged.
func (sk *ServerKey) StripPrefix(s, prefix FheString) (FheString, CBool) {
	found := sk.StartsWith(s, prefix)
	hiddenPrefixLen := sk.Len(prefix)
	shifted := sk.dropFirstN(s, hiddenPrefixLen)
	base := sk.AsEncrypted(s)
	basePadded := sk.padToLen(base, shifted.Len())
	return sk.IfThenElseFheString(found, shifted, basePadded), found
}

// StripPrefixReusable is StripPrefix, compacted so the result is
// reusable regardless of which branch (found/not found) it took.
func (sk *ServerKey) StripPrefixReusable(s, prefix FheString) (FheString, CBool) {
	out, found := sk.StripPrefix(s, prefix)
	if out.isReusable {
		return out, found
	}
	return sk.MakeReusable(out), found
}

// StripSuffix removes suffix from the end of s if present, reporting
// whether it was found. The result is always marked padded and
// reusable, matching the reference implementation (a suffix strip's
// vacated tail is always a clean trailing zero run).
func (sk *ServerKey) StripSuffix(s, suffix FheString) (FheString, CBool) {
	found := sk.EndsWith(s, suffix)
	base := sk.AsEncrypted(s)
	n := base.Len()
	blocks := ComputeBlocksForLen(n + 1)
	hiddenLenS := sk.eval.Extend(sk.Len(base), blocks)
	hiddenSuffixLen := sk.eval.Extend(sk.Len(suffix), blocks)
	threshold := sk.eval.Sub(hiddenLenS, hiddenSuffixLen)
	zeroFlag := sk.ApplyParallelBool(n, func(i int) CBool {
		pos := tfhe.NewTrivialCipher(blocks, uint64(i))
		return sk.And(found, newCBool(sk.eval.Ge(pos, threshold)))
	})
	out := FheString{fheChars: sk.SetZeroWhere(base.fheChars, zeroFlag), isEncrypted: true, isPadded: true, isReusable: true}
	return out, found
}

// StripSuffixReusable removes suffix from the end of s if present: the
// suffix run is flagged by position (at or past s's hidden length minus
// the suffix's hidden length) and removed with LeftShift, which packs
// the remaining characters to the front.
func (sk *ServerKey) StripSuffixReusable(s, suffix FheString) (FheString, CBool) {
	found := sk.EndsWith(s, suffix)
	base := sk.AsEncrypted(s)
	n := base.Len()
	blocks := ComputeBlocksForLen(n + 1)
	hiddenLenS := sk.eval.Extend(sk.Len(base), blocks)
	hiddenSuffixLen := sk.eval.Extend(sk.Len(suffix), blocks)
	threshold := sk.eval.Sub(hiddenLenS, hiddenSuffixLen)
	removeFlag := sk.ApplyParallelBool(n, func(i int) CBool {
		pos := tfhe.NewTrivialCipher(blocks, uint64(i))
		inSuffix := newCBool(sk.eval.Ge(pos, threshold))
		return sk.And(found, inSuffix)
	})
	out := sk.LeftShift(base, removeFlag)
	out.isPadded = true
	out.isReusable = true
	return out, found
}

// padToLen pads (or leaves unchanged) s to exactly n underlying
// characters, used to align operands before a same-length oblivious
// blend.
func (sk *ServerKey) padToLen(s FheString, n int) FheString {
	if s.Len() >= n {
		return s
	}
	return s.Pad(n - s.Len())
}
