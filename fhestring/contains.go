package fhestring

import "github.com/Lcressot/fhe-string-bounty/internal/tfhe"

// ---- §4.3 Oblivious pattern match kernel ----

func (sk *ServerKey) charEq(a, b CChar) CBool {
	return newCBool(sk.eval.Eq(a.c, b.c))
}

// toCChars returns s's characters as a uniform []CChar, trivially
// encrypting clear bytes so index-based kernels below don't need two code
// paths.
func (sk *ServerKey) toCChars(s FheString) []CChar {
	if s.isEncrypted {
		out := make([]CChar, len(s.fheChars))
		copy(out, s.fheChars)
		return out
	}
	out := make([]CChar, len(s.chars))
	for i, c := range s.chars {
		out[i] = newCChar(tfhe.NewTrivialCipher(sk.params.CharBlocks(), uint64(c)))
	}
	return out
}

// extendWithZero appends extra trivial zero CChars, giving the pattern
// kernel below headroom to index past a string's real length without an
// out-of-range access (the range of valid match positions differs
// between padded and unpadded patterns; padding the haystack once lets
// both ranges share one implementation).
func (sk *ServerKey) extendWithZero(chars []CChar, extra int) []CChar {
	if extra <= 0 {
		return chars
	}
	zero := tfhe.NewTrivialCipher(sk.params.CharBlocks(), 0)
	out := make([]CChar, len(chars)+extra)
	copy(out, chars)
	for i := len(chars); i < len(out); i++ {
		out[i] = newCChar(zero)
	}
	return out
}

// containsAtIndex checks whether pattern matches haystack starting at the
// (clear) position idx. If pattern is padded, positions at or beyond its
// hidden length are treated as automatically matching (gated by an
// encrypted "am I still inside pattern's real content" flag), so a
// pattern's own trailing padding never constrains what follows it in
// haystack.
func (sk *ServerKey) containsAtIndex(haystack []CChar, pattern FheString, idx int) CBool {
	patLen := pattern.Len()
	patChars := sk.toCChars(pattern)
	var patHiddenLen tfhe.Cipher
	if pattern.isPadded {
		patHiddenLen = sk.Len(pattern)
	}
	matches := make([]CBool, patLen)
	for k := 0; k < patLen; k++ {
		eqK := sk.charEq(haystack[idx+k], patChars[k])
		if pattern.isPadded {
			withinReal := newCBool(sk.eval.ScalarGt(patHiddenLen, uint64(k)))
			eqK = sk.Or(sk.Not(withinReal), eqK)
		}
		matches[k] = eqK
	}
	return sk.All(matches)
}

// containsAtIndexVec returns, for every position a match could possibly
// start at, an encrypted flag: pattern matches haystack starting there.
func (sk *ServerKey) containsAtIndexVec(s, pattern FheString) []CBool {
	patLen := pattern.Len()
	n := s.Len()
	if patLen == 0 {
		out := make([]CBool, n)
		for i := range out {
			out[i] = sk.MakeTrivialBool(true)
		}
		return out
	}
	count := n
	if !pattern.isPadded {
		count = n - patLen + 1
	}
	if count < 0 {
		count = 0
	}
	haystack := sk.extendWithZero(sk.toCChars(s), patLen)
	return sk.ApplyParallelBool(count, func(i int) CBool {
		return sk.containsAtIndex(haystack, pattern, i)
	})
}

// ---- §4.4 Contains, starts_with, ends_with ----

// Contains reports whether pattern occurs anywhere in s.
func (sk *ServerKey) Contains(s, pattern FheString) CBool {
	if !s.isEncrypted && !pattern.isEncrypted {
		return sk.MakeTrivialBool(clearContains(s.chars, pattern.chars))
	}
	return sk.Any(sk.containsAtIndexVec(s, pattern))
}

func clearContains(haystack, needle []byte) bool {
	if len(needle) == 0 {
		return true
	}
	if len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for k := range needle {
			if haystack[i+k] != needle[k] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// StartsWith reports whether s begins with pattern.
func (sk *ServerKey) StartsWith(s, pattern FheString) CBool {
	if !s.isEncrypted && !pattern.isEncrypted {
		if len(pattern.chars) > len(s.chars) {
			return sk.MakeTrivialBool(false)
		}
		return sk.MakeTrivialBool(string(s.chars[:len(pattern.chars)]) == string(pattern.chars))
	}
	if pattern.Len() > s.Len() && !pattern.isPadded {
		return sk.MakeTrivialBool(false)
	}
	haystack := sk.extendWithZero(sk.toCChars(s), pattern.Len())
	return sk.containsAtIndex(haystack, pattern, 0)
}

// EndsWith reports whether s ends with pattern. Unlike StartsWith, the
// candidate end position depends on s's HIDDEN length when s is padded,
// so (per the reference implementation's 3-way case split on which of
// s/pattern are padded) this is computed as a masked reduction over every
// candidate start position rather than a single clear-index check.
func (sk *ServerKey) EndsWith(s, pattern FheString) CBool {
	if !s.isEncrypted && !pattern.isEncrypted {
		if len(pattern.chars) > len(s.chars) {
			return sk.MakeTrivialBool(false)
		}
		return sk.MakeTrivialBool(string(s.chars[len(s.chars)-len(pattern.chars):]) == string(pattern.chars))
	}
	vec := sk.containsAtIndexVec(s, pattern)
	hiddenS := sk.Len(s)
	patHidden := sk.Len(pattern)
	masked := make([]CBool, len(vec))
	for i, m := range vec {
		endPos := sk.eval.ScalarAdd(patHidden, uint64(i))
		a, b := sk.ExtendEqually(endPos, hiddenS)
		eqEnd := newCBool(sk.eval.Eq(a, b))
		masked[i] = sk.And(m, eqEnd)
	}
	return sk.Any(masked)
}

// ---- §4.5 Find / rfind ----

// Find returns the first position pattern occurs at in s (0 if not
// found, alongside a found flag), and requires s to be reusable (find
// cannot distinguish a real zero-length prefix from hidden interior
// padding otherwise).
func (sk *ServerKey) Find(s, pattern FheString) (tfhe.Cipher, CBool) {
	AssertIsReusable(s)
	vec := sk.containsAtIndexVec(s, pattern)
	idxBlocks := ComputeBlocksForLen(s.Len())
	foundIdx := tfhe.NewTrivialCipher(idxBlocks, 0)
	noneYet := sk.MakeTrivialBool(true)
	for i, m := range vec {
		isFirst := sk.And(noneYet, m)
		foundIdx = sk.IfThenElseUint(isFirst, tfhe.NewTrivialCipher(idxBlocks, uint64(i)), foundIdx)
		noneYet = sk.And(noneYet, sk.Not(m))
	}
	return foundIdx, sk.Not(noneYet)
}

// Rfind returns the last position pattern occurs at in s. An empty
// pattern is special-cased to report s's hidden length (matching the
// reference implementation's rfind-on-empty-pattern correction), since
// the general scan below would otherwise report the highest index it
// scans (every position "matches" an empty pattern, and the reverse scan
// stops at the first one in reverse order), not the rightmost valid
// insertion point, which is s's hidden length. Whether pattern is empty is itself hidden whenever pattern is
// padded (its visible length can be nonzero while its hidden length is
// zero), so this can't be decided with a Go-level check on the visible
// length: IsEmpty computes the oblivious flag and the correction is
// blended in with IfThenElse rather than branched on.
func (sk *ServerKey) Rfind(s, pattern FheString) (tfhe.Cipher, CBool) {
	AssertIsReusable(s)
	vec := sk.containsAtIndexVec(s, pattern)
	idxBlocks := ComputeBlocksForLen(s.Len())
	foundIdx := tfhe.NewTrivialCipher(idxBlocks, 0)
	noneYet := sk.MakeTrivialBool(true)
	for i := len(vec) - 1; i >= 0; i-- {
		m := vec[i]
		isFirst := sk.And(noneYet, m)
		foundIdx = sk.IfThenElseUint(isFirst, tfhe.NewTrivialCipher(idxBlocks, uint64(i)), foundIdx)
		noneYet = sk.And(noneYet, sk.Not(m))
	}
	generalFound := sk.Not(noneYet)

	isEmptyPattern := sk.IsEmpty(pattern)
	hiddenLenS := sk.eval.Extend(sk.Len(s), idxBlocks)
	finalIdx := sk.eval.IfThenElse(isEmptyPattern.c, hiddenLenS, foundIdx)
	finalFound := sk.Or(isEmptyPattern, generalFound)
	return finalIdx, finalFound
}
