package fhestring

import (
	"bytes"

	"github.com/Lcressot/fhe-string-bounty/internal/tfhe"
)

// ---- §4.10 Replace / replacen ----
//
// replaceCore locates non-overlapping occurrences of from with the same
// sequential overlap-suppression fold the split engine uses, then maps
// every surviving input character and every inserted `to` character to
// its final output position with a closed-form offset (each match before
// position i shifts everything after it by len(to)-len(from)), and
// gathers the result with the same style of per-target-position select
// the rest of this package's compaction primitives use. This trades the
// reference implementation's four length/padding-specific scenarios for
// one general (if less constant-factor-optimal) oblivious computation.
func (sk *ServerKey) replaceCore(s, from, to FheString, maxReplacements int) FheString {
	if !s.isEncrypted && !from.isEncrypted && !to.isEncrypted {
		return sk.replaceClear(s, from, to, maxReplacements)
	}
	n := s.Len()
	chars := sk.toCChars(s)
	fromLen := from.Len()
	toLen := to.Len()
	toChars := sk.toCChars(to)

	countBlocks := ComputeBlocksForLen(fromLen + 1)
	var fromHiddenLen tfhe.Cipher
	if from.isPadded {
		fromHiddenLen = sk.eval.Extend(sk.Len(from), countBlocks)
	} else {
		fromHiddenLen = tfhe.NewTrivialCipher(countBlocks, uint64(fromLen))
	}
	fromIsEmpty := newCBool(sk.eval.ScalarEq(fromHiddenLen, 0))
	fromNonEmpty := sk.Not(fromIsEmpty)
	// consumeAfter is loop-invariant, blended the same way split.go's is:
	// subtracting 1 from fromHiddenLen unconditionally would wrap around
	// whenever fromHiddenLen turns out to be zero at runtime.
	consumeAfter := sk.eval.IfThenElse(fromIsEmpty.c, tfhe.NewTrivialCipher(countBlocks, 0), sk.eval.ScalarSub(fromHiddenLen, 1))

	haystack := sk.extendWithZero(chars, fromLen)
	vec := sk.ApplyParallelBool(n+1, func(i int) CBool {
		return sk.containsAtIndex(haystack, from, i)
	})

	capReplacements := maxReplacements >= 0
	maxRepCipher := tfhe.NewTrivialCipher(countBlocks, 0)
	if capReplacements {
		maxRepCipher = tfhe.NewTrivialCipher(countBlocks, uint64(maxReplacements))
	}

	accept := make([]CBool, n)
	covered := make([]CBool, n)
	fieldBlocks := ComputeBlocksForLen(n + 2)
	// matchesBefore is the pre-increment accepted-match count at i: used to
	// place INSERTIONS of to's characters, which always go before any
	// zero-width match consumed at the same position. keepCount is the
	// count to use when placing a KEPT (non-covered) character at i: for a
	// zero-width accepted match at i, the character itself sits after the
	// boundary, so it needs the post-increment count; for every other
	// position keepCount == matchesBefore (a no-op whenever from is
	// non-empty, since fromIsEmpty is false and zeroWidthAccept can never
	// fire).
	matchesBefore := make([]tfhe.Cipher, n)
	keepCount := make([]tfhe.Cipher, n)
	remaining := tfhe.NewTrivialCipher(countBlocks, 0)
	repliedCount := tfhe.NewTrivialCipher(countBlocks, 0)
	running := tfhe.NewTrivialCipher(fieldBlocks, 0)
	var tailAccept CBool
	var tailMatchesBefore tfhe.Cipher
	for i := 0; i <= n; i++ {
		preRunning := running
		active := newCBool(sk.eval.ScalarGt(remaining, 0))
		acc := sk.And(vec[i], sk.Not(active))
		if capReplacements {
			underCap := newCBool(sk.eval.Lt(repliedCount, maxRepCipher))
			acc = sk.And(acc, underCap)
		}

		repliedCount = sk.eval.IfThenElse(acc.c, sk.eval.ScalarAdd(repliedCount, 1), repliedCount)
		running = sk.eval.IfThenElse(acc.c, sk.eval.ScalarAdd(running, 1), running)

		if i < n {
			accept[i] = acc
			covered[i] = sk.Or(sk.And(acc, fromNonEmpty), active)
			matchesBefore[i] = preRunning
			zeroWidthAccept := sk.And(acc, fromIsEmpty)
			keepCount[i] = sk.eval.IfThenElse(zeroWidthAccept.c, sk.eval.ScalarAdd(preRunning, 1), preRunning)
		} else {
			tailAccept = acc
			tailMatchesBefore = preRunning
		}

		continueAfter := sk.eval.ScalarSub(remaining, 1)
		remaining = sk.eval.IfThenElse(acc.c, consumeAfter, sk.eval.IfThenElse(active.c, continueAfter, tfhe.NewTrivialCipher(countBlocks, 0)))
	}

	outputMaxLen := n + (n+1)*toLen
	posBlocks := maxInt(ComputeBlocksForLen(outputMaxLen+1), maxInt(fieldBlocks, countBlocks))
	charBlocks := sk.params.CharBlocks()
	zero := tfhe.NewTrivialCipher(charBlocks, 0)

	// Each accepted match shifts later positions by len(to) minus from's
	// HIDDEN length (its visible length would count from's padding).
	fromHiddenPos := sk.eval.Extend(fromHiddenLen, posBlocks)
	combine := func(i int, count tfhe.Cipher) tfhe.Cipher {
		countExt := sk.eval.Extend(count, posBlocks)
		grown := sk.eval.ScalarAdd(sk.eval.ScalarMul(countExt, uint64(toLen)), uint64(i))
		return sk.eval.Sub(grown, sk.eval.Mul(countExt, fromHiddenPos))
	}

	outChars := make([]CChar, outputMaxLen)
	for t := 0; t < outputMaxLen; t++ {
		acc := zero
		for i := 0; i < n; i++ {
			notCovered := sk.Not(covered[i])
			outPos := combine(i, keepCount[i])
			eqT := newCBool(sk.eval.ScalarEq(outPos, uint64(t)))
			sel := sk.And(notCovered, eqT)
			acc = sk.eval.IfThenElse(sel.c, chars[i].c, acc)
		}
		for i := 0; i < n; i++ {
			insertStart := combine(i, matchesBefore[i])
			for k := 0; k < toLen; k++ {
				pos := sk.eval.ScalarAdd(insertStart, uint64(k))
				eqT := newCBool(sk.eval.ScalarEq(pos, uint64(t)))
				sel := sk.And(accept[i], eqT)
				acc = sk.eval.IfThenElse(sel.c, toChars[k].c, acc)
			}
		}
		// Virtual tail insertion: a hidden-empty from can match one past
		// the last character (the same boundary position split.go's
		// engine matches at), inserting one more copy of to there. A
		// non-empty from can never accept at this position (vec[n] is
		// false: the haystack's zero padding never equals a real pattern
		// byte), so this is a no-op whenever from is non-empty.
		tailStart := combine(n, tailMatchesBefore)
		for k := 0; k < toLen; k++ {
			pos := sk.eval.ScalarAdd(tailStart, uint64(k))
			eqT := newCBool(sk.eval.ScalarEq(pos, uint64(t)))
			sel := sk.And(tailAccept, eqT)
			acc = sk.eval.IfThenElse(sel.c, toChars[k].c, acc)
		}
		outChars[t] = newCChar(acc)
	}

	out := FheString{fheChars: outChars, isEncrypted: true, isPadded: true, isReusable: !to.isPadded}
	if to.isPadded {
		// Every inserted copy of to carries to's padding bytes: pack them out.
		return sk.MakeReusable(out)
	}
	return out
}

func (sk *ServerKey) replaceClear(s, from, to FheString, maxReplacements int) FheString {
	n := maxReplacements
	if n < 0 {
		n = -1
	}
	return FromBytes(bytes.Replace(s.chars, from.chars, to.chars, n))
}

// Replace replaces every non-overlapping occurrence of from in s with to.
func (sk *ServerKey) Replace(s, from, to FheString) FheString {
	return sk.replaceCore(s, from, to, -1)
}

// ReplaceReusable is Replace: the result is already reusable by
// construction.
func (sk *ServerKey) ReplaceReusable(s, from, to FheString) FheString {
	return sk.Replace(s, from, to)
}

// Replacen replaces at most n non-overlapping occurrences of from in s
// with to, left to right.
func (sk *ServerKey) Replacen(s, from, to FheString, n int) FheString {
	if n == 0 {
		return s
	}
	return sk.replaceCore(s, from, to, n)
}

// ReplacenReusable is Replacen.
func (sk *ServerKey) ReplacenReusable(s, from, to FheString, n int) FheString {
	return sk.Replacen(s, from, to, n)
}
