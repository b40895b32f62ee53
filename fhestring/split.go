package fhestring

import "github.com/Lcressot/fhe-string-bounty/internal/tfhe"

// ---- §4.9 Split engine ----
//
// splitGeneral is the shared core behind every split/rsplit variant. It
// locates non-overlapping pattern occurrences with a SEQUENTIAL
// "overlap-suppression" fold (a match can't start inside a match already
// in progress), assigns every character to a field with a second
// SEQUENTIAL prefix-sum fold (the cum_sum step), and finally gathers each
// field's characters to a packed, reusable FheString with the same
// rank-based compaction MakeReusable/LeftShift use. Both folds are
// genuinely sequential; the per-field gather that follows each one is
// not, and runs through the bounded worker pool like every other
// embarrassingly-parallel step in this package.
//
// Unlike the reference implementation, this engine does not need a
// separate "pattern might be empty" precomputed branch blended in at the
// end: containsAtIndex already treats a padded pattern's hidden length of
// zero as "matches trivially everywhere" (every position is past the
// pattern's real content, so every per-character gate is vacuously true),
// so an encrypted-possibly-empty pattern falls out of the same oblivious
// computation as a known-non-empty one. The match-position vector spans
// n+1 positions (0..n, not just 0..n-1): position n is the boundary
// after the last character, which a zero-width (hidden-empty) pattern
// can legitimately match to produce the trailing empty field Rust's
// str::split gives for an empty pattern; a non-empty pattern can never
// match there because the haystack is zero-extended and ASCII content
// bytes are never zero.

type splitOpts struct {
	maxSplits     int  // -1 = unbounded
	inclusive     bool // attach the separator to the field that precedes it
	terminator    bool // suppress a trailing empty field when s ends with a match
	fromRight     bool // scan/assign fields right-to-left (rsplit family)
}

type splitResult struct {
	fields  []FheString // fixed-size buffer of candidate fields, clear length
	numeric tfhe.Cipher // encrypted count of how many leading (or trailing, if fromRight) fields are real
}

func (sk *ServerKey) splitGeneral(s, pattern FheString, opts splitOpts) splitResult {
	n := s.Len()
	chars := sk.toCChars(s)
	if opts.fromRight {
		chars = reverseCChars(chars)
	}

	patLen := pattern.Len()
	countBlocks := ComputeBlocksForLen(patLen + 1)
	var patHiddenLen tfhe.Cipher
	if pattern.isPadded {
		patHiddenLen = sk.eval.Extend(sk.Len(pattern), countBlocks)
	} else {
		patHiddenLen = tfhe.NewTrivialCipher(countBlocks, uint64(patLen))
	}
	patIsEmpty := newCBool(sk.eval.ScalarEq(patHiddenLen, 0))
	patNonEmpty := sk.Not(patIsEmpty)
	// consumeAfter is loop-invariant: the blend avoids the wraparound a
	// bare ScalarSub(patHiddenLen, 1) would hit whenever patHiddenLen (a
	// hidden quantity we cannot branch on) turns out to be zero at
	// runtime.
	consumeAfter := sk.eval.IfThenElse(patIsEmpty.c, tfhe.NewTrivialCipher(countBlocks, 0), sk.eval.ScalarSub(patHiddenLen, 1))

	haystack := sk.extendWithZero(chars, patLen)
	vec := sk.ApplyParallelBool(n+1, func(i int) CBool {
		return sk.containsAtIndex(haystack, pattern, i)
	})

	accept := make([]CBool, n+1)
	covered := make([]CBool, n)
	remaining := tfhe.NewTrivialCipher(countBlocks, 0)
	acceptedCount := tfhe.NewTrivialCipher(countBlocks, 0)
	maxSplitsCipher := tfhe.NewTrivialCipher(countBlocks, 0)
	capSplits := opts.maxSplits >= 0
	if capSplits {
		maxSplitsCipher = tfhe.NewTrivialCipher(countBlocks, uint64(opts.maxSplits))
	}
	for i := 0; i <= n; i++ {
		active := newCBool(sk.eval.ScalarGt(remaining, 0))
		acc := sk.And(vec[i], sk.Not(active))
		if capSplits {
			underCap := newCBool(sk.eval.Lt(acceptedCount, maxSplitsCipher))
			acc = sk.And(acc, underCap)
		}
		accept[i] = acc
		if i < n {
			// A zero-width (hidden-empty-pattern) match at i is a
			// boundary BEFORE character i, not a span that consumes it,
			// so it must not mark character i covered the way a
			// content-consuming match does.
			covered[i] = sk.Or(sk.And(acc, patNonEmpty), active)
		}

		acceptedCount = sk.eval.IfThenElse(acc.c, sk.eval.ScalarAdd(acceptedCount, 1), acceptedCount)
		continueAfter := sk.eval.ScalarSub(remaining, 1)
		remaining = sk.eval.IfThenElse(acc.c, consumeAfter, sk.eval.IfThenElse(active.c, continueAfter, tfhe.NewTrivialCipher(countBlocks, 0)))
	}

	// field id: for a content-consuming match, character i itself is
	// covered (excluded from every field) so it doesn't matter whether
	// its own id reflects this match's increment; for a zero-width match
	// the boundary sits immediately before character i, which DOES need
	// the post-increment id. Incrementing before recording fieldID[i]
	// satisfies both: it's a no-op for the covered case and the needed
	// behavior for the zero-width case.
	fieldBlocks := ComputeBlocksForLen(n + 2)
	fieldID := make([]tfhe.Cipher, n)
	running := tfhe.NewTrivialCipher(fieldBlocks, 0)
	for i := 0; i <= n; i++ {
		running = sk.eval.IfThenElse(accept[i].c, sk.eval.ScalarAdd(running, 1), running)
		if i < n {
			fieldID[i] = running
		}
	}
	totalAccepted := running

	maxFields := n + 2
	if capSplits && opts.maxSplits+1 < maxFields {
		maxFields = opts.maxSplits + 1
	}

	fields := make([]FheString, maxFields)
	for f := 0; f < maxFields; f++ {
		belongs := make([]CBool, n)
		for i := 0; i < n; i++ {
			inField := newCBool(sk.eval.ScalarEq(fieldID[i], uint64(f)))
			isSeparatorContent := covered[i]
			keep := sk.And(inField, sk.Or(sk.Not(isSeparatorContent), sk.MakeTrivialBool(opts.inclusive)))
			belongs[i] = keep
		}
		packed := sk.compactGather(chars, invert(sk, belongs))
		fields[f] = FheString{fheChars: packed, isEncrypted: true, isPadded: true, isReusable: true}
	}

	numberOfFields := sk.eval.ScalarAdd(totalAccepted, 1)
	if opts.terminator && opts.fromRight {
		// On the reversed characters the field after s's last match is
		// field 0: when it is empty, drop it and move the others down.
		hasMatch := newCBool(sk.eval.ScalarGt(totalAccepted, 0))
		drop := sk.And(hasMatch, sk.IsEmpty(fields[0]))
		for f := 0; f+1 < maxFields; f++ {
			fields[f] = sk.IfThenElseFheString(drop, fields[f+1], fields[f])
		}
		numberOfFields = sk.eval.IfThenElse(drop.c, totalAccepted, numberOfFields)
	} else if opts.terminator {
		lastIsEmpty := sk.MakeTrivialBool(false)
		for f := 0; f < maxFields; f++ {
			isLast := newCBool(sk.eval.ScalarEq(totalAccepted, uint64(f)))
			lastIsEmpty = sk.Or(lastIsEmpty, sk.And(isLast, sk.IsEmpty(fields[f])))
		}
		hasMatch := newCBool(sk.eval.ScalarGt(totalAccepted, 0))
		drop := sk.And(hasMatch, lastIsEmpty)
		numberOfFields = sk.eval.IfThenElse(drop.c, totalAccepted, numberOfFields)
	}

	if opts.fromRight {
		for i, j := 0, len(fields)-1; i < j; i, j = i+1, j-1 {
			fields[i], fields[j] = fields[j], fields[i]
		}
		for i := range fields {
			fields[i] = sk.MakeReusable(fields[i].Reverse())
		}
	}

	return splitResult{fields: fields, numeric: numberOfFields}
}

func invert(sk *ServerKey, bs []CBool) []CBool {
	out := make([]CBool, len(bs))
	for i, b := range bs {
		out[i] = sk.Not(b)
	}
	return out
}

func reverseCChars(chars []CChar) []CChar {
	out := make([]CChar, len(chars))
	for i, c := range chars {
		out[len(out)-1-i] = c
	}
	return out
}

// Split splits s on every occurrence of pattern, discarding separators.
// The encrypted field count reports how many of the leading entries in
// the returned (fixed-size) slice are real; the rest are valid,
// well-formed empty FheStrings that callers should ignore once decrypted
// past that count.
func (sk *ServerKey) Split(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	r := sk.splitGeneral(s, pattern, splitOpts{maxSplits: -1})
	return r.fields, r.numeric
}

// SplitReusable is Split with every field already reusable (true of
// splitGeneral's output by construction, so this is just Split).
func (sk *ServerKey) SplitReusable(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	return sk.Split(s, pattern)
}

// RSplit splits s on every occurrence of pattern scanning from the right,
// discarding separators. Fields are listed left to right, as Split lists
// them, but the real ones are the LAST numeric entries of the returned
// slice and the entries before them are empty. The match-selection
// direction also differs, which matters when pattern can overlap itself.
func (sk *ServerKey) RSplit(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	r := sk.splitGeneral(s, pattern, splitOpts{maxSplits: -1, fromRight: true})
	return r.fields, r.numeric
}

// RSplitReusable is RSplit.
func (sk *ServerKey) RSplitReusable(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	return sk.RSplit(s, pattern)
}

// SplitInclusive splits s on pattern, keeping each separator attached to
// the field that precedes it.
func (sk *ServerKey) SplitInclusive(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	r := sk.splitGeneral(s, pattern, splitOpts{maxSplits: -1, inclusive: true})
	return r.fields, r.numeric
}

// SplitInclusiveReusable is SplitInclusive.
func (sk *ServerKey) SplitInclusiveReusable(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	return sk.SplitInclusive(s, pattern)
}

// SplitTerminator splits s on pattern, treating pattern as a terminator:
// a trailing empty field produced by s ending in an exact match is
// suppressed.
func (sk *ServerKey) SplitTerminator(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	r := sk.splitGeneral(s, pattern, splitOpts{maxSplits: -1, terminator: true})
	return r.fields, r.numeric
}

// SplitTerminatorReusable is SplitTerminator.
func (sk *ServerKey) SplitTerminatorReusable(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	return sk.SplitTerminator(s, pattern)
}

// RSplitTerminator is SplitTerminator scanning from the right.
func (sk *ServerKey) RSplitTerminator(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	r := sk.splitGeneral(s, pattern, splitOpts{maxSplits: -1, terminator: true, fromRight: true})
	return r.fields, r.numeric
}

// RSplitTerminatorReusable is RSplitTerminator.
func (sk *ServerKey) RSplitTerminatorReusable(s, pattern FheString) ([]FheString, tfhe.Cipher) {
	return sk.RSplitTerminator(s, pattern)
}

// SplitAsciiWhitespace splits s on runs of ASCII whitespace, producing no
// empty fields for leading/trailing/repeated whitespace (matching Rust's
// str::split_ascii_whitespace rather than a literal-pattern split).
func (sk *ServerKey) SplitAsciiWhitespace(s FheString) ([]FheString, tfhe.Cipher) {
	trimmed := sk.TrimReusable(s)
	n := trimmed.Len()
	chars := sk.toCChars(trimmed)
	isWs := sk.ApplyParallelBool(n, func(i int) CBool { return sk.isWhitespace(chars[i]) })

	fieldBlocks := ComputeBlocksForLen(n + 1)
	fieldID := make([]tfhe.Cipher, n)
	running := tfhe.NewTrivialCipher(fieldBlocks, 0)
	prevWs := sk.MakeTrivialBool(true) // treat "before start" as whitespace so the first run doesn't bump the count
	for i := 0; i < n; i++ {
		startsRun := sk.And(isWs[i], sk.Not(prevWs))
		running = sk.eval.IfThenElse(startsRun.c, sk.eval.ScalarAdd(running, 1), running)
		fieldID[i] = running
		prevWs = isWs[i]
	}
	numberOfFields := sk.eval.ScalarAdd(running, 1)
	// Nothing but whitespace (or nothing at all): no field.
	numberOfFields = sk.eval.IfThenElse(sk.IsEmpty(trimmed).c, tfhe.NewTrivialCipher(fieldBlocks, 0), numberOfFields)

	maxFields := n + 1
	fields := make([]FheString, maxFields)
	for f := 0; f < maxFields; f++ {
		belongs := make([]CBool, n)
		for i := 0; i < n; i++ {
			inField := newCBool(sk.eval.ScalarEq(fieldID[i], uint64(f)))
			belongs[i] = sk.And(inField, sk.Not(isWs[i]))
		}
		packed := sk.compactGather(chars, invert(sk, belongs))
		fields[f] = FheString{fheChars: packed, isEncrypted: true, isPadded: true, isReusable: true}
	}
	return fields, numberOfFields
}

// SplitAsciiWhitespaceReusable is SplitAsciiWhitespace.
func (sk *ServerKey) SplitAsciiWhitespaceReusable(s FheString) ([]FheString, tfhe.Cipher) {
	return sk.SplitAsciiWhitespace(s)
}

// SplitN splits s on pattern, producing at most n fields (the final field
// absorbs the remainder of s unmatched).
func (sk *ServerKey) SplitN(s, pattern FheString, n int) ([]FheString, tfhe.Cipher) {
	if n == 0 {
		return nil, tfhe.NewTrivialCipher(1, 0)
	}
	if n == 1 {
		return []FheString{s}, tfhe.NewTrivialCipher(ComputeBlocksForLen(1), 1)
	}
	r := sk.splitGeneral(s, pattern, splitOpts{maxSplits: n - 1})
	return r.fields, r.numeric
}

// SplitNReusable is SplitN.
func (sk *ServerKey) SplitNReusable(s, pattern FheString, n int) ([]FheString, tfhe.Cipher) {
	return sk.SplitN(s, pattern, n)
}

// RSplitN is SplitN scanning from the right.
func (sk *ServerKey) RSplitN(s, pattern FheString, n int) ([]FheString, tfhe.Cipher) {
	if n == 0 {
		return nil, tfhe.NewTrivialCipher(1, 0)
	}
	if n == 1 {
		return []FheString{s}, tfhe.NewTrivialCipher(ComputeBlocksForLen(1), 1)
	}
	r := sk.splitGeneral(s, pattern, splitOpts{maxSplits: n - 1, fromRight: true})
	return r.fields, r.numeric
}

// RSplitNReusable is RSplitN.
func (sk *ServerKey) RSplitNReusable(s, pattern FheString, n int) ([]FheString, tfhe.Cipher) {
	return sk.RSplitN(s, pattern, n)
}

// SplitOnce splits s at the first occurrence of pattern into exactly two
// fields, also reporting whether a match was found at all.
func (sk *ServerKey) SplitOnce(s, pattern FheString) (FheString, FheString, CBool) {
	fields, numeric := sk.SplitN(s, pattern, 2)
	found := newCBool(sk.eval.ScalarGe(numeric, 2))
	if len(fields) < 2 {
		return fields[0], FheString{fheChars: []CChar{}, isEncrypted: true, isPadded: false, isReusable: true}, found
	}
	return fields[0], fields[1], found
}

// SplitOnceReusable is SplitOnce.
func (sk *ServerKey) SplitOnceReusable(s, pattern FheString) (FheString, FheString, CBool) {
	return sk.SplitOnce(s, pattern)
}

// RSplitOnce splits s at the LAST occurrence of pattern into exactly two
// fields (before, after), also reporting whether a match was found.
func (sk *ServerKey) RSplitOnce(s, pattern FheString) (FheString, FheString, CBool) {
	fields, numeric := sk.RSplitN(s, pattern, 2)
	found := newCBool(sk.eval.ScalarGe(numeric, 2))
	if len(fields) < 2 {
		return FheString{fheChars: []CChar{}, isEncrypted: true, isPadded: false, isReusable: true}, fields[0], found
	}
	return fields[0], fields[1], found
}

// RSplitOnceReusable is RSplitOnce.
func (sk *ServerKey) RSplitOnceReusable(s, pattern FheString) (FheString, FheString, CBool) {
	return sk.RSplitOnce(s, pattern)
}
