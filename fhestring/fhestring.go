// Package fhestring implements an oblivious, FHE-backed ASCII string
// library: every ServerKey operation below computes without branching,
// looping, or indexing on a decrypted value, so that the only thing an
// observer of the ciphertexts produced along the way could learn is the
// (cleartext, publicly-known) maximum length budget of the operands.
package fhestring

import (
	"fmt"

	"github.com/Lcressot/fhe-string-bounty/internal/tfhe"
)

// FheString is the unified representation for both plaintext and
// encrypted ASCII strings used throughout this module.
//
// Invariants (I1-I6):
//
//	I1: exactly one of Chars/FheChars is non-nil, matching IsEncrypted.
//	I2: Len() == max(len(Chars), len(FheChars)).
//	I3: if IsPadded is false, the value carries no trailing zero padding.
//	I4: if IsReusable is true, the value has no interior zero byte, except
//	    for at most one run of zero bytes at the very end.
//	I5: a clear (IsEncrypted == false) value is always reusable and never
//	    considered padded in the sense IsPadded tracks for ciphertexts.
//	I6: operations that can introduce padding must set IsPadded; only
//	    MakeReusable (or an operation documented to preserve reusability)
//	    may clear IsReusable once it has been lost.
type FheString struct {
	chars      []byte
	fheChars   []CChar
	isEncrypted bool
	isPadded    bool
	isReusable  bool
}

// FromString builds a clear FheString from a Go string. Clear strings are
// always reusable and never padded.
func FromString(s string) FheString {
	return FheString{chars: []byte(s), isEncrypted: false, isPadded: false, isReusable: true}
}

// FromBytes builds a clear FheString from raw bytes.
func FromBytes(b []byte) FheString {
	cp := make([]byte, len(b))
	copy(cp, b)
	return FheString{chars: cp, isEncrypted: false, isPadded: false, isReusable: true}
}

// emptyEncrypted returns the canonical empty encrypted FheString.
func emptyEncrypted() FheString {
	return FheString{fheChars: []CChar{}, isEncrypted: true, isPadded: false, isReusable: true}
}

// IsEncrypted reports whether the value is encrypted.
func (s FheString) IsEncrypted() bool { return s.isEncrypted }

// IsPadded reports whether the value may carry trailing zero padding.
func (s FheString) IsPadded() bool { return s.isPadded }

// IsReusable reports whether the value is safe to pass as an operand
// without risk of hidden interior zero bytes being misread as a length.
func (s FheString) IsReusable() bool { return s.isReusable }

// Len returns the clear-text length of the underlying representation
// (which for padded ciphertexts is NOT the hidden logical length: see
// ServerKey.Len for the oblivious hidden-length computation).
func (s FheString) Len() int {
	if s.isEncrypted {
		return len(s.fheChars)
	}
	return len(s.chars)
}

// Chars returns the clear byte slice. Panics if the value is encrypted.
func (s FheString) Chars() []byte {
	if s.isEncrypted {
		panic("fhestring: FheString.Chars: value is encrypted")
	}
	return s.chars
}

// FheChars returns the encrypted char slice. Panics if the value is clear.
func (s FheString) FheChars() []CChar {
	if !s.isEncrypted {
		panic("fhestring: FheString.FheChars: value is not encrypted")
	}
	return s.fheChars
}

// SubString returns the inclusive-range substring [start, end]. The
// result is conservatively marked padded, since the caller cannot in
// general prove (without decrypting) that the slice it took doesn't now
// end in what used to be interior padding.
func (s FheString) SubString(start, end int) FheString {
	if start < 0 || end < start-1 || end >= s.Len() {
		panic(fmt.Sprintf("fhestring: FheString.SubString: invalid range [%d,%d] for length %d", start, end, s.Len()))
	}
	if end < start {
		if s.isEncrypted {
			return FheString{fheChars: []CChar{}, isEncrypted: true, isPadded: false, isReusable: true}
		}
		return FheString{chars: []byte{}, isEncrypted: false, isPadded: false, isReusable: true}
	}
	if s.isEncrypted {
		out := make([]CChar, end-start+1)
		copy(out, s.fheChars[start:end+1])
		return FheString{fheChars: out, isEncrypted: true, isPadded: true, isReusable: false}
	}
	out := make([]byte, end-start+1)
	copy(out, s.chars[start:end+1])
	return FheString{chars: out, isEncrypted: false, isPadded: false, isReusable: true}
}

// Reverse returns the value with its characters in reverse order.
// Reversing toggles reusability relative to padding: a padded value's
// trailing zero run becomes a LEADING zero run once reversed, which
// reusability explicitly forbids (interior/leading zero bytes); an
// unpadded value has no zero run to relocate, so reversing it can only
// ever improve or preserve reusability.
func (s FheString) Reverse() FheString {
	out := s
	if s.isEncrypted {
		rev := make([]CChar, len(s.fheChars))
		for i, c := range s.fheChars {
			rev[len(rev)-1-i] = c
		}
		out.fheChars = rev
	} else {
		rev := make([]byte, len(s.chars))
		for i, c := range s.chars {
			rev[len(rev)-1-i] = c
		}
		out.chars = rev
	}
	out.isReusable = !s.isPadded
	return out
}

// Pad appends n trivial zero bytes, marking the result padded.
func (s FheString) Pad(n int) FheString {
	if n <= 0 {
		return s
	}
	out := s
	out.isPadded = true
	if s.isEncrypted {
		zero := tfhe.NewTrivialCipher(4, 0)
		extra := make([]CChar, n)
		for i := range extra {
			extra[i] = newCChar(zero)
		}
		out.fheChars = append(append([]CChar{}, s.fheChars...), extra...)
	} else {
		extra := make([]byte, n)
		out.chars = append(append([]byte{}, s.chars...), extra...)
	}
	return out
}

// Repeat returns the value repeated n times.
func (s FheString) Repeat(n int) FheString {
	if n <= 0 {
		if s.isEncrypted {
			return emptyEncrypted()
		}
		return FromString("")
	}
	if n == 1 {
		return s
	}
	parts := make([]FheString, n)
	for i := range parts {
		parts[i] = s
	}
	return Concatenate(parts)
}

// Concatenate joins parts in order. All parts must share the same
// encryption mode (mixing clear and encrypted operands is a contract
// violation). The result is padded if any part is padded. Interior zero
// bytes can only arise at the boundary introduced by a padded NON-LAST
// part (its trailing zero run becomes interior once something follows
// it), so the result is reusable only if every part but the last is
// unpadded and the last part is itself reusable.
func Concatenate(parts []FheString) FheString {
	if len(parts) == 0 {
		panic("fhestring: Concatenate: no parts")
	}
	encrypted := parts[0].isEncrypted
	for _, p := range parts {
		if p.isEncrypted != encrypted {
			panic("fhestring: Concatenate: mixed clear/encrypted operands")
		}
	}
	padded := false
	reusable := true
	for i, p := range parts {
		if p.isPadded {
			padded = true
		}
		if i < len(parts)-1 {
			if p.isPadded {
				reusable = false
			}
		} else {
			if !p.isReusable {
				reusable = false
			}
		}
	}
	if encrypted {
		var out []CChar
		for _, p := range parts {
			out = append(out, p.fheChars...)
		}
		if out == nil {
			out = []CChar{}
		}
		return FheString{fheChars: out, isEncrypted: true, isPadded: padded, isReusable: reusable}
	}
	var out []byte
	for _, p := range parts {
		out = append(out, p.chars...)
	}
	if out == nil {
		out = []byte{}
	}
	return FheString{chars: out, isEncrypted: false, isPadded: padded, isReusable: reusable}
}
