package fhestring

import "github.com/Lcressot/fhe-string-bounty/internal/tfhe"

// ---- §4.7 Case folding ----

// ToLowercase returns s with every uppercase ASCII letter folded to
// lowercase. Each character is processed independently: an encrypted
// "is this an uppercase letter" flag obliviously selects whether +32 is
// added, rather than branching on the decrypted byte.
func (sk *ServerKey) ToLowercase(s FheString) FheString {
	if !s.isEncrypted {
		out := make([]byte, len(s.chars))
		for i, c := range s.chars {
			if c >= 'A' && c <= 'Z' {
				c += 32
			}
			out[i] = c
		}
		return FromBytes(out)
	}
	blocks := sk.params.CharBlocks()
	chars := sk.ApplyParallel(len(s.fheChars), func(i int) CChar {
		c := s.fheChars[i]
		isUpper := sk.And(
			newCBool(sk.eval.ScalarGe(c.c, 65)),
			newCBool(sk.eval.ScalarLe(c.c, 90)),
		)
		delta := sk.eval.IfThenElse(isUpper.c, tfhe.NewTrivialCipher(blocks, 32), tfhe.NewTrivialCipher(blocks, 0))
		return newCChar(sk.eval.Add(c.c, delta))
	})
	return FheString{fheChars: chars, isEncrypted: true, isPadded: s.isPadded, isReusable: s.isReusable}
}

// ToUppercase returns s with every lowercase ASCII letter folded to
// uppercase.
func (sk *ServerKey) ToUppercase(s FheString) FheString {
	if !s.isEncrypted {
		out := make([]byte, len(s.chars))
		for i, c := range s.chars {
			if c >= 'a' && c <= 'z' {
				c -= 32
			}
			out[i] = c
		}
		return FromBytes(out)
	}
	blocks := sk.params.CharBlocks()
	chars := sk.ApplyParallel(len(s.fheChars), func(i int) CChar {
		c := s.fheChars[i]
		isLower := sk.And(
			newCBool(sk.eval.ScalarGe(c.c, 97)),
			newCBool(sk.eval.ScalarLe(c.c, 122)),
		)
		delta := sk.eval.IfThenElse(isLower.c, tfhe.NewTrivialCipher(blocks, 32), tfhe.NewTrivialCipher(blocks, 0))
		return newCChar(sk.eval.Sub(c.c, delta))
	})
	return FheString{fheChars: chars, isEncrypted: true, isPadded: s.isPadded, isReusable: s.isReusable}
}

// EqIgnoreCase reports whether a and b are equal up to ASCII case,
// requiring both reusable (same contract as Eq).
func (sk *ServerKey) EqIgnoreCase(a, b FheString) CBool {
	AssertIsReusable(a)
	AssertIsReusable(b)
	return sk.Eq(sk.ToLowercase(a), sk.ToLowercase(b))
}

// IsTriviallyClear reports whether s is a clear (unencrypted) value.
func (sk *ServerKey) IsTriviallyClear(s FheString) bool { return !s.isEncrypted }
