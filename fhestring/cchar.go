package fhestring

import "github.com/Lcressot/fhe-string-bounty/internal/tfhe"

// CChar is a single encrypted ASCII byte: one tfhe.Cipher of
// Parameters.CharBlocks() radix blocks (4 blocks * 2 bits = 8 bits in the
// default parameter set).
type CChar struct {
	c tfhe.Cipher
}

// CBool is a single encrypted boolean: a 1-block radix ciphertext whose
// cleartext value is 0 or 1.
type CBool struct {
	c tfhe.Cipher
}

func newCChar(c tfhe.Cipher) CChar { return CChar{c: c} }
func newCBool(c tfhe.Cipher) CBool { return CBool{c: c} }

// Cipher exposes the underlying ciphertext for ServerKey-internal use.
func (c CChar) Cipher() tfhe.Cipher { return c.c }

// Cipher exposes the underlying ciphertext for ServerKey-internal use.
func (b CBool) Cipher() tfhe.Cipher { return b.c }
