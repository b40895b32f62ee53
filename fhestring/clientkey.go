package fhestring

import "github.com/Lcressot/fhe-string-bounty/internal/tfhe"

// ClientKey holds the secret material needed to encrypt FheString values
// and decrypt ServerKey results, mirroring the ClientKey{key:
// RadixClientKey} wrapper this module's reference implementation uses.
type ClientKey struct {
	params    tfhe.Parameters
	secret    tfhe.SecretKey
	encryptor *tfhe.Encryptor
	decryptor *tfhe.Decryptor
}

// NewClientKey generates fresh secret key material for the given
// Parameters.
func NewClientKey(params tfhe.Parameters) *ClientKey {
	kg := tfhe.NewKeyGenerator(params)
	sk := kg.GenSecretKey()
	return &ClientKey{
		params:    params,
		secret:    sk,
		encryptor: tfhe.NewEncryptor(params, sk),
		decryptor: tfhe.NewDecryptor(params, sk),
	}
}

// Parameters returns the Parameters this key was generated for.
func (ck *ClientKey) Parameters() tfhe.Parameters { return ck.params }

// GenEvaluationKey derives the EvaluationKey a ServerKey needs to operate
// on this ClientKey's ciphertexts.
func (ck *ClientKey) GenEvaluationKey() tfhe.EvaluationKey {
	return tfhe.NewKeyGenerator(ck.params).GenEvaluationKey(ck.secret)
}

// EncryptString encrypts s with the given amount of trailing zero
// padding (padding > 0 marks the result IsPadded).
func (ck *ClientKey) EncryptString(s string, padding int) FheString {
	b := []byte(s)
	out := make([]CChar, len(b)+padding)
	for i, c := range b {
		out[i] = newCChar(ck.encryptor.EncryptChar(c))
	}
	zero := ck.encryptor.EncryptChar(0)
	for i := len(b); i < len(out); i++ {
		out[i] = newCChar(zero)
	}
	return FheString{
		fheChars:    out,
		isEncrypted: true,
		isPadded:    padding > 0,
		isReusable:  true,
	}
}

// TrivialEncryptString builds an encrypted FheString whose ciphertexts
// carry known cleartext values with no real secrecy, matching
// trivial_encrypt in the reference implementation (used to lift a known
// constant into encrypted-operand position without a real encryption).
func (ck *ClientKey) TrivialEncryptString(s string, padding int) FheString {
	b := []byte(s)
	out := make([]CChar, len(b)+padding)
	for i, c := range b {
		out[i] = newCChar(tfhe.NewTrivialCipher(ck.params.CharBlocks(), uint64(c)))
	}
	zero := tfhe.NewTrivialCipher(ck.params.CharBlocks(), 0)
	for i := len(b); i < len(out); i++ {
		out[i] = newCChar(zero)
	}
	return FheString{
		fheChars:    out,
		isEncrypted: true,
		isPadded:    padding > 0,
		isReusable:  true,
	}
}

// DecryptString decrypts s, trimming trailing zero padding. Panics if s
// claims reusability but an interior zero byte is found, matching the
// reference decrypt's contract check. For a non-reusable value, interior
// zero bytes are padding too and are dropped.
func (ck *ClientKey) DecryptString(s FheString) string {
	if !s.isEncrypted {
		return string(s.chars)
	}
	out := make([]byte, len(s.fheChars))
	for i, c := range s.fheChars {
		out[i] = ck.decryptor.DecryptChar(c.Cipher())
	}
	end := len(out)
	for end > 0 && out[end-1] == 0 {
		end--
	}
	if s.isReusable {
		for i := 0; i < end; i++ {
			if out[i] == 0 {
				panic("fhestring: DecryptString: value claims IsReusable but contains an interior zero byte")
			}
		}
		return string(out[:end])
	}
	kept := make([]byte, 0, end)
	for _, c := range out[:end] {
		if c != 0 {
			kept = append(kept, c)
		}
	}
	return string(kept)
}

// DecryptBool decrypts a CBool.
func (ck *ClientKey) DecryptBool(b CBool) bool {
	return ck.decryptor.DecryptBool(b.Cipher())
}

// DecryptUint decrypts a raw radix integer Cipher (used for hidden
// lengths and field counts).
func (ck *ClientKey) DecryptUint(c tfhe.Cipher) uint64 {
	return ck.decryptor.DecryptUint(c)
}
