package tfhe

// Encryptor turns cleartext byte/bool values into Cipher values under a
// SecretKey, mirroring lattigo's rlwe.Encryptor.
type Encryptor struct {
	params Parameters
	key    SecretKey
}

// NewEncryptor returns an Encryptor bound to the given secret key.
func NewEncryptor(params Parameters, key SecretKey) *Encryptor {
	return &Encryptor{params: params, key: key}
}

// EncryptChar encrypts a single ASCII byte into a CharBlocks()-wide Cipher.
func (e *Encryptor) EncryptChar(b byte) Cipher {
	return newCipher(e.params.CharBlocks(), uint64(b))
}

// EncryptBool encrypts a boolean into a 1-block Cipher.
func (e *Encryptor) EncryptBool(b bool) Cipher {
	return NewTrivialBool(b)
}

// EncryptUint encrypts an arbitrary-width radix integer.
func (e *Encryptor) EncryptUint(blocks int, v uint64) Cipher {
	return newCipher(blocks, v)
}
