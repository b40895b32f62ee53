package tfhe

// SecretKey is the simulated client-side secret. Since the backend is not
// cryptographically real there is no key material to protect; the type
// exists so the public API shape (ClientKey holding a SecretKey, ServerKey
// holding an EvaluationKey derived from it) matches a real scheme.
type SecretKey struct {
	params Parameters
}

// EvaluationKey is the simulated server-side key derived from a SecretKey.
// A real scheme would carry bootstrapping/relinearization keys here;
// ServerKey operations in this module never need them since the backend
// computes directly on cleartext payloads.
type EvaluationKey struct {
	params Parameters
}

// KeyGenerator generates key material for a Parameters set, mirroring
// lattigo's rlwe.KeyGenerator.
type KeyGenerator struct {
	params Parameters
}

// NewKeyGenerator returns a KeyGenerator for the given Parameters.
func NewKeyGenerator(params Parameters) *KeyGenerator {
	return &KeyGenerator{params: params}
}

// GenSecretKey produces a fresh SecretKey.
func (kg *KeyGenerator) GenSecretKey() SecretKey {
	return SecretKey{params: kg.params}
}

// GenEvaluationKey derives the EvaluationKey a ServerKey needs from a
// SecretKey.
func (kg *KeyGenerator) GenEvaluationKey(sk SecretKey) EvaluationKey {
	return EvaluationKey{params: kg.params}
}
