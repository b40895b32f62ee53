package fhestring

import "github.com/Lcressot/fhe-string-bounty/internal/tfhe"

// testKeyPair mirrors lattigo's per-scheme test_params.go/test_utils.go
// convention: a single shared fixture generated once per test file rather
// than re-deriving key material in every test case.
func testKeyPair() (*ClientKey, *ServerKey) {
	params, err := tfhe.NewParameters(tfhe.DefaultParametersLiteral())
	if err != nil {
		panic(err)
	}
	ck := NewClientKey(params)
	sk := NewServerKey(params, ck.GenEvaluationKey())
	return ck, sk
}
