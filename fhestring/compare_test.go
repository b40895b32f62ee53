package fhestring

import "testing"

func TestEqNe(t *testing.T) {
	ck, sk := testKeyPair()
	a := ck.EncryptString("abc", 0)
	b := ck.EncryptString("abc", 2)
	c := ck.EncryptString("abd", 0)

	if !ck.DecryptBool(sk.Eq(a, b)) {
		t.Fatal("Eq: expected true for equal content with different padding")
	}
	if !ck.DecryptBool(sk.Ne(a, c)) {
		t.Fatal("Ne: expected true for differing content")
	}
}

func TestOrdering(t *testing.T) {
	ck, sk := testKeyPair()
	a := ck.EncryptString("app", 0)
	b := ck.EncryptString("apple", 0)
	c := ck.EncryptString("apq", 0)

	if !ck.DecryptBool(sk.Lt(a, b)) {
		t.Fatal("Lt: expected \"app\" < \"apple\"")
	}
	if !ck.DecryptBool(sk.Lt(b, c)) {
		t.Fatal("Lt: expected \"apple\" < \"apq\"")
	}
	if !ck.DecryptBool(sk.Ge(b, a)) {
		t.Fatal("Ge: expected \"apple\" >= \"app\"")
	}
}
