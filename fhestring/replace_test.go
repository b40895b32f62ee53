package fhestring

import "testing"

func TestReplace(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("foo bar foo", 0)
	from := ck.EncryptString("foo", 0)
	to := ck.EncryptString("baz", 0)

	out := sk.Replace(s, from, to)
	if got := ck.DecryptString(out); got != "baz bar baz" {
		t.Errorf("Replace = %q, want %q", got, "baz bar baz")
	}
}

func TestReplacen(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("foo foo foo", 0)
	from := ck.EncryptString("foo", 0)
	to := ck.EncryptString("x", 0)

	out := sk.Replacen(s, from, to, 2)
	if got := ck.DecryptString(out); got != "x x foo" {
		t.Errorf("Replacen = %q, want %q", got, "x x foo")
	}
}

func TestReplaceEmptyFrom(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("ab", 0)
	from := ck.EncryptString("", 2)
	to := ck.EncryptString("X", 0)

	out := sk.Replace(s, from, to)
	if got := ck.DecryptString(out); got != "XaXbX" {
		t.Errorf("Replace = %q, want %q", got, "XaXbX")
	}
}

func TestReplaceLongerTo(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("ab", 0)
	from := ck.EncryptString("a", 0)
	to := ck.EncryptString("XYZ", 0)

	out := sk.Replace(s, from, to)
	if got := ck.DecryptString(out); got != "XYZb" {
		t.Errorf("Replace = %q, want %q", got, "XYZb")
	}
}
