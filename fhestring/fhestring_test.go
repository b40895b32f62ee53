package fhestring

import "testing"

func TestConcatenateReusability(t *testing.T) {
	ck, _ := testKeyPair()
	a := ck.EncryptString("ab", 0)  // unpadded, reusable
	b := ck.EncryptString("cd", 1)  // padded
	c := ck.EncryptString("ef", 0)  // unpadded, reusable

	// a padded middle part makes the whole concatenation non-reusable,
	// even though the last part is fine on its own.
	out := Concatenate([]FheString{a, b, c})
	if out.IsReusable() {
		t.Fatal("Concatenate: expected non-reusable result when a non-last part is padded")
	}
	if got := ck.DecryptString(out); got != "abcdef" {
		t.Errorf("Concatenate = %q, want %q", got, "abcdef")
	}

	out2 := Concatenate([]FheString{a, c})
	if !out2.IsReusable() {
		t.Fatal("Concatenate: expected reusable result when every non-last part is unpadded and the last part is reusable")
	}
}

func TestRepeat(t *testing.T) {
	ck, _ := testKeyPair()
	a := ck.EncryptString("ab", 0)
	out := a.Repeat(3)
	if got := ck.DecryptString(out); got != "ababab" {
		t.Errorf("Repeat = %q, want %q", got, "ababab")
	}
}

func TestReverse(t *testing.T) {
	ck, _ := testKeyPair()
	a := ck.EncryptString("abc", 0)
	r := a.Reverse()
	if got := ck.DecryptString(r); got != "cba" {
		t.Errorf("Reverse = %q, want %q", got, "cba")
	}
	if !r.IsReusable() {
		t.Fatal("Reverse: expected reusable result for an unpadded input")
	}
}
