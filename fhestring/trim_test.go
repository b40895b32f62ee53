package fhestring

import "testing"

func TestTrim(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("  hi  ", 0)

	end := sk.TrimEnd(s)
	if got := ck.DecryptString(end); got != "  hi" {
		t.Errorf("TrimEnd = %q, want %q", got, "  hi")
	}

	start := sk.TrimStartReusable(end)
	if got := ck.DecryptString(start); got != "hi" {
		t.Errorf("TrimStartReusable = %q, want %q", got, "hi")
	}

	both := sk.TrimReusable(s)
	if got := ck.DecryptString(both); got != "hi" {
		t.Errorf("TrimReusable = %q, want %q", got, "hi")
	}
}

func TestStripPrefixSuffix(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("foobar", 2)

	stripped, found := sk.StripPrefixReusable(s, ck.EncryptString("foo", 0))
	if !ck.DecryptBool(found) {
		t.Fatal("StripPrefix: expected found")
	}
	if got := ck.DecryptString(stripped); got != "bar" {
		t.Errorf("StripPrefix = %q, want %q", got, "bar")
	}

	stripped2, found2 := sk.StripSuffix(s, ck.EncryptString("bar", 1))
	if !ck.DecryptBool(found2) {
		t.Fatal("StripSuffix: expected found")
	}
	if got := ck.DecryptString(stripped2); got != "foo" {
		t.Errorf("StripSuffix = %q, want %q", got, "foo")
	}
}
