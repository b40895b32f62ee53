package fhestring

import "testing"

func TestContainsClear(t *testing.T) {
	ck, sk := testKeyPair()
	cases := []struct {
		s, pattern string
		want       bool
	}{
		{"hello world", "lo wo", true},
		{"hello world", "xyz", false},
		{"hello world", "", true},
		{"", "a", false},
	}
	for _, c := range cases {
		got := ck.DecryptBool(sk.Contains(FromString(c.s), FromString(c.pattern)))
		if got != c.want {
			t.Errorf("Contains(%q,%q) = %v, want %v", c.s, c.pattern, got, c.want)
		}
	}
}

func TestContainsEncrypted(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("hello world", 2)
	pattern := ck.EncryptString("wor", 1)
	if !ck.DecryptBool(sk.Contains(s, pattern)) {
		t.Fatalf("Contains(%q,%q) = false, want true", "hello world", "wor")
	}
	neg := ck.EncryptString("xyz", 0)
	if ck.DecryptBool(sk.Contains(s, neg)) {
		t.Fatalf("Contains(%q,%q) = true, want false", "hello world", "xyz")
	}
}

func TestStartsWithEndsWith(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("banana", 2)
	prefix := ck.EncryptString("ban", 0)
	suffix := ck.EncryptString("ana", 1)
	if !ck.DecryptBool(sk.StartsWith(s, prefix)) {
		t.Fatal("StartsWith: expected true")
	}
	if !ck.DecryptBool(sk.EndsWith(s, suffix)) {
		t.Fatal("EndsWith: expected true")
	}
	notSuffix := ck.EncryptString("ban", 0)
	if ck.DecryptBool(sk.EndsWith(s, notSuffix)) {
		t.Fatal("EndsWith: expected false")
	}
}

func TestFindRfind(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("abcabc", 0)
	pattern := ck.EncryptString("bc", 1)
	idx, found := sk.Find(s, pattern)
	if !ck.DecryptBool(found) {
		t.Fatal("Find: expected found")
	}
	if got := ck.DecryptUint(idx); got != 1 {
		t.Fatalf("Find: index = %d, want 1", got)
	}
	ridx, rfound := sk.Rfind(s, pattern)
	if !ck.DecryptBool(rfound) {
		t.Fatal("Rfind: expected found")
	}
	if got := ck.DecryptUint(ridx); got != 4 {
		t.Fatalf("Rfind: index = %d, want 4", got)
	}
}

func TestRfindPaddedEmptyPattern(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("abc", 0)
	pattern := ck.EncryptString("", 2)
	idx, found := sk.Rfind(s, pattern)
	if !ck.DecryptBool(found) {
		t.Fatal("Rfind: expected found")
	}
	if got := ck.DecryptUint(idx); got != 3 {
		t.Fatalf("Rfind: index = %d, want 3 (hidden length of s)", got)
	}
}
