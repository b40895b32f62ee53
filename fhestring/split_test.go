package fhestring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func decryptFields(ck *ClientKey, fields []FheString, numberOfFields uint64) []string {
	out := make([]string, 0, numberOfFields)
	for i := uint64(0); i < numberOfFields && i < uint64(len(fields)); i++ {
		out = append(out, ck.DecryptString(fields[i]))
	}
	return out
}

func TestSplit(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("a,b,,c", 0)
	sep := ck.EncryptString(",", 0)

	fields, numeric := sk.Split(s, sep)
	n := ck.DecryptUint(numeric)
	got := decryptFields(ck, fields, n)
	want := []string{"a", "b", "", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitN(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("a,b,c,d", 0)
	sep := ck.EncryptString(",", 0)

	fields, numeric := sk.SplitN(s, sep, 2)
	n := ck.DecryptUint(numeric)
	got := decryptFields(ck, fields, n)
	want := []string{"a", "b,c,d"}
	require.Equal(t, want, got)
}

func TestSplitEmptyPattern(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("ab", 0)
	sep := ck.EncryptString("", 2)

	fields, numeric := sk.Split(s, sep)
	n := ck.DecryptUint(numeric)
	got := decryptFields(ck, fields, n)
	want := []string{"", "a", "b", ""}
	require.Equal(t, want, got)
}

func TestSplitAsciiWhitespace(t *testing.T) {
	ck, sk := testKeyPair()
	s := ck.EncryptString("  foo   bar  baz ", 0)
	fields, numeric := sk.SplitAsciiWhitespace(s)
	n := ck.DecryptUint(numeric)
	got := decryptFields(ck, fields, n)
	want := []string{"foo", "bar", "baz"}
	require.Equal(t, want, got)
}
