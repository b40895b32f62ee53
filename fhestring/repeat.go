package fhestring

// Repeat returns s repeated n times (n is a clear, public count).
func (sk *ServerKey) Repeat(s FheString, n int) FheString {
	return s.Repeat(n)
}

// RepeatReusable is Repeat, repaired into a reusable result if Repeat's
// output isn't already one (matching repeat_reusable in the reference
// implementation, a thin convenience wrapper rather than a distinct
// algorithm).
func (sk *ServerKey) RepeatReusable(s FheString, n int) FheString {
	out := sk.Repeat(s, n)
	if !out.isEncrypted || out.isReusable {
		return out
	}
	return sk.MakeReusable(out)
}
