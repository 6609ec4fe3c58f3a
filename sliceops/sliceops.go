package sliceops

// SwapBuf returns a byte-order reversed copy of in.
func SwapBuf(in []byte) []byte {
	a := make([]byte, 0, len(in))
	a = append(a, in...)
	for i := len(a)/2 - 1; i >= 0; i-- {
		opp := len(a) - 1 - i
		a[i], a[opp] = a[opp], a[i]
	}

	return a
}

// PadRight copies in into a new buffer of the given size, zero filled.
// Input longer than size is truncated.
func PadRight(in []byte, size int) []byte {
	out := make([]byte, size)
	copy(out, in)
	return out
}
