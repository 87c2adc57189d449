package rollupvm

// cloneBytes returns a copy of [input] that shares no memory with it.
// A nil input stays nil.
func cloneBytes(input []byte) []byte {
	if input == nil {
		return nil
	}
	out := make([]byte, len(input))
	copy(out, input)
	return out
}

// cloneRoots deep copies [roots].
func cloneRoots(roots [][]byte) [][]byte {
	out := make([][]byte, len(roots))
	for i, root := range roots {
		out[i] = cloneBytes(root)
	}
	return out
}
