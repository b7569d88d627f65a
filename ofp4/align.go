package ofp4

// Align8 rounds n up to the next multiple of 8.
func Align8(n int) int {
	return (n + 7) / 8 * 8
}

// Zero clears data. Every pad byte of a packed record goes through here.
func Zero(data []byte) {
	clear(data)
}
