package simd

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// Uses an optimized pure Go implementation with SWAR (SIMD Within A Register)
// technique, which processes 8 bytes at a time using uint64 bitwise operations.
//
// Performance characteristics (pure Go SWAR):
//   - Small inputs (< 8 bytes): byte-by-byte comparison
//   - Medium/large inputs: 2-5x faster than naive byte-by-byte
//
// See memchrGeneric for implementation details.
func Memchr(haystack []byte, needle byte) int {
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first instance of either needle1 or needle2
// in haystack, or -1 if neither is present.
//
// Uses pure Go SWAR technique to check both needles in parallel within 8-byte
// chunks. Returns the position of whichever needle appears first in haystack.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first instance of needle1, needle2, or needle3
// in haystack, or -1 if none are present.
//
// Uses pure Go SWAR technique to check all three needles in parallel within
// 8-byte chunks. Returns the position of whichever needle appears first in
// haystack.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Generic(haystack, needle1, needle2, needle3)
}

// MemchrInTable returns the index of the first byte in haystack for which
// table[b] is true, or -1 if no such byte exists.
//
// Used by split.Splitter.Next, with the table from filter.Utf8Filter's
// AcceptTable, to skip to the first byte that could start a candidate
// without a full character-by-character walk.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	for i, b := range haystack {
		if table[b] {
			return i
		}
	}
	return -1
}

// MemchrNotInTable returns the index of the first byte in haystack for which
// table[b] is false, or -1 if every byte is accepted by table.
func MemchrNotInTable(haystack []byte, table *[256]bool) int {
	for i, b := range haystack {
		if !table[b] {
			return i
		}
	}
	return -1
}
