package highlight

import "unicode/utf8"

// columns converts byte offsets reported by parsers into rune columns.
// Conversion tables are built lazily, and only for rows that contain
// multi-byte characters.
type columns struct {
	lines []string
	cache map[int][]int
}

func newColumns(lines []string) *columns {
	return &columns{lines: lines}
}

// col returns the rune column of byte offset b on row. Offsets past the
// end of the line clamp to the line's length.
func (c *columns) col(row, b int) int {
	if row < 0 || row >= len(c.lines) || b <= 0 {
		return 0
	}
	line := c.lines[row]
	if b > len(line) {
		b = len(line)
	}
	if isASCII(line) {
		return b
	}

	table, ok := c.cache[row]
	if !ok {
		table = runeOffsets(line)
		if c.cache == nil {
			c.cache = make(map[int][]int)
		}
		c.cache[row] = table
	}
	return table[b]
}

// runeOffsets returns, for every byte offset 0..len(line), the number of
// runes that start before it.
func runeOffsets(line string) []int {
	table := make([]int, len(line)+1)
	n := 0
	for i := 0; i < len(line); {
		_, size := utf8.DecodeRuneInString(line[i:])
		for j := 1; j < size; j++ {
			table[i+j] = n + 1
		}
		n++
		i += size
		table[i] = n
	}
	return table
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
