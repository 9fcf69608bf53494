// Package conflict extracts textual merge-conflict regions from merged files.
package conflict

import (
	"os"
	"strings"
)

const (
	openMarker  = "<<<<<<<"
	closeMarker = ">>>>>>>"
)

// Result is the parsed view of one merged file. Count tracks opening markers
// independently of Blocks: an unterminated conflict is counted but never
// captured, so Count can exceed len(Blocks).
type Result struct {
	Count   int
	Content string
	Blocks  []string
}

// Parse reads path and scans it for conflict regions. A missing or unreadable
// file yields a zero Result rather than an error; whether absence invalidates
// the source is the caller's call, not this function's.
func Parse(path string) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}
	}
	return ParseText(string(data))
}

// ParseText scans text line by line. A line starting with <<<<<<< opens a
// block and increments Count — if a block was already open its buffer is
// abandoned and capture restarts at the new marker. A line starting with
// >>>>>>> closes an open block and appends it to Blocks, opening marker line
// through closing marker line inclusive, joined by newlines and trimmed.
func ParseText(text string) Result {
	// Tolerate undecodable bytes instead of failing on them.
	text = strings.ToValidUTF8(text, "")

	var res Result
	var current []string
	inConflict := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, openMarker):
			res.Count++
			inConflict = true
			current = []string{line}
		case strings.HasPrefix(line, closeMarker):
			if inConflict {
				current = append(current, line)
				res.Blocks = append(res.Blocks, strings.TrimSpace(strings.Join(current, "\n")))
				inConflict = false
				current = nil
			}
		case inConflict:
			current = append(current, line)
		}
	}

	res.Content = strings.TrimSpace(text)
	return res
}
