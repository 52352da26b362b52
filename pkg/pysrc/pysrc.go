package pysrc

import (
	"strings"
)

// SplitLines splits text into physical lines, matching the semantics of
// Python's readlines: an empty input yields no lines, and a trailing
// newline does not produce a final empty line. The returned lines do not
// include line terminators.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// scanner tracks multi-line statement state across physical lines.
type scanner struct {
	strDelim string // open triple-quote delimiter, or ""
	depth    int    // open bracket depth
	backCont bool   // previous line ended with a line-continuation backslash
}

// PrimaryLines returns the indices of the physical lines in lines that
// begin a new logical statement. Lines inside an open bracket pair, an
// unterminated triple-quoted string, or following a backslash
// continuation are not primary. Blank and comment-only lines are primary.
//
// Malformed source is tolerated: an unterminated single-quoted string is
// treated as ending at the line break, and bracket depth never goes
// negative.
func PrimaryLines(lines []string) []int {
	s := &scanner{}
	primary := make([]int, 0, len(lines))

	for i, line := range lines {
		if s.depth == 0 && s.strDelim == "" && !s.backCont {
			primary = append(primary, i)
		}

		s.scanLine(line)
	}

	return primary
}

//nolint:gocognit // Single-pass character scan, flat switch logic.
func (s *scanner) scanLine(line string) {
	s.backCont = false

	i := 0
	for i < len(line) {
		if s.strDelim != "" {
			// Inside a triple-quoted string: look for the closing
			// delimiter, honoring backslash escapes.
			switch {
			case line[i] == '\\':
				i += 2
			case strings.HasPrefix(line[i:], s.strDelim):
				i += len(s.strDelim)
				s.strDelim = ""
			default:
				i++
			}

			continue
		}

		c := line[i]
		switch c {
		case '#':
			// Comment runs to end of line.
			return
		case '\'', '"':
			delim := line[i : i+1]
			if strings.HasPrefix(line[i:], strings.Repeat(delim, 3)) {
				s.strDelim = strings.Repeat(delim, 3)
				i += 3
				// A triple-quoted string may close on the same line.
				for i < len(line) && s.strDelim != "" {
					switch {
					case line[i] == '\\':
						i += 2
					case strings.HasPrefix(line[i:], s.strDelim):
						i += len(s.strDelim)
						s.strDelim = ""
					default:
						i++
					}
				}

				continue
			}

			// Single-quoted string: cannot span lines, so consume to the
			// closing quote or the end of the line.
			i++
			for i < len(line) {
				if line[i] == '\\' {
					i += 2

					continue
				}
				if line[i : i+1] == delim {
					i++

					break
				}
				i++
			}
		case '(', '[', '{':
			s.depth++
			i++
		case ')', ']', '}':
			if s.depth > 0 {
				s.depth--
			}
			i++
		case '\\':
			if i == len(line)-1 {
				s.backCont = true
			}
			i += 2
		default:
			i++
		}
	}
}
