package initgen

import (
	"regexp"
	"strings"
)

// wrapWidth is the target column width for wrapped declaration text.
const wrapWidth = 79

// longPrefixRatio is the fraction of wrapWidth beyond which a prefix is
// considered too long to align continuation lines under; continuation
// indentation then collapses to a fixed 4 columns.
const longPrefixRatio = 0.7

// packedRHS wraps a prefix plus comma-joined body at the target width,
// with continuation lines indented to the prefix length.
//
// Generic wrapping is prefix-agnostic and may split inside the syntactic
// prefix itself (very long module paths). A second pass re-detects the
// prefix via whitespace-collapsed token matching; if the wrapper broke
// it, the prefix moves onto its own line with the body following at the
// continuation indentation.
func packedRHS(lhs, rhs string) string {
	prefix := strings.Repeat(" ", len(lhs))
	if float64(len(lhs)) > wrapWidth*longPrefixRatio {
		prefix = strings.Repeat(" ", 4)
	}

	packed := strings.Join(wrapText(lhs+rhs, wrapWidth, prefix), "\n")

	tokens := strings.Split(lhs, " ")
	for i, tok := range tokens {
		tokens[i] = regexp.QuoteMeta(tok)
	}

	re := regexp.MustCompile(strings.Join(tokens, `\s*`))

	loc := re.FindStringIndex(packed)
	if loc != nil && loc[0] == 0 && strings.Contains(packed[:loc[1]], "\n") {
		packed = lhs + "\n" + prefix + packed[loc[1]:]
	}

	return packed
}

// wrapText greedily wraps text at width. Words are never broken: a word
// that alone exceeds the width occupies its own (overlong) line.
// Continuation lines are prefixed with indent.
func wrapText(text string, width int, indent string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := []string{}
	cur := words[0]

	for _, word := range words[1:] {
		if len(cur)+1+len(word) <= width {
			cur += " " + word

			continue
		}

		lines = append(lines, cur)
		cur = indent + word
	}

	return append(lines, cur)
}
