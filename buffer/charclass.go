package buffer

import "strings"

// CharClass groups characters for word motion. A word is a maximal run of
// clusters sharing one class.
type CharClass int

const (
	Punctuation CharClass = iota
	WhiteSpace
	LBracket
	RBracket
	Empty
	Other
)

const (
	openers = "({[<\""
	closers = ")}]>\""
)

func (c CharClass) String() string {
	switch c {
	case Punctuation:
		return "Punctuation"
	case WhiteSpace:
		return "WhiteSpace"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case Empty:
		return "Empty"
	default:
		return "Other"
	}
}

// Classify returns the first matching class for r. Only ASCII punctuation and
// whitespace are recognized; every other rune, letters and non-ASCII text
// included, is Other.
func Classify(r rune) CharClass {
	switch {
	case strings.ContainsRune(openers, r):
		return LBracket
	case strings.ContainsRune(closers, r):
		return RBracket
	case isASCIIPunct(r):
		return Punctuation
	case isASCIISpace(r):
		return WhiteSpace
	}
	return Other
}

// ClassifyFirst classifies the first rune of s, or returns Empty for "".
func ClassifyFirst(s string) CharClass {
	for _, r := range s {
		return Classify(r)
	}
	return Empty
}

func isASCIIPunct(r rune) bool {
	return (r >= '!' && r <= '/') || (r >= ':' && r <= '@') ||
		(r >= '[' && r <= '`') || (r >= '{' && r <= '~')
}

// ASCII whitespace as WHATWG defines it; vertical tab is not included.
func isASCIISpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r'
}
