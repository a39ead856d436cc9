package brcode

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultTxID is the sentinel transaction id used when a charge carries no
// usable id of its own.
const DefaultTxID = "***"

// stripMarks decomposes to NFD and drops combining marks, mapping accented
// letters to their base letters.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func removeAccents(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

// NormalizeText conforms free text to the charset EMV merchant fields
// allow: accents stripped, everything outside ASCII letters, digits and
// spaces removed, whitespace runs collapsed, uppercased and truncated to
// max characters.
func NormalizeText(s string, max int) string {
	if s == "" {
		return ""
	}
	s = removeAccents(s)
	s = keepRunes(s, true)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToUpper(s)
	if len(s) > max {
		s = s[:max]
	}
	return s
}

// NormalizeTxID conforms a transaction id: like NormalizeText but spaces
// are removed too, max length 25, and the "***" sentinel is returned when
// nothing survives.
func NormalizeTxID(s string) string {
	s = removeAccents(s)
	s = keepRunes(s, false)
	s = strings.ToUpper(s)
	if len(s) > 25 {
		s = s[:25]
	}
	if s == "" {
		return DefaultTxID
	}
	return s
}

// keepRunes keeps ASCII letters and digits, and optionally spaces.
func keepRunes(s string, allowSpace bool) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ' && allowSpace:
			return r
		default:
			return -1
		}
	}, s)
}
