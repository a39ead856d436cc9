package brcode

import (
	"regexp"
	"strings"
)

// KeyKind identifies the shape of a PIX key.
type KeyKind string

const (
	KeyEmail        KeyKind = "email"
	KeyPhone        KeyKind = "phone"
	KeyCPF          KeyKind = "cpf"
	KeyCNPJ         KeyKind = "cnpj"
	KeyRandom       KeyKind = "random"
	KeyUnrecognized KeyKind = "unrecognized"
)

// Key is a classified PIX key. Value holds the canonical form that goes on
// the wire: lowercase for emails and random (EVP) keys, bare digits for
// CPF/CNPJ, E.164 for phones. Raw keeps the trimmed input.
type Key struct {
	Raw   string
	Kind  KeyKind
	Value string
}

var (
	uuidPattern = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)
	cpfPattern  = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cnpjPattern = regexp.MustCompile(`^\d{2}\.?\d{3}\.?\d{3}/?\d{4}-?\d{2}$`)
)

// ClassifyKey classifies a raw PIX key and derives its canonical form.
//
// The rules are tried in order and the first match wins:
//
//  1. empty input
//  2. email (contains @)
//  3. random key already in UUID format
//  4. random key as 32 bare hex characters, hyphens re-inserted
//  5. formatted CPF (DDD.DDD.DDD-DD)
//  6. CNPJ (DD.DDD.DDD/DDDD-DD, punctuation optional)
//  7. phone (leading +, parentheses, 55 country prefix, or a DDD-shaped
//     mobile/landline digit pattern), normalized to E.164
//  8. bare 14 digits → CNPJ
//  9. bare 11 digits → CPF
//  10. anything else is passed through unchanged
//
// The order matters: an 11-digit number with a valid DDD and a '9' in the
// third position is resolved as a mobile phone, not a CPF.
func ClassifyKey(raw string) Key {
	key := strings.TrimSpace(raw)
	if key == "" {
		return Key{Raw: key, Kind: KeyUnrecognized, Value: ""}
	}

	if strings.Contains(key, "@") {
		return Key{Raw: key, Kind: KeyEmail, Value: strings.ToLower(key)}
	}

	if uuidPattern.MatchString(key) {
		return Key{Raw: key, Kind: KeyRandom, Value: strings.ToLower(key)}
	}

	if hex := hexOf(key); len(hex) == 32 && onlyHexOrHyphen(key) {
		v := hex[:8] + "-" + hex[8:12] + "-" + hex[12:16] + "-" + hex[16:20] + "-" + hex[20:]
		return Key{Raw: key, Kind: KeyRandom, Value: strings.ToLower(v)}
	}

	digits := digitsOf(key)

	if cpfPattern.MatchString(key) && len(digits) == 11 {
		return Key{Raw: key, Kind: KeyCPF, Value: digits}
	}

	if cnpjPattern.MatchString(key) && len(digits) == 14 {
		return Key{Raw: key, Kind: KeyCNPJ, Value: digits}
	}

	if v, ok := phoneValue(key, digits); ok {
		return Key{Raw: key, Kind: KeyPhone, Value: v}
	}

	if len(digits) == 14 {
		return Key{Raw: key, Kind: KeyCNPJ, Value: digits}
	}

	if len(digits) == 11 {
		return Key{Raw: key, Kind: KeyCPF, Value: digits}
	}

	return Key{Raw: key, Kind: KeyUnrecognized, Value: key}
}

// phoneValue applies the phone heuristic and, if the key looks like a
// phone number, returns its E.164 form.
func phoneValue(key, digits string) (string, bool) {
	hasPlus := strings.HasPrefix(key, "+")
	hasParens := strings.ContainsAny(key, "()")
	countryCoded := strings.HasPrefix(digits, "55") && len(digits) >= 12

	mobile := len(digits) == 11 && digits[2] == '9' && validDDD(digits)
	landline := len(digits) == 10 && validDDD(digits)

	isPhone := hasPlus || hasParens || countryCoded || mobile || landline
	if !isPhone || digits == "" {
		return "", false
	}

	if hasPlus || countryCoded {
		// Country code already present, with or without the +.
		return "+" + digits, true
	}
	return "+55" + digits, true
}

// validDDD reports whether the first two digits form a Brazilian area
// code (11-99).
func validDDD(digits string) bool {
	if len(digits) < 2 {
		return false
	}
	ddd := int(digits[0]-'0')*10 + int(digits[1]-'0')
	return ddd >= 11 && ddd <= 99
}

func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func hexOf(s string) string {
	return strings.Map(func(r rune) rune {
		if isHexDigit(r) {
			return r
		}
		return -1
	}, s)
}

func onlyHexOrHyphen(s string) bool {
	for _, r := range s {
		if !isHexDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
