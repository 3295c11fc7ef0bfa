package strength

import (
	"math"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// LengthThreshold awards Points once the password reaches Min characters.
// It is the default rule made explicit. Negative Points score 0.
type LengthThreshold struct {
	Min    int
	Points int
}

func (r LengthThreshold) Score(password string) int {
	return awardIf(utf8.RuneCountInString(password) >= r.Min, r.Points)
}

// LengthPerChar awards one point per character up to Cap
type LengthPerChar struct {
	Cap int
}

func (r LengthPerChar) Score(password string) int {
	return clamp(utf8.RuneCountInString(password), r.Cap)
}

// ContainsDigit awards Points when the password has at least one digit
type ContainsDigit struct {
	Points int
}

func (r ContainsDigit) Score(password string) int {
	return awardIf(containsRune(password, unicode.IsDigit), r.Points)
}

// ContainsUpper awards Points when the password has at least one upper-case letter
type ContainsUpper struct {
	Points int
}

func (r ContainsUpper) Score(password string) int {
	return awardIf(containsRune(password, unicode.IsUpper), r.Points)
}

// ContainsLower awards Points when the password has at least one lower-case letter
type ContainsLower struct {
	Points int
}

func (r ContainsLower) Score(password string) int {
	return awardIf(containsRune(password, unicode.IsLower), r.Points)
}

// SpecialCount awards PerChar points for each special character, capped at Cap.
// A special character is anything outside A-Z, a-z and 0-9.
type SpecialCount struct {
	PerChar int
	Cap     int
}

func (r SpecialCount) Score(password string) int {
	return clamp(CountSpecial(password)*r.PerChar, r.Cap)
}

// Pattern awards Points when Regexp matches the password
type Pattern struct {
	Regexp *regexp.Regexp
	Points int
}

func (r Pattern) Score(password string) int {
	if r.Regexp == nil {
		return 0
	}
	return awardIf(r.Regexp.MatchString(password), r.Points)
}

// Entropy maps an estimated Shannon entropy onto [0, Points] with diminishing returns.
//
// The estimate is length * log2(pool), where pool is the combined size of the character
// classes present. Points * (1 - e^(-bits/40)) gives roughly 63% at 40 bits and 86% at 80.
type Entropy struct {
	Points int
}

func (r Entropy) Score(password string) int {
	bits := EntropyBits(password)
	if bits <= 0 || r.Points <= 0 {
		return 0
	}
	const k = 40.0
	score := int(math.Round(float64(r.Points) * (1.0 - math.Exp(-bits/k))))
	return clamp(score, r.Points)
}

// CountSpecial counts runes outside ASCII letters and digits
func CountSpecial(password string) int {
	var n int
	for _, c := range password {
		if !isASCIIAlnum(c) {
			n++
		}
	}
	return n
}

// EntropyBits estimates password entropy from its length and character pool
func EntropyBits(password string) float64 {
	length := utf8.RuneCountInString(password)
	if length == 0 {
		return 0
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsDigit(c):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	pool := 0
	if hasLower {
		pool += 26
	}
	if hasUpper {
		pool += 26
	}
	if hasDigit {
		pool += 10
	}
	if hasSymbol {
		pool += 33 // printable ASCII symbols
	}
	if pool <= 1 {
		return 0
	}
	return float64(length) * math.Log2(float64(pool))
}

func isASCIIAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func containsRune(s string, pred func(rune) bool) bool {
	for _, c := range s {
		if pred(c) {
			return true
		}
	}
	return false
}

// awardIf returns points, bounded to [0, points], when ok holds
func awardIf(ok bool, points int) int {
	if !ok {
		return 0
	}
	return clamp(points, points)
}

// clamp bounds v to [0, max]
func clamp(v, max int) int {
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	return v
}
