package scoring

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var compactSuffixes = []struct {
	div    float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatCompact renders n the short way, e.g. 128000 -> "128K" and
// 1250000 -> "1.3M". Mantissas below ten keep one fraction digit, larger ones
// none. Separators follow locale; an unknown locale falls back to English.
func FormatCompact(n int64, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)

	sign := ""
	v := float64(n)
	if v < 0 {
		sign = "-"
		v = -v
	}

	for i, s := range compactSuffixes {
		if v < s.div {
			continue
		}
		m, digits := roundMantissa(v / s.div)
		// 999950 rounds to 1000K; report it as 1M instead.
		if m >= 1000 && i > 0 {
			up := compactSuffixes[i-1]
			m, digits = roundMantissa(v / up.div)
			s = up
		}
		return sign + p.Sprint(number.Decimal(m, number.MaxFractionDigits(digits))) + s.suffix
	}
	return sign + p.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// roundMantissa rounds half away from zero so 1.25 becomes 1.3.
func roundMantissa(m float64) (float64, int) {
	if m < 10 {
		r := math.Round(m*10) / 10
		if r < 10 {
			return r, 1
		}
		return r, 0
	}
	return math.Round(m), 0
}
