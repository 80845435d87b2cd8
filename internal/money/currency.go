package money

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when no display locale is configured.
const DefaultLocale = "en-US"

// Formatter renders amounts using the currency and number conventions of a locale.
type Formatter struct {
	unit    currency.Unit
	pattern pattern
	scale   int
}

// pattern is the locale's currency layout: the text around the number and
// its separators, read once from a rendered sample.
type pattern struct {
	prefix  string
	suffix  string
	group   string
	decimal string
}

// sampleAmount has two groups and a fraction so every separator shows up.
const sampleAmount = 1234567.5

// NewFormatter returns a formatter for a BCP 47 locale such as "en-US" or "de-DE".
// Locales without a known region fall back to US dollars.
func NewFormatter(locale string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	unit, confidence := currency.FromTag(tag)
	if confidence == language.No {
		unit = currency.USD
	}

	scale, _ := currency.Standard.Rounding(unit)
	sample := message.NewPrinter(tag).Sprint(currency.Symbol(unit.Amount(sampleAmount)))

	return &Formatter{
		unit:    unit,
		pattern: parsePattern(sample, scale),
		scale:   scale,
	}, nil
}

// MustFormatter is NewFormatter for locales known to be valid.
func MustFormatter(locale string) *Formatter {
	f, err := NewFormatter(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders amount with the locale's currency symbol, grouping and
// the currency's standard number of decimals. Digits come from the decimal
// itself, so large amounts stay exact. Negative amounts lead with a minus
// sign, e.g. "-$ 100.00".
func (f *Formatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(int32(f.scale))
	digits := rounded.Abs().StringFixed(int32(f.scale))

	whole, fraction, _ := strings.Cut(digits, ".")

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(f.pattern.prefix)
	b.WriteString(groupDigits(whole, f.pattern.group))
	if fraction != "" {
		b.WriteString(f.pattern.decimal)
		b.WriteString(fraction)
	}
	b.WriteString(f.pattern.suffix)
	return b.String()
}

// Currency returns the ISO code of the formatter's currency.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// parsePattern reads the layout of a rendered sampleAmount such as
// "$ 1,234,567.50" or "1.234.567,50 €".
func parsePattern(sample string, scale int) pattern {
	p := pattern{prefix: "$ ", group: ",", decimal: "."}

	runes := []rune(sample)
	first, last := -1, -1
	for i, r := range runes {
		if unicode.IsDigit(r) {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return p
	}

	var seps []string
	var sep []rune
	for _, r := range runes[first : last+1] {
		if unicode.IsDigit(r) {
			if len(sep) > 0 {
				seps = append(seps, string(sep))
				sep = sep[:0]
			}
			continue
		}
		sep = append(sep, r)
	}

	p.prefix = string(runes[:first])
	p.suffix = string(runes[last+1:])
	p.group = ""
	switch {
	case scale > 0 && len(seps) > 0:
		p.decimal = seps[len(seps)-1]
		if len(seps) > 1 {
			p.group = seps[0]
		}
	case len(seps) > 0:
		p.group = seps[0]
	}
	return p
}

// groupDigits inserts sep between each group of three digits from the right.
func groupDigits(whole, sep string) string {
	if sep == "" || len(whole) <= 3 {
		return whole
	}

	var b strings.Builder
	head := len(whole) % 3
	if head > 0 {
		b.WriteString(whole[:head])
	}
	for i := head; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(whole[i : i+3])
	}
	return b.String()
}
