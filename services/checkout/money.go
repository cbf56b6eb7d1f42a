package checkout

import (
	"fmt"
	"strconv"
	"strings"
)

// Prices cross this package in two shapes: decimal strings toward humans and
// integer minor units toward the payment provider. This file is the single
// conversion point; nothing else in the repo is allowed to round currency.

const minorUnitDigits = 2

// ToMinorUnits parses a decimal price string ("1999.00") into integer minor
// units (199900). Parsing is pure integer arithmetic so values never pass
// through a float.
func ToMinorUnits(price string) (int64, error) {
	price = strings.TrimSpace(price)
	if price == "" {
		return 0, fmt.Errorf("empty price")
	}

	whole, frac := price, ""
	if i := strings.IndexByte(price, '.'); i >= 0 {
		whole, frac = price[:i], price[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > minorUnitDigits {
		return 0, fmt.Errorf("price %q has more than %d decimal places", price, minorUnitDigits)
	}
	// Pad the fraction out to the minor-unit scale: "0.5" means 50 paise.
	frac += strings.Repeat("0", minorUnitDigits-len(frac))

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || major < 0 {
		return 0, fmt.Errorf("malformed price %q", price)
	}
	minor, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price %q", price)
	}
	return major*100 + int64(minor), nil
}

// FormatAmount renders integer minor units as a grouped decimal string for
// display, e.g. 499900 -> "4,999.00".
func FormatAmount(minor int64, currency string) string {
	major := minor / 100
	cents := minor % 100

	digits := strconv.FormatInt(major, 10)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	return fmt.Sprintf("%s.%02d %s", strings.Join(groups, ","), cents, currency)
}
