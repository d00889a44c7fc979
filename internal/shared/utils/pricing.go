package utils

import "fmt"

// FormatPrice formats a price in the smallest currency unit (centavos) for
// display. For example, 100000 DOP centavos renders as "RD$1,000.00".
func FormatPrice(cents int64, currency string) string {
	whole := cents / 100
	frac := cents % 100
	if frac < 0 {
		frac = -frac
	}

	symbols := map[string]string{
		"DOP": "RD$",
		"USD": "$",
	}

	symbol, ok := symbols[currency]
	if !ok {
		return fmt.Sprintf("%s %d.%02d", currency, whole, frac)
	}
	return fmt.Sprintf("%s%s.%02d", symbol, groupThousands(whole), frac)
}

func groupThousands(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return sign + s
	}

	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return sign + string(out)
}
