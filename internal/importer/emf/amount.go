package emf

import (
	"strconv"
	"strings"
)

// parseAmount parses an amount cell like "1,234.56" or "₪ 1,234.56".
// Thousands separators and currency symbols are stripped.
func parseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "₪")
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.TrimPrefix(clean, "€")
	clean = strings.TrimSpace(clean)
	clean = strings.ReplaceAll(clean, ",", "")

	return strconv.ParseFloat(clean, 64)
}
