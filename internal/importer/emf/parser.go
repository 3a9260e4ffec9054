package emf

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/rechesh-io/rechesh/internal/encoding"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

// Parser reads EMF spreadsheet exports and produces purpose params.
// It auto-detects which export format is being used by matching column
// headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]purpose.Params, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching EMF export format found")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:]), nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts purposes from data rows using the matched profile.
// Rows without an EMF id or description are skipped rather than failing
// the whole file; exports end with total rows that have neither.
func parseRows(p *Profile, cols colIndex, rows [][]string) []purpose.Params {
	var out []purpose.Params

	for _, row := range rows {
		emfID := cellValue(row, cols[p.EmfCol])
		if emfID == "" {
			continue
		}

		desc := cellValue(row, cols[p.DescCol])
		if desc == "" {
			continue
		}

		pc := purchase.Params{EmfID: emfID}
		if v := optCell(row, cols, p.DemandCol); v != "" {
			pc.DemandID = &v
		}
		if v := optCell(row, cols, p.OrderCol); v != "" {
			pc.OrderID = &v
		}
		if t, ok := parseDate(optCell(row, cols, p.DateCol)); ok {
			pc.DemandCreationDate = &t
		}
		if cost, ok := parseCost(p, cols, row); ok {
			pc.Costs = append(pc.Costs, cost)
		}

		params := purpose.Params{
			Status:      parseStatus(optCell(row, cols, p.StatusCol)),
			Description: &desc,
			Purchases:   []purchase.Params{pc},
		}
		if v := optCell(row, cols, p.SupplierCol); v != "" {
			params.Supplier = &v
		}
		if v := optCell(row, cols, p.ServiceCol); v != "" {
			params.ServiceType = &v
		}
		if t, ok := parseDate(optCell(row, cols, p.DeliveryCol)); ok {
			params.ExpectedDelivery = &t
		}

		out = append(out, params)
	}

	return out
}

// statusAliases maps the legacy system's Hebrew status labels to ours.
var statusAliases = map[string]purpose.Status{
	"בתהליך":     purpose.StatusInProgress,
	"הושלם":      purpose.StatusCompleted,
	"חתום":       purpose.StatusSigned,
	"סופק חלקית": purpose.StatusPartiallySupplied,
}

// parseStatus maps a raw status cell to a Status. Unknown and empty
// values default to in progress rather than failing the row.
func parseStatus(s string) purpose.Status {
	if status, err := purpose.ParseStatus(s); err == nil {
		return status
	}

	if status, ok := statusAliases[s]; ok {
		return status
	}

	return purpose.StatusInProgress
}

// currencyAliases maps the legacy system's currency labels to ours.
var currencyAliases = map[string]purchase.Currency{
	"ש\"ח": purchase.CurrencyILS,
	"₪":    purchase.CurrencyILS,
	"דולר": purchase.CurrencyUSD,
	"$":    purchase.CurrencyUSD,
	"אירו": purchase.CurrencyEUR,
	"€":    purchase.CurrencyEUR,
}

// parseCurrency maps a raw currency cell to a Currency, defaulting to
// shekels.
func parseCurrency(s string) purchase.Currency {
	if c, err := purchase.ParseCurrency(strings.ToUpper(s)); err == nil {
		return c
	}

	if c, ok := currencyAliases[s]; ok {
		return c
	}

	return purchase.CurrencyILS
}

// parseCost extracts a cost line from a row based on the profile's
// amount mode.
func parseCost(p *Profile, cols colIndex, row []string) (purchase.CostParams, bool) {
	switch p.AmountMode {
	case amountSingle:
		return parseSingleCost(p, cols, row)
	case amountSplit:
		return parseSplitCost(p, cols, row)
	}

	return purchase.CostParams{}, false
}

// parseSingleCost handles one amount column with a currency column
// beside it.
func parseSingleCost(p *Profile, cols colIndex, row []string) (purchase.CostParams, bool) {
	s := optCell(row, cols, p.AmountCol)
	if s == "" {
		return purchase.CostParams{}, false
	}

	amount, err := parseAmount(s)
	if err != nil || amount <= 0 {
		return purchase.CostParams{}, false
	}

	return purchase.CostParams{
		Currency: parseCurrency(optCell(row, cols, p.CurrencyCol)),
		Amount:   amount,
	}, true
}

// parseSplitCost handles separate shekel and foreign currency columns.
// The foreign column is treated as dollars.
func parseSplitCost(p *Profile, cols colIndex, row []string) (purchase.CostParams, bool) {
	if s := optCell(row, cols, p.IlsCol); s != "" {
		if amount, err := parseAmount(s); err == nil && amount > 0 {
			return purchase.CostParams{Currency: purchase.CurrencyILS, Amount: amount}, true
		}
	}

	if s := optCell(row, cols, p.UsdCol); s != "" {
		if amount, err := parseAmount(s); err == nil && amount > 0 {
			return purchase.CostParams{Currency: purchase.CurrencyUSD, Amount: amount}, true
		}
	}

	return purchase.CostParams{}, false
}

var dateFormats = []string{"02/01/2006", "02-01-2006"}

// parseDate tries the date layouts EMF exports use. Returns false for
// empty and unparseable values.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// optCell returns a trimmed cell for a column the profile marks
// optional, which may be absent from the header entirely.
func optCell(row []string, cols colIndex, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := cols[name]
	if !ok {
		return ""
	}

	return cellValue(row, idx)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
