// Package export renders purpose listings as CSV downloads.
package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rechesh-io/rechesh/internal/hierarchy"
	"github.com/rechesh-io/rechesh/internal/purchase"
	"github.com/rechesh-io/rechesh/internal/purpose"
)

// PurposeSource lists every purpose matching a query, unpaginated.
type PurposeSource interface {
	ListAll(ctx context.Context, q purpose.Query) ([]*purpose.Purpose, error)
}

// HierarchySource provides the nodes behind the Hierarchy column.
type HierarchySource interface {
	ListAll(ctx context.Context) ([]*hierarchy.Hierarchy, error)
}

type Service struct {
	purposes    PurposeSource
	hierarchies HierarchySource
}

func NewService(purposes PurposeSource, hierarchies HierarchySource) *Service {
	return &Service{purposes: purposes, hierarchies: hierarchies}
}

var csvHeader = []string{
	"ID", "Status", "Description", "Content", "Supplier", "Service Type",
	"Hierarchy", "Expected Delivery", "Creation Time", "Last Modified",
	"Comments", "EMF IDs", "Total Cost",
}

// Filename names the download after the day it was generated.
func Filename(now time.Time) string {
	return fmt.Sprintf("purposes_export_%s.csv", now.Format("02-01-2006"))
}

// WriteCSV streams every purpose matching q to w, already filtered and
// sorted the same way the list endpoint would be. Cells holding one
// value per purchase separate the values with newlines.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, q purpose.Query) error {
	purposes, err := s.purposes.ListAll(ctx, q)
	if err != nil {
		return fmt.Errorf("listing purposes for export: %w", err)
	}

	names, err := s.hierarchyNames(ctx)
	if err != nil {
		return err
	}

	if err := writeRecord(w, csvHeader); err != nil {
		return err
	}

	for _, p := range purposes {
		if err := writeRecord(w, buildRow(p, names)); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) hierarchyNames(ctx context.Context) (map[int64]string, error) {
	all, err := s.hierarchies.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hierarchies for export: %w", err)
	}

	names := make(map[int64]string, len(all))
	for _, h := range all {
		names[h.ID] = h.Name
	}

	return names, nil
}

func buildRow(p *purpose.Purpose, hierarchyNames map[int64]string) []string {
	var hierarchyName string
	if p.HierarchyID != nil {
		hierarchyName = hierarchyNames[*p.HierarchyID]
	}

	emfIDs := make([]string, len(p.Purchases))
	for i, pc := range p.Purchases {
		emfIDs[i] = pc.EmfID
	}

	return []string{
		strconv.FormatInt(p.ID, 10),
		string(p.Status),
		strOrEmpty(p.Description),
		strOrEmpty(p.Content),
		strOrEmpty(p.Supplier),
		strOrEmpty(p.ServiceType),
		hierarchyName,
		dateOrEmpty(p.ExpectedDelivery),
		p.CreationTime.Format(time.RFC3339),
		p.LastModified.Format(time.RFC3339),
		strOrEmpty(p.Comments),
		strings.Join(emfIDs, "\n"),
		formatTotalCost(p.Purchases),
	}
}

// formatTotalCost sums costs per currency, one currency per line in a
// fixed order.
func formatTotalCost(purchases []purchase.Purchase) string {
	totals := make(map[purchase.Currency]float64)

	for _, pc := range purchases {
		for _, c := range pc.Costs {
			totals[c.Currency] += c.Amount
		}
	}

	var parts []string

	for _, cur := range []purchase.Currency{purchase.CurrencyILS, purchase.CurrencyUSD, purchase.CurrencyEUR} {
		if amount, ok := totals[cur]; ok {
			parts = append(parts, fmt.Sprintf("%.2f %s", amount, cur))
		}
	}

	return strings.Join(parts, "\n")
}

// writeRecord emits one row with every field quoted, including the
// ones plain CSV would leave bare, so cells with embedded newlines
// survive any spreadsheet import.
func writeRecord(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}

	if _, err := io.WriteString(w, strings.Join(quoted, ",")+"\r\n"); err != nil {
		return fmt.Errorf("writing csv row: %w", err)
	}

	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func dateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format("2006-01-02")
}
