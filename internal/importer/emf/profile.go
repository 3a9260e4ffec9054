package emf

// amountMode determines how cost amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one amount column plus a currency column.
	amountSingle amountMode = iota
	// amountSplit means separate shekel and foreign currency columns.
	amountSplit
)

// Profile describes the column layout of one EMF export format.
// Adding a new format is just adding a new Profile to the profiles
// slice.
type Profile struct {
	Name        string
	EmfCol      string
	DescCol     string
	SupplierCol string
	StatusCol   string
	ServiceCol  string
	DemandCol   string
	DateCol     string // demand creation date
	OrderCol    string
	DeliveryCol string
	AmountMode  amountMode
	AmountCol   string // used when AmountMode == amountSingle
	CurrencyCol string // used when AmountMode == amountSingle
	IlsCol      string // used when AmountMode == amountSplit
	UsdCol      string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.EmfCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.IlsCol, p.UsdCol)
	}

	return cols
}

// profiles is the ordered list of EMF export formats to try during
// auto-detection. More specific profiles should come first to avoid
// false matches.
var profiles = []Profile{
	// The native export screen, Hebrew headers.
	{
		Name:        "emf",
		EmfCol:      "מספר EMF",
		DescCol:     "תיאור",
		SupplierCol: "ספק",
		StatusCol:   "סטטוס",
		ServiceCol:  "סוג שירות",
		DemandCol:   "מספר דרישה",
		DateCol:     "תאריך דרישה",
		OrderCol:    "מספר הזמנה",
		DeliveryCol: "תאריך אספקה",
		AmountMode:  amountSplit,
		IlsCol:      "סכום בש\"ח",
		UsdCol:      "סכום מט\"ח",
	},
	// The monthly report generator, English headers.
	{
		Name:        "report",
		EmfCol:      "EMF ID",
		DescCol:     "Description",
		SupplierCol: "Supplier",
		StatusCol:   "Status",
		ServiceCol:  "Service Type",
		DemandCol:   "Demand ID",
		DateCol:     "Demand Date",
		OrderCol:    "Order ID",
		DeliveryCol: "Delivery Date",
		AmountMode:  amountSingle,
		AmountCol:   "Amount",
		CurrencyCol: "Currency",
	},
}
