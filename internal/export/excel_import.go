package export

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/r4mxae/project-hub/internal/models"
)

// Sheet is the raw content of an uploaded spreadsheet's first sheet,
// returned to the caller so it can build a column mapping.
type Sheet struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Inspect reads the first sheet of an uploaded workbook. The first row is
// treated as the header row.
func Inspect(r io.Reader) (Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return Sheet{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return Sheet{}, fmt.Errorf("read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return Sheet{}, fmt.Errorf("sheet %q is empty", name)
	}
	return Sheet{Headers: rows[0], Rows: rows[1:]}, nil
}

// requiredFields must all be present in a column mapping before any row
// is converted.
var requiredFields = []string{
	"item", "sector", "department", "itemDescription", "category",
	"awardedBefore", "allocatedBudget", "recommendedPRDate", "itemReference",
}

var optionalFields = []string{
	"requestedPreviously", "prequalificationRecommended",
	"recommendedVendors", "additionalInformation",
}

var dmyPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// normalizeDate coerces whatever a spreadsheet cell holds into
// DD-MM-YYYY. Already-normalized values pass through; other textual
// formats are parsed, and bare numbers are treated as spreadsheet serial
// dates. Unrecognized values come back unchanged.
func normalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || dmyPattern.MatchString(s) {
		return s
	}

	layouts := []string{
		"2006-01-02", "02/01/2006", "2/1/2006", "01-02-06",
		"Jan 2, 2006", "2 Jan 2006", "January 2, 2006",
		"01-02-2006 15:04:05", "2006-01-02T15:04:05Z07:00",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02-01-2006")
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		epoch := time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
		t := epoch.AddDate(0, 0, int(serial)-2)
		return t.Format("02-01-2006")
	}
	return s
}

// MapItems converts uploaded rows to procurement items using a
// field-to-column mapping. Every required field must be mapped; rows with
// a blank item name are skipped. Imported items always start out
// unsubmitted and pending regardless of the source data.
func MapItems(rows [][]string, mapping map[string]int) ([]models.ProcurementItem, error) {
	var missing []string
	for _, field := range requiredFields {
		if _, ok := mapping[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("mapping is missing required field(s): %s", strings.Join(missing, ", "))
	}
	known := make(map[string]bool, len(requiredFields)+len(optionalFields))
	for _, f := range requiredFields {
		known[f] = true
	}
	for _, f := range optionalFields {
		known[f] = true
	}
	for field := range mapping {
		if !known[field] {
			return nil, fmt.Errorf("mapping has unknown field %q", field)
		}
	}

	cell := func(row []string, field string) string {
		idx, ok := mapping[field]
		if !ok || idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var items []models.ProcurementItem
	for i, row := range rows {
		name := cell(row, "item")
		if name == "" {
			continue
		}

		// an empty budget cell imports as 0; only non-empty garbage rejects
		var budget float64
		if budgetRaw := strings.ReplaceAll(cell(row, "allocatedBudget"), ",", ""); budgetRaw != "" {
			var err error
			budget, err = strconv.ParseFloat(budgetRaw, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid allocated budget %q", i+2, cell(row, "allocatedBudget"))
			}
		}

		items = append(items, models.ProcurementItem{
			Item:                        name,
			Sector:                      cell(row, "sector"),
			Department:                  cell(row, "department"),
			ItemDescription:             cell(row, "itemDescription"),
			Category:                    cell(row, "category"),
			AwardedBefore:               normalizeDate(cell(row, "awardedBefore")),
			AllocatedBudget:             budget,
			RecommendedPRDate:           normalizeDate(cell(row, "recommendedPRDate")),
			RequestedPreviously:         cell(row, "requestedPreviously"),
			PrequalificationRecommended: cell(row, "prequalificationRecommended"),
			RecommendedVendors:          cell(row, "recommendedVendors"),
			AdditionalInformation:       cell(row, "additionalInformation"),
			ItemReference:               cell(row, "itemReference"),
			IsSubmitted:                 false,
			Status:                      models.ItemPending,
		})
	}
	return items, nil
}
