// Package csvcodec converts the catalog to and from the inventory CSV format.
//
// Decoding is deliberately naive: lines are split on '\n' and fields on ','.
// Quoted fields containing commas or newlines are not supported.
//
// Ids stay unique within a decoded catalog: a zero or negative id is replaced
// with a fresh one, and a row repeating an already accepted id is skipped.
package csvcodec

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kirana_stock/internal/models"
)

const FileName = "inventory.csv"

// Header is the column order written by Encode.
var Header = []string{"id", "itemName", "supplier", "vendorCycle", "nextOrderDay", "targetStock", "currentStock"}

var (
	ErrInvalidFormat  = errors.New("invalid csv format")
	ErrMissingHeaders = errors.New("missing required headers")
)

// Encode renders items in the given order. Text fields are always quoted.
func Encode(items []models.Item) string {
	var b strings.Builder
	// strings.Builder never returns a write error
	_ = EncodeTo(&b, items)
	return b.String()
}

func EncodeTo(w io.Writer, items []models.Item) error {
	if _, err := io.WriteString(w, strings.Join(Header, ",")); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, item := range items {
		row := strings.Join([]string{
			strconv.FormatInt(item.ID, 10),
			quote(item.ItemName),
			quote(item.Supplier),
			string(item.VendorCycle),
			string(item.NextOrderDay),
			strconv.Itoa(item.TargetStock),
			strconv.Itoa(item.CurrentStock),
		}, ",")
		if _, err := io.WriteString(w, "\n"+row); err != nil {
			return fmt.Errorf("failed to write csv row for item %d: %w", item.ID, err)
		}
	}
	return nil
}

// Result is the outcome of a successful Decode.
type Result struct {
	Items    []models.Item
	Accepted int
	// Skipped counts non-blank rows that were dropped, either for a wrong
	// value count or for failing the acceptance rules.
	Skipped int
}

// Decode parses CSV text. Columns are looked up by header name, so their
// order in the file does not matter. newID supplies ids for rows whose id
// column is not a usable number.
func Decode(text string, newID func() int64) (*Result, error) {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil, ErrInvalidFormat
	}

	headers := splitFields(lines[0])
	if missing := missingHeaders(headers); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeaders, strings.Join(missing, ", "))
	}

	res := &Result{Items: []models.Item{}}
	seen := make(map[int64]bool)
	for _, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		values := splitFields(line)
		if len(values) != len(headers) {
			res.Skipped++
			continue
		}

		item := decodeRow(headers, values, newID)
		if !acceptable(item) || seen[item.ID] {
			res.Skipped++
			continue
		}
		seen[item.ID] = true
		res.Items = append(res.Items, item)
	}
	res.Accepted = len(res.Items)
	return res, nil
}

func decodeRow(headers, values []string, newID func() int64) models.Item {
	var item models.Item
	for i, h := range headers {
		v := values[i]
		switch h {
		case "id":
			id, ok := models.ParseLeadingInt(v)
			if !ok || id <= 0 {
				id = newID()
			}
			item.ID = id
		case "targetStock":
			item.TargetStock = models.ParseStock(v)
		case "currentStock":
			item.CurrentStock = models.ParseStock(v)
		case "itemName":
			item.ItemName = unquote(v)
		case "supplier":
			item.Supplier = unquote(v)
		case "vendorCycle":
			item.VendorCycle = models.VendorCycle(unquote(v))
		case "nextOrderDay":
			item.NextOrderDay = models.OrderDay(unquote(v))
		}
	}
	return item
}

func acceptable(item models.Item) bool {
	return item.ItemName != "" &&
		item.Supplier != "" &&
		item.VendorCycle.Valid() &&
		item.NextOrderDay.Valid()
}

func missingHeaders(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, h := range Header {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// unquote strips at most one leading and one trailing double quote, then
// collapses doubled quotes.
func unquote(s string) string {
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.ReplaceAll(s, `""`, `"`)
}
