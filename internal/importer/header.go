package importer

import (
	"regexp"
	"strings"
)

// HeaderMap maps canonical field names to the original header strings found
// in the file. A canonical field with no matching header is simply absent;
// lookups through Value then yield "" for every row.
type HeaderMap map[string]string

// Canonical contact fields, in ledger column order.
var canonicalFields = []string{
	"owner_1", "owner_2",
	"owner_1_email", "owner_2_email",
	"phone_number", "owner_1_mobile", "owner_2_mobile",
	"outcome",
	"street_name", "street_number", "suburb",
	"status", "last_sold_date", "price",
	"marketing_plan", "activity_log",
}

// headerAliases translates common spreadsheet header variants (already
// normalized) to canonical field names.
var headerAliases = map[string]string{
	"owner1":       "owner_1",
	"owner2":       "owner_2",
	"owner1_email": "owner_1_email",
	"owner2_email": "owner_2_email",
	"own1_mob":     "owner_1_mobile",
	"own2_mob":     "owner_2_mobile",
	"owner1_mob":   "owner_1_mobile",
	"owner2_mob":   "owner_2_mobile",
	"phone":        "phone_number",
	"street":       "street_name",
	"street_no":    "street_number",
	"sold_date":    "last_sold_date",
	"sale_price":   "price",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeHeader canonicalizes a raw header string: trim, lowercase,
// whitespace runs become a single underscore.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return whitespaceRun.ReplaceAllString(h, "_")
}

// BuildHeaderMap maps canonical field names to the original headers of this
// file. Built once per run; first occurrence wins when a file repeats a
// header.
func BuildHeaderMap(headerRow []string) HeaderMap {
	byCanonical := make(map[string]string, len(headerRow))
	for _, orig := range headerRow {
		norm := NormalizeHeader(orig)
		if alias, ok := headerAliases[norm]; ok {
			norm = alias
		}
		if _, seen := byCanonical[norm]; !seen {
			byCanonical[norm] = orig
		}
	}

	m := make(HeaderMap, len(canonicalFields))
	for _, field := range canonicalFields {
		if orig, ok := byCanonical[field]; ok {
			m[field] = orig
		}
	}
	return m
}

// Value returns the raw cell text for a canonical field, or "" when the
// file has no matching column.
func (m HeaderMap) Value(row RawRow, field string) string {
	orig, ok := m[field]
	if !ok {
		return ""
	}
	return row[orig]
}
