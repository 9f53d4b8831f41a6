package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Blacklist tokens collapse to empty (nil for price). Case-sensitive: these
// are the literal placeholder values agents type into the source
// spreadsheets.
var blacklistTokens = map[string]struct{}{
	"NA":         {},
	"Unsure":     {},
	"DNC":        {},
	"DNC/unsure": {},
}

const isoDate = "2006-01-02"

// excelEpoch is day zero of the legacy spreadsheet serial-date scheme.
var excelEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// NormalizeRow coerces one raw row into a draft Contact. Street fields are
// carried through untouched for the resolver; suburb is overwritten by the
// orchestrator with the import's target suburb.
//
// Unparseable prices and dates degrade to nil; each such loss is reported in
// the returned warnings so a strict-mode caller can surface it.
func NormalizeRow(row RawRow, headers HeaderMap) (Contact, []string) {
	var warnings []string

	field := func(name string) string {
		return normalizeString(headers.Value(row, name))
	}

	c := Contact{
		Owner1:        field("owner_1"),
		Owner2:        field("owner_2"),
		Owner1Email:   field("owner_1_email"),
		Owner2Email:   field("owner_2_email"),
		PhoneNumber:   field("phone_number"),
		Owner1Mobile:  field("owner_1_mobile"),
		Owner2Mobile:  field("owner_2_mobile"),
		Outcome:       field("outcome"),
		StreetName:    field("street_name"),
		StreetNumber:  field("street_number"),
		Suburb:        field("suburb"),
		Status:        field("status"),
		MarketingPlan: field("marketing_plan"),
		ActivityLog:   field("activity_log"),
	}

	if raw := strings.TrimSpace(headers.Value(row, "price")); raw != "" && !blacklisted(raw) {
		if v, ok := parsePrice(raw); ok {
			c.Price = &v
		} else {
			warnings = append(warnings, fmt.Sprintf("price: cannot parse %q", raw))
		}
	}

	if raw := strings.TrimSpace(headers.Value(row, "last_sold_date")); raw != "" && !blacklisted(raw) {
		if d, ok := parseDate(raw); ok {
			c.LastSoldDate = &d
		} else {
			warnings = append(warnings, fmt.Sprintf("last_sold_date: cannot parse %q", raw))
		}
	}

	// Mobile-to-phone promotion: once per row, one direction only.
	if c.PhoneNumber == "" && c.Owner1Mobile != "" {
		c.PhoneNumber = c.Owner1Mobile
		c.Owner1Mobile = ""
	}

	return c, warnings
}

func blacklisted(s string) bool {
	_, ok := blacklistTokens[s]
	return ok
}

func normalizeString(raw string) string {
	s := strings.TrimSpace(raw)
	if blacklisted(s) {
		return ""
	}
	return s
}

// parsePrice strips currency formatting and parses the remainder as a
// floating-point amount.
func parsePrice(raw string) (float64, bool) {
	s := strings.ReplaceAll(raw, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDate normalizes a sold date to YYYY-MM-DD. Accepted forms, in
// priority order: a datetime whose date portion is kept, DD-MM-YYYY,
// YYYY-MM-DD, and finally a legacy spreadsheet serial number.
func parseDate(raw string) (string, bool) {
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t.Format(isoDate), true
	}
	if t, err := time.Parse("02-01-2006", raw); err == nil {
		return t.Format(isoDate), true
	}
	if t, err := time.Parse(isoDate, raw); err == nil {
		return t.Format(isoDate), true
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return serialDate(serial), true
	}
	return "", false
}

// serialDate converts a spreadsheet serial number to an ISO date. Serials
// past 59 drop one day for the phantom 1900-02-29 the legacy serial scheme
// counts. The uniform -2 offset matches what the ledger already holds; do
// not correct it for pre-March-1900 serials without migrating stored dates.
func serialDate(serial float64) string {
	days := int(serial)
	if days > 59 {
		days--
	}
	return excelEpoch.AddDate(0, 0, days-2).Format(isoDate)
}
