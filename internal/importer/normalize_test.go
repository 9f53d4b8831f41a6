package importer

import "testing"

// rowFor builds a single-column header map and row for exercising one field.
func rowFor(field, value string) (RawRow, HeaderMap) {
	return RawRow{field: value}, BuildHeaderMap([]string{field})
}

func TestNormalizeRow_Dates(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // "" means nil expected
	}{
		{name: "datetime keeps date portion", input: "2024-03-15 10:00:00", want: "2024-03-15"},
		{name: "day first rewritten", input: "15-03-2024", want: "2024-03-15"},
		{name: "iso passes through", input: "2024-03-15", want: "2024-03-15"},
		{name: "excel serial", input: "45366", want: "2024-03-14"},
		{name: "excel serial with fraction", input: "45366.5", want: "2024-03-14"},
		{name: "invalid calendar date", input: "31-02-2024", want: ""},
		{name: "not a date", input: "N/A", want: ""},
		{name: "empty", input: "", want: ""},
		{name: "blacklisted", input: "Unsure", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, m := rowFor("last_sold_date", tt.input)
			c, _ := NormalizeRow(row, m)

			if tt.want == "" {
				if c.LastSoldDate != nil {
					t.Errorf("LastSoldDate = %q, want nil", *c.LastSoldDate)
				}
				return
			}
			if c.LastSoldDate == nil {
				t.Fatalf("LastSoldDate = nil, want %q", tt.want)
			}
			if *c.LastSoldDate != tt.want {
				t.Errorf("LastSoldDate = %q, want %q", *c.LastSoldDate, tt.want)
			}
		})
	}
}

func TestSerialDate_LegacyOffset(t *testing.T) {
	// Serials at or below 59 skip the phantom-leap-day decrement.
	tests := []struct {
		serial float64
		want   string
	}{
		{serial: 3, want: "1900-01-02"},
		{serial: 59, want: "1900-02-27"},
		{serial: 60, want: "1900-02-27"},
		{serial: 61, want: "1900-02-28"},
	}

	for _, tt := range tests {
		if got := serialDate(tt.serial); got != tt.want {
			t.Errorf("serialDate(%v) = %q, want %q", tt.serial, got, tt.want)
		}
	}
}

func TestNormalizeRow_Price(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		nil_  bool
	}{
		{name: "plain", input: "450000", want: 450000},
		{name: "currency formatted", input: "$1,250,000.50", want: 1250000.50},
		{name: "blacklisted", input: "NA", nil_: true},
		{name: "unparseable", input: "offers over 800k", nil_: true},
		{name: "empty", input: "", nil_: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, m := rowFor("price", tt.input)
			c, _ := NormalizeRow(row, m)

			if tt.nil_ {
				if c.Price != nil {
					t.Errorf("Price = %v, want nil", *c.Price)
				}
				return
			}
			if c.Price == nil {
				t.Fatalf("Price = nil, want %v", tt.want)
			}
			if *c.Price != tt.want {
				t.Errorf("Price = %v, want %v", *c.Price, tt.want)
			}
		})
	}
}

func TestNormalizeRow_BlacklistTokens(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "NA", want: ""},
		{input: "Unsure", want: ""},
		{input: "DNC", want: ""},
		{input: "DNC/unsure", want: ""},
		// Case-sensitive: lowercase variants survive.
		{input: "na", want: "na"},
		{input: "dnc", want: "dnc"},
		{input: "  Jane Smith  ", want: "Jane Smith"},
	}

	for _, tt := range tests {
		row, m := rowFor("owner_1", tt.input)
		c, _ := NormalizeRow(row, m)
		if c.Owner1 != tt.want {
			t.Errorf("Owner1 for %q = %q, want %q", tt.input, c.Owner1, tt.want)
		}
	}
}

func TestNormalizeRow_PhoneFallback(t *testing.T) {
	headers := BuildHeaderMap([]string{"phone_number", "owner_1_mobile", "owner_2_mobile"})

	t.Run("mobile promoted into empty phone", func(t *testing.T) {
		c, _ := NormalizeRow(RawRow{"phone_number": "", "owner_1_mobile": "0400 111 222"}, headers)
		if c.PhoneNumber != "0400 111 222" {
			t.Errorf("PhoneNumber = %q, want promoted mobile", c.PhoneNumber)
		}
		if c.Owner1Mobile != "" {
			t.Errorf("Owner1Mobile = %q, want cleared after promotion", c.Owner1Mobile)
		}
	})

	t.Run("existing phone untouched", func(t *testing.T) {
		c, _ := NormalizeRow(RawRow{"phone_number": "07 3333 4444", "owner_1_mobile": "0400 111 222"}, headers)
		if c.PhoneNumber != "07 3333 4444" {
			t.Errorf("PhoneNumber = %q, want original", c.PhoneNumber)
		}
		if c.Owner1Mobile != "0400 111 222" {
			t.Errorf("Owner1Mobile = %q, want untouched", c.Owner1Mobile)
		}
	})

	t.Run("owner 2 mobile never promoted", func(t *testing.T) {
		c, _ := NormalizeRow(RawRow{"owner_2_mobile": "0400 999 888"}, headers)
		if c.PhoneNumber != "" {
			t.Errorf("PhoneNumber = %q, want empty", c.PhoneNumber)
		}
	})
}

func TestNormalizeRow_Warnings(t *testing.T) {
	headers := BuildHeaderMap([]string{"price", "last_sold_date"})

	_, warnings := NormalizeRow(RawRow{"price": "lots", "last_sold_date": "soon"}, headers)
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2 entries", warnings)
	}

	_, warnings = NormalizeRow(RawRow{"price": "NA", "last_sold_date": ""}, headers)
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none for blacklisted/empty values", warnings)
	}
}
