package importer

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already canonical", input: "owner_1", want: "owner_1"},
		{name: "uppercase", input: "Owner_1", want: "owner_1"},
		{name: "spaces to underscore", input: "Street Name", want: "street_name"},
		{name: "run of whitespace", input: "Owner  1   Email", want: "owner_1_email"},
		{name: "leading and trailing space", input: "  Suburb  ", want: "suburb"},
		{name: "tab separated", input: "Last\tSold\tDate", want: "last_sold_date"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.input); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildHeaderMap_Aliases(t *testing.T) {
	headers := []string{"Owner1_Email", "Owner2_Email", "Own1_Mob", "Own2_Mob", "Street_No"}
	m := BuildHeaderMap(headers)

	want := map[string]string{
		"owner_1_email":  "Owner1_Email",
		"owner_2_email":  "Owner2_Email",
		"owner_1_mobile": "Own1_Mob",
		"owner_2_mobile": "Own2_Mob",
		"street_number":  "Street_No",
	}
	for field, orig := range want {
		if got := m[field]; got != orig {
			t.Errorf("HeaderMap[%q] = %q, want %q", field, got, orig)
		}
	}
}

func TestBuildHeaderMap_MissingFieldsAbsent(t *testing.T) {
	m := BuildHeaderMap([]string{"Owner 1", "Street Name"})

	if _, ok := m["owner_1"]; !ok {
		t.Error("owner_1 should be mapped")
	}
	if _, ok := m["owner_2"]; ok {
		t.Error("owner_2 should be absent when the file has no matching header")
	}

	row := RawRow{"Owner 1": "Smith"}
	if got := m.Value(row, "owner_2"); got != "" {
		t.Errorf("Value for absent field = %q, want empty", got)
	}
	if got := m.Value(row, "owner_1"); got != "Smith" {
		t.Errorf("Value(owner_1) = %q, want %q", got, "Smith")
	}
}

func TestBuildHeaderMap_FirstOccurrenceWins(t *testing.T) {
	m := BuildHeaderMap([]string{"Owner 1", "owner_1"})
	if got := m["owner_1"]; got != "Owner 1" {
		t.Errorf("HeaderMap[owner_1] = %q, want first occurrence %q", got, "Owner 1")
	}
}
