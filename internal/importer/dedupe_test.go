package importer

import "testing"

func TestKeyFor_CaseInsensitiveOwners(t *testing.T) {
	a := KeyFor(Contact{Owner1: "Jane Smith", Owner2: "BOB SMITH", StreetNumber: "10", StreetName: "Oak Ave", Suburb: "Kenmore"})
	b := KeyFor(Contact{Owner1: "jane smith", Owner2: "bob smith", StreetNumber: "10", StreetName: "Oak Ave", Suburb: "Kenmore"})
	if a != b {
		t.Errorf("keys differ on owner casing:\n%+v\n%+v", a, b)
	}

	c := KeyFor(Contact{Owner1: "Jane Smith", Owner2: "BOB SMITH", StreetNumber: "12", StreetName: "Oak Ave", Suburb: "Kenmore"})
	if a == c {
		t.Error("keys must differ on street number")
	}
}

func TestKeySet(t *testing.T) {
	s := NewKeySet()
	k := KeyFor(Contact{Owner1: "Smith", StreetName: "Oak Ave", Suburb: "Kenmore"})

	if s.Has(k) {
		t.Error("empty set must not contain key")
	}
	s.Add(k)
	if !s.Has(k) {
		t.Error("set must contain added key")
	}
}

func TestDuplicateLabel(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		want    string
	}{
		{
			name:    "both owners",
			contact: Contact{Owner1: "Jane", Owner2: "Bob", StreetNumber: "10", StreetName: "Oak Ave"},
			want:    "Jane & Bob at 10 Oak Ave",
		},
		{
			name:    "owner one only",
			contact: Contact{Owner1: "Jane", StreetNumber: "10", StreetName: "Oak Ave"},
			want:    "Jane at 10 Oak Ave",
		},
		{
			name:    "owner two only",
			contact: Contact{Owner2: "Bob", StreetNumber: "10", StreetName: "Oak Ave"},
			want:    "Bob at 10 Oak Ave",
		},
		{
			name:    "missing street number",
			contact: Contact{Owner1: "Jane", StreetName: "Oak Ave"},
			want:    "Jane at N/A Oak Ave",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DuplicateLabel(tt.contact); got != tt.want {
				t.Errorf("DuplicateLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
