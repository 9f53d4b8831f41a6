package importer

import "testing"

func kenmoreIndex() *StreetIndex {
	idx := NewStreetIndex()
	idx.Add("Main Street", "1")
	idx.Add("Main Street", "3")
	idx.Add("Main Street", "5")
	idx.Add("Oak Ave", "10")
	idx.Add("Oak Ave", "12")
	return idx
}

func TestResolveStreet_ExactMatch(t *testing.T) {
	res := ResolveStreet("Oak Ave", "7", 0, kenmoreIndex())
	if res.StreetName != "Oak Ave" || res.Unmatched || res.Dropped {
		t.Errorf("got %+v, want exact match on Oak Ave", res)
	}
	if res.StreetNumber != "7" {
		t.Errorf("StreetNumber = %q, want supplied %q", res.StreetNumber, "7")
	}
}

func TestResolveStreet_SubstringMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "candidate inside canonical", input: "Main", want: "Main Street"},
		{name: "case insensitive", input: "main street", want: "Main Street"},
		{name: "canonical inside candidate", input: "Oak Ave (north end)", want: "Oak Ave"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolveStreet(tt.input, "", 0, kenmoreIndex())
			if res.StreetName != tt.want {
				t.Errorf("StreetName = %q, want %q", res.StreetName, tt.want)
			}
			if res.Unmatched {
				t.Error("substring match must not be flagged unmatched")
			}
		})
	}
}

func TestResolveStreet_ForcedFallback(t *testing.T) {
	idx := NewStreetIndex()
	idx.Add("Oak Ave", "10")

	res := ResolveStreet("Pine Rd", "", 0, idx)
	if res.Dropped {
		t.Fatal("row must not be dropped when a fallback street exists")
	}
	if !res.Unmatched {
		t.Error("forced fallback must be flagged unmatched")
	}
	if res.StreetName != "Oak Ave" {
		t.Errorf("StreetName = %q, want fallback %q", res.StreetName, "Oak Ave")
	}
}

func TestResolveStreet_EmptyIndexDrops(t *testing.T) {
	res := ResolveStreet("Pine Rd", "4", 0, NewStreetIndex())
	if !res.Dropped {
		t.Error("row must be dropped when the suburb has no canonical streets")
	}
}

func TestResolveStreet_RoundRobinNumbers(t *testing.T) {
	idx := kenmoreIndex()

	// Numbers cycle by file position, wrapping at the list length.
	want := []string{"1", "3", "5", "1"}
	for i, w := range want {
		res := ResolveStreet("Main Street", "", i, idx)
		if res.StreetNumber != w {
			t.Errorf("row %d: StreetNumber = %q, want %q", i, res.StreetNumber, w)
		}
	}
}

func TestResolveStreet_RoundRobinUsesFileIndexNotStreetIndex(t *testing.T) {
	idx := kenmoreIndex()

	// A row at file position 1 resolving to Oak Ave takes Oak Ave's second
	// number even if it is the first Oak Ave row in the file.
	res := ResolveStreet("Oak", "", 1, idx)
	if res.StreetName != "Oak Ave" {
		t.Fatalf("StreetName = %q, want %q", res.StreetName, "Oak Ave")
	}
	if res.StreetNumber != "12" {
		t.Errorf("StreetNumber = %q, want %q", res.StreetNumber, "12")
	}
}

func TestResolveStreet_NoKnownNumbers(t *testing.T) {
	idx := NewStreetIndex()
	idx.Add("Bare Lane", "")

	res := ResolveStreet("Bare Lane", "", 0, idx)
	if res.StreetNumber != "" {
		t.Errorf("StreetNumber = %q, want empty when no canonical numbers exist", res.StreetNumber)
	}
}
