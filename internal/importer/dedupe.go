package importer

import (
	"fmt"
	"strings"
)

// ContactKey is the composite identity of a contact. Owner names are
// lowercased so casing differences between files never create duplicates.
type ContactKey struct {
	Owner1       string
	Owner2       string
	StreetNumber string
	StreetName   string
	Suburb       string
}

// KeyFor derives the identity key of a resolved contact.
func KeyFor(c Contact) ContactKey {
	return ContactKey{
		Owner1:       strings.ToLower(c.Owner1),
		Owner2:       strings.ToLower(c.Owner2),
		StreetNumber: c.StreetNumber,
		StreetName:   c.StreetName,
		Suburb:       c.Suburb,
	}
}

// KeySet is a set of identity keys: the ledger's current contents for a
// suburb, or the keys accepted so far within one run.
type KeySet map[ContactKey]struct{}

// NewKeySet returns an empty set.
func NewKeySet() KeySet { return make(KeySet) }

// Add inserts a key.
func (s KeySet) Add(k ContactKey) { s[k] = struct{}{} }

// Has reports membership.
func (s KeySet) Has(k ContactKey) bool {
	_, ok := s[k]
	return ok
}

// DuplicateLabel renders the human-readable description recorded for a
// duplicate row, e.g. `Jane Smith & Bob Smith at 10 Oak Ave`.
func DuplicateLabel(c Contact) string {
	owners := c.Owner1
	switch {
	case c.Owner1 != "" && c.Owner2 != "":
		owners = c.Owner1 + " & " + c.Owner2
	case c.Owner1 == "":
		owners = c.Owner2
	}

	number := c.StreetNumber
	if number == "" {
		number = "N/A"
	}

	return fmt.Sprintf("%s at %s %s", owners, number, c.StreetName)
}
