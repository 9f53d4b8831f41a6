package importer

import "strings"

// Resolution is the outcome of matching one row's street fields against the
// canonical index.
type Resolution struct {
	StreetName   string
	StreetNumber string

	// Unmatched marks a forced fallback: the name had no exact or substring
	// match and was replaced by the suburb's first canonical street.
	Unmatched bool

	// Dropped means the suburb has no canonical streets at all, so there is
	// no candidate to fall back to. The row is excluded from the import.
	Dropped bool
}

// ResolveStreet reconciles a raw street name and number against the
// canonical index. rowIdx is the row's position within the file's data rows
// and drives the round-robin street-number assignment.
//
// Matching order: exact membership, then case-insensitive substring in
// either direction (first canonical street wins, in catalog order), then a
// forced fallback to the first canonical street.
func ResolveStreet(rawName, rawNumber string, rowIdx int, idx *StreetIndex) Resolution {
	name := strings.TrimSpace(rawName)

	var res Resolution
	switch {
	case idx.Has(name):
		res.StreetName = name
	default:
		if match, ok := substringMatch(name, idx.Streets()); ok {
			res.StreetName = match
			break
		}
		if idx.Len() == 0 {
			return Resolution{Dropped: true}
		}
		res.StreetName = idx.Streets()[0]
		res.Unmatched = true
	}

	res.StreetNumber = resolveNumber(rawNumber, res.StreetName, rowIdx, idx)
	return res
}

// substringMatch returns the first canonical street that contains the
// candidate, or that the candidate contains, ignoring case.
func substringMatch(candidate string, streets []string) (string, bool) {
	lower := strings.ToLower(candidate)
	for _, street := range streets {
		canon := strings.ToLower(street)
		if strings.Contains(canon, lower) || strings.Contains(lower, canon) {
			return street, true
		}
	}
	return "", false
}

// resolveNumber trims a supplied street number, or round-robins over the
// street's known numbers by file position when the row has none.
func resolveNumber(rawNumber, street string, rowIdx int, idx *StreetIndex) string {
	if n := strings.TrimSpace(rawNumber); n != "" {
		return n
	}
	nums := idx.Numbers(street)
	if len(nums) == 0 {
		return ""
	}
	return nums[rowIdx%len(nums)]
}
