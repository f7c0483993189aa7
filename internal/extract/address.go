package extract

import (
	"regexp"
	"strings"
)

// Address holds the split components of a site-address blob.
type Address struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
}

// AU state + 4-digit postcode at the end of an address line.
var stateZipRe = regexp.MustCompile(`\b([A-Z]{2,3})[ \t]+(\d{4})\b`)

// ParseAddress splits a captured address blob into components. Builders
// print addresses either across lines or comma-joined on one line; both are
// treated as a sequence of parts where the first part is the street, an
// optional middle part is address2, and the trailing part carries
// "CITY STATE 9999".
func ParseAddress(blob string) Address {
	var out Address
	parts := splitAddressParts(blob)
	if len(parts) == 0 {
		return out
	}

	last := parts[len(parts)-1]
	if m := stateZipRe.FindStringSubmatchIndex(last); m != nil {
		out.State = last[m[2]:m[3]]
		out.Zip = last[m[4]:m[5]]
		head := collapseWhitespace(last[:m[0]])
		if len(parts) == 1 {
			// single-part blob like "12 High St BRISBANE QLD 4000"
			out.Address1, out.City = splitStreetCity(head)
			return out
		}
		out.City = head
		parts = parts[:len(parts)-1]
	}

	if len(parts) > 0 {
		out.Address1 = parts[0]
	}
	if len(parts) > 1 {
		out.Address2 = strings.Join(parts[1:], ", ")
	}
	return out
}

func splitAddressParts(blob string) []string {
	raw := strings.FieldsFunc(blob, func(r rune) bool { return r == '\n' || r == ',' })
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if v := collapseWhitespace(p); v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

// splitStreetCity peels an all-caps suburb off the end of a street line.
// "1505 Rosebank Way West HOPE ISLAND" -> street, city.
func splitStreetCity(s string) (street, city string) {
	words := strings.Fields(s)
	i := len(words)
	for i > 0 && isUpperWord(words[i-1]) {
		i--
	}
	if i == len(words) || i == 0 {
		return s, ""
	}
	return strings.Join(words[:i], " "), strings.Join(words[i:], " ")
}

func isUpperWord(w string) bool {
	hasLetter := false
	for _, r := range w {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// SplitName splits a full customer name into first and last, matching how
// the ordering system wants names. A single token becomes the last name.
func SplitName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
