// Package classify holds the pure keyword classifiers used by the curator.
// Both functions are stateless: classification is recomputed from the raw
// strings wherever it is needed, never cached on a record.
package classify

import "strings"

// Geography is the closed set of location classes.
type Geography int

const (
	Remote Geography = iota
	IndiaMetro
	Other
)

func (g Geography) String() string {
	switch g {
	case Remote:
		return "remote"
	case IndiaMetro:
		return "india-metro"
	default:
		return "other"
	}
}

// Location classifies a free-text location string. A location mentioning
// "india" or any metro keyword is IndiaMetro; otherwise one mentioning
// "remote" is Remote; everything else is Other. Matching is case-insensitive
// substring, same as the source adapters' own filters.
func Location(location string, metros []string) Geography {
	loc := strings.ToLower(location)

	if strings.Contains(loc, "india") {
		return IndiaMetro
	}
	for _, m := range metros {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" && strings.Contains(loc, m) {
			return IndiaMetro
		}
	}
	if strings.Contains(loc, "remote") {
		return Remote
	}
	return Other
}

// IsRemote reports whether the location string mentions "remote". Display
// sectioning uses this directly: the India section takes everything that is
// not remote, regardless of metro match.
func IsRemote(location string) bool {
	return strings.Contains(strings.ToLower(location), "remote")
}

// Priority scores a role title: 0 for core engineering roles, 1 for the rest.
// The score orders output, it never excludes anything.
func Priority(role string, keywords []string) int {
	r := strings.ToLower(role)
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(r, kw) {
			return 0
		}
	}
	return 1
}
