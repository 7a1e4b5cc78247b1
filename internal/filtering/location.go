package filtering

import (
	"slices"
	"strings"
)

// LocationMatches reports whether the two locations share a word or one contains
// the other. Commas are ignored and the comparison is case-insensitive.
func LocationMatches(location, target string) bool {
	location = strings.ToLower(strings.TrimSpace(location))
	target = strings.ToLower(strings.TrimSpace(target))
	if location == "" || target == "" {
		return false
	}

	locationParts := strings.Fields(strings.ReplaceAll(location, ",", " "))
	for _, part := range strings.Fields(strings.ReplaceAll(target, ",", " ")) {
		if slices.Contains(locationParts, part) {
			return true
		}
	}

	return strings.Contains(location, target) || strings.Contains(target, location)
}
