package presentation

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// cityCorrections replaces provider city names that are known to be misspelled.
// Keys are case-folded. This is an explicit list, not a fuzzy match.
var cityCorrections = map[string]string{
	"chinchvad": "Chinchwad",
}

// CorrectCityName trims name and applies the correction table
func CorrectCityName(name string) string {
	name = strings.TrimSpace(name)
	if fixed, ok := cityCorrections[cases.Fold().String(name)]; ok {
		return fixed
	}
	return name
}

// CityLabel formats "City, CC" with the corrected city name
func CityLabel(name, country string) string {
	name = CorrectCityName(name)
	if country == "" {
		return name
	}
	return fmt.Sprintf("%s, %s", name, country)
}
