package filtering

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Figures below this are taken as hourly rates.
	hourlyRateCeiling = 1000
	hoursPerYear      = 40 * 52
)

// Units glued to a figure ("$22hr", "45000USD") do not stop it from being read.
var salaryFigure = regexp.MustCompile(`\$?(\d+(?:,\d{3})*(?:\.\d+)?)`)

// ParseSalary returns every figure found in text as a yearly amount. Figures
// below 1000 are annualized as hourly rates, so "$60k" counts as 60 an hour.
func ParseSalary(text string) []float64 {
	matches := salaryFigure.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	values := make([]float64, 0, len(matches))
	for _, m := range matches {
		value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if value < hourlyRateCeiling {
			value *= hoursPerYear
		}
		values = append(values, value)
	}
	return values
}

// SalaryMeets reports whether any figure in text reaches minimum.
func SalaryMeets(text string, minimum int) bool {
	for _, value := range ParseSalary(text) {
		if value >= float64(minimum) {
			return true
		}
	}
	return false
}
