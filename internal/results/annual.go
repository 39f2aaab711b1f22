// Package results loads annual daylight simulation output from the flat
// text files the external toolkit writes: one illuminance file with a line
// per sensor, and one sun-up-hours file listing the hour indexes those
// values belong to.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HoursPerYear is the fixed length of every per-sensor series.
const HoursPerYear = 8760

// AnnualResult holds one 8760-entry series per sensor. Entries at sunlit
// hours carry the parsed values; every other hour is zero.
type AnnualResult struct {
	Name    string      `json:"name"`
	Sensors [][]float64 `json:"sensors"`
}

// Load parses an illuminance file and its companion sun-up-hours file.
//
// The sun-up-hours file has one float-valued line per sunlit hour; each is
// truncated to an integer hour index in [0, 8759]. Each illuminance line is
// one sensor: numeric tokens separated by tabs, commas or spaces (runs
// collapsed), consumed left-to-right, one per sunlit hour in increasing hour
// order. A line with fewer values than sunlit hours is an error.
func Load(illFile, sunUpHoursFile string) (*AnnualResult, error) {
	sunUpHours, err := loadSunUpHours(sunUpHoursFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(illFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read illuminance file: %w", err)
	}

	var sensors [][]float64
	for i, line := range splitLines(string(data)) {
		series, err := sensorSeries(line, sunUpHours)
		if err != nil {
			return nil, fmt.Errorf("illuminance line %d: %w", i+1, err)
		}
		sensors = append(sensors, series)
	}

	name := strings.TrimSuffix(filepath.Base(illFile), filepath.Ext(illFile))
	return &AnnualResult{Name: name, Sensors: sensors}, nil
}

// loadSunUpHours parses the hour indexes, preserving file order.
func loadSunUpHours(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sun-up-hours file: %w", err)
	}

	var hours []int
	for i, line := range splitLines(string(data)) {
		f, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return nil, fmt.Errorf("sun-up-hours line %d: %w", i+1, err)
		}
		hour := int(f)
		if hour < 0 || hour >= HoursPerYear {
			return nil, fmt.Errorf("sun-up-hours line %d: hour %d out of range [0, %d]", i+1, hour, HoursPerYear-1)
		}
		hours = append(hours, hour)
	}
	return hours, nil
}

// sensorSeries expands one sensor line to a full-year series: the next
// unread value lands at each listed sunlit hour, zeros everywhere else.
func sensorSeries(line string, sunUpHours []int) ([]float64, error) {
	tokens := splitValues(line)
	if len(tokens) < len(sunUpHours) {
		return nil, fmt.Errorf("has %d values but %d sunlit hours are declared", len(tokens), len(sunUpHours))
	}

	series := make([]float64, HoursPerYear)
	for i, hour := range sunUpHours {
		v, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		series[hour] = v
	}
	return series, nil
}

// splitValues tokenizes a sensor line on tabs, commas and spaces, with
// consecutive delimiters collapsed.
func splitValues(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == '\t' || r == ',' || r == ' '
	})
}

// splitLines drops blank lines and carriage returns.
func splitLines(data string) []string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
