// Copyright 2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package validate gates metric tables before they reach the database:
// required columns must be present and every non-null value must fall
// inside its domain range.
package validate

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrOutOfRange    = errors.New("value out of range")
	ErrNegative      = errors.New("value must be non-negative")
)

// Record exposes a table row's numeric columns by name. A nil entry is
// a null cell.
type Record interface {
	Fields() map[string]*float64
}

// Bounds holds the inclusive [lower, upper] range for each bounded
// column. Latitude and longitude have dedicated entries.
var Bounds = map[string][2]float64{
	"happiness_index":              {0, 100},
	"health_index":                 {0, 100},
	"traffic_congestion_score":     {0, 100},
	"education_level_score":        {0, 100},
	"cultural_events_per_capita":   {0, 100},
	"sports_facilities_per_capita": {0, 100},
	"forest_proximity_score":       {0, 100},
	"green_space_ratio":            {0, 100},
	"humidity":                     {0, 100},
	"cost_of_living_index":         {0, 100},
	"housing_price_index":          {0, 100},
	"air_quality_index":            {0, 500},
	"digital_economy_score":        {0, 100},
	"higher_education_score":       {0, 100},
	"life_satisfaction_score":      {0, 10},
	"cultural_resources_index":     {0, 100},
	"forest_area_percent":          {0, 100},
	"latitude":                     {-90, 90},
	"longitude":                    {-180, 180},
}

// NonNegative lists columns that only need a lower bound of zero.
var NonNegative = []string{
	"population",
	"distance_to_water",
	"distance_to_mountains",
	"distance_to_forest",
	"distance_to_park",
	"wind_speed_avg",
	"average_salary",
	"rent_price_index",
	"employee_income_index",
	"consumer_price_index",
	"rent_expenditure_percent_gdp",
	"house_price_to_income_ratio",
	"sports_expenditure_percent_gdp",
	"road_traffic_mortality_rate",
	"life_expectancy_years",
}

// statsColumns get min/max/mean logged by LogQuality.
var statsColumns = []string{
	"happiness_index",
	"health_index",
	"traffic_congestion_score",
	"education_level_score",
	"forest_proximity_score",
	"green_space_ratio",
	"digital_economy_score",
	"higher_education_score",
	"life_satisfaction_score",
	"cultural_resources_index",
	"forest_area_percent",
}

// RequiredFields fails when any required name is not among columns,
// naming every missing column.
func RequiredFields(columns []string, required []string) error {
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col] = true
	}

	var missing []string
	for _, field := range required {
		if !present[field] {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	return nil
}

// Ranges checks every non-null value of every record against the bound
// table and the non-negative set. Columns are checked in sorted order
// so failures are deterministic; the error names the column and the
// offending row indices.
func Ranges(records []Record) error {
	violations := make(map[string][]int)

	for i, record := range records {
		for col, value := range record.Fields() {
			if value == nil {
				continue
			}

			if bound, ok := Bounds[col]; ok {
				if *value < bound[0] || *value > bound[1] {
					violations[col] = append(violations[col], i)
				}
			}
		}
	}

	if col, rows := firstViolation(violations); col != "" {
		bound := Bounds[col]
		return fmt.Errorf("%w: values in %s must be between %g and %g (rows %v)",
			ErrOutOfRange, col, bound[0], bound[1], rows)
	}

	violations = make(map[string][]int)
	nonNegative := make(map[string]bool, len(NonNegative))
	for _, col := range NonNegative {
		nonNegative[col] = true
	}

	for i, record := range records {
		for col, value := range record.Fields() {
			if value == nil || !nonNegative[col] {
				continue
			}
			if *value < 0 {
				violations[col] = append(violations[col], i)
			}
		}
	}

	if col, rows := firstViolation(violations); col != "" {
		return fmt.Errorf("%w: values in %s (rows %v)", ErrNegative, col, rows)
	}

	return nil
}

func firstViolation(violations map[string][]int) (string, []int) {
	if len(violations) == 0 {
		return "", nil
	}

	cols := make([]string, 0, len(violations))
	for col := range violations {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	rows := violations[cols[0]]
	sort.Ints(rows)
	return cols[0], rows
}

// LogQuality reports per-column completeness and summary statistics for
// the designated indicator columns. Observability only, it never fails
// a run.
func LogQuality(records []Record) {
	total := len(records)
	if total == 0 {
		log.Info().Msg("no records to analyse for data quality")
		return
	}

	log.Info().Int("TotalRecords", total).Msg("data quality report")

	counts := make(map[string]int)
	for _, record := range records {
		for col, value := range record.Fields() {
			if value != nil {
				counts[col]++
			}
		}
	}

	cols := make([]string, 0, len(counts))
	for col := range counts {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		completeness := float64(counts[col]) / float64(total) * 100
		log.Info().Str("Column", col).Float64("CompletenessPct", completeness).Msg("column completeness")
	}

	for _, col := range statsColumns {
		min, max, sum := math.Inf(1), math.Inf(-1), 0.0
		n := 0
		for _, record := range records {
			value := record.Fields()[col]
			if value == nil {
				continue
			}
			min = math.Min(min, *value)
			max = math.Max(max, *value)
			sum += *value
			n++
		}

		if n == 0 {
			continue
		}

		log.Info().Str("Column", col).Float64("Min", min).Float64("Max", max).
			Float64("Mean", sum/float64(n)).Msg("column stats")
	}
}
