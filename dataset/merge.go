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
package dataset

import "sort"

// Column is one named indicator produced by a per-indicator pipeline.
type Column struct {
	Name   string
	Values []AnnualObservation
}

// MergedRow is one country-year record of the merged table. Metrics
// holds only the indicators that have an observation for this key;
// absent indicators are absent, never zero.
type MergedRow struct {
	CountryCode string
	CountryName string
	Year        int
	Metrics     map[string]float64
}

// Metric returns the named indicator value and whether it is present.
func (row *MergedRow) Metric(name string) (float64, bool) {
	v, ok := row.Metrics[name]
	return v, ok
}

// Merge performs a full outer join across the ordered indicator
// columns. The join key is (country_code, year) alone: country names
// vary in spelling across providers and are informational, so the name
// is resolved by first non-empty value in column order. The result has
// one row per (code, year) seen in any input and is sorted by
// (code, year).
func Merge(cols []Column) []MergedRow {
	type key struct {
		code string
		year int
	}

	index := make(map[key]*MergedRow)

	for _, col := range cols {
		for _, a := range col.Values {
			k := key{code: a.CountryCode, year: a.Year}

			row, ok := index[k]
			if !ok {
				row = &MergedRow{
					CountryCode: a.CountryCode,
					Year:        a.Year,
					Metrics:     make(map[string]float64, len(cols)),
				}
				index[k] = row
			}

			if row.CountryName == "" {
				row.CountryName = a.CountryName
			}

			row.Metrics[col.Name] = a.Value
		}
	}

	merged := make([]MergedRow, 0, len(index))
	for _, row := range index {
		merged = append(merged, *row)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].CountryCode != merged[j].CountryCode {
			return merged[i].CountryCode < merged[j].CountryCode
		}
		return merged[i].Year < merged[j].Year
	})

	return merged
}
