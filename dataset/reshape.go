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

import (
	"strconv"

	"github.com/rs/zerolog/log"
)

// Observation is one long-form reading melted out of a wide table. The
// Period field is exactly the original column name (e.g. "2018",
// "2018-03", "2018-Q1").
type Observation struct {
	CountryCode string
	CountryName string
	Period      string
	Value       float64
}

// Melt reshapes a standardized wide table into long-form observations,
// one per non-empty period cell. Empty cells are dropped; cells that do
// not parse as a number are skipped with a warning rather than aborting
// the whole table.
func Melt(tbl *Table) []Observation {
	obs := make([]Observation, 0, len(tbl.Rows)*len(tbl.PeriodColumns))

	for _, row := range tbl.Rows {
		for _, period := range tbl.PeriodColumns {
			cell := row[period]
			if cell == "" {
				continue
			}

			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				log.Warn().Str("Period", period).Str("CountryCode", row[CodeColumn]).
					Str("Cell", cell).Msg("skipping unparsable observation value")
				continue
			}

			obs = append(obs, Observation{
				CountryCode: row[CodeColumn],
				CountryName: row[NameColumn],
				Period:      period,
				Value:       value,
			})
		}
	}

	return obs
}
