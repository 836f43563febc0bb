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
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
)

// AnnualObservation is one metric value attributed to a country and a calendar
// year.
type AnnualObservation struct {
	CountryCode string
	CountryName string
	Year        int
	Value       float64
}

// Annualize derives the year from each observation's period label
// (first four characters), drops years before yearMin, and collapses
// sub-annual observations to one value per (code, name, year) by
// unweighted arithmetic mean. No weighting by period length is applied
// and no missing years are filled. The result is sorted by
// (code, name, year).
func Annualize(obs []Observation, yearMin int) []AnnualObservation {
	type key struct {
		code string
		name string
		year int
	}

	sums := make(map[key]float64)
	counts := make(map[key]int)

	for _, o := range obs {
		if len(o.Period) < 4 {
			log.Warn().Str("Period", o.Period).Str("CountryCode", o.CountryCode).
				Msg("skipping observation with malformed period label")
			continue
		}

		year, err := strconv.Atoi(o.Period[:4])
		if err != nil {
			log.Warn().Str("Period", o.Period).Str("CountryCode", o.CountryCode).
				Msg("skipping observation with non-numeric year prefix")
			continue
		}

		if year < yearMin {
			continue
		}

		k := key{code: o.CountryCode, name: o.CountryName, year: year}
		sums[k] += o.Value
		counts[k]++
	}

	annual := make([]AnnualObservation, 0, len(sums))
	for k, sum := range sums {
		annual = append(annual, AnnualObservation{
			CountryCode: k.code,
			CountryName: k.name,
			Year:        k.year,
			Value:       sum / float64(counts[k]),
		})
	}

	sort.Slice(annual, func(i, j int) bool {
		if annual[i].CountryCode != annual[j].CountryCode {
			return annual[i].CountryCode < annual[j].CountryCode
		}
		if annual[i].CountryName != annual[j].CountryName {
			return annual[i].CountryName < annual[j].CountryName
		}
		return annual[i].Year < annual[j].Year
	})

	return annual
}
