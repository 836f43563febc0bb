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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualizeFiltersYearsBelowMinimum(t *testing.T) {
	obs := []Observation{
		{CountryCode: "DE", CountryName: "Germany", Period: "2014", Value: 1},
		{CountryCode: "DE", CountryName: "Germany", Period: "2015", Value: 2},
		{CountryCode: "DE", CountryName: "Germany", Period: "2016", Value: 3},
	}

	annual := Annualize(obs, 2015)
	require.Len(t, annual, 2)
	for _, a := range annual {
		assert.GreaterOrEqual(t, a.Year, 2015)
	}
}

func TestAnnualizeAveragesMonthlyObservations(t *testing.T) {
	obs := []Observation{
		{CountryCode: "DE", CountryName: "Germany", Period: "2018-01", Value: 10},
		{CountryCode: "DE", CountryName: "Germany", Period: "2018-02", Value: 20},
	}

	annual := Annualize(obs, 2015)
	require.Len(t, annual, 1)
	assert.Equal(t, 2018, annual[0].Year)
	assert.Equal(t, 15.0, annual[0].Value)
}

func TestAnnualizeQuarterlyYearPrefix(t *testing.T) {
	obs := []Observation{
		{CountryCode: "DE", CountryName: "Germany", Period: "2019-Q1", Value: 4},
		{CountryCode: "DE", CountryName: "Germany", Period: "2019-Q3", Value: 6},
	}

	annual := Annualize(obs, 2015)
	require.Len(t, annual, 1)
	assert.Equal(t, 2019, annual[0].Year)
	assert.Equal(t, 5.0, annual[0].Value)
}

func TestAnnualizeSingleObservationUnchanged(t *testing.T) {
	obs := []Observation{
		{CountryCode: "DE", CountryName: "Germany", Period: "2018", Value: 42.5},
	}

	annual := Annualize(obs, 2015)
	require.Len(t, annual, 1)
	assert.Equal(t, 42.5, annual[0].Value)
}

func TestAnnualizeIdempotentOnAnnualData(t *testing.T) {
	obs := []Observation{
		{CountryCode: "DE", CountryName: "Germany", Period: "2017", Value: 1.5},
		{CountryCode: "DE", CountryName: "Germany", Period: "2018", Value: 2.5},
		{CountryCode: "FR", CountryName: "France", Period: "2018", Value: 3.5},
	}

	once := Annualize(obs, 2015)

	reobs := make([]Observation, 0, len(once))
	for _, a := range once {
		reobs = append(reobs, Observation{
			CountryCode: a.CountryCode,
			CountryName: a.CountryName,
			Period:      strconv.Itoa(a.Year),
			Value:       a.Value,
		})
	}

	assert.Equal(t, once, Annualize(reobs, 2015))
}

func TestAnnualizeEmptyInput(t *testing.T) {
	assert.Empty(t, Annualize(nil, 2015))
}

func TestAnnualizeSkipsMalformedPeriods(t *testing.T) {
	obs := []Observation{
		{CountryCode: "DE", CountryName: "Germany", Period: "20", Value: 1},
		{CountryCode: "DE", CountryName: "Germany", Period: "abcd-01", Value: 2},
		{CountryCode: "DE", CountryName: "Germany", Period: "2018", Value: 3},
	}

	annual := Annualize(obs, 2015)
	require.Len(t, annual, 1)
	assert.Equal(t, 3.0, annual[0].Value)
}
