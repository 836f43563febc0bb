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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOuterJoinKeepsAllKeys(t *testing.T) {
	a := Column{Name: "a", Values: []AnnualObservation{
		{CountryCode: "DE", CountryName: "Germany", Year: 2018, Value: 100},
		{CountryCode: "DE", CountryName: "Germany", Year: 2019, Value: 110},
	}}
	b := Column{Name: "b", Values: []AnnualObservation{
		{CountryCode: "DE", CountryName: "Germany", Year: 2018, Value: 5},
	}}

	merged := Merge([]Column{a, b})
	require.Len(t, merged, 2)

	first := merged[0]
	assert.Equal(t, 2018, first.Year)
	va, ok := first.Metric("a")
	require.True(t, ok)
	assert.Equal(t, 100.0, va)
	vb, ok := first.Metric("b")
	require.True(t, ok)
	assert.Equal(t, 5.0, vb)

	second := merged[1]
	assert.Equal(t, 2019, second.Year)
	va, ok = second.Metric("a")
	require.True(t, ok)
	assert.Equal(t, 110.0, va)
	_, ok = second.Metric("b")
	assert.False(t, ok, "indicator b has no 2019 observation")
}

func TestMergeRowCountIsUnionOfKeys(t *testing.T) {
	a := Column{Name: "a", Values: []AnnualObservation{
		{CountryCode: "DE", Year: 2018, Value: 1},
		{CountryCode: "FR", Year: 2018, Value: 2},
	}}
	b := Column{Name: "b", Values: []AnnualObservation{
		{CountryCode: "FR", Year: 2018, Value: 3},
		{CountryCode: "IT", Year: 2020, Value: 4},
	}}

	merged := Merge([]Column{a, b})
	assert.Len(t, merged, 3)
}

func TestMergeOrderIndependent(t *testing.T) {
	a := Column{Name: "a", Values: []AnnualObservation{
		{CountryCode: "DE", CountryName: "Germany", Year: 2018, Value: 1},
		{CountryCode: "FR", CountryName: "France", Year: 2019, Value: 2},
	}}
	b := Column{Name: "b", Values: []AnnualObservation{
		{CountryCode: "DE", CountryName: "Germany", Year: 2018, Value: 3},
	}}
	c := Column{Name: "c", Values: []AnnualObservation{
		{CountryCode: "IT", CountryName: "Italy", Year: 2020, Value: 4},
	}}

	abc := Merge([]Column{a, b, c})
	cba := Merge([]Column{c, b, a})

	require.Equal(t, len(abc), len(cba))
	for i := range abc {
		assert.Equal(t, abc[i].CountryCode, cba[i].CountryCode)
		assert.Equal(t, abc[i].Year, cba[i].Year)
		assert.Equal(t, abc[i].Metrics, cba[i].Metrics)
	}
}

func TestMergeJoinsOnCodeAndYearOnly(t *testing.T) {
	// divergent spellings of the same country must not duplicate rows
	a := Column{Name: "a", Values: []AnnualObservation{
		{CountryCode: "KR", CountryName: "Korea", Year: 2018, Value: 1},
	}}
	b := Column{Name: "b", Values: []AnnualObservation{
		{CountryCode: "KR", CountryName: "Republic of Korea", Year: 2018, Value: 2},
	}}

	merged := Merge([]Column{a, b})
	require.Len(t, merged, 1)
	assert.Equal(t, "Korea", merged[0].CountryName, "first non-empty name wins")
}

func TestMergeSortedByCodeAndYear(t *testing.T) {
	a := Column{Name: "a", Values: []AnnualObservation{
		{CountryCode: "FR", Year: 2019, Value: 1},
		{CountryCode: "DE", Year: 2020, Value: 2},
		{CountryCode: "DE", Year: 2018, Value: 3},
	}}

	merged := Merge([]Column{a})
	require.Len(t, merged, 3)
	assert.Equal(t, "DE", merged[0].CountryCode)
	assert.Equal(t, 2018, merged[0].Year)
	assert.Equal(t, "DE", merged[1].CountryCode)
	assert.Equal(t, 2020, merged[1].Year)
	assert.Equal(t, "FR", merged[2].CountryCode)
}

func TestMergeEmptyColumnContributesNothing(t *testing.T) {
	a := Column{Name: "a", Values: []AnnualObservation{{CountryCode: "DE", Year: 2018, Value: 1}}}
	empty := Column{Name: "b"}

	merged := Merge([]Column{a, empty})
	require.Len(t, merged, 1)
	_, ok := merged[0].Metric("b")
	assert.False(t, ok)
}
