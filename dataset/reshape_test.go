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

func TestMeltDropsMissingValues(t *testing.T) {
	tbl := &Table{
		Rows: []Row{
			{CodeColumn: "DE", NameColumn: "Germany", "2017": "1.5", "2018": ""},
			{CodeColumn: "FR", NameColumn: "France", "2017": "", "2018": "3.0"},
		},
		PeriodColumns: []string{"2017", "2018"},
	}

	obs := Melt(tbl)
	require.Len(t, obs, 2)
	assert.Equal(t, Observation{CountryCode: "DE", CountryName: "Germany", Period: "2017", Value: 1.5}, obs[0])
	assert.Equal(t, Observation{CountryCode: "FR", CountryName: "France", Period: "2018", Value: 3.0}, obs[1])
}

func TestMeltPeriodIsColumnName(t *testing.T) {
	tbl := &Table{
		Rows:          []Row{{CodeColumn: "DE", NameColumn: "Germany", "2018-Q1": "4.2"}},
		PeriodColumns: []string{"2018-Q1"},
	}

	obs := Melt(tbl)
	require.Len(t, obs, 1)
	assert.Equal(t, "2018-Q1", obs[0].Period)
}

func TestMeltSkipsUnparsableCells(t *testing.T) {
	tbl := &Table{
		Rows:          []Row{{CodeColumn: "DE", NameColumn: "Germany", "2017": "n/a", "2018": "2.0"}},
		PeriodColumns: []string{"2017", "2018"},
	}

	obs := Melt(tbl)
	require.Len(t, obs, 1)
	assert.Equal(t, 2.0, obs[0].Value)
}

func TestMeltEmptyTable(t *testing.T) {
	assert.Empty(t, Melt(&Table{}))
}
