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

func TestIndicatorRunComposesPipeline(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "cpi.csv",
		"REF_AREA,REF_AREA_LABEL,FREQ,2014-12,2018-01,2018-02\n"+
			"DE,Germany,M,99.0,10,20\n"+
			"DE,Germany,A,1,2,3\n")

	ind := Indicator{
		Column: "consumer_price_index",
		Source: Source{
			File:        "cpi.csv",
			Filters:     map[string]string{"FREQ": "M"},
			CodeAliases: []string{"REF_AREA", "REF_AREA_ID"},
			NameAliases: []string{"REF_AREA_LABEL", "REF_AREA_NAME"},
			Pattern:     Monthly,
		},
	}

	col, err := ind.Run(dir, 2015)
	require.NoError(t, err)
	assert.Equal(t, "consumer_price_index", col.Name)
	require.Len(t, col.Values, 1)
	assert.Equal(t, 2018, col.Values[0].Year)
	assert.Equal(t, 15.0, col.Values[0].Value)
}

func TestIndicatorRunAppliesRescale(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "edu.csv",
		"REF_AREA,REF_AREA_LABEL,2018\nDE,Germany,3.5\n")

	ind := Indicator{
		Column: "higher_education_score",
		Source: Source{
			File:        "edu.csv",
			CodeAliases: []string{"REF_AREA", "REF_AREA_ID"},
			NameAliases: []string{"REF_AREA_LABEL", "REF_AREA_NAME"},
			Pattern:     Annual,
		},
		Transform: ScoreOutOf7,
	}

	col, err := ind.Run(dir, 2015)
	require.NoError(t, err)
	require.Len(t, col.Values, 1)
	assert.Equal(t, 50.0, col.Values[0].Value)
}

func TestIndicatorRunNoRowsBeforeYearMin(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "old.csv",
		"REF_AREA,REF_AREA_LABEL,2012,2013,2014\nDE,Germany,1,2,3\n")

	ind := Indicator{
		Column: "ancient",
		Source: Source{
			File:        "old.csv",
			CodeAliases: []string{"REF_AREA"},
			NameAliases: []string{"REF_AREA_LABEL"},
			Pattern:     Annual,
		},
	}

	col, err := ind.Run(dir, 2015)
	require.NoError(t, err)
	assert.Empty(t, col.Values)
}

func TestScoreOutOf7(t *testing.T) {
	assert.Equal(t, 50.0, ScoreOutOf7(3.5))
	assert.Equal(t, 100.0, ScoreOutOf7(7))
	assert.Equal(t, 0.0, ScoreOutOf7(0))
}
