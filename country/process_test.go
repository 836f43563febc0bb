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
package country

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-atlas/atlasdata/dataset"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func testIndicator(column, file string) dataset.Indicator {
	return dataset.Indicator{
		Column: column,
		Source: dataset.Source{
			File:        file,
			CodeAliases: []string{"REF_AREA", "REF_AREA_ID"},
			NameAliases: []string{"REF_AREA_LABEL", "REF_AREA_NAME"},
			Pattern:     dataset.Annual,
		},
	}
}

func TestProcessTwoSourceEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.csv",
		"REF_AREA,REF_AREA_LABEL,2018,2019\nDE,Germany,100,110\n")
	writeSource(t, dir, "b.csv",
		"REF_AREA,REF_AREA_LABEL,2018\nDE,Germany,5\n")

	cfg := Config{
		DataDir: dir,
		YearMin: 2015,
		Indicators: []dataset.Indicator{
			testIndicator("real_gdp_growth_rate", "a.csv"),
			testIndicator("life_satisfaction_score", "b.csv"),
		},
	}

	metrics, summary, err := Process(cfg)
	require.NoError(t, err)
	assert.Empty(t, summary.Failures)
	require.Len(t, metrics, 2)

	first := metrics[0]
	assert.Equal(t, "DE", first.CountryCode)
	assert.Equal(t, "Germany", first.CountryName)
	assert.Equal(t, int32(2018), first.Year)
	require.NotNil(t, first.RealGDPGrowthRate)
	assert.Equal(t, 100.0, *first.RealGDPGrowthRate)
	require.NotNil(t, first.LifeSatisfactionScore)
	assert.Equal(t, 5.0, *first.LifeSatisfactionScore)

	second := metrics[1]
	assert.Equal(t, int32(2019), second.Year)
	require.NotNil(t, second.RealGDPGrowthRate)
	assert.Equal(t, 110.0, *second.RealGDPGrowthRate)
	assert.Nil(t, second.LifeSatisfactionScore)
}

func TestProcessIsolatesFailedIndicator(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.csv",
		"REF_AREA,REF_AREA_LABEL,2018\nDE,Germany,1\n")

	cfg := Config{
		DataDir: dir,
		YearMin: 2015,
		Indicators: []dataset.Indicator{
			testIndicator("real_gdp_growth_rate", "a.csv"),
			testIndicator("forest_area_percent", "missing.csv"),
		},
	}

	metrics, summary, err := Process(cfg)
	require.NoError(t, err)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "forest_area_percent", summary.Failures[0].Column)
	assert.True(t, summary.Partial())
	require.Len(t, metrics, 1)
	assert.NotNil(t, metrics[0].RealGDPGrowthRate)
	assert.Nil(t, metrics[0].ForestAreaPercent)
}

func TestProcessAllIndicatorsFailed(t *testing.T) {
	cfg := Config{
		DataDir: t.TempDir(),
		YearMin: 2015,
		Indicators: []dataset.Indicator{
			testIndicator("real_gdp_growth_rate", "missing.csv"),
		},
	}

	_, summary, err := Process(cfg)
	assert.ErrorIs(t, err, ErrNoIndicators)
	assert.Len(t, summary.Failures, 1)
}

func TestDefaultConfigCatalog(t *testing.T) {
	cfg := DefaultConfig("data/raw")

	assert.Equal(t, 2015, cfg.YearMin)
	require.Len(t, cfg.Indicators, len(MetricColumns))
	for i, ind := range cfg.Indicators {
		assert.Equal(t, MetricColumns[i], ind.Column)
	}

	rescaled := 0
	for _, ind := range cfg.Indicators {
		if ind.Transform != nil {
			rescaled++
		}
	}
	assert.Equal(t, 2, rescaled, "the two WEF pillar scores are rescaled")
}

func TestWriteCSVRoundTrip(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "country_metrics.csv")

	v := 42.5
	metrics := []*Metrics{
		{CountryCode: "DE", CountryName: "Germany", Year: 2018, LifeExpectancyYears: &v},
		{CountryCode: "FR", CountryName: "France", Year: 2019},
	}

	require.NoError(t, WriteCSV(metrics, fn))

	etl := &ETL{SourcePath: fn}
	loaded, header, err := etl.Extract()
	require.NoError(t, err)

	assert.Contains(t, header, "country_code")
	assert.Contains(t, header, "life_expectancy_years")
	require.Len(t, loaded, 2)
	require.NotNil(t, loaded[0].LifeExpectancyYears)
	assert.Equal(t, 42.5, *loaded[0].LifeExpectancyYears)
	assert.Nil(t, loaded[1].LifeExpectancyYears, "empty cell stays null")
}
