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

import "github.com/open-atlas/atlasdata/dataset"

// YearMin is the default reference window: observations before this
// year are dropped.
const YearMin = 2015

// Identifier naming conventions seen across the statistical providers,
// first alias wins.
var (
	codeAliases = []string{"REF_AREA", "REF_AREA_ID"}
	nameAliases = []string{"REF_AREA_LABEL", "REF_AREA_NAME"}
)

func annualSource(file string, filters map[string]string) dataset.Source {
	return dataset.Source{
		File:        file,
		Filters:     filters,
		CodeAliases: codeAliases,
		NameAliases: nameAliases,
		Pattern:     dataset.Annual,
	}
}

// Indicators returns the default catalog of the 13 country indicators,
// one wide-format extract each. The order fixes the column order of
// the output artifact.
func Indicators() []dataset.Indicator {
	cpi := annualSource("FAO_CP_WIDEF.csv", map[string]string{
		"INDICATOR_LABEL": "Consumer Prices, General Indices (2015 = 100)",
		"FREQ":            "M",
	})
	cpi.Pattern = dataset.Monthly

	housePrice := annualSource("IMF_GHW_WIDEF.csv", nil)
	housePrice.Pattern = dataset.Quarterly

	generalGovernment := map[string]string{
		"UNIT_MEASURE_LABEL": "Percentage of GDP",
		"SECTOR_LABEL":       "Sector: General government",
	}

	return []dataset.Indicator{
		{
			Column: "employee_income_index",
			Source: annualSource("OECD_IDD_EAR_METH2012_WIDEF.csv", map[string]string{
				"AGE_NAME": "All age ranges or no breakdown by age",
			}),
			About: "OECD income distribution database, average employee earnings index",
		},
		{
			Column: "consumer_price_index",
			Source: cpi,
			About:  "FAO consumer price general indices, monthly series averaged to annual",
		},
		{
			Column: "rent_expenditure_percent_gdp",
			Source: annualSource("IMF_GFSE_GEOPR_G14_WIDEF.csv", generalGovernment),
			About:  "IMF government finance statistics, expenditure on rent",
		},
		{
			Column: "house_price_to_income_ratio",
			Source: housePrice,
			About:  "IMF global housing watch, quarterly series averaged to annual",
		},
		{
			Column: "real_gdp_growth_rate",
			Source: annualSource("BS_SGI_10_WIDEF.csv", nil),
			About:  "Bertelsmann SGI real GDP growth",
		},
		{
			Column: "digital_economy_score",
			Source: annualSource("UNCTAD_DE_WIDEF.csv", map[string]string{
				"INDICATOR_LABEL": "Proportion of businesses using the Internet",
			}),
			About: "UNCTAD digital economy, businesses using the internet",
		},
		{
			Column:    "higher_education_score",
			Source:    annualSource("WEF_GCIHH_GCI_B_05_WIDEF.csv", nil),
			Transform: dataset.ScoreOutOf7,
			About:     "WEF global competitiveness higher education pillar, rescaled to 0-100",
		},
		{
			Column: "life_satisfaction_score",
			Source: annualSource("BS_SGI_67_WIDEF.csv", nil),
			About:  "Bertelsmann SGI life satisfaction, 0-10 ladder",
		},
		{
			Column:    "cultural_resources_index",
			Source:    annualSource("WEF_TTDI_TTDI_D_13_WIDEF.csv", nil),
			Transform: dataset.ScoreOutOf7,
			About:     "WEF travel & tourism cultural resources pillar, rescaled to 0-100",
		},
		{
			Column: "sports_expenditure_percent_gdp",
			Source: annualSource("IMF_COFOG_GERS_GF0801_WIDEF.csv", generalGovernment),
			About:  "IMF COFOG recreation and sport expenditure",
		},
		{
			Column: "road_traffic_mortality_rate",
			Source: annualSource("WB_WDI_SH_STA_TRAF_P5_WIDEF.csv", nil),
			About:  "World Bank WDI road traffic mortality per 100k",
		},
		{
			Column: "forest_area_percent",
			Source: annualSource("WB_ESG_AG_LND_FRST_ZS_WIDEF.csv", nil),
			About:  "World Bank ESG forest area share of land",
		},
		{
			Column: "life_expectancy_years",
			Source: annualSource("WEF_GCIHH_LIFEEXPECT_WIDEF.csv", map[string]string{
				"UNIT_MEASURE_LABEL": "Years",
			}),
			About: "WEF global competitiveness life expectancy",
		},
	}
}
