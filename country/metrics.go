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

// Package country turns the configured indicator sources into one
// denormalized country-year table and loads it into PostgreSQL.
package country

import "github.com/open-atlas/atlasdata/dataset"

// Metrics is one merged country-year record. Metric columns are
// pointers so a null cell survives the round trip through the CSV
// artifact and the database.
type Metrics struct {
	CountryCode string `csv:"country_code" json:"country_code" parquet:"name=country_code, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	CountryName string `csv:"country_name" json:"country_name" parquet:"name=country_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Year        int32  `csv:"year" json:"year" parquet:"name=year, type=INT32"`

	EmployeeIncomeIndex         *float64 `csv:"employee_income_index" json:"employee_income_index" parquet:"name=employee_income_index, type=DOUBLE, repetitiontype=OPTIONAL"`
	ConsumerPriceIndex          *float64 `csv:"consumer_price_index" json:"consumer_price_index" parquet:"name=consumer_price_index, type=DOUBLE, repetitiontype=OPTIONAL"`
	RentExpenditurePercentGDP   *float64 `csv:"rent_expenditure_percent_gdp" json:"rent_expenditure_percent_gdp" parquet:"name=rent_expenditure_percent_gdp, type=DOUBLE, repetitiontype=OPTIONAL"`
	HousePriceToIncomeRatio     *float64 `csv:"house_price_to_income_ratio" json:"house_price_to_income_ratio" parquet:"name=house_price_to_income_ratio, type=DOUBLE, repetitiontype=OPTIONAL"`
	RealGDPGrowthRate           *float64 `csv:"real_gdp_growth_rate" json:"real_gdp_growth_rate" parquet:"name=real_gdp_growth_rate, type=DOUBLE, repetitiontype=OPTIONAL"`
	DigitalEconomyScore         *float64 `csv:"digital_economy_score" json:"digital_economy_score" parquet:"name=digital_economy_score, type=DOUBLE, repetitiontype=OPTIONAL"`
	HigherEducationScore        *float64 `csv:"higher_education_score" json:"higher_education_score" parquet:"name=higher_education_score, type=DOUBLE, repetitiontype=OPTIONAL"`
	LifeSatisfactionScore       *float64 `csv:"life_satisfaction_score" json:"life_satisfaction_score" parquet:"name=life_satisfaction_score, type=DOUBLE, repetitiontype=OPTIONAL"`
	CulturalResourcesIndex      *float64 `csv:"cultural_resources_index" json:"cultural_resources_index" parquet:"name=cultural_resources_index, type=DOUBLE, repetitiontype=OPTIONAL"`
	SportsExpenditurePercentGDP *float64 `csv:"sports_expenditure_percent_gdp" json:"sports_expenditure_percent_gdp" parquet:"name=sports_expenditure_percent_gdp, type=DOUBLE, repetitiontype=OPTIONAL"`
	RoadTrafficMortalityRate    *float64 `csv:"road_traffic_mortality_rate" json:"road_traffic_mortality_rate" parquet:"name=road_traffic_mortality_rate, type=DOUBLE, repetitiontype=OPTIONAL"`
	ForestAreaPercent           *float64 `csv:"forest_area_percent" json:"forest_area_percent" parquet:"name=forest_area_percent, type=DOUBLE, repetitiontype=OPTIONAL"`
	LifeExpectancyYears         *float64 `csv:"life_expectancy_years" json:"life_expectancy_years" parquet:"name=life_expectancy_years, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// IdentifierColumns are the identity columns of the merged table.
var IdentifierColumns = []string{"country_code", "country_name", "year"}

// MetricColumns is the fixed order of indicator columns in the output
// artifact and the database table.
var MetricColumns = []string{
	"employee_income_index",
	"consumer_price_index",
	"rent_expenditure_percent_gdp",
	"house_price_to_income_ratio",
	"real_gdp_growth_rate",
	"digital_economy_score",
	"higher_education_score",
	"life_satisfaction_score",
	"cultural_resources_index",
	"sports_expenditure_percent_gdp",
	"road_traffic_mortality_rate",
	"forest_area_percent",
	"life_expectancy_years",
}

// Fields implements validate.Record.
func (m *Metrics) Fields() map[string]*float64 {
	return map[string]*float64{
		"employee_income_index":          m.EmployeeIncomeIndex,
		"consumer_price_index":           m.ConsumerPriceIndex,
		"rent_expenditure_percent_gdp":   m.RentExpenditurePercentGDP,
		"house_price_to_income_ratio":    m.HousePriceToIncomeRatio,
		"real_gdp_growth_rate":           m.RealGDPGrowthRate,
		"digital_economy_score":          m.DigitalEconomyScore,
		"higher_education_score":         m.HigherEducationScore,
		"life_satisfaction_score":        m.LifeSatisfactionScore,
		"cultural_resources_index":       m.CulturalResourcesIndex,
		"sports_expenditure_percent_gdp": m.SportsExpenditurePercentGDP,
		"road_traffic_mortality_rate":    m.RoadTrafficMortalityRate,
		"forest_area_percent":            m.ForestAreaPercent,
		"life_expectancy_years":          m.LifeExpectancyYears,
	}
}

// Empty reports whether every metric column is null.
func (m *Metrics) Empty() bool {
	for _, value := range m.Fields() {
		if value != nil {
			return false
		}
	}
	return true
}

// metricSetters binds merged indicator columns onto struct fields.
var metricSetters = map[string]func(*Metrics, float64){
	"employee_income_index":          func(m *Metrics, v float64) { m.EmployeeIncomeIndex = &v },
	"consumer_price_index":           func(m *Metrics, v float64) { m.ConsumerPriceIndex = &v },
	"rent_expenditure_percent_gdp":   func(m *Metrics, v float64) { m.RentExpenditurePercentGDP = &v },
	"house_price_to_income_ratio":    func(m *Metrics, v float64) { m.HousePriceToIncomeRatio = &v },
	"real_gdp_growth_rate":           func(m *Metrics, v float64) { m.RealGDPGrowthRate = &v },
	"digital_economy_score":          func(m *Metrics, v float64) { m.DigitalEconomyScore = &v },
	"higher_education_score":         func(m *Metrics, v float64) { m.HigherEducationScore = &v },
	"life_satisfaction_score":        func(m *Metrics, v float64) { m.LifeSatisfactionScore = &v },
	"cultural_resources_index":       func(m *Metrics, v float64) { m.CulturalResourcesIndex = &v },
	"sports_expenditure_percent_gdp": func(m *Metrics, v float64) { m.SportsExpenditurePercentGDP = &v },
	"road_traffic_mortality_rate":    func(m *Metrics, v float64) { m.RoadTrafficMortalityRate = &v },
	"forest_area_percent":            func(m *Metrics, v float64) { m.ForestAreaPercent = &v },
	"life_expectancy_years":          func(m *Metrics, v float64) { m.LifeExpectancyYears = &v },
}

// FromMergedRow binds a merged dataset row onto a Metrics record.
// Unknown indicator names are ignored.
func FromMergedRow(row dataset.MergedRow) *Metrics {
	m := &Metrics{
		CountryCode: row.CountryCode,
		CountryName: row.CountryName,
		Year:        int32(row.Year),
	}

	for name, set := range metricSetters {
		if v, ok := row.Metric(name); ok {
			set(m, v)
		}
	}

	return m
}
