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

// Package city collects per-city metrics from external web APIs and
// loads them into PostgreSQL keyed on (city_name, country, timestamp).
package city

import "time"

// Metrics is one snapshot of a city's indicators. Everything beyond
// the identity triple is nullable: a collector endpoint that fails
// leaves its fields nil instead of failing the city.
type Metrics struct {
	CityName  string    `json:"city_name"`
	Country   string    `json:"country"`
	Timestamp time.Time `json:"timestamp"`

	Population *int64   `json:"population"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Region     *string  `json:"region"`
	Elevation  *float64 `json:"elevation"`
	Timezone   *string  `json:"timezone"`

	HappinessIndex            *float64 `json:"happiness_index"`
	HealthIndex               *float64 `json:"health_index"`
	CostOfLivingIndex         *float64 `json:"cost_of_living_index"`
	HousingPriceIndex         *float64 `json:"housing_price_index"`
	TrafficCongestionScore    *float64 `json:"traffic_congestion_score"`
	EducationLevelScore       *float64 `json:"education_level_score"`
	CulturalEventsPerCapita   *float64 `json:"cultural_events_per_capita"`
	SportsFacilitiesPerCapita *float64 `json:"sports_facilities_per_capita"`
	EconomicGrowthRate        *float64 `json:"economic_growth_rate"`
	AverageSalary             *float64 `json:"average_salary"`
	RentPriceIndex            *float64 `json:"rent_price_index"`

	WindSpeedAvg    *float64 `json:"wind_speed_avg"`
	AirQualityIndex *float64 `json:"air_quality_index"`
	Temperature     *float64 `json:"temperature"`
	Humidity        *float64 `json:"humidity"`

	GreenSpaceRatio *float64 `json:"green_space_ratio"`
}

// IdentifierColumns are the identity columns of the city table.
var IdentifierColumns = []string{"city_name", "country", "timestamp"}

// Fields implements validate.Record. Population is included so the
// non-negative check covers it.
func (m *Metrics) Fields() map[string]*float64 {
	fields := map[string]*float64{
		"latitude":                     m.Latitude,
		"longitude":                    m.Longitude,
		"elevation":                    m.Elevation,
		"happiness_index":              m.HappinessIndex,
		"health_index":                 m.HealthIndex,
		"cost_of_living_index":         m.CostOfLivingIndex,
		"housing_price_index":          m.HousingPriceIndex,
		"traffic_congestion_score":     m.TrafficCongestionScore,
		"education_level_score":        m.EducationLevelScore,
		"cultural_events_per_capita":   m.CulturalEventsPerCapita,
		"sports_facilities_per_capita": m.SportsFacilitiesPerCapita,
		"economic_growth_rate":         m.EconomicGrowthRate,
		"average_salary":               m.AverageSalary,
		"rent_price_index":             m.RentPriceIndex,
		"wind_speed_avg":               m.WindSpeedAvg,
		"air_quality_index":            m.AirQualityIndex,
		"temperature":                  m.Temperature,
		"humidity":                     m.Humidity,
		"green_space_ratio":            m.GreenSpaceRatio,
	}

	if m.Population != nil {
		population := float64(*m.Population)
		fields["population"] = &population
	} else {
		fields["population"] = nil
	}

	return fields
}
