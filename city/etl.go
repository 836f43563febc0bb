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
package city

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/open-atlas/atlasdata/validate"
)

const upsertSQL = `INSERT INTO city_data.city_metrics (
	"city_name",
	"country",
	"timestamp",
	"population",
	"latitude",
	"longitude",
	"region",
	"elevation",
	"timezone",
	"happiness_index",
	"health_index",
	"cost_of_living_index",
	"housing_price_index",
	"traffic_congestion_score",
	"education_level_score",
	"cultural_events_per_capita",
	"sports_facilities_per_capita",
	"economic_growth_rate",
	"average_salary",
	"rent_price_index",
	"wind_speed_avg",
	"air_quality_index",
	"temperature",
	"humidity",
	"green_space_ratio"
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
	$17, $18, $19, $20, $21, $22, $23, $24, $25
) ON CONFLICT ON CONSTRAINT uq_city_country_timestamp DO UPDATE SET
	population = EXCLUDED.population,
	latitude = EXCLUDED.latitude,
	longitude = EXCLUDED.longitude,
	region = EXCLUDED.region,
	elevation = EXCLUDED.elevation,
	timezone = EXCLUDED.timezone,
	happiness_index = EXCLUDED.happiness_index,
	health_index = EXCLUDED.health_index,
	cost_of_living_index = EXCLUDED.cost_of_living_index,
	housing_price_index = EXCLUDED.housing_price_index,
	traffic_congestion_score = EXCLUDED.traffic_congestion_score,
	education_level_score = EXCLUDED.education_level_score,
	cultural_events_per_capita = EXCLUDED.cultural_events_per_capita,
	sports_facilities_per_capita = EXCLUDED.sports_facilities_per_capita,
	economic_growth_rate = EXCLUDED.economic_growth_rate,
	average_salary = EXCLUDED.average_salary,
	rent_price_index = EXCLUDED.rent_price_index,
	wind_speed_avg = EXCLUDED.wind_speed_avg,
	air_quality_index = EXCLUDED.air_quality_index,
	temperature = EXCLUDED.temperature,
	humidity = EXCLUDED.humidity,
	green_space_ratio = EXCLUDED.green_space_ratio`

// Source is anything that can produce one city's metrics; satisfied by
// *Collector and by test stubs.
type Source interface {
	Collect(ctx context.Context, cityName string, country string) (*Metrics, error)
}

// ETL collects metrics for a list of cities and upserts them keyed on
// (city_name, country, timestamp).
type ETL struct {
	Pool      *pgxpool.Pool
	Collector Source
}

// NewETL connects a pool and wires the given collector.
func NewETL(ctx context.Context, dbURL string, collector Source) (*ETL, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &ETL{Pool: pool, Collector: collector}, nil
}

// Close releases the database pool.
func (etl *ETL) Close() {
	if etl.Pool != nil {
		etl.Pool.Close()
	}
}

// Extract collects every target city. A failing city is logged and
// excluded from the output; it never aborts the run.
func (etl *ETL) Extract(ctx context.Context, targets []Target) []*Metrics {
	collected := make([]*Metrics, 0, len(targets))

	for _, target := range targets {
		log.Info().Str("City", target.Name).Str("Country", target.Country).Msg("collecting city data")

		metrics, err := etl.Collector.Collect(ctx, target.Name, target.Country)
		if err != nil {
			log.Error().Err(err).Str("City", target.Name).Str("Country", target.Country).
				Msg("failed to collect city data")
			continue
		}

		collected = append(collected, metrics)
	}

	return collected
}

// Transform gates the collected snapshot on the range checks and logs
// quality metrics.
func (etl *ETL) Transform(metrics []*Metrics) ([]*Metrics, error) {
	if len(metrics) == 0 {
		log.Warn().Msg("no city metrics collected")
		return metrics, nil
	}

	records := make([]validate.Record, 0, len(metrics))
	for _, m := range metrics {
		records = append(records, m)
	}

	if err := validate.Ranges(records); err != nil {
		return nil, err
	}

	validate.LogQuality(records)
	return metrics, nil
}

// Load upserts every record inside one transaction.
func (etl *ETL) Load(ctx context.Context, metrics []*Metrics) error {
	if len(metrics) == 0 {
		log.Info().Msg("nothing to load: no city metrics")
		return nil
	}

	conn, err := etl.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error().Err(err).Msg("error rolling back city metrics transaction")
		}
	}()

	for _, m := range metrics {
		if _, err := tx.Exec(ctx, upsertSQL,
			m.CityName,
			m.Country,
			m.Timestamp,
			m.Population,
			m.Latitude,
			m.Longitude,
			m.Region,
			m.Elevation,
			m.Timezone,
			m.HappinessIndex,
			m.HealthIndex,
			m.CostOfLivingIndex,
			m.HousingPriceIndex,
			m.TrafficCongestionScore,
			m.EducationLevelScore,
			m.CulturalEventsPerCapita,
			m.SportsFacilitiesPerCapita,
			m.EconomicGrowthRate,
			m.AverageSalary,
			m.RentPriceIndex,
			m.WindSpeedAvg,
			m.AirQualityIndex,
			m.Temperature,
			m.Humidity,
			m.GreenSpaceRatio,
		); err != nil {
			return fmt.Errorf("upsert city metrics %s/%s: %w", m.CityName, m.Country, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit city metrics: %w", err)
	}

	log.Info().Int("NumRecords", len(metrics)).Msg("loaded rows into city_data.city_metrics")
	return nil
}

// Run executes extract, transform and load for the given targets.
func (etl *ETL) Run(ctx context.Context, targets []Target) error {
	log.Info().Int("NumCities", len(targets)).Msg("starting city metrics ETL")

	collected := etl.Extract(ctx, targets)

	transformed, err := etl.Transform(collected)
	if err != nil {
		return err
	}

	if err := etl.Load(ctx, transformed); err != nil {
		return err
	}

	log.Info().Int("NumRows", len(transformed)).Msg("city metrics ETL finished")
	return nil
}
