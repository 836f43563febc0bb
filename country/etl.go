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
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/open-atlas/atlasdata/validate"
)

const upsertSQL = `INSERT INTO country_data.country_metrics (
	"country_code",
	"country_name",
	"year",
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
	"life_expectancy_years"
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
) ON CONFLICT ON CONSTRAINT uq_country_year DO UPDATE SET
	country_name = EXCLUDED.country_name,
	employee_income_index = EXCLUDED.employee_income_index,
	consumer_price_index = EXCLUDED.consumer_price_index,
	rent_expenditure_percent_gdp = EXCLUDED.rent_expenditure_percent_gdp,
	house_price_to_income_ratio = EXCLUDED.house_price_to_income_ratio,
	real_gdp_growth_rate = EXCLUDED.real_gdp_growth_rate,
	digital_economy_score = EXCLUDED.digital_economy_score,
	higher_education_score = EXCLUDED.higher_education_score,
	life_satisfaction_score = EXCLUDED.life_satisfaction_score,
	cultural_resources_index = EXCLUDED.cultural_resources_index,
	sports_expenditure_percent_gdp = EXCLUDED.sports_expenditure_percent_gdp,
	road_traffic_mortality_rate = EXCLUDED.road_traffic_mortality_rate,
	forest_area_percent = EXCLUDED.forest_area_percent,
	life_expectancy_years = EXCLUDED.life_expectancy_years,
	updated_at = CURRENT_TIMESTAMP`

// ETL re-reads the processed artifact, validates it, and upserts it
// into country_data.country_metrics keyed on (country_code, year).
type ETL struct {
	Pool       *pgxpool.Pool
	SourcePath string
}

// NewETL connects a pool for the load stage.
func NewETL(ctx context.Context, dbURL string, sourcePath string) (*ETL, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &ETL{Pool: pool, SourcePath: sourcePath}, nil
}

// Close releases the database pool.
func (etl *ETL) Close() {
	if etl.Pool != nil {
		etl.Pool.Close()
	}
}

// Extract reads the artifact into records and returns the header for
// the required-field check.
func (etl *ETL) Extract() ([]*Metrics, []string, error) {
	fh, err := os.Open(etl.SourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact %s: %w", etl.SourcePath, err)
	}
	defer fh.Close()

	header, err := csv.NewReader(fh).Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read artifact header %s: %w", etl.SourcePath, err)
	}

	if _, err := fh.Seek(0, 0); err != nil {
		return nil, nil, err
	}

	var metrics []*Metrics
	if err := gocsv.Unmarshal(fh, &metrics); err != nil {
		return nil, nil, fmt.Errorf("read artifact %s: %w", etl.SourcePath, err)
	}

	return metrics, header, nil
}

// Transform drops rows with no metric at all, then gates the table on
// the required-field and range checks and logs quality metrics.
func (etl *ETL) Transform(metrics []*Metrics, header []string) ([]*Metrics, error) {
	if err := validate.RequiredFields(header, IdentifierColumns); err != nil {
		return nil, err
	}

	kept := make([]*Metrics, 0, len(metrics))
	records := make([]validate.Record, 0, len(metrics))
	for _, m := range metrics {
		if m.Empty() {
			continue
		}
		kept = append(kept, m)
		records = append(records, m)
	}

	if len(kept) == 0 {
		log.Warn().Msg("no country metrics available after dropping empty rows")
		return kept, nil
	}

	if err := validate.Ranges(records); err != nil {
		return nil, err
	}

	validate.LogQuality(records)
	return kept, nil
}

// Load upserts every record inside a single transaction; any database
// error rolls the whole batch back.
func (etl *ETL) Load(ctx context.Context, metrics []*Metrics) error {
	if len(metrics) == 0 {
		log.Info().Msg("nothing to load: table is empty")
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
			log.Error().Err(err).Msg("error rolling back country metrics transaction")
		}
	}()

	for _, m := range metrics {
		if _, err := tx.Exec(ctx, upsertSQL,
			m.CountryCode,
			m.CountryName,
			m.Year,
			m.EmployeeIncomeIndex,
			m.ConsumerPriceIndex,
			m.RentExpenditurePercentGDP,
			m.HousePriceToIncomeRatio,
			m.RealGDPGrowthRate,
			m.DigitalEconomyScore,
			m.HigherEducationScore,
			m.LifeSatisfactionScore,
			m.CulturalResourcesIndex,
			m.SportsExpenditurePercentGDP,
			m.RoadTrafficMortalityRate,
			m.ForestAreaPercent,
			m.LifeExpectancyYears,
		); err != nil {
			return fmt.Errorf("upsert country metrics %s/%d: %w", m.CountryCode, m.Year, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit country metrics: %w", err)
	}

	log.Info().Int("NumRecords", len(metrics)).Msg("loaded rows into country_data.country_metrics")
	return nil
}

// Run executes extract, transform and load in order.
func (etl *ETL) Run(ctx context.Context) error {
	log.Info().Str("SourcePath", etl.SourcePath).Msg("starting country metrics ETL")

	metrics, header, err := etl.Extract()
	if err != nil {
		return err
	}

	transformed, err := etl.Transform(metrics, header)
	if err != nil {
		return err
	}

	if err := etl.Load(ctx, transformed); err != nil {
		return err
	}

	log.Info().Int("NumRows", len(transformed)).Msg("country metrics ETL finished")
	return nil
}
