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

// Package store reads aggregate state of the metric tables for
// reporting commands.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/open-atlas/atlasdata/country"
)

type Store struct {
	DBUrl string

	Pool *pgxpool.Pool
}

// New connects a store to the database.
func New(ctx context.Context, dbURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return &Store{DBUrl: dbURL, Pool: pool}, nil
}

// Close the database pool
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// CountryStats summarizes country_data.country_metrics.
type CountryStats struct {
	NumRows      int64     `db:"num_rows"`
	NumCountries int64     `db:"num_countries"`
	MinYear      int       `db:"min_year"`
	MaxYear      int       `db:"max_year"`
	LastUpdated  time.Time `db:"last_updated"`
}

// CityStats summarizes city_data.city_metrics.
type CityStats struct {
	NumRows     int64     `db:"num_rows"`
	NumCities   int64     `db:"num_cities"`
	LastUpdated time.Time `db:"last_updated"`
}

// ColumnCoverage is the non-null count of one metric column.
type ColumnCoverage struct {
	Column  string `db:"column_name"`
	NonNull int64  `db:"non_null"`
}

// Country returns aggregate statistics of the country-year table.
func (s *Store) Country(ctx context.Context) (*CountryStats, error) {
	stats := &CountryStats{}
	err := pgxscan.Get(ctx, s.Pool, stats, `SELECT count(*) AS num_rows,
count(DISTINCT country_code) AS num_countries,
coalesce(min(year), 0) AS min_year,
coalesce(max(year), 0) AS max_year,
coalesce(max(updated_at), '0001-01-01'::timestamp) AS last_updated
FROM country_data.country_metrics`)
	if err != nil {
		return nil, fmt.Errorf("query country stats: %w", err)
	}

	return stats, nil
}

// City returns aggregate statistics of the city snapshot table.
func (s *Store) City(ctx context.Context) (*CityStats, error) {
	stats := &CityStats{}
	err := pgxscan.Get(ctx, s.Pool, stats, `SELECT count(*) AS num_rows,
count(DISTINCT (city_name, country)) AS num_cities,
coalesce(max("timestamp"), '0001-01-01'::timestamp) AS last_updated
FROM city_data.city_metrics`)
	if err != nil {
		return nil, fmt.Errorf("query city stats: %w", err)
	}

	return stats, nil
}

// Coverage returns the non-null count of each country metric column.
func (s *Store) Coverage(ctx context.Context) ([]ColumnCoverage, error) {
	selects := make([]string, 0, len(country.MetricColumns))
	for _, column := range country.MetricColumns {
		selects = append(selects, fmt.Sprintf(
			`SELECT '%s' AS column_name, count(%s) AS non_null FROM country_data.country_metrics`,
			column, column))
	}

	var coverage []ColumnCoverage
	if err := pgxscan.Select(ctx, s.Pool, &coverage, strings.Join(selects, "\nUNION ALL\n")); err != nil {
		return nil, fmt.Errorf("query column coverage: %w", err)
	}

	return coverage, nil
}
