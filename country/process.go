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
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"

	"github.com/open-atlas/atlasdata/dataset"
)

// ErrNoIndicators means every configured indicator pipeline failed and
// there is nothing to merge.
var ErrNoIndicators = errors.New("all indicator pipelines failed")

// Config drives one processing run. Everything an indicator needs --
// source file, filters, period pattern, output column -- is data on the
// Indicators list, not code branches.
type Config struct {
	DataDir    string
	YearMin    int
	Indicators []dataset.Indicator
}

// DefaultConfig is the production catalog rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:    dataDir,
		YearMin:    YearMin,
		Indicators: Indicators(),
	}
}

// Process runs every indicator pipeline independently and outer-joins
// the results into the country-year table. A failing indicator is
// logged and recorded on the summary while the remaining indicators
// still merge; the run errors only when no indicator produced a
// column.
func Process(cfg Config) ([]*Metrics, dataset.RunSummary, error) {
	summary := dataset.NewRunSummary()
	summary.NumIndicators = len(cfg.Indicators)

	columns := make([]dataset.Column, 0, len(cfg.Indicators))
	for _, ind := range cfg.Indicators {
		col, err := ind.Run(cfg.DataDir, cfg.YearMin)
		if err != nil {
			log.Error().Err(err).Str("Indicator", ind.Column).Msg("indicator pipeline failed")
			summary.Failures = append(summary.Failures, dataset.IndicatorFailure{Column: ind.Column, Err: err})
			continue
		}

		log.Info().Str("Indicator", ind.Column).Int("NumObservations", len(col.Values)).
			Msg("indicator pipeline finished")
		columns = append(columns, col)
	}

	if len(columns) == 0 {
		summary.EndTime = time.Now()
		return nil, summary, fmt.Errorf("%w: %d configured", ErrNoIndicators, len(cfg.Indicators))
	}

	merged := dataset.Merge(columns)

	metrics := make([]*Metrics, 0, len(merged))
	for _, row := range merged {
		metrics = append(metrics, FromMergedRow(row))
	}

	summary.NumRows = len(metrics)
	summary.EndTime = time.Now()

	if summary.Partial() {
		log.Warn().Int("NumFailed", len(summary.Failures)).Msg("run produced partial results")
	}

	return metrics, summary, nil
}

// WriteCSV writes the merged table to the output artifact with a
// header row, identity columns first, indicator columns in catalog
// order, empty cells for nulls.
func WriteCSV(metrics []*Metrics, fn string) error {
	fh, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", fn, err)
	}
	defer fh.Close()

	if err := gocsv.Marshal(&metrics, fh); err != nil {
		return fmt.Errorf("write artifact %s: %w", fn, err)
	}

	return nil
}
