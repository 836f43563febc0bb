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
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the metric tables in markdown
func (s *Store) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString("# Atlas Data\n\n## Details\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("Database: %s\n\n", s.DBUrl)); err != nil {
		return "", err
	}

	countryStats, err := s.Country(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## Country metrics\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Rows: %d\n", countryStats.NumRows)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Countries: %d\n", countryStats.NumCountries)); err != nil {
		return "", err
	}

	if countryStats.NumRows > 0 {
		if _, err := builder.WriteString(p.Sprintf("  * Years: %d - %d\n", countryStats.MinYear, countryStats.MaxYear)); err != nil {
			return "", err
		}
	}

	if err := writeLastUpdated(&builder, countryStats.LastUpdated); err != nil {
		return "", err
	}

	coverage, err := s.Coverage(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString("### Column coverage\n\n"); err != nil {
		return "", err
	}

	for _, column := range coverage {
		if _, err := builder.WriteString(p.Sprintf("  * %s: %d\n", column.Column, column.NonNull)); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("\n"); err != nil {
		return "", err
	}

	cityStats, err := s.City(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## City metrics\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Rows: %d\n", cityStats.NumRows)); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Cities: %d\n", cityStats.NumCities)); err != nil {
		return "", err
	}

	if err := writeLastUpdated(&builder, cityStats.LastUpdated); err != nil {
		return "", err
	}

	return builder.String(), nil
}

func writeLastUpdated(builder *strings.Builder, lastUpdated time.Time) error {
	if lastUpdated.Equal(time.Time{}) || lastUpdated.Year() == 1 {
		_, err := builder.WriteString("  * Last Updated: Never\n\n")
		return err
	}

	age := timeago.English.Format(lastUpdated)
	_, err := builder.WriteString(fmt.Sprintf("  * Last Updated: %s (%s)\n\n",
		age, lastUpdated.Local().Format("01/02/2006")))
	return err
}
