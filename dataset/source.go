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

// Package dataset reshapes wide-format statistical extracts (one column
// per time period) into annual per-country observations and merges any
// number of them into a single country-year table.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"
)

// Canonical identifier columns every standardized table carries.
const (
	CodeColumn = "country_code"
	NameColumn = "country_name"
)

var (
	// ErrMissingColumn indicates that none of a source's configured
	// identifier aliases is present in the file.
	ErrMissingColumn = errors.New("no matching identifier column")
)

// PeriodPattern selects which column names of a wide extract are
// recognized as period columns. The pattern is fixed per source, it is
// never auto-detected.
type PeriodPattern int

const (
	Annual PeriodPattern = iota
	Monthly
	Quarterly
)

var periodRegexps = map[PeriodPattern]*regexp.Regexp{
	Annual:    regexp.MustCompile(`^\d{4}$`),
	Monthly:   regexp.MustCompile(`^\d{4}-\d{2}$`),
	Quarterly: regexp.MustCompile(`^\d{4}-Q\d$`),
}

// Matches reports whether col is a period column under this pattern.
func (p PeriodPattern) Matches(col string) bool {
	return periodRegexps[p].MatchString(col)
}

func (p PeriodPattern) String() string {
	switch p {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	default:
		return "annual"
	}
}

// Source describes one wide-format extract: where to find it, which
// rows to keep, and how its identifier and period columns are named.
// Providers disagree on identifier naming, so each identifier carries a
// list of aliases resolved by "first alias present wins".
type Source struct {
	File        string
	Filters     map[string]string
	CodeAliases []string
	NameAliases []string
	Pattern     PeriodPattern
}

// Row is one standardized record of a wide table: the canonical
// identifier pair plus the raw period cells.
type Row map[string]string

// Table is a standardized wide table along with the period columns
// recognized by the source's pattern, sorted ascending.
type Table struct {
	Rows          []Row
	PeriodColumns []string
}

// ReadSource loads src.File from dir, keeps only rows matching all
// categorical filters, and renames the identifier columns onto the
// canonical pair. Zero matching rows is valid and yields an empty
// table. A missing file propagates the underlying fs error.
func ReadSource(dir string, src Source) (*Table, error) {
	fh, err := os.Open(filepath.Join(dir, src.File))
	if err != nil {
		return nil, fmt.Errorf("open source %s: %w", src.File, err)
	}
	defer fh.Close()

	records, err := gocsv.CSVToMaps(fh)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", src.File, err)
	}

	if len(records) == 0 {
		return &Table{}, nil
	}

	codeCol, err := resolveAlias(records[0], src.CodeAliases, src.File)
	if err != nil {
		return nil, err
	}

	nameCol, err := resolveAlias(records[0], src.NameAliases, src.File)
	if err != nil {
		return nil, err
	}

	periodCols := make([]string, 0, len(records[0]))
	for col := range records[0] {
		if src.Pattern.Matches(col) {
			periodCols = append(periodCols, col)
		}
	}
	sort.Strings(periodCols)

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		if !matchesFilters(record, src.Filters) {
			continue
		}

		row := Row{
			CodeColumn: record[codeCol],
			NameColumn: record[nameCol],
		}
		for _, col := range periodCols {
			row[col] = record[col]
		}
		rows = append(rows, row)
	}

	return &Table{Rows: rows, PeriodColumns: periodCols}, nil
}

func resolveAlias(record map[string]string, aliases []string, file string) (string, error) {
	for _, alias := range aliases {
		if _, ok := record[alias]; ok {
			return alias, nil
		}
	}

	return "", fmt.Errorf("%w: %s has none of [%s]", ErrMissingColumn, file, strings.Join(aliases, ", "))
}

func matchesFilters(record map[string]string, filters map[string]string) bool {
	for col, want := range filters {
		if record[col] != want {
			return false
		}
	}

	return true
}
