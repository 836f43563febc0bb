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
package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-atlas/atlasdata/country"
)

func TestWriteParquet(t *testing.T) {
	gini := 31.5
	records := []*country.Metrics{
		{CountryCode: "DE", CountryName: "Germany", Year: 2018, HousePriceToIncomeRatio: &gini},
		{CountryCode: "FR", CountryName: "France", Year: 2019},
	}

	fn := filepath.Join(t.TempDir(), "country_metrics.parquet")
	require.NoError(t, WriteParquet(records, fn))

	info, err := os.Stat(fn)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteParquetBadPath(t *testing.T) {
	err := WriteParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
