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
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Target names one city to collect.
type Target struct {
	Name    string `toml:"name"`
	Country string `toml:"country"`
}

type targetList struct {
	Cities []Target `toml:"city"`
}

// LoadTargets reads the TOML city list:
//
//	[[city]]
//	name = "Berlin"
//	country = "Germany"
func LoadTargets(fn string) ([]Target, error) {
	raw, err := os.ReadFile(fn)
	if err != nil {
		return nil, fmt.Errorf("read city list %s: %w", fn, err)
	}

	var list targetList
	if err := toml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse city list %s: %w", fn, err)
	}

	return list.Cities, nil
}
