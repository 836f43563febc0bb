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
package dataset

// Transform adjusts an aggregated annual value before it enters the
// merged table.
type Transform func(float64) float64

// ScoreOutOf7 rescales a 0-7 Likert-style score onto a 0-100 scale.
func ScoreOutOf7(v float64) float64 {
	return v / 7 * 100
}

// Indicator is the full configuration of one per-indicator pipeline:
// source, output column name and an optional post-transform.
type Indicator struct {
	Column    string
	Source    Source
	Transform Transform
	About     string
}

// Run composes read, melt and annualize for this indicator and applies
// the post-transform if one is configured. Indicators are independent
// of each other; an error here concerns only this indicator's source.
func (ind *Indicator) Run(dir string, yearMin int) (Column, error) {
	tbl, err := ReadSource(dir, ind.Source)
	if err != nil {
		return Column{}, err
	}

	annual := Annualize(Melt(tbl), yearMin)

	if ind.Transform != nil {
		for i := range annual {
			annual[i].Value = ind.Transform(annual[i].Value)
		}
	}

	return Column{Name: ind.Column, Values: annual}, nil
}
