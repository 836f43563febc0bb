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

import (
	"time"

	"github.com/google/uuid"
)

// IndicatorFailure records why one indicator pipeline produced no
// column during a run.
type IndicatorFailure struct {
	Column string
	Err    error
}

// RunSummary describes one processing run: which indicators succeeded,
// which failed, and how many merged rows came out.
type RunSummary struct {
	RunID         uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	NumIndicators int
	NumRows       int
	Failures      []IndicatorFailure
}

// NewRunSummary starts a summary for a run beginning now.
func NewRunSummary() RunSummary {
	return RunSummary{
		RunID:     uuid.New(),
		StartTime: time.Now(),
	}
}

// Partial reports whether the run produced results but lost at least
// one indicator.
func (s *RunSummary) Partial() bool {
	return len(s.Failures) > 0 && len(s.Failures) < s.NumIndicators
}
