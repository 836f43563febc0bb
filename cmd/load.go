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
package cmd

import (
	"context"
	"time"

	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/open-atlas/atlasdata/country"
	"github.com/open-atlas/atlasdata/healthcheck"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <artifact.csv>",
	Short: "Validate the country-year artifact and upsert it into PostgreSQL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		startTime := time.Now()

		etl, err := country.NewETL(ctx, viper.GetString("db.url"), args[0])
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to metrics database")
		}
		defer etl.Close()

		if err := etl.Run(ctx); err != nil {
			log.Fatal().Err(err).Str("SourcePath", args[0]).Msg("country metrics load failed")
		}

		if err := healthcheck.Ping(viper.GetString("healthchecks.load_id")); err != nil {
			log.Error().Err(err).Msg("could not ping health check")
		}

		runTime := time.Since(startTime)
		log.Info().Str("RunTime", durafmt.Parse(runTime).String()).Msg("country metrics load finished")
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
