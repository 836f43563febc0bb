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

	"github.com/open-atlas/atlasdata/city"
	"github.com/open-atlas/atlasdata/healthcheck"
)

var cityListFN string

// citiesCmd represents the cities command
var citiesCmd = &cobra.Command{
	Use:   "cities",
	Short: "Collect city metrics from the configured web APIs and upsert them into PostgreSQL",
	Long: `The cities sub-command reads the TOML city list, queries the
gazetteer, urban-area score and weather services for each city, and
upserts one timestamped snapshot per city. A city that cannot be
resolved is logged and skipped; the remaining cities still load.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		startTime := time.Now()

		targets, err := city.LoadTargets(cityListFN)
		if err != nil {
			log.Fatal().Err(err).Str("FileName", cityListFN).Msg("could not read city list")
		}

		collector, err := city.NewCollector()
		if err != nil {
			log.Fatal().Err(err).Msg("could not configure city collector")
		}

		etl, err := city.NewETL(ctx, viper.GetString("db.url"), collector)
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to metrics database")
		}
		defer etl.Close()

		if err := etl.Run(ctx, targets); err != nil {
			log.Fatal().Err(err).Msg("city metrics ETL failed")
		}

		if err := healthcheck.Ping(viper.GetString("healthchecks.cities_id")); err != nil {
			log.Error().Err(err).Msg("could not ping health check")
		}

		runTime := time.Since(startTime)
		log.Info().Str("RunTime", durafmt.Parse(runTime).String()).Msg("city metrics ETL finished")
	},
}

func init() {
	rootCmd.AddCommand(citiesCmd)

	citiesCmd.Flags().StringVarP(&cityListFN, "list", "l", "cities.toml", "TOML file naming the cities to collect")
}
