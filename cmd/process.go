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
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/open-atlas/atlasdata/backup"
	"github.com/open-atlas/atlasdata/country"
	"github.com/open-atlas/atlasdata/healthcheck"
)

var (
	processDataDir   string
	processOut       string
	processParquet   string
	processBucket    string
	processBucketDir string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Reshape the raw indicator extracts into the country-year artifact",
	Long: `The process sub-command runs every configured indicator pipeline:
read the raw extract, melt year columns to long form, aggregate
sub-annual periods to annual means, rescale where configured, and
outer-join everything into one country-year table. The merged table is
written as a CSV artifact and optionally mirrored to parquet and
off-site storage.`,
	Run: func(cmd *cobra.Command, args []string) {
		startTime := time.Now()

		metrics, summary, err := country.Process(country.DefaultConfig(processDataDir))
		if err != nil {
			log.Fatal().Err(err).Msg("processing failed")
		}

		if err := country.WriteCSV(metrics, processOut); err != nil {
			log.Fatal().Err(err).Str("FileName", processOut).Msg("could not write artifact")
		}

		if processParquet != "" {
			if err := backup.WriteParquet(metrics, processParquet); err != nil {
				log.Fatal().Err(err).Str("FileName", processParquet).Msg("could not write parquet artifact")
			}

			if processBucket != "" {
				if err := backup.Upload(processParquet, processBucket, processBucketDir); err != nil {
					log.Fatal().Err(err).Str("BucketName", processBucket).Msg("could not upload artifact")
				}
			}
		}

		if err := healthcheck.Ping(viper.GetString("healthchecks.process_id")); err != nil {
			log.Error().Err(err).Msg("could not ping health check")
		}

		runTime := time.Since(startTime)

		style := lipgloss.NewStyle().Bold(true)
		if summary.Partial() {
			style = style.Foreground(lipgloss.Color("11"))
			fmt.Println(style.Render(fmt.Sprintf("Partial run: %d of %d indicators failed",
				len(summary.Failures), summary.NumIndicators)))
		} else {
			style = style.Foreground(lipgloss.Color("10"))
			fmt.Println(style.Render(fmt.Sprintf("Processed %d country-year rows from %d indicators",
				summary.NumRows, summary.NumIndicators)))
		}

		log.Info().
			Str("RunID", summary.RunID.String()).
			Str("RunTime", durafmt.Parse(runTime).String()).
			Int("NumIndicators", summary.NumIndicators).
			Int("NumFailed", len(summary.Failures)).
			Int("NumRows", summary.NumRows).
			Msg("processing finished")
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processDataDir, "data-dir", "data", "directory holding the raw indicator extracts")
	processCmd.Flags().StringVarP(&processOut, "out", "o", "country_metrics.csv", "output artifact file name")
	processCmd.Flags().StringVar(&processParquet, "parquet", "", "also write the artifact as parquet to this file")
	processCmd.Flags().StringVar(&processBucket, "bucket", "", "upload the parquet artifact to this backblaze bucket")
	processCmd.Flags().StringVar(&processBucketDir, "bucket-dir", "country-metrics", "directory within the bucket")
}
