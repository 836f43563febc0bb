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

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/open-atlas/atlasdata/healthcheck"
)

var checkSchedule string

// checksCmd groups management of healthchecks.io checks for the
// scheduled pipeline runs.
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "Manage healthchecks.io checks for scheduled runs",
}

var checksCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a check and print its id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := healthcheck.Create(args[0], slug.Make(args[0]), []string{"atlasdata"}, checkSchedule)
		if err != nil {
			log.Fatal().Err(err).Str("Name", args[0]).Msg("could not create health check")
		}

		fmt.Println(id)
	},
}

var checksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a check",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := healthcheck.Delete(args[0]); err != nil {
			log.Fatal().Err(err).Str("ID", args[0]).Msg("could not delete health check")
		}
	},
}

var checksPauseCmd = &cobra.Command{
	Use:   "pause <id>",
	Short: "Pause monitoring of a check",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := healthcheck.Pause(args[0]); err != nil {
			log.Fatal().Err(err).Str("ID", args[0]).Msg("could not pause health check")
		}
	},
}

var checksResumeCmd = &cobra.Command{
	Use:   "resume <id>",
	Short: "Resume monitoring of a check",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := healthcheck.Resume(args[0]); err != nil {
			log.Fatal().Err(err).Str("ID", args[0]).Msg("could not resume health check")
		}
	},
}

func init() {
	rootCmd.AddCommand(checksCmd)
	checksCmd.AddCommand(checksCreateCmd, checksDeleteCmd, checksPauseCmd, checksResumeCmd)

	checksCreateCmd.Flags().StringVar(&checkSchedule, "schedule", "0 5 * * *", "cron schedule for the check")
}
