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
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/open-atlas/atlasdata/country"
)

// indicatorsCmd represents the indicators command
var indicatorsCmd = &cobra.Command{
	Use:   "indicators [column]",
	Short: "List the configured country indicators or get details about one",
	Run: func(cmd *cobra.Command, args []string) {
		r, _ := glamour.NewTermRenderer(
			// detect background color and pick either the default dark or light theme
			glamour.WithAutoStyle(),
			// wrap output at specific width (default is 80)
			glamour.WithWordWrap(80),
		)

		builder := strings.Builder{}
		catalog := country.Indicators()

		if len(args) > 0 {
			for _, ind := range catalog {
				if ind.Column != args[0] {
					continue
				}

				builder.WriteString(fmt.Sprintf("# %s\n\n", ind.Column))
				builder.WriteString(ind.About)
				builder.WriteString(fmt.Sprintf("\n\n- Source file: %s\n", ind.Source.File))
				builder.WriteString(fmt.Sprintf("- Period format: %s\n", ind.Source.Pattern))
				for column, value := range ind.Source.Filters {
					builder.WriteString(fmt.Sprintf("- Filter: %s = %s\n", column, value))
				}
			}

			if builder.Len() == 0 {
				log.Fatal().Str("Indicator", args[0]).Msg("no indicator with that column name")
			}
		} else {
			builder.WriteString("# Country indicators\n")
			for _, ind := range catalog {
				builder.WriteString(fmt.Sprintf("\n## %s\n", ind.Column))
				builder.WriteString(ind.About)
				builder.WriteString("\n")
			}
		}

		out, err := r.Render(builder.String())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render indicator document")
		}

		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(indicatorsCmd)
}
