// Copyright 2026 AWS Cost Protection Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package console renders sweep reports for humans. One-shot runs print
// through here; service and Lambda modes emit JSON.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/exit0-io/aws-cost-protection/internal/governor"
)

// Shared color sprinters for status lines.
var (
	BrightGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightRed   = color.New(color.FgRed, color.Bold).SprintFunc()
	BrightCyan  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// Render writes a sweep report as a header, an action table, and a closing
// status line.
func Render(w io.Writer, report *governor.Report) {
	fmt.Fprintln(w, BrightCyan("Cost governance sweep"))
	fmt.Fprintf(w, "regions processed: %s\n\n", formatRegions(report.RegionsProcessed))

	tw := table.Table{}
	tw.AppendHeader(table.Row{"Action", "Resource"})
	for _, entry := range report.StoppedInstances {
		tw.AppendRow(table.Row{text.FgGreen.Sprint("stopped"), entry})
	}
	for _, entry := range report.ScaledDownGroups {
		tw.AppendRow(table.Row{text.FgYellow.Sprint("scaled to zero"), entry})
	}
	if tw.Length() == 0 {
		tw.AppendRow(table.Row{"none", "no unprotected resources found"})
	}
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, VAlignHeader: text.VAlignMiddle},
		{Number: 2, Align: text.AlignLeft},
	})
	fmt.Fprintln(w, tw.Render())
	fmt.Fprintln(w)

	if len(report.Errors) > 0 {
		fmt.Fprintln(w, BrightRed(fmt.Sprintf("%d errors during sweep:", len(report.Errors))))
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
		return
	}
	fmt.Fprintln(w, BrightGreen("sweep completed without errors"))
}

func formatRegions(regions []string) string {
	if len(regions) == 0 {
		return "none"
	}
	return strings.Join(regions, ", ")
}
