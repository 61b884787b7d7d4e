package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the CEFR levels and, if configured, reference table sizes",
	Args:  cobra.NoArgs,
	RunE:  runLevels,
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}

func runLevels(cmd *cobra.Command, _ []string) error {
	perLevel := map[core.Level]int{}
	header := []string{"Level", "Rank"}

	if !cfg.Reference.Empty() {
		ref, err := level.NewLoader(cfg.Reference, nil).For("")
		if err != nil {
			return err
		}
		for _, e := range ref.Entries() {
			perLevel[e.Level]++
		}
		header = append(header, "Reference words")
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	for _, l := range core.Levels {
		row := []string{string(l), strconv.Itoa(l.Rank())}
		if len(header) == 3 {
			row = append(row, strconv.Itoa(perLevel[l]))
		}
		table.Append(row)
	}
	table.Render()
	return nil
}
