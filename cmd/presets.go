package cmd

import (
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// presetsCmd lists the experiments in the defaults file
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List experiment presets",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadDefaultsConfig(defaultsFilePath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		printPresets(os.Stdout, cfg)
	},
}

func printPresets(w io.Writer, cfg Config) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Preset", "Experiment", "Description"})
	tbl.SetBorder(true)
	tbl.SetAutoWrapText(false)
	for _, name := range cfg.PresetNames() {
		p := cfg.Presets[name]
		kind := ""
		switch {
		case p.Experiment.ReedFrost != nil:
			kind = "reed-frost"
		case p.Experiment.Markov != nil:
			kind = "markov " + p.Experiment.Markov.Model
		}
		tbl.Append([]string{name, kind, p.Description})
	}
	tbl.Render()
}
