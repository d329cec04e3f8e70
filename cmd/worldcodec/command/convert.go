package command

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/richgrov/worldcodec/convert"
	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/format/anvil"
	"github.com/richgrov/worldcodec/level"
)

func NewConvertCommand(g *GlobalFlags) *cobra.Command {
	var (
		from, to int
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <src.mca> <dst.mca>",
		Short: "convert every chunk of a region file to another data version",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := os.Stat(args[1]); err == nil && !force {
				cmdFailedf(g, "%s exists, use --force to overwrite it", args[1])
			}

			src, err := level.OpenRegion(args[0])
			if err != nil {
				cmdFailedf(g, "open source region: %s", err)
			}
			defer src.Close()

			// The target holds the source's chunks whatever its name
			dst, err := level.CreateRegionAt(args[1], src.Pos)
			if err != nil {
				cmdFailedf(g, "create target region: %s", err)
			}
			defer dst.Close()

			converter, err := newConverter(g)
			if err != nil {
				cmdFailedf(g, "%s", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			report, err := converter.ConvertRegion(ctx, src, dst, format.NewKey(anvil.Format, from), format.NewKey(anvil.Format, to))
			if err != nil {
				cmdFailedf(g, "convert: %s", err)
			}
			printReport(g, report)
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "data version of the source chunks")
	cmd.Flags().IntVar(&to, "to", 0, "data version to write")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing target file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func printReport(g *GlobalFlags, report convert.Report) {
	if g.IsFormatJSON() {
		type failure struct {
			Chunk string `json:"chunk"`
			Stage string `json:"stage"`
			Error string `json:"error"`
		}
		out := struct {
			Source    string    `json:"source"`
			Target    string    `json:"target"`
			Converted int       `json:"converted"`
			Failed    []failure `json:"failed"`
			P50Micros int64     `json:"p50_us"`
			P99Micros int64     `json:"p99_us"`
		}{
			Source:    report.Source,
			Target:    report.Target,
			Converted: report.Converted,
			P50Micros: report.Latency.ValueAtQuantile(50),
			P99Micros: report.Latency.ValueAtQuantile(99),
		}
		for _, f := range report.Failed {
			out.Failed = append(out.Failed, failure{Chunk: f.Pos.String(), Stage: f.Stage, Error: f.Err.Error()})
		}
		printJSON(out)
		return
	}

	latency := report.Latency
	t := newTable(table.Row{"Source", "Target", "Converted", "Failed", "p50 (us)", "p99 (us)", "Max (us)"})
	t.AppendRow(table.Row{
		report.Source, report.Target, report.Converted, len(report.Failed),
		latency.ValueAtQuantile(50), latency.ValueAtQuantile(99), latency.Max(),
	})
	t.Render()

	if len(report.Failed) == 0 {
		return
	}

	color.Yellow("chunks left out:")
	failed := newTable(table.Row{"Chunk", "Stage", "Error"})
	for _, f := range report.Failed {
		failed.AppendRow(table.Row{f.Pos.String(), f.Stage, f.Err.Error()})
	}
	failed.Render()
}
