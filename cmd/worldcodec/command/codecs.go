package command

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/richgrov/worldcodec"
	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/format/anvil"
)

func NewCodecsCommand(g *GlobalFlags) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "codecs",
		Short: "list the built-in codecs in resolution order",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			registry := worldcodec.NewRegistry()

			if cmd.Flags().Changed("version") {
				codec, err := registry.Resolve(format.NewKey(anvil.Format, version))
				if err != nil {
					cmdFailedf(g, "%s", err)
				}
				printCodecs(g, []*format.Codec{codec})
				return
			}
			printCodecs(g, registry.Codecs())
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "only show the codec an anvil data version resolves to")
	return cmd
}

func printCodecs(g *GlobalFlags, codecs []*format.Codec) {
	if g.IsFormatJSON() {
		type codecInfo struct {
			Name     string          `json:"name"`
			Features format.Features `json:"features"`
		}
		infos := make([]codecInfo, len(codecs))
		for i, c := range codecs {
			infos[i] = codecInfo{Name: c.Name(), Features: c.Features()}
		}
		printJSON(infos)
		return
	}

	t := newTable(table.Row{"Name", "Chunk Version", "Height", "Long Arrays", "Entities"})
	for _, c := range codecs {
		f := c.Features()
		t.AppendRow(table.Row{c.Name(), f.ChunkVersion, f.ChunkHeight, f.LongArray.String(), f.Entities})
	}
	t.Render()
}
