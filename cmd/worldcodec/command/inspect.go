package command

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/richgrov/worldcodec/convert"
	"github.com/richgrov/worldcodec/format"
	"github.com/richgrov/worldcodec/format/anvil"
	"github.com/richgrov/worldcodec/level"
)

func NewInspectCommand(g *GlobalFlags) *cobra.Command {
	var (
		chunkFlag string
		version   int
	)

	cmd := &cobra.Command{
		Use:   "inspect <region.mca>",
		Short: "list the chunks of a region file, or the blocks of one chunk",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			region, err := level.OpenRegion(args[0])
			if err != nil {
				cmdFailedf(g, "open region: %s", err)
			}
			defer region.Close()

			if chunkFlag == "" {
				listChunks(g, region)
				return
			}

			pos, err := parseChunkPos(chunkFlag)
			if err != nil {
				cmdFailedf(g, "%s", err)
			}
			key := format.NewKey(anvil.Format)
			if version != 0 {
				key = format.NewKey(anvil.Format, version)
			}
			inspectChunk(g, region, pos, key)
		},
	}

	cmd.Flags().StringVar(&chunkFlag, "chunk", "", "absolute chunk position x,z")
	cmd.Flags().IntVar(&version, "version", 0, "data version to pick the codec with, read from the chunk when unset")
	return cmd
}

func listChunks(g *GlobalFlags, region *level.Region) {
	positions := region.Chunks()

	if g.IsFormatJSON() {
		type chunkInfo struct {
			X        int32     `json:"x"`
			Z        int32     `json:"z"`
			Modified time.Time `json:"modified"`
		}
		infos := make([]chunkInfo, len(positions))
		for i, pos := range positions {
			infos[i] = chunkInfo{X: pos.X, Z: pos.Z, Modified: region.Timestamp(pos)}
		}
		printJSON(infos)
		return
	}

	t := newTable(table.Row{"Chunk", "Modified"})
	for _, pos := range positions {
		t.AppendRow(table.Row{pos.String(), region.Timestamp(pos).Format(time.RFC3339)})
	}
	t.AppendFooter(table.Row{"Total", len(positions)})
	t.Render()
}

func inspectChunk(g *GlobalFlags, region *level.Region, pos level.ChunkPos, key format.Key) {
	data, err := region.ReadChunk(pos)
	if err != nil {
		cmdFailedf(g, "read chunk: %s", err)
	}

	converter, err := newConverter(g)
	if err != nil {
		cmdFailedf(g, "%s", err)
	}

	chunk, palette, err := converter.InspectChunk(data, key)
	if err != nil {
		cmdFailedf(g, "%s", err)
	}
	counts := convert.CountBlocks(chunk, palette)

	if g.IsFormatJSON() {
		type blockInfo struct {
			ID         int               `json:"id"`
			Block      string            `json:"block"`
			Properties map[string]string `json:"properties,omitempty"`
			Count      int               `json:"count"`
		}
		infos := make([]blockInfo, len(counts))
		for i, c := range counts {
			infos[i] = blockInfo{ID: c.ID, Block: c.Block.Identifier(), Properties: c.Block.Properties, Count: c.Count}
		}
		printJSON(infos)
		return
	}

	t := newTable(table.Row{"ID", "Block", "Count"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.ID, c.Block.String(), c.Count})
	}
	t.AppendFooter(table.Row{"", "Chunk " + chunk.Pos.String(), chunk.Blocks.Len()})
	t.Render()
}
