package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/richgrov/worldcodec/level"
)

func cmdFailedf(g *GlobalFlags, format string, a ...interface{}) {
	errStr := fmt.Sprintf(format, a...)
	if g.IsFormatJSON() {
		data, _ := json.Marshal(map[string]string{"ERROR": errStr})
		color.Red(string(data))
	} else {
		color.Red("ERROR: %s", errStr)
	}
	os.Exit(1)
}

func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	color.Green(string(data))
}

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(header)
	t.SetStyle(table.StyleLight)
	t.SetOutputMirror(os.Stdout)

	configs := make([]table.ColumnConfig, len(header))
	for i := range header {
		configs[i] = table.ColumnConfig{Number: i + 1, VAlign: text.VAlignMiddle, AlignHeader: text.AlignCenter}
	}
	t.SetColumnConfigs(configs)
	return t
}

func parseChunkPos(s string) (level.ChunkPos, error) {
	var pos level.ChunkPos
	if _, err := fmt.Sscanf(s, "%d,%d", &pos.X, &pos.Z); err != nil {
		return pos, fmt.Errorf("chunk position must look like x,z: %q", s)
	}
	return pos, nil
}
