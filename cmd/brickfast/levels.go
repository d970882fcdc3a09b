package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bunTree/BrickFast/internal/config"
	"github.com/bunTree/BrickFast/internal/game"
	"github.com/bunTree/BrickFast/internal/layout"
	"github.com/bunTree/BrickFast/internal/levels"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newLevelsCmd(env config.Env) *cobra.Command {
	levelsPath := env.Levels
	var exportPath string

	cmd := &cobra.Command{
		Use:     "levels [name|number]",
		Aliases: []string{"list"},
		Short:   "List layouts or preview one",
		Long: `Without arguments, list every layout in the catalog. With a layout id,
name or 1-based number, print its preview.

--export writes the whole catalog as a level pack; the format follows the
file extension (.yaml, .yml or .toml).

Examples:
  brickfast levels
  brickfast levels 16
  brickfast levels "hollow box"
  brickfast levels --export my-pack.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(levelsPath)
			if err != nil {
				return err
			}
			if exportPath != "" {
				if err := levels.Export(catalog, "brickfast", exportPath); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d layouts to %s\n", catalog.Len(), exportPath)
				return nil
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), levelTable(catalog))
				return nil
			}

			l, i, ok := catalog.Find(args[0])
			if !ok {
				return fmt.Errorf("unknown layout %q (run 'brickfast levels' to list them)", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), levelPreview(l, i))
			return nil
		},
	}

	cmd.Flags().StringVar(&levelsPath, "levels", levelsPath, "Level pack file or directory")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the catalog to this file")
	return cmd
}

func levelTable(c *layout.Catalog) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "NAME", "SIZE", "BRICKS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for i, l := range c.Layouts() {
		t.Row(
			strconv.Itoa(i+1),
			l.ID,
			l.Name,
			fmt.Sprintf("%dx%d", l.Cols, l.Rows),
			strconv.Itoa(l.Count()),
		)
	}
	return t.String()
}

func levelPreview(l *layout.Layout, index int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s (%s), %d bricks\n\n", index+1, l.Name, l.ID, l.Count())
	for _, line := range l.Preview(game.PreviewBrick, game.PreviewEmpty) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
