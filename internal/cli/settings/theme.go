package settings

import (
	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/theme"
)

type ThemeListCmd struct{}

func (c *ThemeListCmd) Run(ctx *cli.Context) error {
	current := ctx.Theme()
	for _, t := range theme.All {
		marker := "  "
		if t.ID == current.ID {
			marker = "* "
		}
		swatch := ""
		for _, color := range t.Colors() {
			swatch += current.Styles().Swatch(color).Render("  ")
		}
		ctx.Printf("%s%-10s %-10s %s\n", marker, t.ID, t.Name, swatch)
	}
	return nil
}

type ThemeSetCmd struct {
	ID string `arg:"" help:"Theme id: light, midnight, future, ruin or crystal."`
}

func (c *ThemeSetCmd) Run(ctx *cli.Context) error {
	t, err := theme.Save(ctx.Store, c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Theme set to %s.\n", t.Name)
	return nil
}
