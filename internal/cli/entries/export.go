package entries

import (
	"github.com/julianstephens/moodcal/internal/cli"
)

// ExportCmd prints the journal document byte for byte as it is stored.
type ExportCmd struct{}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	raw, ok, err := ctx.Journal.Raw()
	if err != nil {
		return err
	}
	if !ok {
		raw = "{}"
	}
	ctx.Println(raw)
	return nil
}
