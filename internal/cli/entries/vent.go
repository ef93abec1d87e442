package entries

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/julianstephens/moodcal/internal/cli"
	"github.com/julianstephens/moodcal/internal/constants"
	"github.com/julianstephens/moodcal/internal/vent"
)

const ventWidth = 60

// VentCmd plays the vent animation for the given text. Nothing is stored.
type VentCmd struct {
	Text    []string `arg:"" help:"What's bothering you."`
	Instant bool     `help:"Print the frames without pausing between them."`

	sleep func(time.Duration) `kong:"-"`
}

func (c *VentCmd) Run(ctx *cli.Context) error {
	seed := uint64(ctx.Now().UnixNano())
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	anim, err := vent.Play(strings.Join(c.Text, " "), ventWidth, rng)
	if err != nil {
		return err
	}

	sleep := c.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for i, frame := range anim.Frames {
		if i > 0 && !c.Instant {
			sleep(constants.VentFrameInterval)
		}
		ctx.Println(frame)
	}
	ctx.Printf("Gone. (%s)\n", anim.Effect)
	return nil
}
