// Package vent animates a worry away. Nothing it is given is ever stored.
package vent

import (
	"errors"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/julianstephens/moodcal/internal/constants"
)

// Effect is one of the ways the text leaves the screen.
type Effect string

const (
	Rocket   Effect = "rocket"
	Blast    Effect = "blast"
	Shredder Effect = "shredder"
)

var Effects = []Effect{Rocket, Blast, Shredder}

// ErrEmpty is returned when there is nothing to blow away.
var ErrEmpty = errors.New("write something first, then blow it away")

const (
	canvasHeight = 9
	minWidth     = 24
)

// Pick chooses an effect at random.
func Pick(r *rand.Rand) Effect {
	return Effects[r.IntN(len(Effects))]
}

// Animation is a finished frame sequence ready to play.
type Animation struct {
	Effect Effect
	Frames []string
}

// Play builds the frames for text with a randomly chosen effect.
func Play(text string, width int, r *rand.Rand) (Animation, error) {
	return Render(Pick(r), text, width, r)
}

// Render builds the frames for a specific effect. The last frame is always empty.
func Render(effect Effect, text string, width int, r *rand.Rand) (Animation, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return Animation{}, ErrEmpty
	}
	if width < minWidth {
		width = minWidth
	}
	runes := []rune(text)
	if len(runes) > width-4 {
		runes = append(runes[:width-5], '…')
	}

	var frames []string
	switch effect {
	case Rocket:
		frames = rocketFrames(runes, width)
	case Blast:
		frames = blastFrames(runes, width, r)
	case Shredder:
		frames = shredderFrames(runes, width, r)
	default:
		return Animation{}, errors.New("unknown effect " + string(effect))
	}
	frames = append(frames, newCanvas(width).String())
	return Animation{Effect: effect, Frames: frames}, nil
}

// canvas is a fixed grid of cells. Wide glyphs occupy a cell and blank the next.
type canvas struct {
	width int
	cells [][]string
}

func newCanvas(width int) *canvas {
	c := &canvas{width: width, cells: make([][]string, canvasHeight)}
	for y := range c.cells {
		c.cells[y] = make([]string, width)
		for x := range c.cells[y] {
			c.cells[y][x] = " "
		}
	}
	return c
}

func (c *canvas) put(x, y int, s string) {
	if y < 0 || y >= canvasHeight || x < 0 || x >= c.width {
		return
	}
	c.cells[y][x] = s
}

func (c *canvas) putWide(x, y int, s string) {
	if x+1 >= c.width {
		return
	}
	c.put(x, y, s)
	c.put(x+1, y, "")
}

func (c *canvas) putText(x, y int, runes []rune) {
	for i, r := range runes {
		c.put(x+i, y, string(r))
	}
}

func (c *canvas) String() string {
	lines := make([]string, canvasHeight)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(strings.Join(row, ""), " ")
	}
	return strings.Join(lines, "\n")
}

func centerX(width, n int) int {
	return (width - n) / 2
}

// rocketFrames lifts the text off the bottom row and out of the top.
func rocketFrames(runes []rune, width int) []string {
	frames := make([]string, 0, constants.VentFrameCount)
	x := centerX(width, len(runes)+3)
	for i := 0; i < constants.VentFrameCount; i++ {
		c := newCanvas(width)
		y := canvasHeight - 1 - i*(canvasHeight+2)/constants.VentFrameCount
		c.putWide(x, y, "🚀")
		c.putText(x+3, y, runes)
		// exhaust trail
		for t := 1; t <= 2; t++ {
			if i >= t {
				c.put(x, y+t, "░")
			}
		}
		frames = append(frames, c.String())
	}
	return frames
}

// blastFrames shakes the text, then throws each character outward.
func blastFrames(runes []rune, width int, r *rand.Rand) []string {
	frames := make([]string, 0, constants.VentFrameCount)
	x0 := centerX(width, len(runes))
	y0 := canvasHeight / 2

	angles := make([]float64, len(runes))
	for i := range angles {
		angles[i] = r.Float64() * 2 * math.Pi
	}

	const shake = 3
	for i := 0; i < constants.VentFrameCount; i++ {
		c := newCanvas(width)
		if i < shake {
			offset := 1
			if i%2 == 1 {
				offset = -1
			}
			c.putText(x0+offset, y0, runes)
		} else {
			step := float64(i - shake + 1)
			if i < shake+3 {
				c.putWide(width/2-1, y0, "💥")
			}
			for j, ch := range runes {
				dx := int(math.Round(math.Cos(angles[j]) * step * 2.5))
				dy := int(math.Round(math.Sin(angles[j]) * step * 0.8))
				c.put(x0+j+dx, y0+dy, string(ch))
			}
		}
		frames = append(frames, c.String())
	}
	return frames
}

// shredderFrames drags a blade across the text; cut characters fall as scraps.
func shredderFrames(runes []rune, width int, r *rand.Rand) []string {
	frames := make([]string, 0, constants.VentFrameCount)
	x0 := centerX(width, len(runes))
	y0 := 2
	scraps := []string{"░", "▒", "▓", "·"}
	drift := make([]int, len(runes))
	for i := range drift {
		drift[i] = r.IntN(3) - 1
	}

	for i := 0; i < constants.VentFrameCount; i++ {
		c := newCanvas(width)
		cut := len(runes) * (i + 1) / (constants.VentFrameCount - 2)
		if cut > len(runes) {
			cut = len(runes)
		}
		for j, ch := range runes {
			if j >= cut {
				c.put(x0+j, y0, string(ch))
				continue
			}
			fall := (cut - j) / 2
			c.put(x0+j+drift[j], y0+1+fall, scraps[(j+i)%len(scraps)])
		}
		if cut < len(runes) {
			blade := "✂️"
			if i%2 == 1 {
				blade = "🔪"
			}
			c.putWide(x0+cut, y0-1, blade)
		}
		frames = append(frames, c.String())
	}
	return frames
}
