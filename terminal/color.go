package terminal

import (
	"os"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorModeMono      ColorMode = iota // no color, attributes only
	ColorMode16                         // 16 ANSI colors
	ColorMode256                        // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

// String returns the mode name for diagnostics
func (m ColorMode) String() string {
	switch m {
	case ColorModeMono:
		return "mono"
	case ColorMode16:
		return "16"
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	}
	return "unknown"
}

// DetectColorMode determines terminal color capability from environment.
// COLORTERM takes priority over TERM; absence of both means monochrome.
// Pure given the environment; callers resolve it once per session.
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	term := os.Getenv("TERM")
	switch {
	case term == "" || term == "dumb":
		return ColorModeMono
	case strings.Contains(term, "truecolor"),
		strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return ColorModeTrueColor
	case strings.Contains(term, "256color"):
		return ColorMode256
	case strings.Contains(term, "color"), strings.Contains(term, "xterm"):
		return ColorMode16
	}
	return ColorMode16
}

// colorKind discriminates the Color variants
type colorKind uint8

const (
	colorDefault colorKind = iota
	colorIndexed
	colorRGB
)

// Color is a terminal color: the terminal default, a palette index (0-255),
// or a 24-bit RGB value. The zero value is the terminal default. Colors are
// comparable with ==.
type Color struct {
	kind    colorKind
	index   uint8
	r, g, b uint8
}

// ColorDefault is the terminal's default foreground/background color
var ColorDefault = Color{}

// ColorIndexed returns a palette color. Indices 0-15 are the ANSI system
// colors, 16-231 the 6x6x6 cube, 232-255 the grayscale ramp.
func ColorIndexed(index uint8) Color {
	return Color{kind: colorIndexed, index: index}
}

// ColorRGB returns a 24-bit color
func ColorRGB(r, g, b uint8) Color {
	return Color{kind: colorRGB, r: r, g: g, b: b}
}

// IsDefault reports whether c is the terminal default color
func (c Color) IsDefault() bool {
	return c.kind == colorDefault
}

// Index returns the palette index and whether c is an indexed color
func (c Color) Index() (uint8, bool) {
	return c.index, c.kind == colorIndexed
}

// RGB returns the color components and whether c is a 24-bit color
func (c Color) RGB() (r, g, b uint8, ok bool) {
	return c.r, c.g, c.b, c.kind == colorRGB
}

// Degrade maps a color to the nearest color representable under mode.
// Degradation is lossy and one-directional: TrueColor -> 256 -> 16 -> Default.
// Default colors are always returned unchanged. The mapping is a pure
// function of its inputs; identical colors always degrade identically.
//
// TrueColor inputs under ColorMode16 are matched against the xterm system
// palette by minimum CIE Lab distance (perceptual, not Euclidean RGB).
func Degrade(c Color, mode ColorMode) Color {
	if c.kind == colorDefault {
		return c
	}

	switch mode {
	case ColorModeTrueColor:
		return c

	case ColorMode256:
		if c.kind == colorRGB {
			return ColorIndexed(rgbTo256(c.r, c.g, c.b))
		}
		return c

	case ColorMode16:
		switch c.kind {
		case colorRGB:
			return ColorIndexed(rgbTo16(c.r, c.g, c.b))
		case colorIndexed:
			if c.index < 16 {
				return c
			}
			r, g, b := Palette256RGB(c.index)
			return ColorIndexed(rgbTo16(r, g, b))
		}
		return c

	default: // ColorModeMono
		return ColorDefault
	}
}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to the nearest cube level, precomputed at init
var cubeIndex [256]uint8

// lab16 holds the system palette converted to CIE Lab, precomputed at init
var lab16 [16]colorful.Color

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := absInt(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := absInt(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}

	for i, rgb := range systemPalette16 {
		lab16[i] = colorful.Color{
			R: float64(rgb[0]) / 255.0,
			G: float64(rgb[1]) / 255.0,
			B: float64(rgb[2]) / 255.0,
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// rgbTo256 finds the nearest 256-color palette index for an RGB value.
// Grayscale-ish inputs are compared against both the grayscale ramp and the
// color cube; everything else snaps to the cube.
func rgbTo256(r, g, b uint8) uint8 {
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(absInt(int(r)-gray), absInt(int(g)-gray), absInt(int(b)-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := uint8(232 + (gray-8)/10)
		grayLevel := 8 + int(grayIdx-232)*10
		grayDist := absInt(int(r)-grayLevel) + absInt(int(g)-grayLevel) + absInt(int(b)-grayLevel)

		cubeR := cubeIndex[r]
		cubeG := cubeIndex[g]
		cubeB := cubeIndex[b]
		cubeDist := absInt(int(r)-int(cubeValues[cubeR])) +
			absInt(int(g)-int(cubeValues[cubeG])) +
			absInt(int(b)-int(cubeValues[cubeB]))

		if grayDist < cubeDist {
			return grayIdx
		}
	}

	return Cube256(cubeIndex[r], cubeIndex[g], cubeIndex[b])
}

// rgbTo16 finds the nearest ANSI system color by CIE Lab distance
func rgbTo16(r, g, b uint8) uint8 {
	in := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}

	best := 0
	bestDist := in.DistanceLab(lab16[0])
	for i := 1; i < 16; i++ {
		d := in.DistanceLab(lab16[i])
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}
