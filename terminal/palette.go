package terminal

// xterm palette geometry
//
// System colors: indices 0-15
// Color cube: index = 16 + 36*r + 6*g + b where r,g,b in [0,5]
// Grayscale ramp: indices 232-255, level = 8 + 10*(index-232)

// systemPalette16 holds the conventional RGB values of the 16 ANSI system
// colors (xterm defaults). Actual rendering depends on the user's palette;
// these values only anchor nearest-color degradation.
var systemPalette16 = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 0, 0},     // red
	{0, 205, 0},     // green
	{205, 205, 0},   // yellow
	{0, 0, 238},     // blue
	{205, 0, 205},   // magenta
	{0, 205, 205},   // cyan
	{229, 229, 229}, // white
	{127, 127, 127}, // bright black
	{255, 0, 0},     // bright red
	{0, 255, 0},     // bright green
	{255, 255, 0},   // bright yellow
	{92, 92, 255},   // bright blue
	{255, 0, 255},   // bright magenta
	{0, 255, 255},   // bright cyan
	{255, 255, 255}, // bright white
}

// Cube256 returns the xterm 256-palette index for an RGB cube coordinate.
// r, g, b must be in [0,5]. Values outside that range are clamped.
func Cube256(r, g, b uint8) uint8 {
	if r > 5 {
		r = 5
	}
	if g > 5 {
		g = 5
	}
	if b > 5 {
		b = 5
	}
	return 16 + 36*r + 6*g + b
}

// CubeRGB256 returns the (r, g, b) cube coordinates for a 256-palette color
// cube index. Index must be in [16,231]. Returns (0,0,0) for out-of-range
// indices.
func CubeRGB256(index uint8) (r, g, b uint8) {
	if index < 16 || index > 231 {
		return 0, 0, 0
	}
	n := index - 16
	r = n / 36
	g = (n % 36) / 6
	b = n % 6
	return r, g, b
}

// Gray256 returns the xterm 256-palette index for a grayscale step.
// step must be in [0,23] (maps to indices 232-255, levels 8-238).
func Gray256(step uint8) uint8 {
	if step > 23 {
		step = 23
	}
	return 232 + step
}

// Palette256RGB returns the RGB value of a 256-palette index
func Palette256RGB(index uint8) (r, g, b uint8) {
	switch {
	case index < 16:
		c := systemPalette16[index]
		return c[0], c[1], c[2]
	case index < 232:
		cr, cg, cb := CubeRGB256(index)
		return cubeValues[cr], cubeValues[cg], cubeValues[cb]
	default:
		level := 8 + 10*(index-232)
		return level, level, level
	}
}
