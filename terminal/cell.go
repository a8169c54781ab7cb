package terminal

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrStrike    Attr = 1 << 6
	AttrHidden    Attr = 1 << 7
)

// Style is the (fg, bg, attrs) triple applied to a cell
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// StyleDefault renders in the terminal's default colors with no attributes
var StyleDefault = Style{}

// Cell is one terminal character position: a grapheme cluster plus its
// style. A cell whose width is zero is a continuation reserving the second
// column of a width-2 predecessor; it holds no content and is never emitted
// on its own.
type Cell struct {
	// Content is a single grapheme cluster. Typical content stays within
	// small-string bounds; blank cells hold a single space.
	Content string
	Fg      Color
	Bg      Color
	Attrs   Attr

	width uint8
}

// blankCell is the value unpainted cells hold
var blankCell = Cell{Content: " ", width: 1}

// newCell builds a normal cell; width must be 1 or 2
func newCell(content string, st Style, width int) Cell {
	return Cell{
		Content: content,
		Fg:      st.Fg,
		Bg:      st.Bg,
		Attrs:   st.Attrs,
		width:   uint8(width),
	}
}

// Width returns the display width of the cell: 1, 2, or 0 for continuations
func (c Cell) Width() int {
	return int(c.width)
}

// IsContinuation reports whether the cell reserves the trailing column of a
// wide glyph
func (c Cell) IsContinuation() bool {
	return c.width == 0
}

// Style returns the cell's style triple
func (c Cell) Style() Style {
	return Style{Fg: c.Fg, Bg: c.Bg, Attrs: c.Attrs}
}

// makeContinuation turns the cell into a placeholder for the wide glyph to
// its left, keeping the style so background diffs stay coherent
func (c *Cell) makeContinuation(st Style) {
	c.Content = ""
	c.Fg = st.Fg
	c.Bg = st.Bg
	c.Attrs = st.Attrs
	c.width = 0
}

// makeBlank resets the cell to a space with the given colors
func (c *Cell) makeBlank(fg, bg Color) {
	c.Content = " "
	c.Fg = fg
	c.Bg = bg
	c.Attrs = AttrNone
	c.width = 1
}
