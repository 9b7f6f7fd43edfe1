package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Color is an ANSI 256-color palette index. Zero means an unset pixel.
type Color uint8

// Palette used by the renderer. 256-color codes keep frames compact and
// render the same locally and over SSH.
const (
	ColorNone        Color = 0
	ColorSnakeHead   Color = 46  // Bright green
	ColorSnakeBody   Color = 34  // Green
	ColorGhostBody   Color = 60  // Desaturated blue
	ColorApple       Color = 196 // Red
	ColorFrozenApple Color = 51  // Cyan
	ColorSpawnMark   Color = 208 // Orange
	ColorPickup      Color = 226 // Yellow
	ColorPickupRare  Color = 201 // Magenta
)

// RainbowColors cycles through the snake body while the rainbow effect is
// active.
var RainbowColors = []Color{196, 208, 226, 46, 51, 21, 201}

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Logical coordinates are board cells; the canvas scales them to
// terminal pixels and centers the playfield.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Scaling from logical (board cell) to pixel coordinates
	logicalWidth  float64
	logicalHeight float64 // In cells; each cell maps to scaleY sub-pixels
	scaleX        float64
	scaleY        float64

	// Offset for centering the render area when the terminal is larger than
	// the playfield. 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [8]byte
}

// NewCanvas creates a canvas mapping a logicalWidth x logicalHeight cell
// board onto the given terminal dimensions.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]Color, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
	}
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical board size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at
// (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel colors a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, color Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = color
	}
}

// FillCell colors the whole pixel rectangle covered by board cell (x, y).
func (c *Canvas) FillCell(x, y int, color Color) {
	x0 := int(math.Round(float64(x) * c.scaleX))
	x1 := int(math.Round(float64(x+1) * c.scaleX))
	y0 := int(math.Round(float64(y) * c.scaleY))
	y1 := int(math.Round(float64(y+1) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, color)
		}
	}
}

// SetFloat colors the pixel under continuous board coordinates, used for
// apples between cells.
func (c *Canvas) SetFloat(x, y float64, color Color) {
	c.setPixel(int(math.Floor(x*c.scaleX)), int(math.Floor(y*c.scaleY)), color)
}

// Render outputs the colored canvas to the writer using half-block
// characters: the top sub-pixel is the foreground of '▀', the bottom the
// background, so every terminal cell carries two vertically stacked pixels.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 16)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if top == ColorNone && bottom == ColorNone {
				continue // Skip empty cells
			}

			c.moveCursor(&c.renderBuf, col+1+c.offsetCol, row+1+c.offsetRow)
			switch {
			case top != ColorNone && bottom != ColorNone:
				c.sgr(&c.renderBuf, 38, top)
				c.sgr(&c.renderBuf, 48, bottom)
				c.renderBuf.WriteRune(BlockUpperHalf)
			case top != ColorNone:
				c.sgr(&c.renderBuf, 38, top)
				c.renderBuf.WriteRune(BlockUpperHalf)
			default:
				c.sgr(&c.renderBuf, 38, bottom)
				c.renderBuf.WriteRune(BlockLowerHalf)
			}
			c.renderBuf.WriteString("\033[0m")
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// moveCursor appends an ANSI cursor position sequence without allocating.
func (c *Canvas) moveCursor(buf *strings.Builder, col, row int) {
	buf.WriteString("\033[")
	buf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	buf.WriteByte(';')
	buf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	buf.WriteByte('H')
}

// sgr appends a 256-color SGR sequence; ground is 38 for foreground, 48 for
// background.
func (c *Canvas) sgr(buf *strings.Builder, ground int, color Color) {
	buf.WriteString("\033[")
	buf.Write(strconv.AppendInt(c.numBuf[:0], int64(ground), 10))
	buf.WriteString(";5;")
	buf.Write(strconv.AppendInt(c.numBuf[:0], int64(color), 10))
	buf.WriteByte('m')
}

// maxChunkSize is the maximum bytes to write at once for optimal network
// flow. Close to typical MTU size for smooth SSH transmission.
const maxChunkSize = 1400

// Half-block characters used by the renderer.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the playfield resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	buf.Grow((c.termWidth+2)*2 + c.termHeight*2*12)

	if hasV {
		if hasH {
			c.moveCursor(&buf, left, top)
			buf.WriteString("┌" + strings.Repeat("─", c.termWidth) + "┐")
			c.moveCursor(&buf, left, bottom)
			buf.WriteString("└" + strings.Repeat("─", c.termWidth) + "┘")
		} else {
			c.moveCursor(&buf, c.offsetCol+1, top)
			buf.WriteString(strings.Repeat("─", c.termWidth))
			c.moveCursor(&buf, c.offsetCol+1, bottom)
			buf.WriteString(strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			c.moveCursor(&buf, left, row)
			buf.WriteString("│")
			c.moveCursor(&buf, right, row)
			buf.WriteString("│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the board width in cells.
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the board height in cells.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
