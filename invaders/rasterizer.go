package invaders

const (
	videoRAMBase = 0x2400
	videoRAMSize = 0x1C00 // 7168 bytes, 0x2400..0x3FFF inclusive

	srcWidth  = 256 // x_src, unrotated source bitmap
	srcHeight = 224 // y_src == scanline index

	// FinalWidth and FinalHeight are the dimensions of the surface handed
	// to the host's present callback, after the cabinet's physical 90°
	// CCW monitor rotation.
	FinalWidth  = srcHeight // 224
	FinalHeight = srcWidth  // 256
)

// Palette is a 2-entry color table: 0 is foreground, 1 is background.
type Palette [2]RGB

// RGB is a paletted color component triple.
type RGB struct{ R, G, B uint8 }

// DefaultPalette reproduces the stock cabinet: white foreground on a black
// background, with no per-region tinting.
var DefaultPalette = Palette{
	{R: 255, G: 255, B: 255}, // foreground
	{R: 0, G: 0, B: 0},       // background
}

// Rasterizer converts video RAM into a paletted FinalWidth×FinalHeight
// surface, one scanline at a time, applying the cabinet's physical 90° CCW
// monitor rotation as it writes each pixel rather than as a separate pass.
type Rasterizer struct {
	surface [FinalHeight][FinalWidth]RGB
	xpire   []RGB // palette-swap table; nothing in this package reads or sets it
	palette Palette
}

// NewRasterizer returns a Rasterizer using DefaultPalette.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{palette: DefaultPalette}
}

// SetPalette installs a custom two-entry palette for the "Xpire" variant's
// color swap. No I/O port is wired to it; a host calls it directly, and
// passing DefaultPalette restores the stock colors.
func (r *Rasterizer) SetPalette(p Palette) {
	r.palette = p
}

// RasterizeLine converts video RAM's row for scanline y (0..223) into
// FinalWidth pixels of the output surface. Each video RAM row is 32 bytes;
// byte k of the row covers source columns [8k, 8k+8) with bit 0 (LSB) the
// topmost pixel of that 8-pixel vertical strip.
func (r *Rasterizer) RasterizeLine(mem *Memory, y int) {
	if y < 0 || y >= srcHeight {
		return
	}
	rowBase := videoRAMBase + y*32
	for byteCol := 0; byteCol < 32; byteCol++ {
		b := mem.ReadByte(uint16(rowBase + byteCol))
		for bit := 0; bit < 8; bit++ {
			xSrc := byteCol*8 + bit
			set := b&(1<<uint(bit)) != 0

			color := r.palette[1]
			if set {
				color = r.palette[0]
			}
			// 90 CCW: final[255-xSrc][y] = source(xSrc, y)
			r.surface[srcWidth-1-xSrc][y] = color
		}
	}
}

// Surface returns the most recently rasterized FinalHeight×FinalWidth
// paletted surface, ready for the host's present callback.
func (r *Rasterizer) Surface() *[FinalHeight][FinalWidth]RGB {
	return &r.surface
}

// Rotate is a no-op: RasterizeLine already applies the 90° CCW rotation
// pixel by pixel, so there is nothing left to transform after a frame's
// scanlines have all been rasterized. Kept so the scheduler's per-frame
// call site reads the same whether rotation happens inline or as a
// separate pass.
func (r *Rasterizer) Rotate() {}
