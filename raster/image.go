package raster

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/nfnt/resize"
)

// ImageSource adapts a decoded image.Image into a Source by thresholding
// each pixel to black/white, the same test ql.go's makeBitmapData applies
// (RGB all-zero with non-zero alpha counts as a printed pin). Decode registers PNG,
// GIF, JPEG (stdlib) and BMP (golang.org/x/image/bmp, blank-imported above)
// so image.Decode recognizes all four without the caller naming a format.
type ImageSource struct {
	img       image.Image
	printPins int
	y         int
}

// NewImageSource builds an ImageSource for an already-decoded image,
// rotated so the image's width spans time and its height spans pins (the
// orientation rowpack.go's packLine expects). If the image's height does
// not already equal printPins it is scaled to fit, grounded on
// 72nd-escposimg/scaling.go's use of nfnt/resize to fit rasterized bitmaps
// to the target printer's pixel geometry.
func NewImageSource(img image.Image, printPins int) *ImageSource {
	b := img.Bounds()
	if b.Dy() != printPins {
		img = resize.Resize(uint(b.Dx()*printPins/maxInt(b.Dy(), 1)), uint(printPins), img, resize.Lanczos3)
	}
	return &ImageSource{img: img, printPins: printPins}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Next implements Source, producing one packed row per image column.
func (s *ImageSource) Next() (Row, bool, error) {
	b := s.img.Bounds()
	if s.y >= b.Dx() {
		return nil, false, nil
	}
	x := b.Min.X + s.y
	s.y++

	row := make(Row, (s.printPins+7)/8)
	for pin := 0; pin < s.printPins; pin++ {
		y := b.Min.Y + pin
		r, g, bch, a := s.img.At(x, y).RGBA()
		black := r == 0 && g == 0 && bch == 0 && a != 0
		if black {
			row[pin/8] |= 0x80 >> uint(pin%8)
		}
	}
	return row, true, nil
}

// Height reports the number of raster rows this source will yield.
func (s *ImageSource) Height() int {
	return s.img.Bounds().Dx()
}

// LeftRotate is a 90-degree rotating image.Image wrapper, adapted from
// imgutil.LeftRotate: label art is commonly authored with the short axis
// as width, but the wire format wants the short axis (pins) as height.
type LeftRotate struct {
	Image image.Image
}

// ColorModel implements image.Image.
func (lr *LeftRotate) ColorModel() color.Model {
	return lr.Image.ColorModel()
}

// Bounds implements image.Image.
func (lr *LeftRotate) Bounds() image.Rectangle {
	r := lr.Image.Bounds()
	return image.Rect(r.Min.Y, -(r.Max.X - 1), r.Max.Y, -(r.Min.X - 1))
}

// At implements image.Image.
func (lr *LeftRotate) At(x, y int) color.Color {
	return lr.Image.At(-y, x)
}
