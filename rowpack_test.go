package ptouch

import (
	"bytes"
	"testing"
)

// Row width (spec §8): every padded line is exactly bytes_per_line long,
// regardless of the window's pad sizes.
func TestPackLineWidth(t *testing.T) {
	window := PinWindow{LeftPins: 8, PrintPins: 112, RightPins: 8}
	row := make([]byte, 14)
	got := packLine(window, 16, row)
	if len(got) != 16 {
		t.Errorf("packLine(...) produced %d bytes, want 16 (bytes_per_line)", len(got))
	}
}

// Boundary case (spec §8): a row with one black pixel exactly at bit 0 of
// the first printable byte must land correctly after left_pad bits, even
// when left_pad isn't a multiple of 8.
func TestPackLineBitAlignment(t *testing.T) {
	window := PinWindow{LeftPins: 29, PrintPins: 70, RightPins: 29}
	row := make([]byte, 9)
	row[0] = 0x80 // first printable bit set

	padded := packLine(window, 16, row)
	if !getBit(padded, window.LeftPins) {
		t.Fatalf("bit %d (first printable pin) not set in padded line", window.LeftPins)
	}
	for bit := 0; bit < window.LeftPins; bit++ {
		if getBit(padded, bit) {
			t.Errorf("left-pad bit %d unexpectedly set", bit)
		}
	}
	for bit := window.LeftPins + 1; bit < 128; bit++ {
		if getBit(padded, bit) {
			t.Errorf("bit %d unexpectedly set, expected only bit %d", bit, window.LeftPins)
		}
	}
}

// Boundary case: image height equal to printable_pins means zero top/bottom
// padding within the row itself — left_pad/right_pad of zero must not drop
// or shift any printable bits.
func TestPackLineNoPadding(t *testing.T) {
	window := PinWindow{LeftPins: 0, PrintPins: 128, RightPins: 0}
	row := bytes.Repeat([]byte{0xAA}, 16)
	got := packLine(window, 16, row)
	if !bytes.Equal(got, row) {
		t.Errorf("packLine with zero padding = % x, want % x (unchanged)", got, row)
	}
}

func TestIsZeroLine(t *testing.T) {
	if !isZeroLine(make([]byte, 16)) {
		t.Error("isZeroLine(16 zero bytes) = false, want true")
	}
	nonZero := make([]byte, 16)
	nonZero[15] = 0x01
	if isZeroLine(nonZero) {
		t.Error("isZeroLine with a trailing 1 bit = true, want false")
	}
}
