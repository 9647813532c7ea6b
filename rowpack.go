package ptouch

// packLine produces a fully padded raster line (spec §4.3): window.LeftPins
// zero bits, then the printable row bits, then window.RightPins zero bits,
// packed MSB-first into exactly bytesPerLine bytes. row must already be
// window.PrintPins bits packed MSB-first into ceil(PrintPins/8) bytes (the
// contract C3 promises, spec §4.2).
//
// Bit 7 of byte 0 is pin 0 (spec §6), so padding that isn't a multiple of 8
// requires shifting every printable bit across byte boundaries; this walks
// bit-by-bit rather than assuming byte alignment.
func packLine(window PinWindow, bytesPerLine int, row []byte) []byte {
	out := make([]byte, bytesPerLine)
	for bit := 0; bit < window.PrintPins; bit++ {
		if !getBit(row, bit) {
			continue
		}
		destBit := window.LeftPins + bit
		setBit(out, destBit)
	}
	return out
}

func getBit(buf []byte, bit int) bool {
	byteIdx, bitIdx := bit/8, bit%8
	if byteIdx >= len(buf) {
		return false
	}
	return buf[byteIdx]&(0x80>>uint(bitIdx)) != 0
}

func setBit(buf []byte, bit int) {
	byteIdx, bitIdx := bit/8, bit%8
	if byteIdx >= len(buf) {
		return
	}
	buf[byteIdx] |= 0x80 >> uint(bitIdx)
}

// isZeroLine reports whether every byte of a padded line is zero (spec
// §4.3's "all-zero padded line" case, emitted as a distinct zero-row
// command even when compression is off).
func isZeroLine(line []byte) bool {
	for _, b := range line {
		if b != 0 {
			return false
		}
	}
	return true
}
