package ptouch

// This file builds the exact byte framing for each protocol phase (spec
// §4.5). Grounded on ql/ql.go's makePrintData and the ptouchgo reference
// file's command byte tables, generalized to the PT raster protocol's
// layout (print-information carries reported width/length and a 4-byte
// little-endian raster count; advanced-mode and margin are separate
// commands rather than QL's single compression-mode byte).

// cmdInvalidate flushes any partial state left over from a prior aborted
// job: 100 zero bytes (spec §4.5 step 1).
func cmdInvalidate() []byte {
	return make([]byte, 100)
}

// cmdInitialize is ESC @ (spec §4.5 step 2).
func cmdInitialize() []byte {
	return []byte{0x1b, 0x40}
}

// cmdStatusRequest is ESC i S (spec §4.5 step 3); the caller reads the
// 32-byte reply separately.
func cmdStatusRequest() []byte {
	return []byte{0x1b, 0x69, 0x53}
}

// cmdRasterMode switches the printer into raster mode (spec §4.5 step 4).
func cmdRasterMode() []byte {
	return []byte{0x1b, 0x69, 0x61, 0x01}
}

// cmdPrintInformation builds the print-information command (spec §4.5
// step 5): ESC i z, flags, media type, reported width, 0, little-endian
// raster count (4 bytes, already post high-res-doubling), page number, 0.
func cmdPrintInformation(mediaTypeByte byte, reportedWidthMM int, rasterCount int, pageNumber byte) []byte {
	const flags = 0x84
	cmd := []byte{0x1b, 0x69, 0x7a, flags, mediaTypeByte, byte(reportedWidthMM), 0}
	cmd = append(cmd, littleEndian32(rasterCount)...)
	cmd = append(cmd, pageNumber, 0)
	return cmd
}

func littleEndian32(n int) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}

// cmdAdvancedMode builds the advanced-mode command (spec §4.5 step 6):
// ESC i K bb, bit 6 set for high-resolution, plus 0x08 (no-chain) unless
// chained (half-cut) behavior is wanted for this label.
func cmdAdvancedMode(highResolution bool, chained bool) []byte {
	var b byte
	if highResolution {
		b |= 1 << 6
	}
	if !chained {
		b |= 0x08
	}
	return []byte{0x1b, 0x69, 0x4b, b}
}

// cmdMargin builds the feed-amount command (spec §4.5 step 7): ESC i d NN
// 00, NN the dot margin count from the caller's margin_mm and the model's
// base DPI, doubled if high-resolution.
func cmdMargin(marginDots int) []byte {
	return []byte{0x1b, 0x69, 0x64, byte(marginDots), 0x00}
}

// marginDots converts a margin in millimeters to a dot count at baseDPI,
// doubling it in high-resolution mode (spec §4.6, §9).
func marginDots(marginMM float64, baseDPI int, highResolution bool) int {
	dots := int(marginMM * float64(baseDPI) / 25.4)
	if highResolution {
		dots *= 2
	}
	return dots
}

// cmdCompressionMode selects packbits (0x4D 0x02) or no compression
// (0x4D 0x00) (spec §4.5 step 8). Emitted once per label, even if the
// prior label used the same setting (spec §4.6: some firmwares reset the
// flag across pages).
func cmdCompressionMode(useCompression bool) []byte {
	if useCompression {
		return []byte{0x4d, 0x02}
	}
	return []byte{0x4d, 0x00}
}

// cmdRasterRow builds one raster-row command (spec §4.5 step 9): a
// zero-row is a single 0x5A byte; otherwise 'G' (0x47) + little-endian
// length + the (possibly compressed) line bytes.
func cmdRasterRow(paddedLine []byte, useCompression bool) []byte {
	if isZeroLine(paddedLine) {
		return []byte{0x5a}
	}

	payload := paddedLine
	if useCompression {
		payload = packbitsEncode(paddedLine)
	}

	cmd := make([]byte, 0, 3+len(payload))
	cmd = append(cmd, 0x47, byte(len(payload)), byte(len(payload)>>8))
	cmd = append(cmd, payload...)
	return cmd
}

// cmdEndOfPageChained is the half-cut, more-labels-follow end-of-page
// command: form feed / page eject without a cut (spec §4.5 step 10).
func cmdEndOfPageChained() []byte {
	return []byte{0x0c}
}

// cmdEndOfPageFinal is the print-with-feed-and-cut command, used for the
// last label of a job, or for every label when half-cut is disabled
// (spec §4.5 step 10, §4.6 half/full-cut policy).
func cmdEndOfPageFinal() []byte {
	return []byte{0x1a}
}

// mediaTypeByte returns the wire encoding the print-information command
// uses for a media kind (spec §4.5: 0x01 laminated, 0x11 heat-shrink).
func mediaTypeByte(kind MediaKind) byte {
	if kind == MediaLaminatedTape {
		return 0x01
	}
	return 0x11
}
