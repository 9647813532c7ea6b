package ptouch

// packbitsEncode compresses one padded raster line using TIFF-style
// packbits (spec §4.4). The compressor is stateless per row: it never looks
// across row boundaries.
//
// Encoding emits two kinds of packets:
//   - a run packet: [-(n-1)] [byte] for n (2..128) repeats of one byte
//   - a literal packet: [n-1] [n literal bytes] for n (1..128) non-repeating
//     bytes
//
// Tie-break: a run of length >= 2 always wins over continuing a literal,
// except that an in-progress literal is only closed early to start a run
// once the run reaches length >= 3 — closing at length 2 would cost more
// overhead than it saves against the device's decoder budget.
func packbitsEncode(line []byte) []byte {
	var out []byte
	n := len(line)
	i := 0
	var literal []byte

	flushLiteral := func() {
		for len(literal) > 0 {
			chunk := literal
			if len(chunk) > 128 {
				chunk = chunk[:128]
			}
			out = append(out, byte(len(chunk)-1))
			out = append(out, chunk...)
			literal = literal[len(chunk):]
		}
	}

	for i < n {
		runLen := 1
		for i+runLen < n && runLen < 128 && line[i+runLen] == line[i] {
			runLen++
		}

		if runLen >= 3 || (runLen == 2 && len(literal) == 0) {
			flushLiteral()
			out = append(out, byte(-(runLen - 1)))
			out = append(out, line[i])
			i += runLen
			continue
		}

		// Not worth breaking the literal for a run this short: absorb one
		// byte and keep scanning.
		literal = append(literal, line[i])
		i++
		if len(literal) == 128 {
			flushLiteral()
		}
	}
	flushLiteral()
	return out
}

// packbitsDecode reverses packbitsEncode; used by tests to verify the
// round-trip property (spec §8).
func packbitsDecode(packed []byte) []byte {
	var out []byte
	i := 0
	for i < len(packed) {
		ctrl := int8(packed[i])
		i++
		if ctrl >= 0 {
			n := int(ctrl) + 1
			out = append(out, packed[i:i+n]...)
			i += n
		} else {
			n := int(-ctrl) + 1
			b := packed[i]
			i++
			for k := 0; k < n; k++ {
				out = append(out, b)
			}
		}
	}
	return out
}
