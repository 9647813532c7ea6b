// Package raster is the boundary to the raster source: spec.md treats the
// monochrome bitmap producer (font rendering, image decoding) as an
// external collaborator and specifies only its interface. This package
// defines that interface, plus a thin image.Image adapter for callers that
// already have a decoded picture (the CLI's --image flag; see image.go).
package raster

// Row is one raster row: printPins bits packed MSB-first into
// ceil(printPins/8) bytes, exactly as spec §4.2 describes. Bit 7 of byte 0
// is the first (topmost) pin of the printable area.
type Row []byte

// Source produces the sequence of raster rows for one label, top to
// bottom (spec §4.2: "the core does not see fonts, strings, or alignment
// enums" — it only pulls rows). Next returns ok=false once the source is
// exhausted.
type Source interface {
	Next() (row Row, ok bool, err error)
}

// Rows adapts a pre-built slice of rows (e.g. from a test, or from a
// caller that already rasterized a label some other way) into a Source.
type Rows struct {
	Data []Row
	pos  int
}

// Next implements Source.
func (r *Rows) Next() (Row, bool, error) {
	if r.pos >= len(r.Data) {
		return nil, false, nil
	}
	row := r.Data[r.pos]
	r.pos++
	return row, true, nil
}

// Count returns the number of rows a Source will yield by draining it.
// Only useful on sources that are cheap to replay (e.g. Rows); callers with
// a streaming source should track height separately.
func Count(s Source) (int, error) {
	n := 0
	for {
		_, ok, err := s.Next()
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		n++
	}
}
