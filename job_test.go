package ptouch

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-ptouch/ptouch/raster"
	"github.com/go-ptouch/ptouch/transport"
)

// fakeTransport records every byte written, like pjanx-sklad's in-memory
// test doubles, and hands back a canned status reply on Read.
type fakeTransport struct {
	writes     [][]byte
	status     []byte
	opened     bool
	closeCount int
}

func newFakeTransport() *fakeTransport {
	raw := make([]byte, 32)
	raw[0], raw[1] = 0x80, 0x20
	return &fakeTransport{status: raw}
}

func (f *fakeTransport) Open() error { f.opened = true; return nil }
func (f *fakeTransport) Write(b []byte) error {
	cp := make([]byte, len(b))
	copy(cp, b)
	f.writes = append(f.writes, cp)
	return nil
}
func (f *fakeTransport) Read(buf []byte) (int, error) {
	n := copy(buf, f.status)
	return n, nil
}
func (f *fakeTransport) Close() error { f.closeCount++; return nil }

func (f *fakeTransport) flat() []byte {
	var out []byte
	for _, w := range f.writes {
		out = append(out, w...)
	}
	return out
}

func solidRows(n, printPins int) raster.Source {
	rows := make([]raster.Row, n)
	for i := range rows {
		rows[i] = bytes.Repeat([]byte{0xFF}, (printPins+7)/8)
	}
	return &raster.Rows{Data: rows}
}

// Scenario 1 (spec §8): 128-pin, 12mm tape, no high-res, compression off.
// Exercised against a synthetic 128-pin/CompressionRequired=false profile,
// since this scenario is a protocol-framing example rather than a test of
// any one shipped model's compression override.
func TestPrintScenario1(t *testing.T) {
	tr := newFakeTransport()
	p := &Printer{
		Profile: ModelProfile{
			Model: ModelE550W, TotalPins: 128, BytesPerLine: 16,
			BaseDPI: 180, HighDPI: 360, CompressionRequired: false,
		},
		Transport: tr,
	}
	label := Label{
		Rows:           solidRows(1, 70),
		Height:         1,
		Media:          Laminated(12),
		MarginMM:       2,
		HighResolution: false,
		UseCompression: false,
	}
	window := PinWindow{LeftPins: 29, PrintPins: 70, RightPins: 29}
	if err := p.printLabel(label, window, 0, false); err != nil {
		t.Fatal(err)
	}

	got := tr.flat()
	want := []byte{
		0x1b, 0x69, 0x61, 0x01, // raster mode
		0x1b, 0x69, 0x7a, 0x84, 0x01, 0x0c, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, // print info
		0x1b, 0x69, 0x4b, 0x08, // advanced mode
		0x1b, 0x69, 0x64, 0x0e, 0x00, // margin
		0x4d, 0x00, // compression off
		0x47, 0x10, 0x00, // raster row header
		0x00, 0x00, 0x00, 0x07, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xe0, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("scenario 1 wire bytes =\n% x\nwant\n% x", got, want)
	}
}

// Scenario 3 (spec §8): two-label job, half-cut. Checks ordering: prelude
// once, L1 phases, 0C, L2 phases (including a fresh compression-mode
// command), 1A.
func TestPrintMultiTwoLabelsHalfCut(t *testing.T) {
	tr := newFakeTransport()
	printer, err := NewPrinter(ModelP900, tr)
	if err != nil {
		t.Fatal(err)
	}
	label := Label{
		Rows:           solidRows(2, 320),
		Height:         2,
		Media:          Laminated(24),
		UseCompression: true,
	}
	// Each label needs its own row source: a Source is drained as it prints.
	second := label
	second.Rows = solidRows(2, 320)
	if err := printer.PrintMulti([]Label{label, second}, PrintOptions{HalfCut: true}); err != nil {
		t.Fatal(err)
	}
	if !tr.opened {
		t.Error("transport was never opened")
	}
	if tr.closeCount != 1 {
		t.Errorf("transport closed %d times, want 1", tr.closeCount)
	}

	got := tr.flat()
	preludeLen := len(cmdInvalidate()) + len(cmdInitialize()) + len(cmdStatusRequest())
	if !bytes.Equal(got[:preludeLen], append(append(cmdInvalidate(), cmdInitialize()...), cmdStatusRequest()...)) {
		t.Fatal("job prelude (invalidate+initialize+status) missing or out of order")
	}

	chainedIdx := bytes.Index(got[preludeLen:], []byte{0x0c})
	if chainedIdx < 0 {
		t.Fatal("expected a 0x0C (chained end-of-page) between the two labels")
	}
	if !bytes.HasSuffix(got, []byte{0x1a}) {
		t.Error("job must end with 0x1A (final print)")
	}
	// Compression mode is emitted once per label, even though both labels
	// request the same setting.
	if n := bytes.Count(got, []byte{0x4d, 0x02}); n != 2 {
		t.Errorf("compression-mode command emitted %d times, want 2 (once per label)", n)
	}
}

// Scenario 4 (spec §8): unsupported media fails before any byte is sent.
func TestPrintMultiUnsupportedMediaFailsBeforeOpen(t *testing.T) {
	tr := newFakeTransport()
	printer, err := NewPrinter(ModelP910BT, tr)
	if err != nil {
		t.Fatal(err)
	}
	label := Label{Rows: solidRows(1, 56), Height: 1, Media: HeatShrink2_1(5.8)}

	err = printer.PrintMulti([]Label{label}, PrintOptions{HalfCut: true})
	var umErr *UnsupportedMediaError
	if !errors.As(err, &umErr) {
		t.Fatalf("expected *UnsupportedMediaError, got %T: %v", err, err)
	}
	if tr.opened {
		t.Error("transport must not be opened when media validation fails")
	}
	if len(tr.writes) != 0 {
		t.Error("no bytes should be written when media validation fails")
	}
}

// Scenario 5 (spec §8): compression_required model overrides a caller's
// use_compression=false.
func TestPrintCompressionRequiredOverride(t *testing.T) {
	tr := newFakeTransport()
	printer, err := NewPrinter(ModelE550W, tr) // CompressionRequired: true
	if err != nil {
		t.Fatal(err)
	}
	label := Label{
		Rows:           solidRows(1, 70),
		Height:         1,
		Media:          Laminated(12),
		UseCompression: false,
	}
	if err := printer.Print(label); err != nil {
		t.Fatal(err)
	}
	got := tr.flat()
	if !bytes.Contains(got, []byte{0x4d, 0x02}) {
		t.Error("compression_required model must emit 4D 02 even when the caller asked for no compression")
	}
	if bytes.Contains(got, []byte{0x4d, 0x00}) {
		t.Error("compression_required model must not also emit 4D 00")
	}
}

// High-res doubling (spec §8): row count, raster_count, and margin all
// double in high-resolution mode.
func TestPrintHighResolutionDoubling(t *testing.T) {
	tr := newFakeTransport()
	printer, err := NewPrinter(ModelP900, tr)
	if err != nil {
		t.Fatal(err)
	}
	label := Label{
		Rows:           solidRows(3, 320),
		Height:         3,
		Media:          Laminated(24),
		HighResolution: true,
		UseCompression: true,
		MarginMM:       2,
	}
	if err := printer.Print(label); err != nil {
		t.Fatal(err)
	}

	got := tr.flat()
	// raster_count (4 little-endian bytes right after media_type/width/0)
	// must read 6 (2x the 3 source rows).
	idx := bytes.Index(got, []byte{0x1b, 0x69, 0x7a})
	if idx < 0 {
		t.Fatal("print-information command not found")
	}
	rasterCountField := got[idx+7 : idx+11]
	want := []byte{6, 0, 0, 0}
	if !bytes.Equal(rasterCountField, want) {
		t.Errorf("raster_count field = % x, want % x (2x3 rows)", rasterCountField, want)
	}

	// Advanced-mode byte must have bit 6 set.
	amIdx := bytes.Index(got, []byte{0x1b, 0x69, 0x4b})
	if amIdx < 0 || got[amIdx+3]&(1<<6) == 0 {
		t.Error("advanced-mode byte missing high-resolution bit 6")
	}

	// Margin must be double the base-resolution value.
	base := marginDots(2, 360, false)
	marginIdx := bytes.Index(got, []byte{0x1b, 0x69, 0x64})
	if marginIdx < 0 {
		t.Fatal("margin command not found")
	}
	if int(got[marginIdx+3]) != base*2 {
		t.Errorf("margin dots = %d, want %d (2x base %d)", got[marginIdx+3], base*2, base)
	}
}

func TestReadStatusPrinterError(t *testing.T) {
	tr := newFakeTransport()
	tr.status[18] = 0x01 // no media
	printer, err := NewPrinter(ModelP900, tr)
	if err != nil {
		t.Fatal(err)
	}
	label := Label{Rows: solidRows(1, 320), Height: 1, Media: Laminated(24)}
	err = printer.Print(label)
	var perr *PrinterError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *PrinterError, got %T: %v", err, err)
	}
}

// Idempotent close (spec §8): calling Close twice on a Transport must
// succeed both times. Checked on the recording fake, which counts every
// call; the TCP and USB transports return nil once already closed.
func TestTransportCloseIdempotent(t *testing.T) {
	tr := newFakeTransport()
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if tr.closeCount != 2 {
		t.Errorf("fake records %d closes (both must succeed without error)", tr.closeCount)
	}
}

var _ transport.Transport = (*fakeTransport)(nil)
