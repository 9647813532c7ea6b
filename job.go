package ptouch

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-ptouch/ptouch/raster"
	"github.com/go-ptouch/ptouch/transport"
)

// Label is one print unit (spec §3): an image source for one label's rows,
// the media it is printed on, and per-label options.
type Label struct {
	Rows           raster.Source
	Height         int // number of raster rows Rows will yield
	Media          MediaDescriptor
	MarginMM       float64
	HighResolution bool
	UseCompression bool
}

// PrintOptions controls a multi-label job (spec §4.6).
type PrintOptions struct {
	HalfCut bool // true: 0C between labels, 1A after the last; false: 1A always
}

// Printer drives one physical printer over one Transport for the lifetime
// of a single Print/PrintMulti call (spec §3's "Lifecycle": labels and jobs
// are transient, scoped to a single call).
type Printer struct {
	Profile   ModelProfile
	Transport transport.Transport
}

// NewPrinter builds a Printer for model over t.
func NewPrinter(model ModelID, t transport.Transport) (*Printer, error) {
	profile, err := ProfileFor(model)
	if err != nil {
		return nil, err
	}
	return &Printer{Profile: profile, Transport: t}, nil
}

// Print runs a single-label job. Equivalent to PrintMulti with one label.
func (p *Printer) Print(label Label) error {
	return p.PrintMulti([]Label{label}, PrintOptions{HalfCut: true})
}

// PrintMulti runs the full job state machine (spec §4.6): IDLE → OPEN →
// READY → PRINTING_LABEL_i → BETWEEN → ... → DONE/FAILED → CLOSED.
//
// Validation that can be decided before any byte is sent (unsupported
// media) happens before the transport is opened; everything after that is
// a transport error, which aborts the job and closes the transport.
func (p *Printer) PrintMulti(labels []Label, opts PrintOptions) error {
	if len(labels) == 0 {
		return &ValidationError{Reason: "no labels in job"}
	}

	windows := make([]PinWindow, len(labels))
	for i, l := range labels {
		if l.Media.Kind != MediaLaminatedTape && !p.Profile.SupportsHeatShrink {
			return &UnsupportedMediaError{Model: p.Profile.Model, Media: l.Media}
		}
		w, err := p.Profile.WindowFor(l.Media)
		if err != nil {
			return err
		}
		if l.MarginMM < 0 {
			return &ValidationError{Reason: "margin_mm must not be negative"}
		}
		windows[i] = w
	}

	if err := p.Transport.Open(); err != nil {
		return err
	}
	defer p.Transport.Close()

	if err := p.writeAll(cmdInvalidate()); err != nil {
		return err
	}
	if err := p.writeAll(cmdInitialize()); err != nil {
		return err
	}
	if err := p.writeAll(cmdStatusRequest()); err != nil {
		return err
	}
	if err := p.readStatus(); err != nil {
		return err
	}

	for i, label := range labels {
		last := i == len(labels)-1
		chained := !last && opts.HalfCut
		if err := p.printLabel(label, windows[i], byte(i), chained); err != nil {
			return err
		}

		if chained {
			if err := p.writeAll(cmdEndOfPageChained()); err != nil {
				return err
			}
		} else {
			if err := p.writeAll(cmdEndOfPageFinal()); err != nil {
				return err
			}
		}
	}

	return nil
}

// readStatus consumes the 32-byte status reply following the status
// request. A transport with no reverse channel (spec §4.7, §9) is not an
// error: the controller proceeds without parsing status.
func (p *Printer) readStatus() error {
	var buf [32]byte
	n, err := p.Transport.Read(buf[:])
	if errors.Is(err, transport.ErrNotSupported) {
		return nil
	}
	if err != nil {
		return err
	}
	status, err := ParseStatus(buf[:n])
	if err != nil {
		return err
	}
	if status.HasError() {
		code := status.ErrorInfo1()
		if code == 0 {
			code = status.ErrorInfo2()
		}
		return &PrinterError{Code: code, Errs: status.Errors()}
	}
	return nil
}

// printLabel emits one label's raster mode / print-info / advanced-mode /
// margin / compression-mode / raster-row phases (spec §4.5 steps 4-9).
func (p *Printer) printLabel(label Label, window PinWindow, pageNumber byte, chained bool) error {
	useCompression := label.UseCompression
	if p.Profile.CompressionRequired && !useCompression {
		log.Printf("ptouch: model %s requires compression; overriding caller's use_compression=false",
			p.Profile.Model)
		useCompression = true
	}

	rasterCount := label.Height
	if label.HighResolution {
		rasterCount *= 2
	}

	if err := p.writeAll(cmdRasterMode()); err != nil {
		return err
	}
	if err := p.writeAll(cmdPrintInformation(mediaTypeByte(label.Media.Kind),
		label.Media.ReportedWidthMM, rasterCount, pageNumber)); err != nil {
		return err
	}
	if err := p.writeAll(cmdAdvancedMode(label.HighResolution, chained)); err != nil {
		return err
	}
	dots := marginDots(label.MarginMM, p.Profile.BaseDPI, label.HighResolution)
	if err := p.writeAll(cmdMargin(dots)); err != nil {
		return err
	}
	if err := p.writeAll(cmdCompressionMode(useCompression)); err != nil {
		return err
	}

	rowsEmitted := 0
	for {
		row, ok, err := label.Rows.Next()
		if err != nil {
			return &ValidationError{Reason: fmt.Sprintf("raster source: %v", err)}
		}
		if !ok {
			break
		}
		if len(row)*8 < window.PrintPins {
			return &ValidationError{Reason: fmt.Sprintf(
				"row has %d bits, want at least %d (printable pins)", len(row)*8, window.PrintPins)}
		}

		padded := packLine(window, p.Profile.BytesPerLine, row)
		cmd := cmdRasterRow(padded, useCompression)
		repeats := 1
		if label.HighResolution {
			repeats = 2
		}
		for r := 0; r < repeats; r++ {
			if err := p.writeAll(cmd); err != nil {
				return err
			}
			rowsEmitted++
		}
	}

	if rowsEmitted != rasterCount {
		return &ValidationError{Reason: fmt.Sprintf(
			"emitted %d raster rows, declared raster_count %d", rowsEmitted, rasterCount)}
	}
	return nil
}

func (p *Printer) writeAll(b []byte) error {
	return p.Transport.Write(b)
}
