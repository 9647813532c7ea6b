package ptouch

import "fmt"

// UnsupportedMediaError is returned when a model's pin-window table has no
// entry for the requested MediaDescriptor.
type UnsupportedMediaError struct {
	Model ModelID
	Media MediaDescriptor
}

func (e *UnsupportedMediaError) Error() string {
	return fmt.Sprintf("ptouch: model %s has no pin window for %s at %dmm",
		e.Model, e.Media.Kind, e.Media.ReportedWidthMM)
}

// ValidationError is returned for caller-supplied values that are
// structurally invalid before any byte is sent to a transport: image
// dimensions incompatible with the printable pin count, a negative margin,
// zero copies, and similar.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "ptouch: " + e.Reason }

// Transport-layer failures are surfaced directly as *transport.Error
// (spec §7's error taxonomy); the job controller does not re-wrap them
// and returns them unchanged.

// PrinterError is returned when the device's status reply carries a
// non-zero error-info byte (spec §6).
type PrinterError struct {
	Code byte // the non-zero error-info byte (1 or 2)
	Errs []string
}

func (e *PrinterError) Error() string {
	return fmt.Sprintf("ptouch: printer reported error 0x%02x: %v", e.Code, e.Errs)
}

// ProtocolError is returned when a status reply is malformed: wrong length
// or a bad fixed-byte preamble.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string { return "ptouch: protocol error: " + e.Reason }
