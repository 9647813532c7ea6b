package ptouch

import "fmt"

// Status is a decoder for the printer's 32-byte status reply (spec §6):
// starts with the fixed preamble 0x80 0x20; byte 10 is media width in mm,
// byte 11 is media type (0x01 laminated, 0x11 heat-shrink), bytes 18/19 are
// error info 1/2. Byte-offset layout is PT-series specific and differs
// from the teacher's QL-series Status (ql/status.go keeps error info at
// bytes 8/9); this type follows spec §6's PT-series offsets throughout.
type Status [32]byte

// ParseStatus validates and wraps a raw status reply. It fails with
// *ProtocolError if the reply is the wrong length or missing its fixed
// preamble bytes.
func ParseStatus(raw []byte) (*Status, error) {
	if len(raw) != 32 {
		return nil, &ProtocolError{Reason: fmt.Sprintf("status reply must be 32 bytes, got %d", len(raw))}
	}
	if raw[0] != 0x80 || raw[1] != 0x20 {
		return nil, &ProtocolError{Reason: "status reply missing 0x80 0x20 preamble"}
	}
	var s Status
	copy(s[:], raw)
	return &s, nil
}

// MediaWidthMM is byte 10: the media width the printer reports.
func (s *Status) MediaWidthMM() int { return int(s[10]) }

// MediaTypeByte is byte 11: 0x01 laminated, 0x11 heat-shrink — the same
// encoding the print-information command (spec §4.5) uses on the way out.
func (s *Status) MediaTypeByte() byte { return s[11] }

// ErrorInfo1 and ErrorInfo2 are bytes 18 and 19: a non-zero value in either
// fails the job with *PrinterError (spec §6).
func (s *Status) ErrorInfo1() byte { return s[18] }
func (s *Status) ErrorInfo2() byte { return s[19] }

func decodeBitfieldErrors(b byte, names [8]string) []string {
	var result []string
	for i := uint(0); i < 8; i++ {
		if b&(1<<i) != 0 {
			result = append(result, names[i])
		}
	}
	return result
}

// Error-info bit names, carried over from the teacher's decoder (ql/status.go)
// since spec.md does not redefine them and the PT and QL status frames share
// Brother's common error-bitfield conventions.
var errorInfo1Names = [8]string{
	"no media", "end of media", "cutter jam", "?", "printer in use",
	"printer turned off", "high-voltage adapter", "fan motor error",
}

var errorInfo2Names = [8]string{
	"replace media", "expansion buffer full", "communication error",
	"communication buffer full", "cover open", "cancel key",
	"media cannot be fed", "system error",
}

// Errors decodes both error-info bytes into human-readable names.
func (s *Status) Errors() []string {
	var errs []string
	errs = append(errs, decodeBitfieldErrors(s.ErrorInfo1(), errorInfo1Names)...)
	errs = append(errs, decodeBitfieldErrors(s.ErrorInfo2(), errorInfo2Names)...)
	return errs
}

// HasError reports whether either error-info byte is non-zero.
func (s *Status) HasError() bool {
	return s.ErrorInfo1() != 0 || s.ErrorInfo2() != 0
}
