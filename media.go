package ptouch

import (
	"fmt"
	"log"
	"math"
	"sync"
)

// MediaKind is the tagged variant for the physical media a label is printed
// on. The printer reports a width in millimeters for whichever kind is
// currently loaded; that reported width, not the nominal one, is what keys
// a ModelProfile's pin-window table.
type MediaKind int

const (
	MediaLaminatedTape MediaKind = iota
	MediaHeatShrinkTube2_1
	MediaHeatShrinkTube3_1
)

func (k MediaKind) String() string {
	switch k {
	case MediaLaminatedTape:
		return "laminated tape"
	case MediaHeatShrinkTube2_1:
		return "heat shrink tube (2:1)"
	case MediaHeatShrinkTube3_1:
		return "heat shrink tube (3:1)"
	default:
		return fmt.Sprintf("media kind %d", int(k))
	}
}

// MediaDescriptor identifies one loaded media. ReportedWidthMM is the value
// that appears in the printer's status reply and is what ModelProfile pin
// windows are keyed on; NominalWidthMM is the human-facing width used for
// selection (some tapes, e.g. 3.5mm, report wider than their nominal size).
type MediaDescriptor struct {
	Kind            MediaKind
	ReportedWidthMM int
	NominalWidthMM  float64
}

// Laminated builds the MediaDescriptor for a laminated tape of the given
// nominal width, using the reported-width quirk table where the printer
// reports a different width than the tape's nominal size.
func Laminated(nominalWidthMM float64) MediaDescriptor {
	return MediaDescriptor{
		Kind:            MediaLaminatedTape,
		ReportedWidthMM: laminatedReportedWidth(nominalWidthMM),
		NominalWidthMM:  nominalWidthMM,
	}
}

func laminatedReportedWidth(nominalWidthMM float64) int {
	// 3.5mm tape reports as 4mm; every other laminated width reports as
	// its own rounded value.
	if nominalWidthMM == 3.5 {
		return 4
	}
	return int(math.Round(nominalWidthMM))
}

// HeatShrink2_1 builds the MediaDescriptor for a 2:1 heat-shrink tube of the
// given nominal diameter in mm.
func HeatShrink2_1(nominalWidthMM float64) MediaDescriptor {
	return MediaDescriptor{
		Kind:            MediaHeatShrinkTube2_1,
		ReportedWidthMM: int(math.Round(nominalWidthMM)),
		NominalWidthMM:  nominalWidthMM,
	}
}

// HeatShrink3_1 builds the MediaDescriptor for a 3:1 heat-shrink tube of the
// given nominal diameter in mm.
func HeatShrink3_1(nominalWidthMM float64) MediaDescriptor {
	return MediaDescriptor{
		Kind:            MediaHeatShrinkTube3_1,
		ReportedWidthMM: int(math.Round(nominalWidthMM)),
		NominalWidthMM:  nominalWidthMM,
	}
}

// -----------------------------------------------------------------------------
// Deprecated aliases.
//
// original_source/tape.py exposes a class hierarchy of deprecated aliases
// (LaminatedTape, LaminatedTape3_5mm, ...) for the canonical Tape*mm types,
// each warning at instantiation time. Re-architected here as one
// constructor, LaminatedTape, that resolves to the canonical
// MediaDescriptor and logs a deprecation note exactly once per process,
// rather than once per call. The per-width aliases (LaminatedTape3_5mm and
// the like) have no counterpart here.

var deprecatedMediaWarnOnce sync.Once

func warnDeprecatedMedia() {
	deprecatedMediaWarnOnce.Do(func() {
		log.Printf("ptouch: LaminatedTape is deprecated, use Laminated(widthMM) instead")
	})
}

// LaminatedTape is a deprecated alias of Laminated. Kept for callers
// migrating off the original nbuchwitz/ptouch tape-class names.
//
// Deprecated: use Laminated.
func LaminatedTape(nominalWidthMM float64) MediaDescriptor {
	warnDeprecatedMedia()
	return Laminated(nominalWidthMM)
}
