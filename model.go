package ptouch

// ModelID names one of the supported Brother P-touch printer models (spec §6
// CLI surface: E550W, P750W, P900, P900W, P910BT, P950NW).
type ModelID string

const (
	ModelE550W  ModelID = "E550W"
	ModelP750W  ModelID = "P750W"
	ModelP900   ModelID = "P900"
	ModelP900W  ModelID = "P900W"
	ModelP910BT ModelID = "P910BT"
	ModelP950NW ModelID = "P950NW"
)

// PinWindow is the per-(model, media) triple (left_pad, printable_pins,
// right_pad) describing where the printable area sits within the model's
// full pin span. Invariant: LeftPins + PrintPins + RightPins == total pins
// of the owning ModelProfile.
type PinWindow struct {
	LeftPins  int
	PrintPins int
	RightPins int
}

// pinWindowKey is the lookup key for a model's pin-window table. It
// deliberately excludes MediaDescriptor.NominalWidthMM (a float, and
// irrelevant to wire geometry) so the table can be a plain map.
type pinWindowKey struct {
	kind    MediaKind
	widthMM int
}

func keyFor(m MediaDescriptor) pinWindowKey {
	return pinWindowKey{kind: m.Kind, widthMM: m.ReportedWidthMM}
}

// ModelProfile carries the per-printer-model constants spec §3 names:
// total pin count, bytes per raster line, base/high DPI, whether
// compression is mandatory for correct cutting, and the pin-window table.
type ModelProfile struct {
	Model               ModelID
	USBProductID        uint16
	TotalPins           int
	BytesPerLine        int
	BaseDPI             int
	HighDPI             int
	CompressionRequired bool
	SupportsHeatShrink  bool
	pinWindows          map[pinWindowKey]PinWindow
}

// WindowFor returns the pin window for media on this profile, failing with
// *UnsupportedMediaError if the model has no entry for it (spec §4.1).
func (p ModelProfile) WindowFor(media MediaDescriptor) (PinWindow, error) {
	w, ok := p.pinWindows[keyFor(media)]
	if !ok {
		return PinWindow{}, &UnsupportedMediaError{Model: p.Model, Media: media}
	}
	return w, nil
}

// profiles is the static table of per-model constants, mirroring
// original_source/printers.py's class hierarchy (PTE550W, PTP750W,
// PTP900Series and its subclasses) as plain values instead of subclassing.
var profiles = map[ModelID]ModelProfile{
	ModelE550W: {
		Model: ModelE550W, USBProductID: 0x2060,
		TotalPins: 128, BytesPerLine: 16, BaseDPI: 180, HighDPI: 360,
		CompressionRequired: true, SupportsHeatShrink: true,
		pinWindows: pins128Laminated(),
	},
	ModelP750W: {
		Model: ModelP750W, USBProductID: 0x2065,
		TotalPins: 128, BytesPerLine: 16, BaseDPI: 180, HighDPI: 360,
		CompressionRequired: true, SupportsHeatShrink: true,
		pinWindows: pins128Laminated(),
	},
	ModelP900: {
		Model: ModelP900, USBProductID: 0x2083,
		TotalPins: 560, BytesPerLine: 70, BaseDPI: 360, HighDPI: 720,
		CompressionRequired: false, SupportsHeatShrink: true,
		pinWindows: pins560All(),
	},
	ModelP900W: {
		Model: ModelP900W, USBProductID: 0x2085,
		TotalPins: 560, BytesPerLine: 70, BaseDPI: 360, HighDPI: 720,
		CompressionRequired: false, SupportsHeatShrink: true,
		pinWindows: pins560All(),
	},
	ModelP950NW: {
		Model: ModelP950NW, USBProductID: 0x2086,
		TotalPins: 560, BytesPerLine: 70, BaseDPI: 360, HighDPI: 720,
		CompressionRequired: false, SupportsHeatShrink: true,
		pinWindows: pins560All(),
	},
	// PT-P910BT (Bluetooth variant) omits all heat-shrink windows: attempts
	// to use heat-shrink media on it fail fast with UnsupportedMedia.
	ModelP910BT: {
		Model: ModelP910BT, USBProductID: 0x20C7,
		TotalPins: 560, BytesPerLine: 70, BaseDPI: 360, HighDPI: 720,
		CompressionRequired: false, SupportsHeatShrink: false,
		pinWindows: pins560Laminated(),
	},
}

// ProfileFor looks up a ModelProfile by ID.
func ProfileFor(id ModelID) (ModelProfile, error) {
	p, ok := profiles[id]
	if !ok {
		return ModelProfile{}, &ValidationError{Reason: "unknown printer model " + string(id)}
	}
	return p, nil
}

// pins128Laminated is the 128-pin family's laminated-tape pin window table.
// Source: original_source/printers.py PTE550W.PIN_CONFIGS (Brother
// cv_pte550wp750wp710bt_eng_raster_102.pdf, page 20, section 2.3).
func pins128Laminated() map[pinWindowKey]PinWindow {
	return map[pinWindowKey]PinWindow{
		{MediaLaminatedTape, 4}:  {52, 24, 52},
		{MediaLaminatedTape, 6}:  {48, 32, 48},
		{MediaLaminatedTape, 9}:  {39, 50, 39},
		{MediaLaminatedTape, 12}: {29, 70, 29},
		{MediaLaminatedTape, 18}: {8, 112, 8},
		{MediaLaminatedTape, 24}: {0, 128, 0},
	}
}

// pins560Laminated is the 560-pin family's laminated-tape pin window table.
// Source: original_source/printers.py PTP900Series.PIN_CONFIGS (Brother
// cv_ptp900_eng_raster_102.pdf, pages 23-24, section 2.3.5).
func pins560Laminated() map[pinWindowKey]PinWindow {
	return map[pinWindowKey]PinWindow{
		{MediaLaminatedTape, 4}:  {248, 48, 264},
		{MediaLaminatedTape, 6}:  {240, 64, 256},
		{MediaLaminatedTape, 9}:  {219, 106, 235},
		{MediaLaminatedTape, 12}: {197, 150, 213},
		{MediaLaminatedTape, 18}: {155, 234, 171},
		{MediaLaminatedTape, 24}: {112, 320, 128},
		{MediaLaminatedTape, 36}: {45, 454, 61},
	}
}

// pins560HeatShrink is the 560-pin family's heat-shrink tube pin window
// table. The 5.8mm 2:1 entry (261,56,243) is the one documented data point
// (spec §6); the rest are derived from it — see DESIGN.md Open Question 1
// for the derivation (printable-pins-per-mm density plus the observed
// right-left pad offset, solved to keep the 560-pin closure invariant).
// Treat these as placeholders pending the vendor's heat-shrink raster spec.
func pins560HeatShrink() map[pinWindowKey]PinWindow {
	return map[pinWindowKey]PinWindow{
		{MediaHeatShrinkTube2_1, 6}:  {261, 56, 243},
		{MediaHeatShrinkTube2_1, 9}:  {247, 85, 228},
		{MediaHeatShrinkTube2_1, 12}: {233, 113, 214},
		{MediaHeatShrinkTube2_1, 18}: {204, 171, 185},
		{MediaHeatShrinkTube2_1, 24}: {175, 228, 157},
		{MediaHeatShrinkTube3_1, 5}:  {264, 50, 246},
		{MediaHeatShrinkTube3_1, 9}:  {246, 87, 227},
		{MediaHeatShrinkTube3_1, 11}: {235, 108, 217},
		{MediaHeatShrinkTube3_1, 21}: {188, 203, 169},
		{MediaHeatShrinkTube3_1, 31}: {140, 299, 121},
	}
}

func pins560All() map[pinWindowKey]PinWindow {
	m := pins560Laminated()
	for k, v := range pins560HeatShrink() {
		m[k] = v
	}
	return m
}
