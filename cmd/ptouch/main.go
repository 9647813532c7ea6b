// Command ptouch prints labels on Brother P-touch printers, driven entirely
// by an image file — see the module's SPEC_FULL.md for why text rendering
// isn't built here. Grounded on ql-print/main.go's flag-and-log-Fatalln
// style and original_source/__main__.py's flag surface.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	_ "golang.org/x/image/bmp"

	"github.com/go-ptouch/ptouch"
	"github.com/go-ptouch/ptouch/raster"
	"github.com/go-ptouch/ptouch/transport"
)

var (
	imagePath      = flag.String("image", "", "image file to print (PNG, GIF, JPEG, BMP)")
	host           = flag.String("host", "", "printer IP address for a TCP connection")
	usbFlag        = flag.String("usb", "", "use USB; a usb://[vendor]:product[/serial] URI, or empty (--usb=) for the model's default")
	printerModel   = flag.String("printer", "", "printer model: E550W, P750W, P900, P900W, P910BT, P950NW")
	tapeWidth      = flag.Float64("tape-width", 0, "laminated tape width in mm")
	tubeWidth      = flag.Float64("tube-width", 0, "heat shrink tube diameter in mm")
	marginMM       = flag.Float64("margin", 2, "margin in mm")
	highResolution = flag.Bool("high-resolution", false, "enable high resolution mode")
	noCompression  = flag.Bool("no-compression", false, "disable TIFF compression")
	copies         = flag.Int("copies", 1, "number of copies to print")
	fullCut        = flag.Bool("full-cut", false, "use full cuts between labels instead of half-cuts")
	rotate         = flag.Bool("rotate", false, "rotate the image 90 degrees before printing (for art authored with the short edge as width)")
)

// tubeSeries maps a heat-shrink tube's nominal diameter to its series,
// mirroring original_source/__main__.py's TUBE_WIDTHS table (diameters are
// unique across both series).
var tubeSeries = map[float64]ptouch.MediaKind{
	5.8: ptouch.MediaHeatShrinkTube2_1, 8.8: ptouch.MediaHeatShrinkTube2_1,
	11.7: ptouch.MediaHeatShrinkTube2_1, 17.7: ptouch.MediaHeatShrinkTube2_1,
	23.6: ptouch.MediaHeatShrinkTube2_1,
	5.2:  ptouch.MediaHeatShrinkTube3_1, 9.0: ptouch.MediaHeatShrinkTube3_1,
	11.2: ptouch.MediaHeatShrinkTube3_1, 21.0: ptouch.MediaHeatShrinkTube3_1,
	31.0: ptouch.MediaHeatShrinkTube3_1,
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [text ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	if flag.NArg() > 0 && *imagePath == "" {
		return fmt.Errorf("text labels are not supported by this build; pass --image FILE instead")
	}
	if *imagePath == "" {
		return fmt.Errorf("--image FILE is required")
	}
	hostSet, usbSet := *host != "", usbRequested()
	if hostSet == usbSet {
		return fmt.Errorf("exactly one of --host or --usb is required")
	}
	if *printerModel == "" {
		return fmt.Errorf("--printer is required")
	}
	if (*tapeWidth == 0) == (*tubeWidth == 0) {
		return fmt.Errorf("exactly one of --tape-width or --tube-width is required")
	}
	if *copies < 1 {
		return fmt.Errorf("--copies must be at least 1")
	}

	model := ptouch.ModelID(*printerModel)
	profile, err := ptouch.ProfileFor(model)
	if err != nil {
		return err
	}

	media, err := mediaFromFlags()
	if err != nil {
		return err
	}
	window, err := profile.WindowFor(media)
	if err != nil {
		return err
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		return err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *imagePath, err)
	}
	if *rotate {
		img = &raster.LeftRotate{Image: img}
	}

	tr, err := buildTransport(model)
	if err != nil {
		return err
	}
	printer, err := ptouch.NewPrinter(model, tr)
	if err != nil {
		return err
	}

	labels := make([]ptouch.Label, *copies)
	for i := range labels {
		src := raster.NewImageSource(img, window.PrintPins)
		labels[i] = ptouch.Label{
			Rows:           src,
			Height:         src.Height(),
			Media:          media,
			MarginMM:       *marginMM,
			HighResolution: *highResolution,
			UseCompression: !*noCompression,
		}
	}

	return printer.PrintMulti(labels, ptouch.PrintOptions{HalfCut: !*fullCut})
}

func usbRequested() bool {
	requested := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "usb" {
			requested = true
		}
	})
	return requested
}

func mediaFromFlags() (ptouch.MediaDescriptor, error) {
	if *tapeWidth != 0 {
		return ptouch.Laminated(*tapeWidth), nil
	}
	kind, ok := tubeSeries[*tubeWidth]
	if !ok {
		return ptouch.MediaDescriptor{}, fmt.Errorf("unknown tube width %gmm", *tubeWidth)
	}
	if kind == ptouch.MediaHeatShrinkTube2_1 {
		return ptouch.HeatShrink2_1(*tubeWidth), nil
	}
	return ptouch.HeatShrink3_1(*tubeWidth), nil
}

func buildTransport(model ptouch.ModelID) (transport.Transport, error) {
	if *host != "" {
		return ptouch.NewTCPTransport(*host), nil
	}
	addr, err := ptouch.ParseUSBURI(usbURIOrDefault())
	if err != nil {
		return nil, err
	}
	return ptouch.NewUSBTransport(model, addr)
}

// usbURIOrDefault fills in an empty --usb value (given as "--usb=") with
// the default vendor and product 0x0000, which NewUSBTransport replaces
// with the model's own product ID. --usb is a string flag, so it always
// takes a value: a bare "--usb" with nothing after it is a flag error, and
// "--usb" followed by another flag takes that flag as its value.
func usbURIOrDefault() string {
	if *usbFlag != "" {
		return *usbFlag
	}
	return fmt.Sprintf("usb://0x%04X:0x0000", ptouch.DefaultVendorID)
}
