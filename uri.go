package ptouch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultVendorID is Brother Industries' USB vendor ID, used when a usb://
// URI omits the vendor (spec §6).
const DefaultVendorID uint16 = 0x04F9

// USBAddress is the parsed form of a `usb://` URI (spec §6, §8 scenario 6).
// VendorID is only meaningful when HasVendor is true: an absent vendor is
// not the same as an explicit "usb://0x0000:...", so the zero value can't
// stand in for "not given". Callers that need a concrete vendor (opening a
// device) apply DefaultVendorID themselves — see NewUSBTransport.
type USBAddress struct {
	VendorID  uint16
	HasVendor bool
	ProductID uint16
	Serial    string // empty if not present in the URI
}

var usbURIPattern = regexp.MustCompile(
	`^usb://([0-9A-Fa-fxX]*):([0-9A-Fa-fxX]+)(?:/([0-9A-Za-z]+))?$`)

// ParseUSBURI parses `usb://[VVVV]:PPPP[/SERIAL]` (spec §6). VendorID and
// ProductID are hexadecimal, `0x`-prefixed or bare; a missing vendor is
// reported as HasVendor=false rather than defaulted here. Serial, if
// present, must be alphanumeric — a dash or any other punctuation makes the
// whole URI illegal (spec §8 scenario 6).
//
// This is a pure function: on any parse failure it returns an error and
// never touches a device, and it never substitutes a default vendor itself
// (original_source/connection.py's parse_usb_uri, which this is grounded
// on, likewise returns None for an absent vendor and lets the caller decide).
func ParseUSBURI(uri string) (USBAddress, error) {
	m := usbURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return USBAddress{}, &ValidationError{Reason: fmt.Sprintf("malformed usb URI %q", uri)}
	}
	vendorStr, productStr, serial := m[1], m[2], m[3]

	var vendor uint16
	var hasVendor bool
	if vendorStr != "" {
		v, err := parseHexUint16(vendorStr)
		if err != nil {
			return USBAddress{}, &ValidationError{Reason: fmt.Sprintf("bad vendor id %q: %v", vendorStr, err)}
		}
		vendor, hasVendor = v, true
	}

	product, err := parseHexUint16(productStr)
	if err != nil {
		return USBAddress{}, &ValidationError{Reason: fmt.Sprintf("bad product id %q: %v", productStr, err)}
	}

	return USBAddress{VendorID: vendor, HasVendor: hasVendor, ProductID: product, Serial: serial}, nil
}

func parseHexUint16(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return 0, fmt.Errorf("empty hex value")
	}
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}
