package ptouch

import (
	"github.com/go-ptouch/ptouch/transport"
)

// NewUSBTransport builds the USB transport for a parsed address, defaulting
// the product ID to model's own USB product ID when addr.ProductID is zero
// (spec §6: product IDs are per-model, not caller-chosen), and the vendor
// ID to DefaultVendorID (Brother) when the URI didn't carry one at all —
// ParseUSBURI leaves that decision to its caller.
func NewUSBTransport(model ModelID, addr USBAddress) (transport.Transport, error) {
	profile, err := ProfileFor(model)
	if err != nil {
		return nil, err
	}
	vendorID := addr.VendorID
	if !addr.HasVendor {
		vendorID = DefaultVendorID
	}
	productID := addr.ProductID
	if productID == 0 {
		productID = profile.USBProductID
	}
	return &transport.USB{
		VendorID:  vendorID,
		ProductID: productID,
		Serial:    addr.Serial,
	}, nil
}

// NewTCPTransport builds the TCP transport for a host (spec §6: port 9100,
// TCP_NODELAY, 5-second default timeout — all handled by transport.NewTCP).
func NewTCPTransport(host string) transport.Transport {
	return transport.NewTCP(host)
}
