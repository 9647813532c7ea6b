package transport

// USB implements Transport over the Linux usblp kernel driver's character
// device (/dev/usb/lpN), exactly the mechanism ql/ql_linux.go uses. See
// DESIGN.md Open Question 3: the pack contains no raw-USB-bulk library
// (no google/gousb, no libusb binding) to match spec §6's vendor:product
// addressing directly against bulk endpoints, so this transport instead
// resolves vendor:product[/serial] against sysfs
// (/sys/class/usblp/lpN/device) to pick the right /dev/usb/lpN, then reads
// and writes that file — usblp has already claimed the bulk endpoints for
// us, so there is no kernel-driver detach/reattach to perform here (unlike
// a raw-libusb transport, which would need it).

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultVendorID is Brother Industries' USB vendor ID (spec §6).
const DefaultVendorID uint16 = 0x04F9

// USB addresses one printer by USB vendor:product[/serial] (spec §6 URI
// grammar), resolved to a /dev/usb/lpN character device at Open time.
type USB struct {
	VendorID  uint16 // defaults to DefaultVendorID if zero
	ProductID uint16
	Serial    string // optional; if set, must match exactly

	file *os.File
}

// sysfsUSBLPDevices enumerates candidate usblp character devices, pairing
// each /dev/usb/lpN with the vendor/product/serial of the USB device that
// owns it.
func sysfsUSBLPDevices() ([]usbCandidate, error) {
	entries, err := filepath.Glob("/sys/class/usblp/lp*")
	if err != nil {
		return nil, err
	}
	var out []usbCandidate
	for _, entry := range entries {
		name := filepath.Base(entry)
		devicePath, err := filepath.EvalSymlinks(filepath.Join(entry, "device"))
		if err != nil {
			continue
		}
		// device -> .../<bus>-<port>:<config>.<interface>; the USB device
		// itself (carrying idVendor/idProduct/serial) is that directory's
		// parent.
		usbDevDir := filepath.Dir(devicePath)
		vendor, err1 := readSysfsHex(filepath.Join(usbDevDir, "idVendor"))
		product, err2 := readSysfsHex(filepath.Join(usbDevDir, "idProduct"))
		if err1 != nil || err2 != nil {
			continue
		}
		serial, _ := readSysfsString(filepath.Join(usbDevDir, "serial"))
		out = append(out, usbCandidate{
			devNode: "/dev/usb/" + name,
			vendor:  vendor,
			product: product,
			serial:  serial,
		})
	}
	return out, nil
}

type usbCandidate struct {
	devNode string
	vendor  uint16
	product uint16
	serial  string
}

func readSysfsHex(path string) (uint16, error) {
	s, err := readSysfsString(path)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 16)
	return uint16(n), err
}

func readSysfsString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Open finds the printer with the configured vendor/product/serial and
// opens its usblp character device for read/write.
func (u *USB) Open() error {
	vendor := u.VendorID
	if vendor == 0 {
		vendor = DefaultVendorID
	}

	candidates, err := sysfsUSBLPDevices()
	if err != nil {
		return &Error{Kind: NotFound, Msg: "could not enumerate usblp devices", Cause: err}
	}

	for _, c := range candidates {
		if c.vendor != vendor || c.product != u.ProductID {
			continue
		}
		if u.Serial != "" && c.serial != u.Serial {
			continue
		}
		f, err := os.OpenFile(c.devNode, os.O_RDWR, 0)
		if err != nil {
			if errors.Is(err, os.ErrPermission) {
				return &Error{Kind: Permission, Msg: "permission denied opening " + c.devNode, Cause: err}
			}
			return &Error{Kind: NotFound, Msg: "could not open " + c.devNode, Cause: err}
		}
		u.file = f
		return nil
	}

	return &Error{Kind: NotFound, Msg: fmt.Sprintf(
		"no USB printer found for vendor 0x%04X product 0x%04X", vendor, u.ProductID)}
}

// Write implements Transport through WriteAllOrNothingWithRetry. Failures
// on the usblp device are reported as Write or NotFound errors, never as
// Timeout, so a failed USB write is not retried.
func (u *USB) Write(payload []byte) error {
	return WriteAllOrNothingWithRetry(func() error {
		if u.file == nil {
			return &Error{Kind: NotFound, Msg: "not open"}
		}
		n, err := u.file.Write(payload)
		if err != nil {
			if errors.Is(err, os.ErrClosed) {
				return &Error{Kind: Write, Msg: "broken pipe", Cause: err}
			}
			return &Error{Kind: Write, Msg: "write failed", Cause: err}
		}
		if n != len(payload) {
			return &Error{Kind: Write, Msg: "incomplete write"}
		}
		return nil
	})
}

// Read polls for a status reply the way ql_linux.go's pollStatusBytes
// does: the usblp driver returns io.EOF while no reply is queued yet.
func (u *USB) Read(buf []byte) (int, error) {
	if u.file == nil {
		return 0, &Error{Kind: NotFound, Msg: "not open"}
	}
	deadline := time.Now().Add(time.Second)
	for {
		n, err := u.file.Read(buf)
		if err == nil {
			return n, nil
		}
		if errors.Is(err, io.EOF) {
			if time.Now().After(deadline) {
				return 0, &Error{Kind: Timeout, Msg: "status read timed out"}
			}
			time.Sleep(10 * time.Millisecond)
			continue
		}
		return 0, &Error{Kind: Network, Msg: "read failed", Cause: err}
	}
}

// Close implements Transport. Idempotent (spec §4.7).
func (u *USB) Close() error {
	if u.file == nil {
		return nil
	}
	err := u.file.Close()
	u.file = nil
	return err
}
