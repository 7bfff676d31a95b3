package printer

import (
	"errors"
	"fmt"

	"github.com/google/gousb"
)

// USB identity of the KL-G2.
const (
	VendorID  gousb.ID = 0x07CF
	ProductID gousb.ID = 0x4112

	outEndpointNum = 1
	inEndpointNum  = 2
)

// USBDevice is the claimed bulk interface of a connected KL-G2. The handle
// is held exclusively for the lifetime of the process: acquired once with
// OpenUSB, released once with Close.
type USBDevice struct {
	ctx     *gousb.Context
	dev     *gousb.Device
	release func()
	out     *gousb.OutEndpoint
	in      *gousb.InEndpoint
}

// OpenUSB finds the printer by its fixed vendor/product pair and claims
// the default interface of its active configuration.
func OpenUSB() (*USBDevice, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(VendorID, ProductID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("opening printer: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, errors.New("can't find or access printer")
	}

	// the kernel usblp driver grabs the printer first on Linux
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("detaching kernel driver: %w", err)
	}

	intf, release, err := dev.DefaultInterface()
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("claiming printer interface: %w", err)
	}

	out, err := intf.OutEndpoint(outEndpointNum)
	if err == nil {
		var in *gousb.InEndpoint
		in, err = intf.InEndpoint(inEndpointNum)
		if err == nil {
			return &USBDevice{
				ctx:     ctx,
				dev:     dev,
				release: release,
				out:     out,
				in:      in,
			}, nil
		}
	}

	release()
	dev.Close()
	ctx.Close()
	return nil, fmt.Errorf("opening printer endpoints: %w", err)
}

func (d *USBDevice) Write(p []byte) (int, error) {
	return d.out.Write(p)
}

func (d *USBDevice) Read(p []byte) (int, error) {
	return d.in.Read(p)
}

func (d *USBDevice) Close() error {
	d.release()
	err := d.dev.Close()
	d.ctx.Close()
	return err
}
