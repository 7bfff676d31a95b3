package printer

import "errors"

var errFakeBus = errors.New("bulk transfer error")

// fakeDevice scripts a device for exchange-level tests: every Write is
// recorded, every Read consumes the next queued reply. With autoAck set it
// answers ACK once the script runs out, which keeps raster tests short.
type fakeDevice struct {
	wrote      [][]byte
	replies    [][]byte
	autoAck    bool
	writeErrAt int // 1-based index of the Write call that fails
	shortWrite bool
	readErr    error
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	if d.writeErrAt != 0 && len(d.wrote)+1 == d.writeErrAt {
		return 0, errFakeBus
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	d.wrote = append(d.wrote, cp)
	if d.shortWrite {
		return len(p) - 1, nil
	}
	return len(p), nil
}

func (d *fakeDevice) Read(p []byte) (int, error) {
	if d.readErr != nil {
		return 0, d.readErr
	}
	if len(d.replies) == 0 {
		if d.autoAck {
			p[0] = ACK
			return 1, nil
		}
		return 0, nil
	}
	r := d.replies[0]
	d.replies = d.replies[1:]
	return copy(p, r), nil
}

func ackRsp() []byte {
	return []byte{ACK}
}

func statusRsp() []byte {
	return []byte{STX, 0x80, 0x02, 0x00, 0x00, 0xA6}
}

func prejobRsp() []byte {
	return []byte{STX, 0x80, 0x01, 0x00, 0x01}
}

func isRasterBlock(frame []byte) bool {
	return len(frame) >= 2 && frame[0] == STX && frame[1] == 0xFE
}

func isRasterEnd(frame []byte) bool {
	return len(frame) >= 2 && frame[0] == STX && frame[1] == 0x04
}

func isPrintPage(frame []byte) bool {
	return len(frame) == 1 && frame[0] == 0x0C
}

func isCancel(frame []byte) bool {
	return len(frame) == 1 && frame[0] == 0x18
}
