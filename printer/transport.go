package printer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// endpoint buffer size on both endpoints
const epSize = 64

// Transport moves raw frames across the two bulk endpoints with the
// device's exact size semantics.
type Transport struct {
	dev Device
}

func NewTransport(dev Device) *Transport {
	return &Transport{dev: dev}
}

// Send writes payload padded with zero bytes up to the given transfer
// size. The device only accepts transfers of 1, 16 or 64 bytes depending
// on the command, not on the amount of data transferred: an incomplete
// raster transfer must still be 64 bytes even if it fits in 16.
func (t *Transport) Send(payload []byte, size TransferSize) error {
	if len(payload) > int(size) {
		return &TransportError{
			Op:  "send",
			Err: fmt.Errorf("payload of %d bytes exceeds transfer size %d", len(payload), size),
		}
	}

	out := make([]byte, size)
	copy(out, payload)
	dumpFrame(">", out[:len(payload)])

	n, err := t.dev.Write(out)
	if err != nil {
		return &TransportError{Op: "send", Err: err}
	}
	if n != int(size) {
		return &TransportError{
			Op:  "send",
			Err: fmt.Errorf("incomplete transfer (%d/%d)", n, size),
		}
	}
	return nil
}

// Receive reads one bulk IN transfer and returns exactly the bytes the
// device produced, which may be fewer than the 64-byte endpoint buffer.
func (t *Transport) Receive() ([]byte, error) {
	in := make([]byte, epSize)
	n, err := t.dev.Read(in)
	if err != nil {
		return nil, &TransportError{Op: "receive", Err: err}
	}
	dumpFrame("<", in[:n])
	return in[:n], nil
}

// dumpFrame surfaces a wire frame as a space-separated hex dump with a
// direction marker. Debug level, so it only shows up in verbose mode.
func dumpFrame(dir string, frame []byte) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	var sb strings.Builder
	for i, b := range frame {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	slog.Debug("USB frame",
		"dir", dir,
		"data", sb.String(),
	)
}
