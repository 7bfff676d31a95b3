// This file is the protocol table: one constructor per printer command,
// each pairing a fixed frame template with the response the device must
// give back. Several frame fields are opaque constants with unknown
// meaning; they are kept byte-for-byte as captured from the device.

package printer

import (
	"bytes"
	"fmt"
)

// Command is one entry of the protocol table: a frame template, the
// transfer size its output must use, and the expected-response predicate.
// A nil Check means the command produces no response to consume.
type Command struct {
	Name  string
	Frame []byte
	Size  TransferSize
	Check func(rsp []byte) error
}

// ackOnly matches the single-byte ACK every configuration command answers
// with. Anything else, including a NAK, is a mismatch.
func ackOnly(rsp []byte) error {
	if len(rsp) != 1 || rsp[0] != ACK {
		return fmt.Errorf("expected ACK, got [% X]: %w", rsp, ErrMismatch)
	}
	return nil
}

// exactly matches a response byte-for-byte.
func exactly(want []byte) func([]byte) error {
	return func(rsp []byte) error {
		if len(rsp) != len(want) {
			return fmt.Errorf("unexpected response length %d, want %d: %w", len(rsp), len(want), ErrMismatch)
		}
		if !bytes.Equal(rsp, want) {
			return fmt.Errorf("response [% X] does not match [% X]: %w", rsp, want, ErrMismatch)
		}
		return nil
	}
}

// StatusCheck asks whether the printer is ready. Can be slow.
func StatusCheck() Command {
	return Command{
		Name:  "status check",
		Frame: []byte{STX, 0x1D},
		Size:  Transfer16,
		Check: exactly([]byte{STX, 0x80, 0x02, 0x00, 0x00, 0xA6}),
	}
}

func Reset() Command {
	return Command{
		Name:  "reset",
		Frame: []byte{STX, 0x01},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

func TapeCut() Command {
	return Command{
		Name:  "tape cut",
		Frame: []byte{0x08},
		Size:  Transfer1,
		Check: ackOnly,
	}
}

func TapeHalfCut() Command {
	return Command{
		Name:  "tape half cut",
		Frame: []byte{0x09},
		Size:  Transfer1,
		Check: ackOnly,
	}
}

func TapeFeed() Command {
	return Command{
		Name:  "tape feed",
		Frame: []byte{0x0A},
		Size:  Transfer1,
		Check: ackOnly,
	}
}

// CancelJob closes a print job. The device sends no answer.
func CancelJob() Command {
	return Command{
		Name:  "cancel job",
		Frame: []byte{0x18},
		Size:  Transfer1,
	}
}

// PrejobConfig1 is the first pre-print configuration step. What it
// configures is unknown.
func PrejobConfig1() Command {
	return Command{
		Name:  "prejob config 1",
		Frame: []byte{STX, 0x02, 0x04, 0x00, 0x00, 0x09, 0x09, 0x01},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

// PrejobConfig2 is the second pre-print configuration step.
func PrejobConfig2() Command {
	return Command{
		Name:  "prejob config 2",
		Frame: []byte{STX, 0x82},
		Size:  Transfer16,
		Check: exactly([]byte{STX, 0x80, 0x01, 0x00, 0x01}),
	}
}

func SpeedAdjust() Command {
	return Command{
		Name:  "speed adjust",
		Frame: []byte{STX, 0x1C, 0x01, 0x00, 0x00},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

// TapeCheck verifies the mounted cartridge against the expected tape
// width. The code goes out as its big-endian two bytes.
func TapeCheck(tape TapeCode) Command {
	return Command{
		Name:  "tape check",
		Frame: []byte{STX, 0x17, 0x02, 0x00, byte(tape >> 8), byte(tape)},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

func MarginSelect(margin MarginCode) Command {
	return Command{
		Name:  "margin select",
		Frame: []byte{STX, 0x0D, 0x01, 0x00, byte(margin)},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

func DensitySelect(density DensityCode) Command {
	return Command{
		Name:  "density select",
		Frame: []byte{STX, 0x09, 0x06, 0x00, 0x00, 0x00, 0x01, 0x00, byte(density), 0x00},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

func CutterSelect(cutter CutterCode) Command {
	return Command{
		Name:  "cutter mode select",
		Frame: []byte{STX, 0x19, 0x01, 0x00, byte(cutter)},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

// TapeReport asks which cartridge is mounted. The 5-byte response carries
// the width code in its last byte; decode it with TapeFromReport.
func TapeReport() Command {
	return Command{
		Name:  "tape report",
		Frame: []byte{STX, 0x1A},
		Size:  Transfer16,
		Check: func(rsp []byte) error {
			if len(rsp) != 5 {
				return fmt.Errorf("unexpected response length %d, want 5: %w", len(rsp), ErrMismatch)
			}
			return nil
		},
	}
}

// TapeFromReport maps a tape report byte to its cartridge code. Unmapped
// values mean no usable tape is mounted.
func TapeFromReport(b byte) TapeCode {
	switch b {
	case 0x81:
		return Tape6mm
	case 0x85:
		return Tape9mm
	case 0x83:
		return Tape12mm
	case 0x87:
		return Tape18mm
	case 0x86:
		return Tape24mm
	}
	return TapeNone
}

func PrefeedTape(amount byte) Command {
	return Command{
		Name:  "prefeed tape",
		Frame: []byte{STX, 0x1B, 0x01, 0x00, amount},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

func RasterEnd() Command {
	return Command{
		Name:  "raster end",
		Frame: []byte{STX, 0x04},
		Size:  Transfer16,
		Check: ackOnly,
	}
}

func PrintPage() Command {
	return Command{
		Name:  "print page",
		Frame: []byte{0x0C},
		Size:  Transfer1,
		Check: ackOnly,
	}
}

// RasterBlock carries up to 60 bytes of pattern data. Always a 64-byte
// transfer, even when the block is shorter.
func RasterBlock(data []byte) Command {
	frame := make([]byte, 0, 4+len(data))
	frame = append(frame, STX, 0xFE, byte(len(data)), 0x00)
	frame = append(frame, data...)
	return Command{
		Name:  "raster block",
		Frame: frame,
		Size:  Transfer64,
		Check: ackOnly,
	}
}
