// Package printer drives the CASIO KL-G2 tape label printer over its USB
// bulk endpoints, using the reverse-engineered command protocol.
package printer

// Device is an already-opened, interface-claimed printer the driver talks
// through. Write sends one bulk OUT transfer, Read performs one bulk IN
// transfer. The gousb endpoints in usb.go satisfy it directly.
type Device interface {
	Write(p []byte) (int, error)
	Read(p []byte) (int, error)
}

// Framing bytes of the protocol.
const (
	STX = 0x02
	ACK = 0x06
	NAK = 0x1E
)

// TransferSize is the exact byte count a command's output transfer must
// use on the wire, regardless of how much payload is meaningful.
type TransferSize int

const (
	Transfer1  TransferSize = 1
	Transfer16 TransferSize = 16
	Transfer64 TransferSize = 64
)

// TapeCode identifies a tape cartridge width. Sent big-endian in the tape
// check command; the byte after the width code proper (0 or 3) has unknown
// meaning and is kept as part of the code.
type TapeCode uint16

const (
	TapeNone TapeCode = 0x0000
	Tape6mm  TapeCode = 0x8100
	Tape9mm  TapeCode = 0x8500
	Tape12mm TapeCode = 0x8303
	Tape18mm TapeCode = 0x8703
	Tape24mm TapeCode = 0x8603
)

// MarginCode selects the leading/trailing tape margin. MarginNoFeed also
// disables the cutter.
type MarginCode byte

const (
	MarginSmall  MarginCode = 0x40
	MarginMedium MarginCode = 0x80
	MarginLarge  MarginCode = 0x02
	MarginNoFeed MarginCode = 0x01
)

// DensityCode selects one of the five print density levels.
type DensityCode byte

const (
	Density1 DensityCode = 0xFE
	Density2 DensityCode = 0xFF
	Density3 DensityCode = 0x00
	Density4 DensityCode = 0x01
	Density5 DensityCode = 0x02
)

// CutterCode selects what the cutter does after printing.
type CutterCode byte

const (
	CutterFull CutterCode = 0x00
	CutterHalf CutterCode = 0x01
	CutterNone CutterCode = 0xFF
)

// Operation is the high-level action a session performs.
type Operation int

const (
	OperationPrint Operation = iota
	OperationFeed
	OperationCut
	OperationHalfCut
)

func (o Operation) String() string {
	switch o {
	case OperationPrint:
		return "print"
	case OperationFeed:
		return "feed"
	case OperationCut:
		return "cut"
	case OperationHalfCut:
		return "half-cut"
	}
	return "unknown"
}

// Options is the immutable option set for one invocation, validated by the
// caller before any device I/O begins.
type Options struct {
	Tape    TapeCode
	Margin  MarginCode
	Density DensityCode
	Cutter  CutterCode
}

// DefaultOptions mirrors the defaults of the original utility: 12mm tape,
// small margin, middle density, half-cut.
func DefaultOptions() Options {
	return Options{
		Tape:    Tape12mm,
		Margin:  MarginSmall,
		Density: Density3,
		Cutter:  CutterHalf,
	}
}
