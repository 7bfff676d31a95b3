// klg2 prints a monochrome image on a CASIO KL-G2 tape label printer.
// The image comes from a file argument or standard input: binary PBMs are
// used as-is, anything else decodable is scaled and dithered to fit the
// printhead.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"klg2/bitmap"
	"klg2/printer"
)

var (
	feedFlag    = flag.Bool("F", false, "feed the tape and exit")
	cutFlag     = flag.Bool("C", false, "cut the tape and exit")
	halfCutFlag = flag.Bool("H", false, "half-cut the tape and exit")
	marginFlag  = flag.Int("m", 1, "margin (0 none, 1 small, 2 medium, 3 large)")
	tapeFlag    = flag.Int("t", 12, "tape width in mm (6, 9, 12, 18, 24)")
	cutterFlag  = flag.Int("c", 1, "cut mode (0 no cut, 1 half-cut, 2 full-cut)")
	densityFlag = flag.Int("d", 3, "print density (1-5)")
	verboseFlag = flag.Bool("v", false, "verbose (dump USB communications)")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()
	if *verboseFlag {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	op := operation()
	opts, err := options()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var pattern []byte
	if op == printer.OperationPrint {
		pattern, err = loadPattern(flag.Arg(0))
		if err != nil {
			slog.Error("Couldn't load image", "err", err)
			return 1
		}
	}

	dev, err := printer.OpenUSB()
	if err != nil {
		slog.Error("Couldn't open printer", "err", err)
		return 1
	}
	defer dev.Close()

	sess := printer.NewSession(dev, opts)
	if err := sess.Run(op, pattern); err != nil {
		slog.Error("Printer operation failed", "err", err)
		return 1
	}
	return 0
}

func operation() printer.Operation {
	switch {
	case *feedFlag:
		return printer.OperationFeed
	case *cutFlag:
		return printer.OperationCut
	case *halfCutFlag:
		return printer.OperationHalfCut
	}
	return printer.OperationPrint
}

func options() (printer.Options, error) {
	opts := printer.DefaultOptions()

	switch *marginFlag {
	case 0:
		opts.Margin = printer.MarginNoFeed
	case 1:
		opts.Margin = printer.MarginSmall
	case 2:
		opts.Margin = printer.MarginMedium
	case 3:
		opts.Margin = printer.MarginLarge
	default:
		return opts, fmt.Errorf("invalid margin setting %d", *marginFlag)
	}

	switch *tapeFlag {
	case 6:
		opts.Tape = printer.Tape6mm
	case 9:
		opts.Tape = printer.Tape9mm
	case 12:
		opts.Tape = printer.Tape12mm
	case 18:
		opts.Tape = printer.Tape18mm
	case 24:
		opts.Tape = printer.Tape24mm
	default:
		return opts, fmt.Errorf("invalid tape size %d", *tapeFlag)
	}

	switch *cutterFlag {
	case 0:
		opts.Cutter = printer.CutterNone
	case 1:
		opts.Cutter = printer.CutterHalf
	case 2:
		opts.Cutter = printer.CutterFull
	default:
		return opts, fmt.Errorf("invalid cutter setting %d", *cutterFlag)
	}

	switch *densityFlag {
	case 1:
		opts.Density = printer.Density1
	case 2:
		opts.Density = printer.Density2
	case 3:
		opts.Density = printer.Density3
	case 4:
		opts.Density = printer.Density4
	case 5:
		opts.Density = printer.Density5
	default:
		return opts, fmt.Errorf("invalid print density setting %d", *densityFlag)
	}

	return opts, nil
}

// loadPattern reads the input image and encodes it into the printhead
// pattern buffer. An empty path means standard input.
func loadPattern(path string) ([]byte, error) {
	in := io.Reader(os.Stdin)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	br := bufio.NewReader(in)
	var bm bitmap.Bitmap

	magic, err := br.Peek(2)
	if err == nil && bytes.Equal(magic, []byte("P4")) {
		bm, err = bitmap.ReadPBM(br)
		if err != nil {
			return nil, err
		}
	} else {
		img, _, err := image.Decode(br)
		if err != nil {
			return nil, err
		}
		bm, err = bitmap.FromPaletted(bitmap.RenderForHead(img))
		if err != nil {
			return nil, err
		}
	}

	return bitmap.Pattern(bm), nil
}
