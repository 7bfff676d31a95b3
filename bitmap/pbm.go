package bitmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ReadPBM reads a binary (P4) PBM image. The header is the "P4" magic, any
// number of '#' comment lines, then a "width height" line, followed by the
// packed pixel rows. Set bits are black, which matches GetBit's convention.
func ReadPBM(r io.Reader) (*PackedBitmap, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, 3)
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("reading PBM header: %w", err)
	}
	if magic[0] != 'P' || magic[1] != '4' || magic[2] != '\n' {
		return nil, errors.New("input is not a packed PBM")
	}

	for {
		next, err := br.Peek(1)
		if err != nil {
			return nil, fmt.Errorf("reading PBM header: %w", err)
		}
		if next[0] != '#' {
			break
		}
		if _, err := br.ReadString('\n'); err != nil {
			return nil, fmt.Errorf("reading PBM comment: %w", err)
		}
	}

	line, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading PBM image size: %w", err)
	}
	var width, height int
	if _, err := fmt.Sscanf(line, "%d %d", &width, &height); err != nil {
		return nil, errors.New("PBM image size error")
	}
	if width <= 0 || height <= 0 {
		return nil, errors.New("PBM image size error")
	}

	b := New(width, height)
	if _, err := io.ReadFull(br, b.data); err != nil {
		return nil, errors.New("PBM ended unexpectedly")
	}
	return b, nil
}
