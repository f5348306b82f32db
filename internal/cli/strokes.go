package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RomaniOSDev/17PaperRoost/internal/signature"
)

// strokeSink receives pointer-like events; *signature.Pad implements it.
type strokeSink interface {
	BeginStroke(p signature.Point)
	ExtendStroke(p signature.Point)
	EndStroke()
	ClearAll()
}

// ParseStroke turns one line of "x,y" pairs into points.
func ParseStroke(line string) ([]signature.Point, error) {
	fields := strings.Fields(line)
	points := make([]signature.Point, 0, len(fields))
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return nil, fmt.Errorf("point %q: want x,y", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("point %q: %w", f, err)
		}
		points = append(points, signature.Point{X: x, Y: y})
	}
	return points, nil
}

// ReadStrokes feeds strokes typed by the user into pad until an empty line
// or EOF. The line "clear" wipes everything drawn so far. A malformed line
// is reported and skipped; it never leaves a stroke open.
func ReadStrokes(reader *bufio.Reader, pad strokeSink, w io.Writer) error {
	fmt.Fprintln(w, "Draw the signature: one stroke per line as x,y points (canvas 1000x600).")
	fmt.Fprintln(w, "Type 'clear' to start over; an empty line finishes.")

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		text := strings.TrimSpace(line)

		switch {
		case text == "":
		case strings.EqualFold(text, "clear"):
			pad.ClearAll()
			fmt.Fprintln(w, "Signature cleared.")
		default:
			points, perr := ParseStroke(text)
			if perr != nil {
				fmt.Fprintln(w, "Skipped:", perr)
				break
			}
			pad.BeginStroke(points[0])
			for _, p := range points[1:] {
				pad.ExtendStroke(p)
			}
			pad.EndStroke()
		}

		if text == "" || err != nil {
			return nil
		}
	}
}
