package repositories

import (
	"bufio"
	"context"
	"cows-tsp/internal/domain"
	"cows-tsp/internal/platform/obs"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedLine is wrapped by every ParseError.
var ErrMalformedLine = errors.New("malformed point line")

// The name is greedy so it extends up to the last parenthesized pair.
var pointLine = regexp.MustCompile(
	`^(.*) \(\s*([+-]?(?:\d+\.?\d*|\.\d+))\s*,\s*([+-]?(?:\d+\.?\d*|\.\d+))\s*\)\s*$`,
)

// ParseError reports the first input line that does not match "NAME (LAT,LON)".
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q does not match \"NAME (LAT,LON)\"", e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrMalformedLine }

// ParsePoints lazily parses one point per non-blank line of r.
// Iteration stops at the first error; there is no partial recovery.
func ParsePoints(r io.Reader) iter.Seq2[domain.Point, error] {
	return func(yield func(domain.Point, error) bool) {
		sc := bufio.NewScanner(r)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}

			p, err := parseLine(lineNo, line)
			if err != nil {
				yield(domain.Point{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(domain.Point{}, fmt.Errorf("parse points: read: %w", err))
		}
	}
}

func parseLine(lineNo int, line string) (domain.Point, error) {
	m := pointLine.FindStringSubmatch(line)
	if m == nil {
		return domain.Point{}, &ParseError{Line: lineNo, Text: line}
	}

	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("line %d: parse latitude %q: %w", lineNo, m[2], err)
	}
	lon, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return domain.Point{}, fmt.Errorf("line %d: parse longitude %q: %w", lineNo, m[3], err)
	}

	return domain.Point{
		Name:     m[1],
		Location: domain.Coordinates{Lat: lat, Lon: lon},
	}, nil
}

// TextPointRepository reads points from a "NAME (LAT,LON)" text file.
// Each call to Points reopens the file, so the sequence can be ranged over
// more than once.
type TextPointRepository struct {
	Path string
}

func NewTextPointRepository(path string) *TextPointRepository {
	return &TextPointRepository{Path: path}
}

// Points returns a lazy sequence over the file's points.
func (r *TextPointRepository) Points() iter.Seq2[domain.Point, error] {
	return func(yield func(domain.Point, error) bool) {
		f, err := os.Open(r.Path)
		if err != nil {
			yield(domain.Point{}, fmt.Errorf("open points file %q: %w", r.Path, err))
			return
		}
		defer f.Close()

		for p, err := range ParsePoints(f) {
			if !yield(p, err) || err != nil {
				return
			}
		}
	}
}

// ListPoints collects every point in file order.
func (r *TextPointRepository) ListPoints(ctx context.Context) (_ []domain.Point, err error) {
	defer obs.Time(ctx, "points.ListPoints")(&err)

	points := make([]domain.Point, 0, 64)
	for p, err := range r.Points() {
		if err != nil {
			return nil, fmt.Errorf("list points: %w", err)
		}
		points = append(points, p)
	}

	return points, nil
}
