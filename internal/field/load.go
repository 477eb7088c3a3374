package field

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineSize = 16 << 20

// Load reads a whole dump from r and reshapes it into shape.
//
// Every line is split on single spaces and each token, stripped of
// surrounding whitespace, is parsed as a float64. An empty token, as left by
// a blank line or a doubled or trailing space, is malformed input. The total
// number of tokens must equal shape.Size(); values keep their input order.
func Load(r io.Reader, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	want := shape.Size()
	data := make([]float64, 0, want)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		for _, tok := range strings.Split(sc.Text(), " ") {
			tok = strings.TrimSpace(tok)
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Token: tok, Err: err}
			}
			data = append(data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("field: reading input: %w", err)
	}

	if len(data) != want {
		return nil, &ShapeError{Shape: shape, Got: len(data)}
	}
	return &Tensor{shape: shape, data: data}, nil
}
