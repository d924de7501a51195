package othello

import (
	"fmt"
	"strings"
)

// Square is a board coordinate. Row and Col are in [0, BoardSize).
type Square struct {
	Row int
	Col int
}

// InBounds returns whether the square lies on the board.
func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// Field returns the field notation for the square, e.g. "d3".
// Columns map to letters a-h, rows to digits 1-8.
func (s Square) Field() string {
	if !s.InBounds() {
		panic(fmt.Sprintf("square out of bounds: (%d,%d)", s.Row, s.Col))
	}
	return string([]byte{byte('a' + s.Col), byte('1' + s.Row)})
}

// String returns the field notation for the square.
func (s Square) String() string {
	return s.Field()
}

// SquareFromField converts a field notation (e.g. "a1", "h8") to a Square.
func SquareFromField(field string) (Square, error) {
	if len(field) != 2 {
		return Square{}, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return Square{}, fmt.Errorf("invalid field: %q", field)
	}

	return Square{
		Row: int(field[1] - '1'),
		Col: int(field[0] - 'a'),
	}, nil
}

// MarshalText implements encoding.TextMarshaler using field notation.
func (s Square) MarshalText() ([]byte, error) {
	if !s.InBounds() {
		return nil, fmt.Errorf("square out of bounds: (%d,%d)", s.Row, s.Col)
	}
	return []byte(s.Field()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using field notation.
func (s *Square) UnmarshalText(text []byte) error {
	square, err := SquareFromField(string(text))
	if err != nil {
		return err
	}
	*s = square
	return nil
}
