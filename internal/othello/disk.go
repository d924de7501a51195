package othello

import "fmt"

// Disk is the occupant state of a board square.
type Disk int8

const (
	Empty Disk = iota
	Black
	White
)

// Opponent returns the opposing color. The opponent of Empty is Empty.
func (d Disk) Opponent() Disk {
	switch d {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// String returns the lowercase name of the disk.
func (d Disk) String() string {
	switch d {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}

// ParseDisk converts a disk name to a Disk.
func ParseDisk(s string) (Disk, error) {
	switch s {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	case "empty":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("invalid disk: %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Disk) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Disk) UnmarshalText(text []byte) error {
	disk, err := ParseDisk(string(text))
	if err != nil {
		return err
	}
	*d = disk
	return nil
}
