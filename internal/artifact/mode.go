package artifact

import "fmt"

// Mode is the direction contract of an accessor: resolving it either reads
// the artifact into the calling script or writes it out of the script.
type Mode int

const (
	// Read marks the artifact as an input of the calling script.
	Read Mode = iota
	// Write marks the artifact as an output of the calling script.
	Write
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Read:
		return "read"
	case Write:
		return "write"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode validates a config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "read":
		return Read, nil
	case "write":
		return Write, nil
	}
	return 0, fmt.Errorf("unknown accessor mode %q: want \"read\" or \"write\"", s)
}
