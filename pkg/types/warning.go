package types

import "fmt"

// Warning is a non-fatal diagnostic raised while decoding a data file.
// Line is 1-based and counts the header; zero means the whole file.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line == 0 {
		return w.Message
	}
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}
