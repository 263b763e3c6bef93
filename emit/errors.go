package emit

import "fmt"

// EmissionError reports that a model could not be rendered or written.
type EmissionError struct {
	// Op is "render" or "write".
	Op   string
	Path string
	Err  error
}

func (e *EmissionError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("emission failed: %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("emission failed: %s: %v", e.Op, e.Err)
}

func (e *EmissionError) Unwrap() error { return e.Err }
