package weights

import "fmt"

// UnknownProfileError indicates a weight profile name the catalog does not
// know.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown weight profile %q", e.Name)
}
