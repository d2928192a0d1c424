// Package convert — error types.
package convert

import "fmt"

// UnrecognizedTagError reports an element tag that has no conversion
// rule. With RaiseErrors enabled it aborts the conversion; otherwise the
// tag is logged and contributes an empty fragment while its children are
// still visited.
type UnrecognizedTagError struct {
	Tag string
}

func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("unrecognized tag <%s>", e.Tag)
}
