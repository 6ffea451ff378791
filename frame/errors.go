package frame

import "fmt"

// OversizedError mirrors wire.OversizedError at the frame layer, so
// callers of this package don't need to import wire just to detect it.
type OversizedError struct {
	Field  string
	Actual int
	Limit  int
}

func (e *OversizedError) Error() string {
	return fmt.Sprintf("frame: field %q oversized: %d > %d", e.Field, e.Actual, e.Limit)
}

// ArithmeticOverflowError reports that FixedPartLength+len(payload)
// overflowed the host int.
type ArithmeticOverflowError struct{}

func (e *ArithmeticOverflowError) Error() string {
	return "frame: total length arithmetic overflow"
}
