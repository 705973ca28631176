package des

import (
	"errors"
	"fmt"
)

// ErrInvalid marks script input the builder cannot interpret: malformed
// coordinates, unknown tokens, out-of-map positions.
var ErrInvalid = errors.New("invalid script input")

// errFinalized is returned by calls made after Finalize.
var errFinalized = fmt.Errorf("%w: level already finalized", ErrInvalid)

// errScopeClosed is returned by calls on a room scope after its contents
// function returned.
var errScopeClosed = fmt.Errorf("%w: room scope used outside its contents", ErrInvalid)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// ScriptError reports a bad call in a level script. Index counts the calls
// made on the builder, starting at 1.
type ScriptError struct {
	Script string
	Call   string
	Index  int
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: call %d (%s): %v", e.Script, e.Index, e.Call, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
