package obj

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds reported while parsing OBJ text. Match them with errors.Is.
var (
	// ErrMalformedFaceGroup reports an index field in an f command that
	// could not be resolved, for example a non-numeric component or an
	// index outside the attributes declared so far.
	ErrMalformedFaceGroup = errors.New("malformed face index group")

	// ErrZeroVertexNumber reports an index component equal to 0. OBJ
	// indices are 1-based (or negative-relative); zero never refers to
	// an attribute.
	ErrZeroVertexNumber = errors.New("zero vertex number")

	// ErrArgumentListFailure reports a command whose argument list is
	// missing fields or holds unparsable numbers.
	ErrArgumentListFailure = errors.New("malformed argument list")

	// ErrUnexpectedCommand reports an unrecognized, non-comment command.
	// It is only raised in strict mode.
	ErrUnexpectedCommand = errors.New("unexpected command")

	// ErrMissingMTLName reports an mtllib command with no library name.
	ErrMissingMTLName = errors.New("missing material library name")
)

// Error kinds reported while parsing MTL text.
var (
	// ErrInvalidInstruction reports an unrecognized, non-comment
	// instruction.
	ErrInvalidInstruction = errors.New("invalid instruction")

	// ErrInvalidValue reports an instruction argument that could not be
	// parsed as the expected numeric type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMissingValue reports an instruction with too few arguments.
	ErrMissingValue = errors.New("missing value")

	// ErrMissingMaterialName reports a newmtl instruction with no name.
	ErrMissingMaterialName = errors.New("missing material name")
)

// ParseError describes a fatal error at a specific line of an OBJ or MTL
// buffer. Err carries the error kind and Message the offending input.
type ParseError struct {
	Line    int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("obj: line %d: %s", e.Line, e.Err)
	}
	return fmt.Sprintf("obj: line %d: %s: %s", e.Line, e.Err, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MtlLibError records the failure to load or parse one referenced material
// library during resolution.
type MtlLibError struct {
	Filename string
	Err      error
}

func (e MtlLibError) Error() string {
	return fmt.Sprintf("obj: material library %q: %s", e.Filename, e.Err)
}

func (e MtlLibError) Unwrap() error { return e.Err }

// MtlLibErrors aggregates per-library failures from a resolution pass.
// Libraries that loaded cleanly are still applied when this is returned.
type MtlLibErrors []MtlLibError

func (e MtlLibErrors) Error() string {
	msgs := make([]string, len(e))
	for i, le := range e {
		msgs[i] = le.Error()
	}
	return strings.Join(msgs, "; ")
}
