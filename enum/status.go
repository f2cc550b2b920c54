// Package enum holds the flat, dependency-free enumerations shared by every
// other package in the module: mnemonics, register classes, operand shapes,
// encoding classes, AVX decorators, and the error taxonomy.
package enum

// Code is the flat error taxonomy from the decode/encode/format contract.
// Every public operation returns one of these through a wrapped *Error
// rather than a distinct Go error type per failure, matching the source
// library's status-code design (spec section 7).
type Code int

const (
	// CodeOK is never returned as an error; it exists so the zero value of
	// Code is distinguishable from a real failure in debug output.
	CodeOK Code = iota
	CodeInvalidParameter
	CodeInvalidOperation
	CodeNoMoreData
	CodeDecodingError
	CodeInstructionTooLong
	CodeBadRegister
	CodeIllegalLock
	CodeIllegalLegacyPfx
	CodeIllegalRex
	CodeInvalidMap
	CodeMalformedEvex
	CodeInvalidMask
	CodeInvalidVsib
	CodeImpossibleInstruction
	CodeInsufficientBufferSize
	CodeSkipToken
)

var codeNames = [...]string{
	CodeOK:                     "ok",
	CodeInvalidParameter:       "invalid parameter",
	CodeInvalidOperation:       "invalid operation",
	CodeNoMoreData:             "no more data",
	CodeDecodingError:          "decoding error",
	CodeInstructionTooLong:     "instruction too long",
	CodeBadRegister:            "bad register",
	CodeIllegalLock:            "illegal lock prefix",
	CodeIllegalLegacyPfx:       "illegal legacy prefix",
	CodeIllegalRex:             "illegal rex prefix",
	CodeInvalidMap:             "invalid opcode map",
	CodeMalformedEvex:          "malformed evex prefix",
	CodeInvalidMask:            "invalid mask",
	CodeInvalidVsib:            "invalid vsib addressing",
	CodeImpossibleInstruction:  "impossible instruction",
	CodeInsufficientBufferSize: "insufficient buffer size",
	CodeSkipToken:              "skip token",
}

// String renders the code's human-readable name, falling back to a numeric
// placeholder for values outside the known range (defensive against future
// additions to the enum outrunning this table).
func (c Code) String() string {
	if int(c) >= 0 && int(c) < len(codeNames) && codeNames[c] != "" {
		return codeNames[c]
	}
	return "unknown error code"
}

// Error is the single error type returned by every public operation in this
// module. It always carries a Code and may carry a wrapped cause and a byte
// offset into the buffer that was being processed when it fired.
type Error struct {
	Code    Code
	Offset  int // byte offset into the input/output buffer, -1 if not applicable
	Message string
	Wrapped error
}

// NewError builds an Error with no positional context.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Offset: -1, Message: message}
}

// NewErrorAt builds an Error anchored to a byte offset, used by the decoder
// and formatter to report exactly where in the stream the failure occurred.
func NewErrorAt(code Code, offset int, message string) *Error {
	return &Error{Code: code, Offset: offset, Message: message}
}

// Wrap attaches an Error to an underlying cause without double-wrapping an
// existing *Error, mirroring the teacher's WrapEncodingError idempotence.
func Wrap(code Code, offset int, message string, cause error) *Error {
	if cause == nil {
		return NewErrorAt(code, offset, message)
	}
	if existing, ok := cause.(*Error); ok {
		return existing
	}
	return &Error{Code: code, Offset: offset, Message: message, Wrapped: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	prefix := e.Code.String()
	if e.Offset >= 0 {
		if e.Message != "" {
			if e.Wrapped != nil {
				return prefixf(prefix, e.Offset, e.Message) + ": " + e.Wrapped.Error()
			}
			return prefixf(prefix, e.Offset, e.Message)
		}
		if e.Wrapped != nil {
			return prefixf(prefix, e.Offset, "") + e.Wrapped.Error()
		}
		return prefixf(prefix, e.Offset, "")
	}
	if e.Message != "" {
		if e.Wrapped != nil {
			return prefix + ": " + e.Message + ": " + e.Wrapped.Error()
		}
		return prefix + ": " + e.Message
	}
	if e.Wrapped != nil {
		return prefix + ": " + e.Wrapped.Error()
	}
	return prefix
}

func prefixf(code string, offset int, msg string) string {
	if msg == "" {
		return "at byte " + itoa(offset) + ": " + code
	}
	return "at byte " + itoa(offset) + ": " + code + ": " + msg
}

// itoa avoids importing strconv into this otherwise allocation-light leaf
// package for a single conversion used only on the error path.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Wrapped
}

// Is reports whether target is an *Error with the same Code, so callers can
// write `errors.Is(err, enum.NewError(enum.CodeNoMoreData, ""))`-style
// checks, or more simply compare against a sentinel of the same code.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == other.Code
}
