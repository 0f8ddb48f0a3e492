package argbind

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Error kinds. Every error returned by a Parser wraps exactly one of them, so
// callers can classify a failure with errors.Is.
var (
	// ErrInvalidGrammar reports a malformed usage expression.
	ErrInvalidGrammar = errors.New("invalid usage grammar")

	// ErrEmptyOrUnresolvableUsage reports a usage expression without any
	// option, or an option bound to a variable the target does not have.
	ErrEmptyOrUnresolvableUsage = errors.New("empty or unresolvable usage")

	// ErrUnsupportedFieldType reports a bound variable of a type which
	// cannot take values.
	ErrUnsupportedFieldType = errors.New("unsupported field type")

	// ErrUnknownOption reports an argument switch without usage definition.
	ErrUnknownOption = errors.New("unknown option")

	// ErrMissingValue reports a switch not followed by a value.
	ErrMissingValue = errors.New("missing value")

	// ErrMissingMandatoryOption reports a mandatory option absent from the
	// arguments.
	ErrMissingMandatoryOption = errors.New("missing mandatory option")

	// ErrDataFormat reports a value which cannot be converted to the type of
	// its bound variable.
	ErrDataFormat = errors.New("invalid data format")

	// ErrTargetConstruction reports a failure to create the target or to
	// write one of its fields.
	ErrTargetConstruction = errors.New("target construction failed")
)

var errorContextLength = 15

// GrammarError is the error returned for a malformed usage expression. Pos is
// the byte offset in Expression where the problem was detected.
type GrammarError struct {
	Expression string
	Pos        int
	Msg        string
}

// Error returns the message with a piece of the expression preceding the
// position.
func (e *GrammarError) Error() string {
	return fmt.Sprintf(`%v: at "%s": %s`, ErrInvalidGrammar, e.context(), e.Msg)
}

// Is makes errors.Is(err, ErrInvalidGrammar) true for any GrammarError.
func (e *GrammarError) Is(target error) bool {
	return target == ErrInvalidGrammar
}

func (e *GrammarError) context() string {
	n := e.Pos + 1
	if n > len(e.Expression) {
		n = len(e.Expression)
	}
	if n < 0 {
		n = 0
	}
	for n < len(e.Expression) && !utf8.RuneStart(e.Expression[n]) {
		n++
	}
	if n > errorContextLength {
		start := n - errorContextLength
		for start < n && !utf8.RuneStart(e.Expression[start]) {
			start++
		}
		return "..." + e.Expression[start:n]
	}
	return e.Expression[:n]
}

func grammarError(expression string, pos int, format string, a ...any) error {
	return &GrammarError{Expression: expression, Pos: pos, Msg: fmt.Sprintf(format, a...)}
}

// decorate adds option information to an error.
func decorate(err error, t *UsageToken) error {
	return fmt.Errorf(`option %s (%s): %w`, t.display(), t.Variable, err)
}
