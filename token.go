package argbind

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// UsageToken binds an option, and optionally an alias, to a variable of the
// target. Option and Alias are written without leading dashes. A UsageToken
// is immutable once compiled.
type UsageToken struct {
	Option   string
	Alias    string // empty if none
	Variable string
}

// Equal returns true if both tokens bind the same variable and the option of
// other is the option or the alias of t.
func (t *UsageToken) Equal(other *UsageToken) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	return other.Variable == t.Variable &&
		(other.Option == t.Option || (t.Alias != "" && other.Option == t.Alias))
}

// Matches returns true if option is the option or the alias of t.
func (t *UsageToken) Matches(option string) bool {
	return option == t.Option || (t.Alias != "" && option == t.Alias)
}

// Names returns the option and, if any, the alias.
func (t *UsageToken) Names() []string {
	if t.Alias == "" {
		return []string{t.Option}
	}
	return []string{t.Option, t.Alias}
}

// display returns the option and alias as written in messages.
func (t *UsageToken) display() string {
	return strings.Join(t.Names(), "|")
}

// tokenPattern matches one option definition: one or two dashes, a name, an
// optional alias separated by '|', blanks, and the variable.
var tokenPattern = regexp.MustCompile(
	`-{1,2}([A-Za-z0-9_]+)(?: ?\| ?-{0,2}([A-Za-z0-9_]+))? +([A-Za-z$_][A-Za-z0-9$_]*)`)

// compile returns the usage tokens of a normalized expression in textual
// order. Text not matching an option definition is skipped.
func compile(segment string, l *zap.Logger) []*UsageToken {
	var tokens []*UsageToken
	prev := 0
	for _, m := range tokenPattern.FindAllStringSubmatchIndex(segment, -1) {
		if skipped := strings.TrimSpace(segment[prev:m[0]]); skipped != "" {
			l.Debug("Skipping text without usage definition", zap.String("text", skipped))
		}
		prev = m[1]

		t := &UsageToken{
			Option:   segment[m[2]:m[3]],
			Variable: segment[m[6]:m[7]],
		}
		if m[4] >= 0 {
			t.Alias = segment[m[4]:m[5]]
		}
		l.Debug("Found usage token",
			zap.String("option", t.Option), zap.String("alias", t.Alias), zap.String("variable", t.Variable))
		tokens = append(tokens, t)
	}
	if skipped := strings.TrimSpace(segment[prev:]); skipped != "" {
		l.Debug("Skipping text without usage definition", zap.String("text", skipped))
	}
	return tokens
}
