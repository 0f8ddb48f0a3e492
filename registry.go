package argbind

import (
	"fmt"

	"go.uber.org/zap"
)

// registry holds the usage tokens compiled from a usage expression and the
// declared type of their variables. It is rebuilt by initialize and not
// modified otherwise.
type registry struct {
	usage     string
	target    Target
	l         *zap.Logger
	mandatory []*UsageToken
	optional  []*UsageToken
	types     map[*UsageToken]FieldType
}

func newRegistry(usage string, target Target, l *zap.Logger) *registry {
	return &registry{
		usage:  usage,
		target: target,
		l:      l,
		types:  make(map[*UsageToken]FieldType),
	}
}

// initialize discards any previous state, compiles the usage expression and
// resolves the type of every variable. It stops at the first variable the
// target cannot resolve.
func (r *registry) initialize() error {
	r.reset()

	e, err := extract(r.usage, r.l)
	if err != nil {
		return err
	}
	r.mandatory = compile(e.mandatory, r.l)
	r.optional = compile(e.optional, r.l)

	if err = r.checkDuplicates(); err != nil {
		return err
	}

	for _, t := range r.tokens() {
		ft, err := r.target.FieldType(t.Variable)
		if err != nil {
			return decorate(fmt.Errorf("%w: %w", ErrEmptyOrUnresolvableUsage, err), t)
		}
		r.types[t] = ft
	}
	return nil
}

func (r *registry) reset() {
	r.mandatory = nil
	r.optional = nil
	clear(r.types)
}

// checkDuplicates rejects an option or alias used by more than one token,
// inside or across the mandatory and optional parts.
func (r *registry) checkDuplicates() error {
	seen := make(map[string]bool)
	for _, t := range r.tokens() {
		for _, n := range t.Names() {
			if seen[n] {
				return fmt.Errorf(`%w: option "%s" defined more than once in "%s"`, ErrInvalidGrammar, n, r.usage)
			}
			seen[n] = true
		}
	}
	return nil
}

// validate verifies that there is at least one token and that the type of
// every variable can take values.
func (r *registry) validate() error {
	if r.noTokensAvailable() {
		return fmt.Errorf(`%w: no valid arguments found in usage expression "%s"`, ErrEmptyOrUnresolvableUsage, r.usage)
	}
	for _, t := range r.tokens() {
		if err := validateFieldType(t.Variable, r.types[t]); err != nil {
			return decorate(err, t)
		}
	}
	return nil
}

// tokens returns all tokens, mandatory tokens first, in textual order.
func (r *registry) tokens() []*UsageToken {
	all := make([]*UsageToken, 0, len(r.mandatory)+len(r.optional))
	all = append(all, r.mandatory...)
	return append(all, r.optional...)
}

func (r *registry) noTokensAvailable() bool {
	return len(r.mandatory) == 0 && len(r.optional) == 0
}

// isMissingMandatoryOption returns true if a mandatory token is not equal to
// any of the present tokens.
func (r *registry) isMissingMandatoryOption(present []*UsageToken) bool {
	return len(r.missingMandatory(present)) > 0
}

// missingMandatory returns the mandatory tokens not equal to any of the
// present tokens.
func (r *registry) missingMandatory(present []*UsageToken) []*UsageToken {
	var missing []*UsageToken
loop:
	for _, t := range r.mandatory {
		for _, p := range present {
			if t.Equal(p) {
				continue loop
			}
		}
		missing = append(missing, t)
	}
	return missing
}

// findUsageToken returns the first token with option as its option or alias,
// searching mandatory tokens first.
func (r *registry) findUsageToken(option string) (*UsageToken, error) {
	for _, tokens := range [][]*UsageToken{r.mandatory, r.optional} {
		for _, t := range tokens {
			if t.Matches(option) {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf(`%w: no usage definition for option "%s"`, ErrUnknownOption, option)
}

// fieldType returns the declared type of the variable of a token.
func (r *registry) fieldType(t *UsageToken) FieldType {
	return r.types[t]
}

// isOptional returns true if t comes from a bracketed part.
func (r *registry) isOptional(t *UsageToken) bool {
	for _, o := range r.optional {
		if o == t {
			return true
		}
	}
	return false
}
