package argbind

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// binder captures the raw values of options found in an argument list and
// converts them on request. A binder serves a single Parse call.
type binder struct {
	reg    *registry
	split  *splitter
	l      *zap.Logger
	values map[*UsageToken]string
	seen   []*UsageToken // in order of last appearance
}

func newBinder(reg *registry, split *splitter, l *zap.Logger) *binder {
	return &binder{
		reg:    reg,
		split:  split,
		l:      l,
		values: make(map[*UsageToken]string),
	}
}

// updateAvailableValues scans args for switches. The argument following a
// switch is its value, unless the variable is a bool, which takes no value.
// Arguments which are neither switches nor values are ignored. When an option
// is repeated, the last value wins.
func (b *binder) updateAvailableValues(args []string) error {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			b.l.Debug("Ignoring argument", zap.Int("index", i), zap.String("arg", arg))
			continue
		}
		t, err := b.reg.findUsageToken(stripDashes(arg))
		if err != nil {
			return err
		}
		value := ""
		if !b.reg.fieldType(t).isSwitch() {
			if i+1 == len(args) {
				return decorate(fmt.Errorf(`%w: nothing follows "%s"`, ErrMissingValue, arg), t)
			}
			i++
			value = args[i]
			if strings.HasPrefix(value, "-") {
				return decorate(fmt.Errorf(`%w: "%s" follows "%s"`, ErrMissingValue, value, arg), t)
			}
		}
		if j := slices.Index(b.seen, t); j >= 0 {
			b.seen = slices.Delete(b.seen, j, j+1)
		}
		b.seen = append(b.seen, t)
		b.values[t] = value
	}
	return nil
}

// availableUsageTokens returns the tokens which received a value, ordered by
// their last appearance in the arguments.
func (b *binder) availableUsageTokens() []*UsageToken {
	return b.seen
}

// argValue returns the converted value of a token. The presence of a bool
// switch is its value.
func (b *binder) argValue(t *UsageToken) (any, error) {
	ft := b.reg.fieldType(t)
	if ft.isSwitch() {
		return true, nil
	}
	v, err := convert(b.values[t], ft, b.split)
	if err != nil {
		return nil, decorate(err, t)
	}
	return v, nil
}

// stripDashes removes one or two leading dashes.
func stripDashes(arg string) string {
	return strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
}
