package argbind

import (
	"strings"

	"go.uber.org/zap"
)

// indexRange holds the offsets of the '[' and ']' enclosing an optional
// expression.
type indexRange struct {
	start int
	end   int
}

func (r indexRange) contains(i int) bool {
	return i >= r.start && i <= r.end
}

// extraction is a usage expression split into its mandatory and optional
// parts. Both are whitespace-normalized.
type extraction struct {
	mandatory string
	optional  string
}

// extract splits a usage expression into the text outside brackets and the
// text inside brackets. Brackets cannot be nested, and square brackets are the
// only brackets allowed.
func extract(expression string, l *zap.Logger) (*extraction, error) {
	ranges, err := optionalRanges(expression)
	if err != nil {
		return nil, err
	}
	if err = checkBrackets(expression, ranges); err != nil {
		return nil, err
	}

	var mandatory, optional strings.Builder
	for i := 0; i < len(expression); i++ {
		if !inRanges(i, ranges) {
			mandatory.WriteByte(expression[i])
		}
	}
	for _, r := range ranges {
		l.Debug("Found optional expression", zap.Int("start", r.start), zap.Int("end", r.end))
		optional.WriteString(expression[r.start+1 : r.end])
		optional.WriteByte(' ')
	}

	return &extraction{
		mandatory: normalize(mandatory.String()),
		optional:  normalize(optional.String()),
	}, nil
}

// optionalRanges finds each '[' and the next ']' following it.
func optionalRanges(expression string) ([]indexRange, error) {
	var ranges []indexRange
	from := 0
	for {
		i := strings.IndexByte(expression[from:], '[')
		if i < 0 {
			return ranges, nil
		}
		start := from + i
		j := strings.IndexByte(expression[start:], ']')
		if j < 0 {
			return nil, grammarError(expression, start, "no matching ']'")
		}
		end := start + j
		if k := strings.IndexByte(expression[start+1:end], '['); k >= 0 {
			return nil, grammarError(expression, start+1+k, "nested '['")
		}
		ranges = append(ranges, indexRange{start: start, end: end})
		from = end + 1
	}
}

// checkBrackets rejects round and curly brackets anywhere, and square brackets
// which do not delimit an optional expression.
func checkBrackets(expression string, ranges []indexRange) error {
	for i := 0; i < len(expression); i++ {
		switch c := expression[i]; c {
		case '(', ')', '{', '}':
			return grammarError(expression, i, "illegal bracket '%c'", c)
		case '[', ']':
			if !inRanges(i, ranges) {
				return grammarError(expression, i, "illegal bracket '%c'", c)
			}
		}
	}
	return nil
}

// inRanges returns true if offset i is inside one of the ranges, brackets
// included.
func inRanges(i int, ranges []indexRange) bool {
	if len(ranges) == 0 || i < ranges[0].start {
		return false
	}
	for _, r := range ranges {
		if r.contains(i) {
			return true
		}
	}
	return false
}

// normalize replaces runs of white space with a single blank and trims both
// ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
