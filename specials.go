package argbind

import (
	"regexp"
	"strings"
)

// splitter splits array values around a delimiter. The delimiter is literal
// text: regular expression special characters in it are quoted, so that a
// delimiter like "<?>" or "|" splits where it appears and nowhere else.
type splitter struct {
	delimiter string
	re        *regexp.Regexp
}

func newSplitter(delimiter string) *splitter {
	return &splitter{
		delimiter: delimiter,
		re:        regexp.MustCompile(regexp.QuoteMeta(delimiter)),
	}
}

// hasSpecial returns true if the delimiter needed quoting.
func (s *splitter) hasSpecial() bool {
	return regexp.QuoteMeta(s.delimiter) != s.delimiter
}

// split returns the trimmed elements of value. Trailing empty elements are
// dropped, so "1,2," has 2 elements and "" has none.
func (s *splitter) split(value string) []string {
	parts := s.re.Split(value, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	return parts[:n]
}
