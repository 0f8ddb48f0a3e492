package argbind

import (
	"fmt"
	"io"
	"strings"
)

// switchText returns a name with one dash if it is a single character, else
// with two.
func switchText(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// definition returns the usage definition of a token, e.g. "--num|-n count".
func (t *UsageToken) definition() string {
	s := switchText(t.Option)
	if t.Alias != "" {
		s += "|" + switchText(t.Alias)
	}
	return s + " " + t.Variable
}

// Usage returns a normalized usage expression: mandatory options first,
// followed by each optional option in brackets.
func (p *Parser) Usage() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	parts := make([]string, 0, len(p.registry.mandatory)+len(p.registry.optional))
	for _, t := range p.registry.mandatory {
		parts = append(parts, t.definition())
	}
	for _, t := range p.registry.optional {
		parts = append(parts, "["+t.definition()+"]")
	}
	return strings.Join(parts, " ")
}

// PrintDoc uses a Writer to print a usage line for the named command,
// followed by each option in usage sequence with its aliases, its variable,
// the type of the variable, and whether it is optional.
//
// Example output:
//
//	Usage: timer --min|-m minute [--sec|-s seconds]
//
//	Options:
//	  --min, -m
//	           minute (int32)
//	  --sec, -s
//	           seconds (int64), optional
func (p *Parser) PrintDoc(w io.Writer, name string) {
	usage := p.Usage()

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(w, "Usage: %s %s\n\nOptions:\n", name, usage)
	for _, t := range p.registry.tokens() {
		switches := switchText(t.Option)
		if t.Alias != "" {
			switches += ", " + switchText(t.Alias)
		}
		info := fmt.Sprintf("%s (%s)", t.Variable, p.registry.fieldType(t))
		if p.registry.isOptional(t) {
			info += ", optional"
		}
		if len(switches) > 8 {
			fmt.Fprintf(w, "  %s\n", switches)
			fmt.Fprintf(w, "  %-8s %s\n", "", info)
		} else {
			fmt.Fprintf(w, "  %-8s %s\n", switches, info)
		}
	}
}
