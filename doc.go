/*

Package argbind binds command line arguments to the fields of a structure. The
expected arguments are not defined with a series of calls but with a single
usage expression, the kind of line found in the synopsis of a manual page:

	--min|-m minute [--sec|-s seconds] [-v verbose]

Each option of the expression is bound to a variable, which is the name of a
field of the target structure. Options in square brackets are optional, the
others are mandatory. An option can have an alias, separated with "|". With
this structure:

	type Timer struct {
		Minute  int32
		Seconds []int64
		Verbose bool
	}

a program gets its values like this:

	p, err := argbind.New[Timer]("--min|-m minute [--sec|-s seconds] [-v verbose]", nil)
	if err != nil {
		// the expression is invalid or does not agree with Timer
	}
	timer, err := p.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

and these command lines are all valid:

	-m 20
	--min 20 -s 15,30,45
	-v -s 10 -m 3

# Usage expressions

The grammar of a usage expression is:

	expression   := element ("[" element "]" | element)*
	element      := switch ("|" switch)? WS variable
	switch       := ("-" | "--") NAME
	NAME         := [A-Za-z0-9_]+
	variable     := [A-Za-z_$][A-Za-z0-9_$]*

Brackets cannot be nested, an opening bracket must be closed, and round and
curly brackets cannot be used at all. Any of these mistakes is reported with
an error matching ErrInvalidGrammar. Text which is not an option definition is
ignored. An option or alias can only be defined once. An expression without a
single option definition is an error matching ErrEmptyOrUnresolvableUsage.

# Arguments

An argument starting with a dash is an option. One or two leading dashes are
stripped and the rest must be an option or alias of the expression. Options
can appear in any order. Unless its variable is a bool, an option is followed
by its value, which cannot start with a dash. A bool option takes no value:
its presence sets the variable to true. When an option appears more than once,
the last value wins. Arguments which are neither options nor values are
ignored.

# Types

Variables can have these types:

	string, bool
	int8, int16, int32, int64, int
	uint8, uint16, uint32, uint64, uint
	float32, float64
	Character (a single character)
	enumerations (named types implementing Enumeration)
	slices of any of the above

Numbers are decimal. A Character takes the first character of its value. An
enumeration value must be one of the names returned by EnumNames, with the
same case. The value of a slice is split around the array delimiter, a comma
by default. The delimiter is literal text, and each element is trimmed:

	-n 10,89,2     gives []int32{10, 89, 2}

The type of every variable is verified when the parser is created, so that a
mistake in the target structure is found before any argument is parsed.

# Targets

A parser knows variables by name only. The Target interface resolves their
types, creates instances and writes values. StructTarget does it with
reflection for a struct type, and MapTarget does it for fields declared at run
time, with instances of type map[string]any. The reflection target writes
the variable "minute" into the field tagged `argbind:"minute"`, else into the
field Minute.

# Configuration

A Config sets the array delimiter, a zap logger with its minimum level, and
Prometheus metrics. Parse calls on the same parser are serialized.
*/
package argbind
