package argbind

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Parser binds command line arguments to a target as described by a usage
// expression. It is safe for concurrent use: Parse calls on the same Parser
// are serialized.
type Parser struct {
	mu       sync.Mutex
	config   *Config
	target   Target
	registry *registry
	splitter *splitter
	l        *zap.Logger
}

// NewParser returns a new Parser with a default configuration. See
// CustomParser.
func NewParser(usage string, target Target) (*Parser, error) {
	return CustomParser(usage, target, NewConfig())
}

// CustomParser returns a new Parser for a usage expression and a target, with
// a specific configuration. A nil configuration is the default one. Because
// the parser keeps a copy of the configuration, changes to the configuration
// have no effect after this call.
//
// The usage expression is compiled and checked against the target, so that an
// invalid expression, an unknown variable or a variable of an unsupported
// type is reported here, before any argument is parsed. Panics if the target
// is nil.
func CustomParser(usage string, target Target, configuration *Config) (*Parser, error) {
	if target == nil {
		panic(fmt.Errorf(`target for usage "%s" is nil`, usage))
	}
	if configuration == nil {
		configuration = NewConfig()
	}
	c := configuration.copy()
	l := c.logger().With(zap.String("usage", usage))
	p := &Parser{
		config:   c,
		target:   target,
		registry: newRegistry(usage, target, l),
		splitter: newSplitter(c.Delimiter()),
		l:        l,
	}
	if p.splitter.hasSpecial() {
		l.Debug("Delimiter quoted", zap.String("delimiter", c.Delimiter()))
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.initializeAndValidate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse returns a new instance of the target with the values found in args.
//
// An argument starting with a dash is an option switch. One or two leading
// dashes are stripped and the rest must be an option or alias of the usage
// expression. Unless the variable of the option is a bool, the next argument
// is its value; it cannot start with a dash. Other arguments are ignored.
//
// The result is nil if there is an error, which wraps one of the Err*
// variables of this package.
func (p *Parser) Parse(args []string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	start := time.Now()
	instance, err := p.parse(args)
	p.config.Metrics().observe(err, time.Since(start))
	if err != nil {
		p.l.Debug("Parse failed", zap.Strings("args", args), zap.Error(err))
		return nil, err
	}
	return instance, nil
}

// parse rebuilds the registry, captures values, creates an instance and sets
// its variables.
func (p *Parser) parse(args []string) (any, error) {
	if err := p.initializeAndValidate(); err != nil {
		return nil, err
	}

	b := newBinder(p.registry, p.splitter, p.l)
	if err := b.updateAvailableValues(args); err != nil {
		return nil, err
	}

	present := b.availableUsageTokens()
	if p.registry.isMissingMandatoryOption(present) {
		missing := p.registry.missingMandatory(present)
		names := make([]string, len(missing))
		for i, t := range missing {
			names[i] = fmt.Sprintf("%s (%s)", t.display(), t.Variable)
		}
		return nil, fmt.Errorf(`%w: %s`, ErrMissingMandatoryOption, strings.Join(names, ", "))
	}

	instance, err := p.target.New()
	if err != nil {
		return nil, fmt.Errorf(`%w: %w`, ErrTargetConstruction, err)
	}

	// argument order makes the last option bound to a variable win
	for _, t := range present {
		v, err := b.argValue(t)
		if err != nil {
			return nil, err
		}
		p.l.Debug("Setting variable", zap.String("variable", t.Variable), zap.Any("value", v))
		if err = p.target.Set(instance, t.Variable, v); err != nil {
			return nil, decorate(fmt.Errorf(`%w: %w`, ErrTargetConstruction, err), t)
		}
	}
	return instance, nil
}

// initializeAndValidate rebuilds the registry and validates it. The caller
// holds the lock.
func (p *Parser) initializeAndValidate() error {
	if err := p.registry.initialize(); err != nil {
		return err
	}
	return p.registry.validate()
}

// TypedParser is a Parser for a struct type T, using a StructTarget.
type TypedParser[T any] struct {
	*Parser
}

// New returns a TypedParser for a usage expression and a configuration,
// which may be nil. It panics if T is not a struct.
func New[T any](usage string, configuration *Config) (*TypedParser[T], error) {
	p, err := CustomParser(usage, StructOf[T](), configuration)
	if err != nil {
		return nil, err
	}
	return &TypedParser[T]{Parser: p}, nil
}

// Parse returns a new T with the values found in args. See Parser.Parse.
func (p *TypedParser[T]) Parse(args []string) (*T, error) {
	v, err := p.Parser.Parse(args)
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}
