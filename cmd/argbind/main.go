// Command argbind binds command line arguments to the fields described by a
// schema file and prints the result.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jpvetterli/argbind"
	"github.com/jpvetterli/argbind/internal/schema"
)

// The cli struct represents all command-line flags and arguments.
type cli struct {
	Schema    string `required:"" type:"existingfile" help:"Schema file (.yaml, .yml or .toml)."`
	Usage     string `default:""                        help:"Usage expression, replaces the one of the schema."`
	Delimiter string `default:""                        help:"Array delimiter, replaces the one of the schema."`
	Format    string `default:"json"                    help:"Output format." enum:"json,yaml"`
	Doc       bool   `default:"false"                   help:"Print the option documentation to stdout and exit."`
	Metrics   bool   `default:"false"                   help:"Print parser metrics to stderr before exiting."`

	Log struct {
		Level string `default:"${default_log_level}" help:"${help_log_level}" enum:"${enum_log_level}"`
	} `embed:"" prefix:"log-"`

	Args []string `arg:"" optional:"" help:"Arguments to bind, after \"--\"."`
}

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageErrors are the errors caused by the arguments rather than by the schema.
var usageErrors = []error{
	argbind.ErrUnknownOption,
	argbind.ErrMissingValue,
	argbind.ErrMissingMandatoryOption,
	argbind.ErrDataFormat,
}

// exitCode is used to stop kong from calling os.Exit.
type exitCode int

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with the given arguments and returns the exit code.
func run(args []string, stdout, stderr io.Writer) (code int) {
	levels := []string{
		zapcore.DebugLevel.String(),
		zapcore.InfoLevel.String(),
		zapcore.WarnLevel.String(),
		zapcore.ErrorLevel.String(),
	}

	var flags cli
	parser, err := kong.New(
		&flags,
		kong.Name("argbind"),
		kong.Description("Bind command line arguments to the fields described by a schema file."),
		kong.Vars{
			"default_log_level": zapcore.WarnLevel.String(),
			"enum_log_level":    strings.Join(levels, ","),
			"help_log_level":    "Log level: '" + strings.Join(levels, "', '") + "'.",
		},
		kong.DefaultEnvars("ARGBIND"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
	)
	if err != nil {
		panic(err)
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	if _, err = parser.Parse(args); err != nil {
		printError(stderr, err)
		return exitUsage
	}

	level, err := zapcore.ParseLevel(flags.Log.Level)
	if err != nil {
		printError(stderr, err)
		return exitUsage
	}
	logger := setupLogger(stderr, level)
	defer logger.Sync() //nolint:errcheck // nothing to do

	metrics := argbind.NewMetrics()
	if flags.Metrics {
		defer dumpMetrics(stderr, metrics)
	}

	return bind(&flags, logger, metrics, stdout, stderr)
}

// bind loads the schema, parses the arguments and prints the result.
func bind(flags *cli, logger *zap.Logger, metrics *argbind.Metrics, stdout, stderr io.Writer) int {
	s, err := schema.Load(flags.Schema)
	if err != nil {
		printError(stderr, err)
		return exitError
	}
	if flags.Usage != "" {
		s.Usage = flags.Usage
	}
	if flags.Delimiter != "" {
		s.Delimiter = flags.Delimiter
	}

	target, err := s.Target()
	if err != nil {
		printError(stderr, fmt.Errorf("schema %s: %w", flags.Schema, err))
		return exitError
	}

	base := argbind.NewConfig()
	base.SetLogger(logger)
	base.SetLogLevel(logger.Level())
	base.SetMetrics(metrics)

	p, err := argbind.CustomParser(s.Usage, target, s.Config(base))
	if err != nil {
		printError(stderr, err)
		return exitError
	}

	if flags.Doc {
		p.PrintDoc(stdout, "argbind")
		return exitOK
	}

	instance, err := p.Parse(flags.Args)
	if err != nil {
		printError(stderr, err)
		for _, e := range usageErrors {
			if errors.Is(err, e) {
				return exitUsage
			}
		}
		return exitError
	}

	out := render(target, instance.(map[string]any))
	if err = write(stdout, flags.Format, out); err != nil {
		printError(stderr, err)
		return exitError
	}
	return exitOK
}

// setupLogger returns a console logger writing to w.
func setupLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		CallerKey:      "C",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller())
}

// dumpMetrics writes all metrics in the text exposition format.
func dumpMetrics(w io.Writer, metrics *argbind.Metrics) {
	r := prometheus.NewRegistry()
	r.MustRegister(metrics)

	mfs, err := r.Gather()
	if err != nil {
		printError(w, err)
		return
	}
	for _, mf := range mfs {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			printError(w, err)
			return
		}
	}
}

// field is a bound field in output order.
type field struct {
	Name  string
	Value any
}

// render returns the fields of instance sorted by name, with characters as
// strings, enumeration values as names and byte slices as numbers. An unset
// character is an empty string and an unset array is nil.
func render(target *argbind.MapTarget, instance map[string]any) []field {
	names := make([]string, 0, len(instance))
	for n := range instance {
		names = append(names, n)
	}
	sort.Strings(names)

	res := make([]field, 0, len(names))
	for _, n := range names {
		v := instance[n]
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.IsNil() {
			res = append(res, field{Name: n})
			continue
		}
		ft, err := target.FieldType(n)
		if err == nil && ft.Kind == argbind.Char {
			switch c := v.(type) {
			case rune:
				v = ""
				if c != 0 {
					v = string(c)
				}
			case []rune:
				s := make([]string, len(c))
				for i, r := range c {
					s[i] = string(r)
				}
				v = s
			}
		}
		switch e := v.(type) {
		case []uint8:
			s := make([]uint, len(e))
			for i, b := range e {
				s[i] = uint(b)
			}
			v = s
		case argbind.EnumValue:
			v = e.Name
		case []argbind.EnumValue:
			s := make([]string, len(e))
			for i, ev := range e {
				s[i] = ev.Name
			}
			v = s
		}
		res = append(res, field{Name: n, Value: v})
	}
	return res
}

// write prints fields as a JSON object or a YAML mapping, keeping their order.
func write(w io.Writer, format string, fields []field) error {
	switch format {
	case "yaml":
		node := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range fields {
			var v yaml.Node
			if err := v.Encode(f.Value); err != nil {
				return err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Name}
			node.Content = append(node.Content, key, &v)
		}

		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(node); err != nil {
			return err
		}
		return e.Close()

	default:
		// encoding/json sorts map keys, which is the field order
		m := make(map[string]any, len(fields))
		for _, f := range fields {
			m[f.Name] = f.Value
		}
		b, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	}
}

// printError prints an error in red.
func printError(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "argbind: %s\n", err)
}
