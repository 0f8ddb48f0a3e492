package argbind_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvetterli/argbind"
)

type simple struct {
	IntVal    int32
	StringVal string
}

type primitives struct {
	IntVal   int32
	ShortVal int16
	LongVal  int64
	CharVal  argbind.Character
	FloatVal float32
	Verbose  bool
}

type arrays struct {
	IntVals    []int32
	StringVals []string
	StringVal  string
}

type mapHolder struct {
	Map map[string]int
}

type floatHolder struct {
	FloatVal float32
	IntVal   int32
}

type priority uint8

func (priority) EnumNames() []string { return []string{"low", "normal", "urgent"} }

type mode string

func (mode) EnumNames() []string { return []string{"fast", "safe"} }

type enums struct {
	Priority   priority
	Priorities []priority
	Mode       mode
}

func newParser[T any](t *testing.T, usage string, c *argbind.Config) *argbind.TypedParser[T] {
	t.Helper()
	p, err := argbind.New[T](usage, c)
	require.NoError(t, err)
	return p
}

func TestEmptyUsage(t *testing.T) {
	_, err := argbind.New[simple]("", nil)
	assert.ErrorIs(t, err, argbind.ErrEmptyOrUnresolvableUsage)

	_, err = argbind.New[simple]("   ", nil)
	assert.ErrorIs(t, err, argbind.ErrEmptyOrUnresolvableUsage)
}

func TestMissingMandatory(t *testing.T) {
	p := newParser[simple](t, "-i intVal [ -s stringVal ]", nil)
	_, err := p.Parse([]string{"-s", "hello"})
	require.Error(t, err)
	assert.ErrorIs(t, err, argbind.ErrMissingMandatoryOption)
	assert.EqualError(t, err, "missing mandatory option: i (intVal)")
}

func TestMissingMandatoryAll(t *testing.T) {
	p := newParser[simple](t, "--int|-i intVal --str stringVal", nil)
	_, err := p.Parse(nil)
	assert.EqualError(t, err, "missing mandatory option: int|i (intVal), str (stringVal)")
}

func TestOptionalMissing(t *testing.T) {
	p := newParser[simple](t, "-i intVal [ -s stringVal ]", nil)
	s, err := p.Parse([]string{"-i", "81823"})
	require.NoError(t, err)
	assert.Equal(t, &simple{IntVal: 81823}, s)
}

func TestOnlyOptional(t *testing.T) {
	p := newParser[simple](t, "[-s stringVal]", nil)

	s, err := p.Parse([]string{"-s", "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", s.StringVal)

	s, err = p.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, &simple{}, s)
}

func TestUnknownVariable(t *testing.T) {
	_, err := argbind.New[simple]("-i integerVal", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, argbind.ErrEmptyOrUnresolvableUsage)
}

func TestAliases(t *testing.T) {
	p := newParser[simple](t, "--num | -n intVal [--str | -s stringVal]", nil)

	s, err := p.Parse([]string{"-n", "10", "--str", "path"})
	require.NoError(t, err)
	assert.Equal(t, &simple{IntVal: 10, StringVal: "path"}, s)

	s, err = p.Parse([]string{"--num", "8818"})
	require.NoError(t, err)
	assert.Equal(t, &simple{IntVal: 8818}, s)

	s, err = p.Parse([]string{"-num", "1", "--n", "2"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), s.IntVal)
}

func TestUnsupportedType(t *testing.T) {
	_, err := argbind.New[mapHolder]("-m map", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, argbind.ErrUnsupportedFieldType)
	assert.NotErrorIs(t, err, argbind.ErrEmptyOrUnresolvableUsage)

	// enumeration types behind a pointer or an interface are not supported
	_, err = argbind.New[struct{ Level *priority }]("-l level", nil)
	assert.ErrorIs(t, err, argbind.ErrUnsupportedFieldType)

	_, err = argbind.New[struct{ Levels []*priority }]("-l levels", nil)
	assert.ErrorIs(t, err, argbind.ErrUnsupportedFieldType)

	_, err = argbind.New[struct{ Level argbind.Enumeration }]("-l level", nil)
	assert.ErrorIs(t, err, argbind.ErrUnsupportedFieldType)
}

func TestDataFormat(t *testing.T) {
	p := newParser[floatHolder](t, "[-f floatVal] [-i intVal]", nil)

	_, err := p.Parse([]string{"-f", "89.7F"})
	assert.ErrorIs(t, err, argbind.ErrDataFormat)

	_, err = p.Parse([]string{"-i", "89.7F"})
	assert.ErrorIs(t, err, argbind.ErrDataFormat)
	assert.EqualError(t, err,
		`option i (intVal): invalid data format: "89.7F" is not a valid int32 `+
			`(strconv.ParseInt: parsing "89.7F": invalid syntax)`)
}

func TestMissingValue(t *testing.T) {
	p := newParser[simple](t, "-i intVal -s stringVal", nil)

	_, err := p.Parse([]string{"-i", "-s", "some_string"})
	assert.ErrorIs(t, err, argbind.ErrMissingValue)

	_, err = p.Parse([]string{"-i", "1", "-s"})
	assert.ErrorIs(t, err, argbind.ErrMissingValue)
}

func TestSharedVariable(t *testing.T) {
	p := newParser[simple](t, "-a intVal [-b intVal]", nil)

	s, err := p.Parse([]string{"-b", "1", "-a", "2"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), s.IntVal)

	s, err = p.Parse([]string{"-a", "2", "-b", "1"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), s.IntVal)

	s, err = p.Parse([]string{"-b", "1", "-a", "2", "-b", "3"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), s.IntVal)
}

func TestUnknownOption(t *testing.T) {
	p := newParser[simple](t, "-i intVal", nil)
	_, err := p.Parse([]string{"-i", "1", "--verbose"})
	assert.ErrorIs(t, err, argbind.ErrUnknownOption)
}

func TestIgnoredArguments(t *testing.T) {
	p := newParser[simple](t, "-i intVal", nil)
	s, err := p.Parse([]string{"first", "-i", "3", "second"})
	require.NoError(t, err)
	assert.Equal(t, &simple{IntVal: 3}, s)
}

func TestPrimitives(t *testing.T) {
	p := newParser[primitives](t, "-i intVal [-s shortVal -l longVal] -c charVal -f floatVal [-v verbose]", nil)
	s, err := p.Parse([]string{"-i", "189", "-l", "9877", "-c", "T", "-f", "89.23"})
	require.NoError(t, err)

	expected := &primitives{IntVal: 189, LongVal: 9877, CharVal: 'T', FloatVal: 89.23}
	assert.Equal(t, expected, s)

	s, err = p.Parse([]string{"-v", "-i", "1", "-c", "xyz", "-f", "0", "-s", "-32768"})
	assert.ErrorIs(t, err, argbind.ErrMissingValue)
	assert.Nil(t, s)

	s, err = p.Parse([]string{"-v", "-i", "1", "-c", "xyz", "-f", "0", "-s", "32767"})
	require.NoError(t, err)
	assert.Equal(t, &primitives{IntVal: 1, ShortVal: 32767, CharVal: 'x', Verbose: true}, s)
}

func TestArrays(t *testing.T) {
	p := newParser[arrays](t, "--nums intVals -s stringVal [--strs stringVals]", nil)
	s, err := p.Parse([]string{"--nums", "10,89,2,7,56", "-s", "hello", "--strs", "hello,world,how,are,you"})
	require.NoError(t, err)

	expected := &arrays{
		IntVals:    []int32{10, 89, 2, 7, 56},
		StringVal:  "hello",
		StringVals: []string{"hello", "world", "how", "are", "you"},
	}
	if diff := cmp.Diff(expected, s); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestArrayDelimiter(t *testing.T) {
	c := argbind.NewConfig()
	c.SetDelimiter(":")
	p := newParser[arrays](t, "--nums intVals [--strs stringVals]", c)

	s, err := p.Parse([]string{"--nums", "10:89:2", "--strs", "how:are:you:?"})
	require.NoError(t, err)
	assert.Equal(t, []int32{10, 89, 2}, s.IntVals)
	assert.Equal(t, []string{"how", "are", "you", "?"}, s.StringVals)

	_, err = p.Parse([]string{"--nums", "10,89"})
	assert.ErrorIs(t, err, argbind.ErrDataFormat)
}

func TestSpecialDelimiters(t *testing.T) {
	for _, d := range []string{"[", `\`, "^", "$", ".", "|", "?", "*", "+", "(", ")", "<?>"} {
		t.Run(d, func(t *testing.T) {
			c := argbind.NewConfig()
			c.SetDelimiter(d)
			p := newParser[arrays](t, "--nums intVals", c)

			s, err := p.Parse([]string{"--nums", fmt.Sprintf("10%s89%s35%s", d, d, d)})
			require.NoError(t, err)
			assert.Equal(t, []int32{10, 89, 35}, s.IntVals)
		})
	}
}

func TestEnumerations(t *testing.T) {
	p := newParser[enums](t, "-p priority [--all priorities] [-m mode]", nil)

	s, err := p.Parse([]string{"-p", "urgent", "--all", "low,urgent", "-m", "safe"})
	require.NoError(t, err)
	assert.Equal(t, &enums{Priority: 2, Priorities: []priority{0, 2}, Mode: "safe"}, s)

	_, err = p.Parse([]string{"-p", "Urgent"})
	assert.ErrorIs(t, err, argbind.ErrDataFormat)
	assert.EqualError(t, err, `option p (priority): invalid data format: "Urgent" is not one of [low normal urgent]`)
}

func TestIdempotence(t *testing.T) {
	p := newParser[arrays](t, "--nums intVals -s stringVal", nil)
	args := []string{"--nums", "1,2,3", "-s", "x"}

	first, err := p.Parse(args)
	require.NoError(t, err)
	second, err := p.Parse(args)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)

	// a failed call leaves no state behind
	_, err = p.Parse([]string{"-s", "x"})
	require.Error(t, err)
	third, err := p.Parse(args)
	require.NoError(t, err)
	assert.Equal(t, first, third)
}

func TestConcurrentParse(t *testing.T) {
	p := newParser[simple](t, "-i intVal [-s stringVal]", nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := p.Parse([]string{"-i", fmt.Sprint(i), "-s", fmt.Sprint("s", i)})
			if assert.NoError(t, err) {
				assert.Equal(t, &simple{IntVal: int32(i), StringVal: fmt.Sprint("s", i)}, s)
			}
		}(i)
	}
	wg.Wait()
}

func TestMapTargetParse(t *testing.T) {
	target := argbind.NewMapTarget(map[string]argbind.FieldType{
		"minute":  {Kind: argbind.Int32},
		"seconds": {Kind: argbind.Int64, Array: true},
		"verbose": {Kind: argbind.Bool},
		"level":   {Kind: argbind.Enum, Enum: []string{"low", "high"}},
	})
	p, err := argbind.NewParser("--min|-m minute [--sec|-s seconds] [-v verbose] [-l level]", target)
	require.NoError(t, err)

	v, err := p.Parse([]string{"-m", "20", "-s", "15,30", "-v"})
	require.NoError(t, err)

	expected := map[string]any{
		"minute":  int32(20),
		"seconds": []int64{15, 30},
		"verbose": true,
		"level":   argbind.EnumValue{Name: "low"},
	}
	assert.Equal(t, expected, v)
}

type failingTarget struct {
	argbind.Target
}

func (failingTarget) New() (any, error) {
	return nil, fmt.Errorf("out of instances")
}

func TestTargetConstruction(t *testing.T) {
	target := failingTarget{Target: argbind.StructOf[simple]()}
	p, err := argbind.NewParser("-i intVal", target)
	require.NoError(t, err)

	_, err = p.Parse([]string{"-i", "1"})
	assert.ErrorIs(t, err, argbind.ErrTargetConstruction)
	assert.EqualError(t, err, "target construction failed: out of instances")
}

type unexported struct {
	intVal int32
}

func TestUnexportedField(t *testing.T) {
	p := newParser[unexported](t, "-i intVal", nil)
	_, err := p.Parse([]string{"-i", "1"})
	assert.ErrorIs(t, err, argbind.ErrTargetConstruction)
}

func TestGrammarErrors(t *testing.T) {
	for _, usage := range []string{
		"-a intVal [-b stringVal [ -c x ]",
		"[-a intVal] ] -b stringVal",
		"-a intVal (-b stringVal)",
		"-a intVal [-a stringVal]",
	} {
		_, err := argbind.New[simple](usage, nil)
		assert.ErrorIs(t, err, argbind.ErrInvalidGrammar, "%q", usage)
	}
}

func TestNilTarget(t *testing.T) {
	assert.PanicsWithError(t, `target for usage "-i intVal" is nil`, func() {
		_, _ = argbind.NewParser("-i intVal", nil)
	})
}

func TestNotStruct(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = argbind.New[int]("-i intVal", nil)
	})
}
