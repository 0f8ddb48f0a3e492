package argbind_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/jpvetterli/argbind"
)

type Timer struct {
	Minute  int32
	Seconds []int64
	Verbose bool
	Unit    string `argbind:"u"`
}

func ExampleNew() {
	p, err := argbind.New[Timer]("--min|-m minute [--sec|-s seconds] [-v verbose] [--unit u]", nil)
	if err != nil {
		fmt.Println(err)
		return
	}

	timer, err := p.Parse([]string{"-s", "15,30,45", "--min", "20", "-v"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%+v\n", *timer)

	_, err = p.Parse([]string{"-s", "15"})
	fmt.Println(err)
	fmt.Println(errors.Is(err, argbind.ErrMissingMandatoryOption))

	// output:
	// {Minute:20 Seconds:[15 30 45] Verbose:true Unit:}
	// missing mandatory option: min|m (minute)
	// true
}

func ExampleConfig_SetDelimiter() {
	c := argbind.NewConfig()
	c.SetDelimiter(" : ")
	p, err := argbind.New[Timer]("-m minute -s seconds", c)
	if err != nil {
		fmt.Println(err)
		return
	}

	timer, err := p.Parse([]string{"-m", "1", "-s", "10 : 20 : 30"})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(timer.Seconds)

	// output:
	// [10 20 30]
}

func ExampleNewMapTarget() {
	target := argbind.NewMapTarget(map[string]argbind.FieldType{
		"host":  {Kind: argbind.String},
		"ports": {Kind: argbind.Uint16, Array: true},
		"mode":  {Kind: argbind.Enum, Enum: []string{"plain", "tls"}},
	})
	p, err := argbind.NewParser("--host|-h host [-p ports] [--mode mode]", target)
	if err != nil {
		fmt.Println(err)
		return
	}

	v, err := p.Parse([]string{"-h", "localhost", "-p", "80,443", "--mode", "tls"})
	if err != nil {
		fmt.Println(err)
		return
	}
	values := v.(map[string]any)
	for _, name := range target.Names() {
		fmt.Printf("%s: %v\n", name, values[name])
	}

	// output:
	// host: localhost
	// mode: tls
	// ports: [80 443]
}

func ExampleParser_PrintDoc() {
	p, err := argbind.New[Timer]("--min|-m minute [--sec|-s seconds] [-v verbose]", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	p.PrintDoc(os.Stdout, "timer")

	// output:
	// Usage: timer --min|-m minute [--sec|-s seconds] [-v verbose]
	//
	// Options:
	//   --min, -m
	//            minute (int32)
	//   --sec, -s
	//            seconds ([]int64), optional
	//   -v       verbose (bool), optional
}
