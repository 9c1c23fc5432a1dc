package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/danderson/bits"
	"github.com/kr/pretty"
)

var globalArgs struct {
	Input string `flag:"input,Read the transmission from this file instead of stdin"`
	Debug bool   `flag:"debug,Log decoder progress to stderr"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	env := newRootCommand().NewEnv(nil).SetContext(ctx)
	command.RunOrFail(env, os.Args[1:])
}

func newRootCommand() *command.C {
	return &command.C{
		Name:  "bits",
		Usage: "command [hex]",
		Help: `Decode and evaluate BITS transmissions.

Every command takes the hex transmission as an optional argument. If it
is absent, the first line of --input or stdin is used instead.`,
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "solve",
				Usage: "solve [hex]",
				Help:  "Print the version sum and value of a transmission.",
				Run:   command.Adapt(runSolve),
			},
			{
				Name:  "sum",
				Usage: "sum [hex]",
				Help:  "Print the sum of all packet versions in a transmission.",
				Run:   command.Adapt(runSum),
			},
			{
				Name:  "eval",
				Usage: "eval [hex]",
				Help:  "Print the value of a transmission.",
				Run:   command.Adapt(runEval),
			},
			{
				Name:  "tree",
				Usage: "tree [hex]",
				Help:  "Print the packet tree of a transmission, one packet per line.",
				Run:   command.Adapt(runTree),
			},
			{
				Name:  "dump",
				Usage: "dump [hex]",
				Help:  "Print the decoded packet structures of a transmission.",
				Run:   command.Adapt(runDump),
			},
			{
				Name:  "encode",
				Usage: "encode [hex]",
				Help: `Decode a transmission and encode it again.

The output uses upper case hex, the shortest encoding of every literal,
and the minimum padding.`,
				Run: command.Adapt(runEncode),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}
}

func decode(env *command.Env, args []string) (bits.Packet, error) {
	if len(args) > 1 {
		return nil, env.Usagef("too many arguments")
	}
	bits.SetDebug(globalArgs.Debug)
	in, err := readTransmission(args, globalArgs.Input, os.Stdin)
	if err != nil {
		return nil, err
	}
	p, err := bits.DecodeHex(in)
	if err != nil {
		return nil, fmt.Errorf("decoding transmission: %w", err)
	}
	return p, nil
}

func runSolve(env *command.Env, args ...string) error {
	p, err := decode(env, args)
	if err != nil {
		return err
	}
	v, err := bits.Value(p)
	if err != nil {
		return fmt.Errorf("evaluating transmission: %w", err)
	}
	fmt.Printf("Version sum: %d\n", bits.VersionSum(p))
	fmt.Printf("Root packet value: %d\n", v)
	return nil
}

func runSum(env *command.Env, args ...string) error {
	p, err := decode(env, args)
	if err != nil {
		return err
	}
	fmt.Println(bits.VersionSum(p))
	return nil
}

func runEval(env *command.Env, args ...string) error {
	p, err := decode(env, args)
	if err != nil {
		return err
	}
	v, err := bits.Value(p)
	if err != nil {
		return fmt.Errorf("evaluating transmission: %w", err)
	}
	fmt.Println(v)
	return nil
}

func runTree(env *command.Env, args ...string) error {
	p, err := decode(env, args)
	if err != nil {
		return err
	}
	return printTree(&indenter{out: os.Stdout}, p)
}

func runDump(env *command.Env, args ...string) error {
	p, err := decode(env, args)
	if err != nil {
		return err
	}
	fmt.Printf("%# v\n", pretty.Formatter(p))
	return nil
}

func runEncode(env *command.Env, args ...string) error {
	p, err := decode(env, args)
	if err != nil {
		return err
	}
	out, err := bits.MarshalHex(p)
	if err != nil {
		return fmt.Errorf("encoding transmission: %w", err)
	}
	fmt.Println(out)
	return nil
}
