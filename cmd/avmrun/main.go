// Command avmrun loads an AO bytecode file and runs it for a bounded number
// of steps, printing the resulting assertion.
package main

import (
	"fmt"
	"os"

	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/go-avm/avm/avm/loader"
	"github.com/go-avm/avm/avm/machine"
	"github.com/go-avm/avm/avm/token"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "avmrun",
		Usage: "load and run an AVM bytecode (.ao) file",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "steps",
				Value: 10000,
				Usage: "maximum number of instructions to execute",
			},
			&cli.Uint64Flag{
				Name:  "time-start",
				Value: 0,
				Usage: "lower time bound visible to GETTIME",
			},
			&cli.Uint64Flag{
				Name:  "time-end",
				Value: 0,
				Usage: "upper time bound visible to GETTIME",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug-level logging",
			},
		},
		ArgsUsage: "<file.ao>",
		Action:    run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "avmrun:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one bytecode file argument", 1)
	}
	if c.Bool("verbose") {
		log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, log.LevelDebug, true)))
	}

	path := c.Args().Get(0)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err == nil {
		log.Info("loading avm bytecode", "file", path, "size", unitconv.FormatPrefix(float64(info.Size()), unitconv.IEC, 1))
	}

	m, err := loader.Load(f, token.NewInMemoryTracker())
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	a := m.Run(c.Uint64("steps"), c.Uint64("time-start"), c.Uint64("time-end"))

	fmt.Printf("status: %s\n", m.Status)
	fmt.Printf("steps executed: %d\n", a.NumSteps)
	fmt.Printf("pc: %d\n", m.PC)
	fmt.Printf("state hash: %s\n", m.Hash().Hex())
	fmt.Printf("out messages: %d\n", len(a.OutMessages))
	fmt.Printf("logs: %d\n", len(a.Logs))
	for i, v := range a.Logs {
		fmt.Printf("  log[%d] = %s\n", i, v)
	}

	if m.Status == machine.Error {
		return cli.Exit("machine halted in error state", 2)
	}
	return nil
}
