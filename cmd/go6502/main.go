// Command go6502 is a thin harness around the cpu package: it loads a
// raw binary image into memory at a given address, sets PC to that
// address (or to -start-pc; the reset vector is not written), runs the
// interpreter for a fixed cycle budget, and
// prints the resulting architectural state. It is deliberately not
// part of the interpreter itself - loading, vectoring and reporting
// are host concerns (spec Non-goals), kept here so the core package
// has no knowledge of files, flags or stdout.
package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v2"

	"github.com/nwidger/go6502/cpu"
	"github.com/nwidger/go6502/disassemble"
	"github.com/nwidger/go6502/memory"
)

func main() {
	app := &cli.App{
		Name:    "go6502",
		Usage:   "load a binary image and run it through the 6502 interpreter",
		Version: "v0.0.1",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "load",
				Aliases: []string{"l"},
				Usage:   "path to a raw binary image to load",
			},
			&cli.UintFlag{
				Name:  "load-addr",
				Usage: "address to load the image at",
				Value: 0x0600,
			},
			&cli.UintFlag{
				Name:  "start-pc",
				Usage: "PC to begin execution at (defaults to load-addr)",
			},
			&cli.IntFlag{
				Name:  "budget",
				Usage: "cycle budget to run",
				Value: 10000,
			},
			&cli.BoolFlag{
				Name:  "disasm",
				Usage: "disassemble the loaded image instead of running it",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	path := c.String("load")
	if path == "" {
		return cli.Exit("missing required -load flag", 1)
	}

	img, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}

	loadAddr := uint16(c.Uint("load-addr"))
	if int(loadAddr)+len(img) > 0x10000 {
		return errors.Errorf("image of %d bytes at 0x%04X overruns the 64 KiB address space", len(img), loadAddr)
	}

	ram := memory.NewFlat()
	for i, b := range img {
		ram.Write(loadAddr+uint16(i), b)
	}

	if c.Bool("disasm") {
		return disassembleImage(ram, loadAddr, len(img))
	}

	chip, err := cpu.Init(&cpu.ChipDef{Ram: ram})
	if err != nil {
		return errors.Wrap(err, "initializing cpu")
	}

	startPC := loadAddr
	if c.IsSet("start-pc") {
		startPC = uint16(c.Uint("start-pc"))
	}
	chip.PC = startPC

	spent := chip.Execute(c.Int("budget"))

	fmt.Printf("cycles spent: %d\n", spent)
	fmt.Printf("PC=%04X A=%02X X=%02X Y=%02X S=%02X P=%02X\n",
		chip.PC, chip.A, chip.X, chip.Y, chip.S, chip.P)
	return nil
}

// disassembleImage walks length bytes of ram starting at addr, printing
// one line per decoded instruction.
func disassembleImage(ram memory.Bank, addr uint16, length int) error {
	end := int(addr) + length
	for int(addr) < end {
		out, n := disassemble.Step(addr, ram)
		fmt.Println(out)
		addr += uint16(n)
	}
	return nil
}
