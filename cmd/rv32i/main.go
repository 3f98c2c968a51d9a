// Command rv32i is a functional emulator for the RV32I base integer
// instruction set: decode, execute, and a driver loop running over a
// flat little-endian memory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rv32i-go/rv32i/config"
	"github.com/rv32i-go/rv32i/emu"
	"github.com/rv32i-go/rv32i/isa"
	"github.com/rv32i-go/rv32i/loader"
)

var (
	filename   = flag.String("f", "", "program image to run")
	textMode   = flag.Bool("text", false, "treat the file as one instruction word per line")
	radix      = flag.Int("radix", 0, "radix for -text mode (0 keeps the config/default value)")
	baseAddr   = flag.Uint64("base", 0, "memory address the image is loaded at (0 keeps the config/default value)")
	entryAddr  = flag.Uint64("entry", 0, "initial program counter (0 keeps the config/default value)")
	memSize    = flag.Uint64("mem", 0, "memory size in bytes, must be a power of two (0 keeps the config/default value)")
	configPath = flag.String("config", "", "path to a JSON run configuration, overridden by any flag above")
	verbose    = flag.Bool("v", false, "print a disassembled trace of each instruction and a final register dump")
	debug      = flag.Bool("d", false, "pause for Enter between instructions")
	faultMode  = flag.Bool("fault-mode", false, "run until a fault instead of stopping at the first NOP")
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	if *filename == "" {
		fmt.Fprintln(os.Stderr, "usage: rv32i -f <program> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := resolveConfig()
	if err != nil {
		log.Fatalf("rv32i: %v", err)
	}

	mem, err := emu.NewMemorySized(cfg.MemorySize)
	if err != nil {
		log.Fatalf("rv32i: %v", err)
	}

	fp, err := os.Open(*filename)
	if err != nil {
		log.Fatalf("rv32i: %v", err)
	}
	defer fp.Close()

	if *textMode {
		err = loader.LoadText(mem, cfg.BaseAddress, fp, cfg.Radix)
	} else {
		var buf []byte
		buf, err = os.ReadFile(*filename)
		if err == nil {
			err = loader.LoadBytes(mem, cfg.BaseAddress, buf)
		}
	}
	if err != nil {
		log.Fatalf("rv32i: %v", err)
	}

	policy := emu.RunUntilNOP
	if *faultMode || !cfg.ExitOnNOP {
		policy = emu.RunUntilFault
	}

	opts := []emu.Option{
		emu.WithMemory(mem),
		emu.WithPolicy(policy),
	}
	if *verbose || *debug {
		opts = append(opts, emu.WithTrace(func(pc uint32, in *isa.Instruction) {
			if *verbose {
				log.Printf("rv32i: 0x%08x: %s", pc, isa.Disassemble(in))
			}
			if *debug {
				log.Printf("rv32i: paused...")
				fmt.Scanln()
			}
		}))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.SetPC(cfg.EntryAddress)

	exitCode, runErr := emulator.Run()

	if *verbose {
		fmt.Printf("\nprogram: %s\n", *filename)
		fmt.Printf("exit code: %d\n", exitCode)
		fmt.Printf("instructions executed: %d\n", emulator.InstructionCount())
		dumpRegisters(emulator.RegFile())
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "rv32i: %v\n", runErr)
	}

	os.Exit(exitCode)
}

func resolveConfig() (*config.RunConfig, error) {
	cfg := config.DefaultRunConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if *radix != 0 {
		cfg.Radix = *radix
	}
	if *baseAddr != 0 {
		cfg.BaseAddress = uint32(*baseAddr)
	}
	if *entryAddr != 0 {
		cfg.EntryAddress = uint32(*entryAddr)
	}
	if *memSize != 0 {
		cfg.MemorySize = uint32(*memSize)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func dumpRegisters(regFile *emu.RegFile) {
	snap := regFile.Snapshot()
	for i := 0; i < 32; i += 4 {
		fmt.Printf("x%-2d=%08x  x%-2d=%08x  x%-2d=%08x  x%-2d=%08x\n",
			i, snap[i], i+1, snap[i+1], i+2, snap[i+2], i+3, snap[i+3])
	}
}
