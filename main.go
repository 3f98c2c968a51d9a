// Package main provides the entry point for rv32i, a functional emulator
// for the RV32I base integer instruction set.
//
// For the full CLI, use: go run ./cmd/rv32i
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rv32i - RV32I functional emulator")
	fmt.Println("")
	fmt.Println("Usage: rv32i -f <program> [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -text        treat the file as one instruction word per line")
	fmt.Println("  -radix       radix for -text mode")
	fmt.Println("  -base        memory address the image is loaded at")
	fmt.Println("  -entry       initial program counter")
	fmt.Println("  -mem         memory size in bytes")
	fmt.Println("  -config      path to a JSON run configuration")
	fmt.Println("  -v           verbose trace and register dump")
	fmt.Println("  -d           pause for Enter between instructions")
	fmt.Println("  -fault-mode  run until a fault instead of the first NOP")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv32i' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv32i' instead.")
	}
}
