// Package loader places a program image into an emulator's memory ahead
// of execution: raw little-endian words, a raw byte buffer, or one
// instruction word per line of text.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rv32i-go/rv32i/emu"
)

// ParseError reports a malformed line encountered by LoadText. It wraps
// the underlying parse error together with the offending line number and
// text so the CLI can print a precise diagnostic before execution begins.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("loader: line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LoadWords writes words sequentially starting at base, each one as a
// 32-bit little-endian store. It is the entry point for programmatic
// boot: callers that already have the instruction words in hand can skip
// text parsing entirely.
func LoadWords(mem *emu.Memory, base uint32, words []uint32) error {
	addr := base
	for _, w := range words {
		if !mem.InRange(addr, 4) {
			return fmt.Errorf("loader: word at 0x%08x out of range", addr)
		}
		mem.Write32(addr, w)
		addr += 4
	}
	return nil
}

// LoadBytes copies buf into memory starting at base, as a raw binary
// image (the default ingest mode for the CLI's -f flag).
func LoadBytes(mem *emu.Memory, base uint32, buf []byte) error {
	if !mem.InRange(base, uint32(len(buf))) {
		return fmt.Errorf("loader: image of %d bytes at 0x%08x out of range", len(buf), base)
	}
	for i, b := range buf {
		mem.Write8(base+uint32(i), b)
	}
	return nil
}

// LoadText reads one instruction word per line from r and writes them
// sequentially starting at base. Blank lines and anything following a
// '#' are ignored. radix is passed to strconv.ParseUint; 0 requests
// Go's prefix-based auto-detection (0x.../0b.../0 for hex/binary/octal,
// decimal otherwise). A line may carry the matching 0x/0b/0o prefix even
// when radix is given explicitly; it is stripped before parsing so the
// same "0x..." text works regardless of whether the caller pinned the
// radix or left it at 0.
func LoadText(mem *emu.Memory, base uint32, r io.Reader, radix int) error {
	scanner := bufio.NewScanner(r)
	addr := base
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		value, err := strconv.ParseUint(stripRadixPrefix(line, radix), radix, 32)
		if err != nil {
			return &ParseError{Line: lineNum, Text: line, Err: err}
		}
		if !mem.InRange(addr, 4) {
			return &ParseError{Line: lineNum, Text: line, Err: fmt.Errorf("address 0x%08x out of range", addr)}
		}
		mem.Write32(addr, uint32(value))
		addr += 4
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("loader: %w", err)
	}
	return nil
}

// stripRadixPrefix removes a 0x/0X, 0b/0B, or 0o/0O prefix matching an
// explicitly pinned radix. strconv.ParseUint only recognizes these
// prefixes itself when base is 0, so a caller-pinned radix of 16 would
// otherwise reject "0x..." text. radix 0 is left untouched since
// ParseUint already handles its prefixes.
func stripRadixPrefix(line string, radix int) string {
	switch radix {
	case 16:
		if s, ok := cutPrefixFold(line, "0x"); ok {
			return s
		}
	case 2:
		if s, ok := cutPrefixFold(line, "0b"); ok {
			return s
		}
	case 8:
		if s, ok := cutPrefixFold(line, "0o"); ok {
			return s
		}
	}
	return line
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
