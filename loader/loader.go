// Package loader parses a memory image off an io.Reader into an
// emu.Memory, following the same two-token grammar the reference
// implementation's load_instructions reads from stdin: an '@'-prefixed
// hex address sets the write cursor, and every other whitespace-
// separated token is one hex byte written at the cursor before it
// advances by one.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zjxcpu/rv32tomasulo/emu"
)

// Load reads a memory image from r into a freshly created emu.Memory.
// Hex digits may be upper or lower case. A token that is neither an
// '@HHHHHHHH' address directive nor a valid hex byte is a fatal parse
// error.
func Load(r io.Reader) (*emu.Memory, error) {
	mem := emu.NewMemory()
	if err := LoadInto(r, mem); err != nil {
		return nil, err
	}
	return mem, nil
}

// LoadInto parses a memory image from r directly into mem, so a caller
// can load more than one image fragment into the same memory.
func LoadInto(r io.Reader, mem *emu.Memory) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var cursor uint32
	for scanner.Scan() {
		token := scanner.Text()
		if token == "" {
			continue
		}

		if strings.HasPrefix(token, "@") {
			addr, err := strconv.ParseUint(token[1:], 16, 32)
			if err != nil {
				return fmt.Errorf("loader: malformed address directive %q: %w", token, err)
			}
			cursor = uint32(addr)
			continue
		}

		b, err := strconv.ParseUint(token, 16, 8)
		if err != nil {
			return fmt.Errorf("loader: malformed byte token %q: %w", token, err)
		}
		mem.WriteByte(cursor, byte(b))
		cursor++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("loader: failed to read memory image: %w", err)
	}
	return nil
}
