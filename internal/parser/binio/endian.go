package binio

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Endian selects the byte order used to reassemble multi-byte fields.
// Profile files do not record their own byte order, so the caller supplies it.
type Endian uint8

const (
	// LittleEndian decodes fields least significant byte first.
	LittleEndian Endian = 0x00
	// BigEndian decodes fields most significant byte first.
	BigEndian Endian = 0x01
	// EndianAuto asks the format layer to probe both orders against the
	// version field. A Cursor never runs in this mode.
	EndianAuto Endian = 0xFF
)

// ByteOrder returns the binary.ByteOrder for e. EndianAuto maps to little endian.
func (e Endian) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// String returns the configuration spelling of e.
func (e Endian) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	case EndianAuto:
		return "auto"
	default:
		return fmt.Sprintf("endian(%d)", uint8(e))
	}
}

// ParseEndian parses "little", "big" or "auto" (case-insensitive).
func ParseEndian(s string) (Endian, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le", "0":
		return LittleEndian, nil
	case "big", "be", "1":
		return BigEndian, nil
	case "auto", "":
		return EndianAuto, nil
	default:
		return 0, fmt.Errorf("unknown endian: %q", s)
	}
}
