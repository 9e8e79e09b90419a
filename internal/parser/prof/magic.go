package prof

import (
	"bytes"
	"encoding/binary"

	"github.com/hpcprof/internal/parser/binio"
)

// TagLength is the size of the format tag at the start of every file.
const TagLength = 4

// headerLength covers the tag, add_mode and version fields.
const headerLength = TagLength + 2 + 2

// CommonLayout selects the optional fields of the common block.
type CommonLayout struct {
	// MemoryHints adds the recommended-memory and sampling-interval fields
	// after the measurement time text.
	MemoryHints bool
}

// Format identifies a profile file family.
type Format struct {
	Name    string
	Tag     string
	Version int16
	Layout  CommonLayout
}

var (
	// EProf is the event-counter profile format.
	EProf = Format{Name: "EProf", Tag: "EPRF", Version: 0x0402}

	// DProf is the sampling cost profile format.
	DProf = Format{Name: "DProf", Tag: "DPRF", Version: 0x0412, Layout: CommonLayout{MemoryHints: true}}
)

// MagicKey is the decoded file header. A MagicKey only exists for files that
// passed ReadMagicKey.
type MagicKey struct {
	Tag     string `json:"tag"`
	AddMode int16  `json:"add_mode"`
	Version int16  `json:"version"`
}

// ReadMagicKey consumes the header and checks it against f. A tag mismatch
// fails before any further field is read.
func ReadMagicKey(c *binio.Cursor, f Format) (MagicKey, error) {
	tag, err := c.ReadBytes(TagLength)
	if err != nil {
		return MagicKey{}, fmtField("file tag", err)
	}
	if !bytes.Equal(tag, []byte(f.Tag)) {
		return MagicKey{}, &MagicError{Want: f.Tag, Got: tag}
	}

	r := binio.NewFieldReader(c)
	key := MagicKey{Tag: f.Tag}
	key.AddMode = r.Int16("add_mode")
	key.Version = r.Int16("version")
	if err := r.Err(); err != nil {
		return MagicKey{}, err
	}
	if key.Version != f.Version {
		return MagicKey{}, &VersionError{Format: f.Name, Found: key.Version, Supported: f.Version}
	}
	return key, nil
}

// ProbeEndian picks the byte order under which the version field of data
// equals the version supported by f, trying little endian first. When neither
// order matches it returns little endian and leaves the rejection to
// ReadMagicKey.
func ProbeEndian(data []byte, f Format) binio.Endian {
	if len(data) < headerLength || string(data[:TagLength]) != f.Tag {
		return binio.LittleEndian
	}
	v := data[TagLength+2 : headerLength]
	switch {
	case int16(binary.LittleEndian.Uint16(v)) == f.Version:
		return binio.LittleEndian
	case int16(binary.BigEndian.Uint16(v)) == f.Version:
		return binio.BigEndian
	default:
		return binio.LittleEndian
	}
}
