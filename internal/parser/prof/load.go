package prof

import (
	"fmt"
	"os"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/pkg/compression"
	"github.com/hpcprof/pkg/utils"
)

// ReaderOptions configures a format reader.
type ReaderOptions struct {
	// Endian is the byte order used by Read. ReadFile replaces it.
	Endian binio.Endian
	// Charset decodes string fields.
	Charset binio.Charset
	// Logger receives debug lines for each decode stage. If nil, logs are
	// suppressed.
	Logger utils.Logger
}

// DefaultReaderOptions returns little endian, UTF-8 and no logging.
func DefaultReaderOptions() *ReaderOptions {
	return &ReaderOptions{
		Endian:  binio.LittleEndian,
		Charset: binio.UTF8,
		Logger:  &utils.NullLogger{},
	}
}

// Normalize installs a NullLogger when none is set. A zero Charset already
// behaves as UTF-8.
func (o *ReaderOptions) Normalize() {
	if o.Logger == nil {
		o.Logger = &utils.NullLogger{}
	}
}

// LoadImage reads the whole file at path, unwrapping gzip or zstd archives.
func LoadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}
	data, err = compression.AutoDecompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap profile file %s: %w", path, err)
	}
	return data, nil
}
