package prof

import "github.com/hpcprof/internal/parser/binio"

// DecodeFunc decodes a complete image of one format family.
type DecodeFunc[P any] func(data []byte, endian binio.Endian, charset binio.Charset) (*P, error)

// CloneFunc returns a copy of p that shares no memory with it.
type CloneFunc[P any] func(p *P) *P

// Reader is the state shared by the format readers: the configured byte
// order and the last successfully decoded result. A Reader is not safe for
// concurrent use.
type Reader[P any] struct {
	format   Format
	decode   DecodeFunc[P]
	clone    CloneFunc[P]
	opts     ReaderOptions
	path     string
	resolved binio.Endian
	result   *P
}

// NewReader creates a Reader for format f. A nil opts uses
// DefaultReaderOptions.
func NewReader[P any](f Format, decode DecodeFunc[P], clone CloneFunc[P], opts *ReaderOptions) *Reader[P] {
	if opts == nil {
		opts = DefaultReaderOptions()
	}
	r := &Reader[P]{format: f, decode: decode, clone: clone, opts: *opts}
	r.opts.Normalize()
	return r
}

// SetEndian sets the byte order used by Read.
func (r *Reader[P]) SetEndian(endian binio.Endian) {
	r.opts.Endian = endian
}

// Endian returns the configured byte order, which may be EndianAuto. See
// ResolvedEndian for the order the loaded file was decoded with.
func (r *Reader[P]) Endian() binio.Endian {
	return r.opts.Endian
}

// ResolvedEndian returns the byte order the loaded file was decoded with.
// It is never EndianAuto once a file is loaded.
func (r *Reader[P]) ResolvedEndian() (binio.Endian, error) {
	if r.result == nil {
		return r.opts.Endian, ErrNotLoaded
	}
	return r.resolved, nil
}

// ReadFile sets the byte order and decodes path.
func (r *Reader[P]) ReadFile(path string, endian binio.Endian) error {
	r.SetEndian(endian)
	return r.Read(path)
}

// Read decodes path with the configured byte order. On failure the
// previously loaded result is kept.
func (r *Reader[P]) Read(path string) error {
	data, err := LoadImage(path)
	if err != nil {
		return err
	}
	return r.decodeImage(path, data)
}

// ReadImage sets the byte order and decodes data, an image already loaded
// from path by LoadImage. path is only recorded for ProfFile.
func (r *Reader[P]) ReadImage(path string, data []byte, endian binio.Endian) error {
	r.SetEndian(endian)
	return r.decodeImage(path, data)
}

func (r *Reader[P]) decodeImage(path string, data []byte) error {
	log := r.opts.Logger.WithFields(map[string]interface{}{
		"file":   path,
		"format": r.format.Name,
	})
	endian := r.opts.Endian
	if endian == binio.EndianAuto {
		endian = ProbeEndian(data, r.format)
		log.Debug("Probed endian=%s", endian)
	}
	log.Debug("Decoding %d bytes, endian=%s", len(data), endian)

	result, err := r.decode(data, endian, r.opts.Charset)
	if err != nil {
		log.Debug("Decode failed: %v", err)
		return err
	}
	log.Debug("Decoded %s image", r.format.Tag)

	r.path = path
	r.resolved = endian
	r.result = result
	return nil
}

// Result returns a copy of the last decoded result. The caller owns it.
func (r *Reader[P]) Result() (*P, error) {
	if r.result == nil {
		return nil, ErrNotLoaded
	}
	return r.clone(r.result), nil
}

// Loaded returns the loaded result without copying. It is for accessors
// that derive new values from it and must not be modified or retained.
func (r *Reader[P]) Loaded() (*P, error) {
	if r.result == nil {
		return nil, ErrNotLoaded
	}
	return r.result, nil
}

// FileType returns the magic tag of the format.
func (r *Reader[P]) FileType() string {
	return r.format.Tag
}

// ProfFile returns the path of the loaded file, or "" before a successful
// read.
func (r *Reader[P]) ProfFile() string {
	return r.path
}
