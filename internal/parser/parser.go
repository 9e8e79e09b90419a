// Package parser defines the profile reader contract and picks the reader
// for a file by its magic tag.
package parser

import (
	"fmt"
	"sort"

	"github.com/hpcprof/internal/parser/binio"
	"github.com/hpcprof/internal/parser/dprof"
	"github.com/hpcprof/internal/parser/eprof"
	"github.com/hpcprof/internal/parser/prof"
	"github.com/hpcprof/pkg/model"
)

// ProfilerReader is the contract shared by the format readers. Accessors
// for data a format does not carry return an empty, non-nil slice.
type ProfilerReader interface {
	// ReadFile sets the byte order and decodes the file at path.
	ReadFile(path string, endian binio.Endian) error
	// Read decodes the file at path with the configured byte order.
	Read(path string) error
	// ReadImage sets the byte order and decodes an image already loaded
	// from path.
	ReadImage(path string, data []byte, endian binio.Endian) error

	SetEndian(endian binio.Endian)
	// Endian returns the configured byte order, possibly EndianAuto.
	Endian() binio.Endian
	// ResolvedEndian returns the byte order the loaded file was decoded
	// with.
	ResolvedEndian() (binio.Endian, error)

	// FileType returns the magic tag of the format.
	FileType() string
	// ProfFile returns the path of the loaded file.
	ProfFile() string
	// PaEventName returns the PA event category of the loaded file.
	PaEventName() (string, error)

	EventCounterInfo() ([]model.ProfilerEprofData, error)
	CostInfoLine() ([]model.ProfilerDprofData, error)
	CostInfoLoop() ([]model.ProfilerDprofData, error)
	CostInfoProcedure() ([]model.ProfilerDprofData, error)
	CallGraphInfo() ([]model.ProfilerDprofData, error)

	// Summary condenses the loaded file.
	Summary() (*model.ProfileSummary, error)
}

var (
	_ ProfilerReader = (*eprof.Reader)(nil)
	_ ProfilerReader = (*dprof.Reader)(nil)
)

// ReaderFactory creates a ProfilerReader.
type ReaderFactory func(opts *prof.ReaderOptions) ProfilerReader

// Registry holds reader factories keyed by magic tag.
type Registry struct {
	factories map[string]ReaderFactory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]ReaderFactory),
	}
}

// DefaultRegistry returns a Registry with the EProf and DProf readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(prof.EProf.Tag, func(opts *prof.ReaderOptions) ProfilerReader {
		return eprof.NewReader(opts)
	})
	r.Register(prof.DProf.Tag, func(opts *prof.ReaderOptions) ProfilerReader {
		return dprof.NewReader(opts)
	})
	return r
}

// Register registers a factory for the given magic tag.
func (r *Registry) Register(tag string, factory ReaderFactory) {
	r.factories[tag] = factory
}

// Get returns the factory for the given magic tag.
func (r *Registry) Get(tag string) (ReaderFactory, bool) {
	factory, ok := r.factories[tag]
	return factory, ok
}

// Tags returns the registered tags in sorted order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, len(r.factories))
	for tag := range r.factories {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// NewReader creates a reader for tag.
func (r *Registry) NewReader(tag string, opts *prof.ReaderOptions) (ProfilerReader, error) {
	factory, ok := r.Get(tag)
	if !ok {
		return nil, fmt.Errorf("%w: tag %q", ErrUnsupportedFormat, tag)
	}
	return factory(opts), nil
}

// Open loads path, creates the reader matching its tag and decodes the
// loaded image with the byte order in opts. The file is read once.
func (r *Registry) Open(path string, opts *prof.ReaderOptions) (ProfilerReader, error) {
	if opts == nil {
		opts = prof.DefaultReaderOptions()
	}
	data, err := prof.LoadImage(path)
	if err != nil {
		return nil, err
	}
	tag, err := sniffImage(path, data)
	if err != nil {
		return nil, err
	}
	reader, err := r.NewReader(tag, opts)
	if err != nil {
		return nil, err
	}
	if err := reader.ReadImage(path, data, opts.Endian); err != nil {
		return nil, err
	}
	return reader, nil
}

// SniffTag returns the magic tag of the file at path. Archived images are
// unwrapped first.
func SniffTag(path string) (string, error) {
	data, err := prof.LoadImage(path)
	if err != nil {
		return "", err
	}
	return sniffImage(path, data)
}

func sniffImage(path string, data []byte) (string, error) {
	if len(data) < prof.TagLength {
		return "", fmt.Errorf("%w: %s has %d bytes", ErrEmptyInput, path, len(data))
	}
	return string(data[:prof.TagLength]), nil
}

// Open opens path with the default registry.
func Open(path string, opts *prof.ReaderOptions) (ProfilerReader, error) {
	return DefaultRegistry().Open(path, opts)
}
