package recording

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Format is a registered output format: how a drawing is serialized, saved
// and served.
type Format struct {
	// Name is the registry key, e.g. "lisp".
	Name string `json:"name"`

	// Extension is the file extension of saved drawings, including the dot.
	Extension string `json:"extension"`

	// MediaType is the content type of the serialized drawing.
	MediaType string `json:"media_type"`

	// New creates a backend for one playback. Backends keep output state,
	// so instances are never shared.
	New func() Backend `json:"-"`
}

// ErrUnknownFormat is matched by every UnknownFormatError.
var ErrUnknownFormat = errors.New("recording: unknown output format")

// UnknownFormatError is returned for a format name nobody registered.
type UnknownFormatError struct {
	Name  string
	Known []string
}

func (e *UnknownFormatError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("recording: unknown output format %q (no backends imported)", e.Name)
	}
	return fmt.Sprintf("recording: unknown output format %q (have %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is reports whether target is ErrUnknownFormat.
func (e *UnknownFormatError) Is(target error) bool { return target == ErrUnknownFormat }

var (
	formatsMu sync.RWMutex
	formats   = make(map[string]Format)
)

// Register adds an output format. Backend packages call it from init:
//
//	func init() {
//	    recording.Register(recording.Format{
//	        Name: "lisp", Extension: ".lsp", MediaType: MediaType,
//	        New: func() recording.Backend { return NewBackend() },
//	    })
//	}
//
// Register panics on an empty name, a nil constructor or a name that is
// already taken.
func Register(f Format) {
	formatsMu.Lock()
	defer formatsMu.Unlock()

	switch {
	case f.Name == "":
		panic("recording: Register with an empty format name")
	case f.New == nil:
		panic("recording: Register " + f.Name + " without a constructor")
	}
	if _, dup := formats[f.Name]; dup {
		panic("recording: format " + f.Name + " registered twice")
	}
	if f.Extension != "" && !strings.HasPrefix(f.Extension, ".") {
		f.Extension = "." + f.Extension
	}
	formats[f.Name] = f
}

// Unregister removes a format. Unknown names are ignored.
func Unregister(name string) {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	delete(formats, name)
}

// Lookup returns the format registered under name, or an
// *UnknownFormatError listing the registered ones.
func Lookup(name string) (Format, error) {
	formatsMu.RLock()
	f, ok := formats[name]
	formatsMu.RUnlock()
	if !ok {
		return Format{}, &UnknownFormatError{Name: name, Known: Backends()}
	}
	return f, nil
}

// NewBackend creates a backend for the named format:
//
//	import _ "github.com/gogpu/draft/recording/backends/svg"
//
//	b, err := recording.NewBackend("svg")
func NewBackend(name string) (Backend, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.New(), nil
}

// Formats returns the registered formats ordered by name.
func Formats() []Format {
	formatsMu.RLock()
	out := make([]Format, 0, len(formats))
	for _, f := range formats {
		out = append(out, f)
	}
	formatsMu.RUnlock()
	slices.SortFunc(out, func(a, b Format) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// Backends returns the registered format names in order.
func Backends() []string {
	fs := Formats()
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	_, ok := formats[name]
	return ok
}
