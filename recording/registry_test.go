package recording

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/draft"
)

// mockBackend records the command types it receives.
type mockBackend struct {
	name       string
	beginCalls int
	endCalls   int
	meta       Meta
	layers     []draft.Layer
	selected   []draft.LayerKey
	calls      []CommandType
}

func newMockBackend(name string) *mockBackend {
	return &mockBackend{name: name}
}

func (b *mockBackend) Begin(meta Meta) error {
	b.beginCalls++
	b.meta = meta
	return nil
}

func (b *mockBackend) End() error {
	b.endCalls++
	return nil
}

func (b *mockBackend) CreateLayer(l draft.Layer) {
	b.layers = append(b.layers, l)
	b.calls = append(b.calls, CmdCreateLayer)
}

func (b *mockBackend) SelectLayer(key draft.LayerKey) {
	b.selected = append(b.selected, key)
	b.calls = append(b.calls, CmdSelectLayer)
}

func (b *mockBackend) Line(c LineCommand)                           { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Rectangle(c RectangleCommand)                 { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Circle(c CircleCommand)                       { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Arc(c ArcCommand)                             { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Polygon(c PolygonCommand)                     { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Polyline(c PolylineCommand)                   { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Hatch(c HatchCommand)                         { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Text(c TextCommand)                           { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) Leader(c LeaderCommand)                       { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) LinearDimension(c LinearDimensionCommand)     { b.calls = append(b.calls, c.Type()) }
func (b *mockBackend) DiameterDimension(c DiameterDimensionCommand) { b.calls = append(b.calls, c.Type()) }

// resetRegistry clears all registered formats for test isolation.
func resetRegistry() {
	formatsMu.Lock()
	defer formatsMu.Unlock()
	formats = make(map[string]Format)
}

func mockFormat(name string) Format {
	return Format{Name: name, Extension: "." + name, New: func() Backend { return newMockBackend(name) }}
}

func TestRegisterAndNewBackend(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(mockFormat("test"))

	backend, err := NewBackend("test")
	if err != nil {
		t.Fatalf("NewBackend() error = %v", err)
	}
	mock, ok := backend.(*mockBackend)
	if !ok {
		t.Fatalf("NewBackend() = %T, want *mockBackend", backend)
	}
	if mock.name != "test" {
		t.Errorf("name = %q, want %q", mock.name, "test")
	}

	other, _ := NewBackend("test")
	if other == backend {
		t.Error("NewBackend returned a shared instance")
	}
}

func TestLookup(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(Format{Name: "lisp", Extension: "lsp", MediaType: "text/plain", New: func() Backend { return newMockBackend("lisp") }})

	f, err := Lookup("lisp")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if f.Extension != ".lsp" || f.MediaType != "text/plain" {
		t.Errorf("Lookup() = %+v, want extension .lsp and media type text/plain", f)
	}

	_, err = Lookup("dwg")
	var unknown *UnknownFormatError
	if !errors.As(err, &unknown) || !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Lookup(dwg) error = %v, want UnknownFormatError", err)
	}
	if unknown.Name != "dwg" || !slices.Equal(unknown.Known, []string{"lisp"}) {
		t.Errorf("error = %+v", unknown)
	}
	if !strings.Contains(err.Error(), "have lisp") {
		t.Errorf("error = %q, want the registered formats listed", err)
	}
}

func TestNewBackendUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	_, err := NewBackend("dwg")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("NewBackend() error = %v, want ErrUnknownFormat", err)
	}
	if !strings.Contains(err.Error(), "no backends imported") {
		t.Errorf("error = %q, want import hint", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name   string
		setup  func()
		format Format
	}{
		{"empty name", func() {}, Format{New: mockFormat("x").New}},
		{"nil constructor", func() {}, Format{Name: "dup"}},
		{"duplicate", func() { Register(mockFormat("dup")) }, mockFormat("dup")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetRegistry()
			defer resetRegistry()
			tt.setup()
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic")
				}
			}()
			Register(tt.format)
		})
	}
}

func TestUnregister(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(mockFormat("temp"))
	if !IsRegistered("temp") {
		t.Error("format should be registered")
	}
	Unregister("temp")
	if IsRegistered("temp") {
		t.Error("format should not be registered after Unregister")
	}
	Unregister("nonexistent")
}

func TestFormatsSorted(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	if n := len(Formats()); n != 0 {
		t.Errorf("len(Formats()) = %d, want 0", n)
	}
	for _, name := range []string{"svg", "lisp", "raster"} {
		Register(mockFormat(name))
	}

	want := []string{"lisp", "raster", "svg"}
	if got := Backends(); !slices.Equal(got, want) {
		t.Errorf("Backends() = %v, want %v", got, want)
	}
	for i, f := range Formats() {
		if f.Name != want[i] || f.Extension != "."+want[i] {
			t.Errorf("Formats()[%d] = %+v", i, f)
		}
	}
}

func TestConcurrentRegistration(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	done := make(chan bool)
	go func() {
		for i := 0; i < 100; i++ {
			name := "concurrent" + string(rune('A'+i%26)) + string(rune('0'+i/26))
			func() {
				defer func() { _ = recover() }()
				Register(mockFormat(name))
			}()
		}
		done <- true
	}()
	go func() {
		for i := 0; i < 100; i++ {
			_ = Formats()
			_ = IsRegistered("nonexistent")
			_, _ = Lookup("nonexistent")
		}
		done <- true
	}()
	<-done
	<-done
}
