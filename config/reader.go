package config

import (
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/draft/part"
)

// reader decodes one document. It keeps the first error and turns every
// later read into a no-op, so decoders can read all fields unconditionally
// and check once.
type reader struct {
	kind part.Kind
	err  error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// object is a mapping node together with the dotted path it was found at.
// A missing mapping is an object with a nil node; every lookup on it
// reports the field as absent.
type object struct {
	r    *reader
	path string
	n    *yaml.Node
}

func (o object) field(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

// lookup returns the value node of key, or nil.
func (o object) lookup(key string) *yaml.Node {
	if o.n == nil || o.n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(o.n.Content); i += 2 {
		if o.n.Content[i].Value == key {
			return resolve(o.n.Content[i+1])
		}
	}
	return nil
}

// resolve follows aliases.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func (o object) has(key string) bool { return o.lookup(key) != nil }

// obj returns the mapping at key. A missing mapping yields an empty object
// so its required fields surface as missing parameters.
func (o object) obj(key string) object {
	n := o.lookup(key)
	if n != nil && n.Kind != yaml.MappingNode && !isNull(n) {
		o.invalid(key, n, "must be a mapping")
		n = nil
	}
	if isNull(n) {
		n = nil
	}
	return object{r: o.r, path: o.field(key), n: n}
}

// num returns the number at key, or zero when it is absent. Part
// validation reports absent required dimensions.
func (o object) num(key string) float64 {
	n := o.lookup(key)
	if n == nil || isNull(n) || o.r.err != nil {
		return 0
	}
	if n.Kind != yaml.ScalarNode {
		o.invalid(key, n, "must be a number")
		return 0
	}
	v, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		o.invalid(key, n, "must be a number")
		return 0
	}
	return v
}

// numOr returns the number at key, or def when it is absent.
func (o object) numOr(key string, def float64) float64 {
	if !o.has(key) {
		return def
	}
	return o.num(key)
}

// integer returns the integer at key, or zero when it is absent.
func (o object) integer(key string) int {
	n := o.lookup(key)
	if n == nil || isNull(n) || o.r.err != nil {
		return 0
	}
	v, err := strconv.Atoi(n.Value)
	if n.Kind != yaml.ScalarNode || err != nil {
		o.invalid(key, n, "must be an integer")
		return 0
	}
	return v
}

// str returns the scalar at key as text, or "" when it is absent. Numbers
// and booleans are returned as written, so a tolerance may be given as
// 0.1 or "±0.1".
func (o object) str(key string) string {
	n := o.lookup(key)
	if n == nil || isNull(n) || o.r.err != nil {
		return ""
	}
	if n.Kind != yaml.ScalarNode {
		o.invalid(key, n, "must be a scalar")
		return ""
	}
	return n.Value
}

// flag returns the boolean at key, or nil when it is absent.
func (o object) flag(key string) *bool {
	n := o.lookup(key)
	if n == nil || isNull(n) || o.r.err != nil {
		return nil
	}
	var v bool
	if n.Kind != yaml.ScalarNode || n.Decode(&v) != nil {
		o.invalid(key, n, "must be a boolean")
		return nil
	}
	return &v
}

// list returns the elements of the sequence at key.
func (o object) list(key string) []*yaml.Node {
	n := o.lookup(key)
	if n == nil || isNull(n) || o.r.err != nil {
		return nil
	}
	if n.Kind != yaml.SequenceNode {
		o.invalid(key, n, "must be a list")
		return nil
	}
	out := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		out[i] = resolve(c)
	}
	return out
}

// strings returns the scalars of the sequence at key.
func (o object) strings(key string) []string {
	var out []string
	for i, n := range o.list(key) {
		if n.Kind != yaml.ScalarNode {
			o.invalid(key+"."+strconv.Itoa(i), n, "must be a scalar")
			return nil
		}
		out = append(out, n.Value)
	}
	return out
}

// each calls fn for every entry of the mapping, in document order.
func (o object) each(fn func(key string, value *yaml.Node)) {
	if o.n == nil || o.n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(o.n.Content); i += 2 {
		fn(o.n.Content[i].Value, resolve(o.n.Content[i+1]))
	}
}

// extras returns the scalar entries whose keys are not in known, in
// document order.
func (o object) extras(known ...string) part.Extras {
	var out part.Extras
	o.each(func(key string, v *yaml.Node) {
		if slices.Contains(known, key) || v.Kind != yaml.ScalarNode || isNull(v) {
			return
		}
		out = append(out, part.Param{Path: []string{key}, Value: v.Value})
	})
	return out
}

func (o object) invalid(key string, n *yaml.Node, reason string) {
	var v any = n.Value
	if n.Kind != yaml.ScalarNode {
		v = kindName(n.Kind)
	}
	o.r.fail(&part.InvalidParameterError{Kind: o.r.kind, Field: o.field(key), Value: v, Reason: reason})
}

func isNull(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "<mapping>"
	case yaml.SequenceNode:
		return "<list>"
	case yaml.DocumentNode:
		return "<document>"
	case yaml.AliasNode:
		return "<alias>"
	}
	return "<scalar>"
}
