// Package markup is a small HTML writer for hand-built templ components.
package markup

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// Writer records the first write error and turns later calls into no-ops.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func New(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes s unescaped.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes s with HTML escaping.
func (w *Writer) Text(s string) {
	w.Raw(templ.EscapeString(s))
}

func (w *Writer) Int(v int64) {
	w.Raw(strconv.FormatInt(v, 10))
}

// Attr writes ` name="value"` with the value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// URL writes an href-style attribute, replacing unsafe schemes.
func (w *Writer) URL(name, value string) {
	w.Attr(name, string(templ.URL(value)))
}

func (w *Writer) Component(c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(w.ctx, w.w)
}

func (w *Writer) Err() error {
	return w.err
}

// Component wraps fn as a templ.Component.
func Component(fn func(w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := New(ctx, out)
		fn(w)
		return w.Err()
	})
}
