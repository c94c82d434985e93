package view

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// printer запоминает первую ошибку записи, чтобы не проверять каждую строку
type printer struct {
	w   io.Writer
	err error
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) print(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// esc - все пользовательские данные попадают в разметку только через него
func esc(s string) string {
	return templ.EscapeString(s)
}
