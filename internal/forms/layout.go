// Package forms describes the public forms and how templates lay them out.
package forms

// Field is one input of a form layout.
type Field struct {
	Name        string
	Label       string
	Type        string // text, email, tel or textarea
	Placeholder string
	Rows        int
}

// Column groups fields that share one grid column. Width is out of 12.
type Column struct {
	Width  int
	Fields []Field
}

type Row struct {
	Columns []Column
}

// Layout is rendered generically by the form partial.
type Layout struct {
	Rows   []Row
	Submit string
}

// Fields lists every field of the layout in render order.
func (l Layout) Fields() []Field {
	var out []Field
	for _, row := range l.Rows {
		for _, col := range row.Columns {
			out = append(out, col.Fields...)
		}
	}
	return out
}
