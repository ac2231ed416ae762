package alfred

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/wippyai/cocoa-bridge/errors"
)

// DefaultIndent is the indentation used by Render.
const DefaultIndent = "  "

type xmlItems struct {
	XMLName xml.Name  `xml:"items"`
	Items   []xmlItem `xml:"item"`
}

type xmlItem struct {
	XMLName      xml.Name `xml:"item"`
	UID          string   `xml:"uid,attr,omitempty"`
	Valid        string   `xml:"valid,attr"`
	Autocomplete string   `xml:"autocomplete,attr,omitempty"`
	Type         string   `xml:"type,attr,omitempty"`
	ArgAttr      string   `xml:"arg,attr,omitempty"`
	Arg          string   `xml:"arg,omitempty"`
	Title        string   `xml:"title,omitempty"`
	Subtitle     string   `xml:"subtitle,omitempty"`
	Icon         *xmlIcon `xml:"icon,omitempty"`
}

type xmlIcon struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

func (it Item) element() xmlItem {
	x := xmlItem{
		UID:          it.UID,
		Valid:        "yes",
		Autocomplete: it.Autocomplete,
		Type:         it.Type,
		Title:        it.Title,
		Subtitle:     it.Subtitle,
		Icon:         it.Icon.element(),
	}
	if it.Invalid {
		x.Valid = "no"
	}
	if it.multiline() {
		x.Arg = it.Arg
	} else {
		x.ArgAttr = it.Arg
	}
	return x
}

func (ic *Icon) element() *xmlIcon {
	switch {
	case ic == nil:
		return nil
	case ic.Path != "":
		return &xmlIcon{Value: ic.Path}
	case ic.FileIcon != "":
		return &xmlIcon{Type: "fileicon", Value: ic.FileIcon}
	case ic.FileType != "":
		return &xmlIcon{Type: "filetype", Value: ic.FileType}
	}
	return nil
}

// Renderer writes script filter XML.
type Renderer struct {
	writer io.Writer
	indent string
}

// NewRenderer creates a renderer writing to w with DefaultIndent.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{writer: w, indent: DefaultIndent}
}

// WithIndent sets the per-level indentation; "" writes a single line.
func (r *Renderer) WithIndent(indent string) *Renderer {
	r.indent = indent
	return r
}

// Render writes a complete document: the XML declaration, then one
// <items> element holding the items in order.
func (r *Renderer) Render(items []Item) error {
	doc := xmlItems{Items: make([]xmlItem, 0, len(items))}
	for _, it := range items {
		doc.Items = append(doc.Items, it.element())
	}

	if _, err := io.WriteString(r.writer, xml.Header); err != nil {
		return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "write header")
	}

	encoder := xml.NewEncoder(r.writer)
	encoder.Indent("", r.indent)
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "encode items")
	}

	if _, err := io.WriteString(r.writer, "\n"); err != nil {
		return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "write trailer")
	}
	return nil
}

// Render writes items to w with the default indentation.
func Render(w io.Writer, items []Item) error {
	return NewRenderer(w).Render(items)
}

// RenderString renders items into a string.
func RenderString(items []Item) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, items); err != nil {
		return "", err
	}
	return buf.String(), nil
}
