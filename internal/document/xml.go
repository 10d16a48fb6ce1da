package document

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DecodeXML reads an XML document into the generic tree. Element children
// are grouped under their element name, repeated names become []any,
// attributes are stored under "@"+name, and character data under "#text".
// An element with no attributes and no children collapses to its text
// string. The returned node is an *Object mapping the root element name to
// its value, so the root is itself searchable.
func DecodeXML(r io.Reader) (any, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	root := NewObject()
	stack := []*frame{{obj: root}}

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			f := &frame{name: t.Name.Local, obj: NewObject()}
			for _, attr := range t.Attr {
				f.obj.Set("@"+attr.Name.Local, attr.Value)
			}
			stack = append(stack, f)
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				break
			}
			f := stack[len(stack)-1]
			if f.text != "" {
				f.text += " "
			}
			f.text += text
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("decode xml: unexpected end element %s", t.Name.Local)
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			appendChild(stack[len(stack)-1].obj, f.name, f.value())
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("decode xml: unclosed element")
	}
	return root, nil
}

type frame struct {
	name string
	obj  *Object
	text string
}

// value collapses a text-only element to its string; anything with
// attributes or children keeps the object shape with "#text" for its
// character data.
func (f *frame) value() any {
	if f.obj.Len() == 0 {
		return f.text
	}
	if f.text != "" {
		f.obj.Set("#text", f.text)
	}
	return f.obj
}

func appendChild(parent *Object, name string, child any) {
	existing, ok := parent.Get(name)
	if !ok {
		parent.Set(name, child)
		return
	}
	if arr, ok := existing.([]any); ok {
		parent.Set(name, append(arr, child))
		return
	}
	parent.Set(name, []any{existing, child})
}
