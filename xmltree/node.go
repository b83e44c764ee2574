// Package xmltree defines read-only capability set of parsed XML element tree
// used by extractors and its implementation on top of etree DOM.
package xmltree

import (
	"github.com/beevik/etree"
)

// Attr is a single element attribute.
type Attr struct {
	Key   string
	Value string
}

// Node is a read-only view of XML element. Paths are slash separated element
// names relative to the node, "*" matches any element.
type Node interface {
	Tag() string
	// Attrs returns element attributes in document order, namespace
	// declarations are not included.
	Attrs() []Attr
	Attr(name string) (string, bool)
	Children() []Node
	// Find returns first element matching path or nil.
	Find(path string) Node
	FindAll(path string) []Node
	// Descendants returns all elements with requested tag below the node in
	// document order.
	Descendants(tag string) []Node
	Text() string
}

// Element implements Node over etree element.
type Element struct {
	el *etree.Element
}

// Wrap returns Node for etree element, nil for nil element.
func Wrap(el *etree.Element) Node {
	if el == nil {
		return nil
	}
	return &Element{el: el}
}

func (e *Element) Tag() string {
	return e.el.Tag
}

func (e *Element) Attrs() []Attr {
	attrs := make([]Attr, 0, len(e.el.Attr))
	for _, a := range e.el.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		attrs = append(attrs, Attr{Key: a.Key, Value: a.Value})
	}
	return attrs
}

func (e *Element) Attr(name string) (string, bool) {
	if a := e.el.SelectAttr(name); a != nil {
		return a.Value, true
	}
	return "", false
}

func (e *Element) Children() []Node {
	return wrapAll(e.el.ChildElements())
}

func (e *Element) Find(path string) Node {
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil
	}
	return Wrap(e.el.FindElementPath(p))
}

func (e *Element) FindAll(path string) []Node {
	p, err := etree.CompilePath(path)
	if err != nil {
		return nil
	}
	return wrapAll(e.el.FindElementsPath(p))
}

func (e *Element) Descendants(tag string) []Node {
	var out []Node
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Tag == tag {
				out = append(out, &Element{el: child})
			}
			walk(child)
		}
	}
	walk(e.el)
	return out
}

func (e *Element) Text() string {
	return e.el.Text()
}

func wrapAll(els []*etree.Element) []Node {
	nodes := make([]Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &Element{el: el})
	}
	return nodes
}
