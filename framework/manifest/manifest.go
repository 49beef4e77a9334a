// Package manifest loads value bindings for an injector chain from YAML.
//
//	bindings:
//	  - type: greeting
//	    value: Hello World
//	  - type: db
//	    name: primary
//	    value: {host: localhost, port: 5432}
//	children:
//	  - label: request
//	    bindings:
//	      - type: greeting
//	        value: Hi
//
// A binding without a name key is unqualified; `name: ""` is the empty-string
// qualifier, a different key. Every children entry becomes a child injector of
// the node its parent document was applied to.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-injector/framework/injector"
)

// Binding is one value binding.
type Binding struct {
	Type  string  `yaml:"type"`
	Name  *string `yaml:"name"`
	Value any     `yaml:"value"`
}

// Document is the bindings of one injector plus its child documents.
type Document struct {
	Label    string     `yaml:"label"`
	Bindings []Binding  `yaml:"bindings"`
	Children []Document `yaml:"children"`
}

// Node is an injector created or populated by Apply.
type Node struct {
	Label    string
	Injector *injector.Injector
	Children []*Node
}

// ── Loading ───────────────────────────────────────────────────────────────────

// Load reads and validates the manifest at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a manifest. Unknown keys are rejected. An empty
// input is an empty document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// ── Applying ──────────────────────────────────────────────────────────────────

// Apply maps d's bindings on inj and creates one child injector per child
// document, recursively. d is validated first; an invalid document maps
// nothing.
func (d *Document) Apply(inj *injector.Injector) (*Node, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d.apply(inj), nil
}

func (d *Document) apply(inj *injector.Injector) *Node {
	for _, b := range d.Bindings {
		inj.Map(b.Type, b.names()...).ToValue(b.Value)
	}
	node := &Node{Label: d.Label, Injector: inj}
	for i := range d.Children {
		node.Children = append(node.Children, d.Children[i].apply(inj.CreateChildInjector()))
	}
	return node
}

func (b Binding) names() []string {
	if b.Name == nil {
		return nil
	}
	return []string{*b.Name}
}

// Find returns the first node in depth-first order carrying label.
func (n *Node) Find(label string) (*Node, bool) {
	if n.Label == label {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := c.Find(label); ok {
			return found, true
		}
	}
	return nil, false
}
