// Package parse turns source-language signatures and type expressions into
// their ir representation using the tree-sitter Rust grammar.
package parse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"omibyte.io/bridge/ir"
)

// ParseSignature parses a single function signature such as
//
//	fn buzz(self: &Foo, x: u32) -> u8;
//
// The trailing semicolon is optional.
func ParseSignature(ctx context.Context, text string) (ir.Signature, error) {
	src := []byte(terminate(text))
	root, err := parseSource(ctx, src)
	if err != nil {
		return ir.Signature{}, err
	}

	item := findChild(root, "function_signature_item")
	if item == nil {
		return ir.Signature{}, fmt.Errorf("%w: expected a function signature: %q", ErrSyntax, text)
	}

	p := &sigParser{src: src}
	return p.signature(item)
}

// ParseType parses a single type expression such as `&'a mut [u8]`.
func ParseType(ctx context.Context, text string) (*ir.Type, error) {
	src := []byte("type __T = " + strings.TrimSpace(text) + ";")
	root, err := parseSource(ctx, src)
	if err != nil {
		return nil, err
	}

	item := findChild(root, "type_item")
	if item == nil {
		return nil, fmt.Errorf("%w: expected a type: %q", ErrSyntax, text)
	}

	p := &sigParser{src: src}
	return p.typ(item.ChildByFieldName("type"))
}

func terminate(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	return text
}

func parseSource(ctx context.Context, src []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, string(src))
	}
	return root, nil
}

func findChild(node *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == kind {
			return child
		}
	}
	return nil
}

type sigParser struct {
	src []byte
}

func (p *sigParser) content(node *sitter.Node) string {
	return node.Content(p.src)
}

func (p *sigParser) signature(item *sitter.Node) (ir.Signature, error) {
	var sig ir.Signature
	sig.Name = p.content(item.ChildByFieldName("name"))

	if params := item.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			child := params.NamedChild(i)
			switch child.Type() {
			case "attribute_item":
				continue
			case "self_parameter":
				if len(sig.Params) > 0 {
					return ir.Signature{}, fmt.Errorf("%w: receiver must be the first parameter of %s", ErrSyntax, sig.Name)
				}
				sig.Params = append(sig.Params, p.selfParam(child))
			case "parameter":
				param, err := p.param(child, len(sig.Params) == 0)
				if err != nil {
					return ir.Signature{}, err
				}
				sig.Params = append(sig.Params, param)
			default:
				return ir.Signature{}, fmt.Errorf("%w: parameter %q of %s", ErrUnsupported, p.content(child), sig.Name)
			}
		}
	}

	if ret := item.ChildByFieldName("return_type"); ret != nil {
		ty, err := p.typ(ret)
		if err != nil {
			return ir.Signature{}, err
		}
		sig.Return = ty
	}
	return sig, nil
}

// selfParam handles `self`, `&self`, `&mut self` and `&'a self`.
func (p *sigParser) selfParam(node *sitter.Node) ir.Param {
	var ref, mutable bool
	var lifetime string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "&":
			ref = true
		case "lifetime":
			lifetime = strings.TrimPrefix(p.content(child), "'")
		case "mutable_specifier":
			mutable = true
		}
	}

	passing := ir.ByValue
	if ref {
		passing = ir.ByRef
		if mutable {
			passing = ir.ByRefMut
		}
	}

	recv := ir.Receiver(passing)
	recv.Lifetime = lifetime
	return recv
}

func (p *sigParser) param(node *sitter.Node, first bool) (ir.Param, error) {
	pattern := node.ChildByFieldName("pattern")
	if pattern == nil {
		return ir.Param{}, fmt.Errorf("%w: parameter %q", ErrSyntax, p.content(node))
	}

	name := p.content(pattern)
	switch pattern.Type() {
	case "identifier", "self":
	default:
		return ir.Param{}, fmt.Errorf("%w: pattern %q", ErrUnsupported, name)
	}

	ty, err := p.typ(node.ChildByFieldName("type"))
	if err != nil {
		return ir.Param{}, err
	}
	if ty == nil {
		return ir.Param{}, fmt.Errorf("%w: unit parameter %q", ErrUnsupported, name)
	}

	if name == "self" && first {
		return ir.TypedReceiver(ty), nil
	}
	return ir.Named(name, ty), nil
}

// typ converts a type node. The unit type converts to nil.
func (p *sigParser) typ(node *sitter.Node) (*ir.Type, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: missing type", ErrSyntax)
	}

	switch node.Type() {
	case "unit_type":
		return nil, nil
	case "reference_type":
		elem, err := p.elem(node, "type")
		if err != nil {
			return nil, err
		}

		ty := ir.Ref(elem)
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			switch child.Type() {
			case "lifetime":
				ty = ty.WithLifetime(p.content(child))
			case "mutable_specifier":
				ty.Mutable = true
			}
		}
		return ty, nil
	case "array_type":
		if node.ChildByFieldName("length") != nil {
			return nil, fmt.Errorf("%w: fixed-size array %q", ErrUnsupported, p.content(node))
		}
		elem, err := p.elem(node, "element")
		if err != nil {
			return nil, err
		}
		return ir.Slice(elem), nil
	case "pointer_type":
		elem, err := p.elem(node, "type")
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(node.ChildCount()); i++ {
			if node.Child(i).Type() == "mutable_specifier" {
				return ir.MutPtr(elem), nil
			}
		}
		return ir.ConstPtr(elem), nil
	default:
		// Paths, generics and anything else are kept as written and classify
		// as opaque unless they name a primitive.
		return ir.Path(p.content(node)), nil
	}
}

func (p *sigParser) elem(node *sitter.Node, field string) (*ir.Type, error) {
	elem, err := p.typ(node.ChildByFieldName(field))
	if err != nil {
		return nil, err
	}
	if elem == nil {
		return nil, fmt.Errorf("%w: unit element in %q", ErrUnsupported, p.content(node))
	}
	return elem, nil
}
