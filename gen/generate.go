package gen

import (
	"context"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"omibyte.io/bridge/ir"
	"omibyte.io/bridge/logger"
)

// Fragment is everything generated for a single bridged function.
type Fragment struct {
	Fn     *ir.ExternFn
	Symbol SymbolInfo
	Rust   string
	Header string
}

type Output struct {
	Fragments []Fragment
	Includes  []string
	Symbols   *SymbolInfoStore
}

// Render generates the Rust and C fragments of one function.
func Render(fn *ir.ExternFn, opts Options) (Fragment, error) {
	rust, err := RenderRust(fn, opts)
	if err != nil {
		return Fragment{}, err
	}

	return Fragment{
		Fn: fn,
		Symbol: SymbolInfo{
			LinkName: fn.LinkName(opts.Namer),
			Ident:    fn.PrefixedName(opts.Namer),
			Owner:    fn.Owner,
			Host:     fn.Host,
			Exported: fn.Host == ir.WrapperHost,
		},
		Rust:   rust,
		Header: HeaderDecl(fn, opts.Namer),
	}, nil
}

// Generate renders every function. At most opts.Jobs functions are rendered
// concurrently and the fragments keep the order of fns.
func Generate(ctx context.Context, fns []*ir.ExternFn, opts Options) (*Output, error) {
	out := &Output{
		Fragments: make([]Fragment, len(fns)),
		Symbols:   NewSymbolInfoStore(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())

	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			frag, err := Render(fn, opts)
			if err != nil {
				return err
			}
			if err := out.Symbols.Register(frag.Symbol); err != nil {
				return err
			}

			logger.Debug("Rendered bridged function", "link", frag.Symbol.LinkName, "host", fn.Host)
			out.Fragments[i] = frag
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, frag := range out.Fragments {
		for _, include := range HeaderIncludes(frag.Fn) {
			if !slices.Contains(out.Includes, include) {
				out.Includes = append(out.Includes, include)
			}
		}
	}
	slices.Sort(out.Includes)

	return out, nil
}

// RustSource joins the Rust fragments into one source file.
func (o *Output) RustSource() string {
	parts := make([]string, len(o.Fragments))
	for i, frag := range o.Fragments {
		parts[i] = frag.Rust
	}
	return strings.Join(parts, "\n")
}

// HeaderSource renders the C header with its includes followed by one
// declaration per function.
func (o *Output) HeaderSource() string {
	var b strings.Builder
	for _, include := range o.Includes {
		b.WriteString("#include <" + include + ">\n")
	}
	if len(o.Includes) > 0 {
		b.WriteString("\n")
	}
	for _, frag := range o.Fragments {
		b.WriteString(frag.Header + "\n")
	}
	return b.String()
}
