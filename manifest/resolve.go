package manifest

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"omibyte.io/bridge/ir"
	"omibyte.io/bridge/logger"
	"omibyte.io/bridge/parse"
)

// Module is a resolved manifest.
type Module struct {
	Prefix    string
	Types     map[string]TypeDecl
	Functions []*ir.ExternFn
}

// TypeNames returns the declared type names in sorted order.
func (m *Module) TypeNames() []string {
	names := maps.Keys(m.Types)
	slices.Sort(names)
	return names
}

func hostLang(name string) ir.HostLang {
	if name == "swift" {
		return ir.HostSwift
	}
	return ir.HostRust
}

// Resolve parses every signature, resolves owning types and checks the
// preconditions the generators rely on. All problems are reported together.
func (m *Manifest) Resolve(ctx context.Context) (*Module, error) {
	module := &Module{
		Prefix: m.Prefix,
		Types:  map[string]TypeDecl{},
	}

	var errs []error
	for _, block := range m.Blocks {
		for _, decl := range block.Types {
			if _, ok := module.Types[decl.Name]; ok {
				errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateType, decl.Name))
				continue
			}
			module.Types[decl.Name] = decl
		}
	}

	for _, block := range m.Blocks {
		host := hostLang(block.Host)
		for _, decl := range block.Functions {
			fn, fnErr := module.resolveFunc(ctx, block, decl, host)
			if fnErr != nil {
				errs = append(errs, fnErr)
				continue
			}

			logger.Debug("Resolved bridged function", "fn", fn.Name, "owner", fn.Owner, "host", fn.Host.String())
			module.Functions = append(module.Functions, fn)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	logger.Info("Resolved manifest", "types", module.TypeNames(), "functions", len(module.Functions))
	return module, nil
}

func (m *Module) resolveFunc(ctx context.Context, block Block, decl FuncDecl, host ir.HostLang) (*ir.ExternFn, error) {
	sig, err := parse.ParseSignature(ctx, decl.Sig)
	if err != nil {
		return nil, err
	}

	if err := checkRawPointers(sig); err != nil {
		return nil, err
	}

	fn := &ir.ExternFn{
		Signature:   sig,
		Owner:       decl.AssociatedTo,
		Initializer: decl.Init,
		Host:        host,
	}

	if recv, ok := sig.Receiver(); ok && len(fn.Owner) == 0 {
		switch {
		case recv.Type != nil:
			fn.Owner = recv.Type.Deref().Name()
		case len(block.Types) == 1:
			fn.Owner = block.Types[0].Name
		default:
			return nil, fmt.Errorf("%w: %s", ErrMissingOwner, sig.String())
		}
	}
	if fn.HasNamedSelf() && len(fn.Owner) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingOwner, sig.String())
	}

	if fn.Initializer {
		if len(fn.Owner) == 0 || !fn.Return.Equal(ir.Path(fn.Owner)) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidInitializer, sig.String())
		}
	}

	if err := m.checkOwnedArgs(fn); err != nil {
		return nil, err
	}
	return fn, nil
}

// checkOwnedArgs rejects opaque values passed by value unless their type
// opted in with owned_arg.
func (m *Module) checkOwnedArgs(fn *ir.ExternFn) error {
	var errs []error
	for _, param := range fn.Params {
		if param.Passing != ir.ByValue {
			continue
		}

		var name string
		switch {
		case param.IsReceiver():
			name = fn.Owner
		case ir.Classify(param.Type).IsBuiltin():
			continue
		default:
			name = param.Type.Name()
		}

		if decl, ok := m.Types[name]; !ok || !decl.OwnedArg.Allowed() {
			errs = append(errs, fmt.Errorf("%w: %s in %s", ErrOwnedOpaqueArg, name, fn.Signature.String()))
		}
	}
	return errors.Join(errs...)
}

// checkRawPointers rejects raw pointer parameters and returns. They have no
// lowering: a pointer is neither a built-in value nor an opaque handle.
func checkRawPointers(sig ir.Signature) error {
	var errs []error
	for _, param := range sig.Params {
		if param.Type == nil || param.Type.Deref().Kind != ir.TypePtr {
			continue
		}

		name := param.Name
		if param.IsReceiver() {
			name = "self"
		}
		errs = append(errs, fmt.Errorf("%w: raw pointer parameter %s in %s", parse.ErrUnsupported, name, sig.String()))
	}
	if sig.Return != nil && sig.Return.Deref().Kind == ir.TypePtr {
		errs = append(errs, fmt.Errorf("%w: raw pointer return in %s", parse.ErrUnsupported, sig.String()))
	}
	return errors.Join(errs...)
}
