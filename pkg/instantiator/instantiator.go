// Package instantiator rewrites a parsed Module in place so that no
// template-parameterized declaration remains.
//
// For every generic class or function it gathers the explicit typedef-style
// instantiation requests targeting it, or falls back to the cross product of
// the allowed sets when every parameter is closed, clones the generic
// declaration once per concrete argument tuple, substitutes the parameter
// names structurally through every type-bearing field, and splices the
// concrete declarations into the position the generic occupied. Running the
// instantiator on an already-concrete tree is a no-op.
package instantiator

import (
	"fmt"

	"idlwrap/pkg/ast"
)

// InstantiationError reports an invalid instantiation request: an unknown
// template, a wrong argument arity, or a concrete type outside a closed
// parameter's allowed set.
type InstantiationError struct {
	Decl   string
	Detail string
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("cannot instantiate %s: %s", e.Decl, e.Detail)
}

// Instantiate expands every generic declaration in the module. The tree is
// processed in pre-order so outer scopes resolve before nested ones.
func Instantiate(module *ast.Module) error {
	decls, err := instantiateScope(module.Decls)
	if err != nil {
		return err
	}
	module.Decls = decls
	return nil
}

// instantiateScope expands the generics of one scope and recurses into nested
// namespaces. Typedefs consumed as instantiation requests are removed.
func instantiateScope(decls []ast.Decl) ([]ast.Decl, error) {
	requests, consumed, err := collectRequests(decls)
	if err != nil {
		return nil, err
	}

	out := make([]ast.Decl, 0, len(decls))
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.Typedef:
			if consumed[decl] {
				continue
			}
			out = append(out, decl)

		case *ast.Class:
			if !decl.IsTemplate() {
				out = append(out, decl)
				continue
			}
			tuples, names, err := argumentTuples(decl.Name, decl.TemplateParams, requests[decl.Name])
			if err != nil {
				return nil, err
			}
			paramNames := decl.TemplateParams.Names()
			for i, tuple := range tuples {
				concrete := cloneClass(decl)
				concrete.Name = names[i]
				concrete.TemplateParams = nil
				substituteClass(concrete, bind(paramNames, tuple))
				out = append(out, concrete)
			}

		case *ast.Function:
			if !decl.IsTemplate() {
				out = append(out, decl)
				continue
			}
			tuples, names, err := argumentTuples(decl.Name, decl.TemplateParams, requests[decl.Name])
			if err != nil {
				return nil, err
			}
			paramNames := decl.TemplateParams.Names()
			for i, tuple := range tuples {
				concrete := cloneFunction(decl)
				concrete.Name = names[i]
				concrete.TemplateParams = nil
				substituteFunction(concrete, bind(paramNames, tuple))
				out = append(out, concrete)
			}

		case *ast.Namespace:
			nested, err := instantiateScope(decl.Decls)
			if err != nil {
				return nil, err
			}
			decl.Decls = nested
			out = append(out, decl)

		default:
			out = append(out, d)
		}
	}

	if err := checkFunctionOverloads(out); err != nil {
		return nil, err
	}
	return out, nil
}

// collectRequests maps each generic declaration in the scope to the ordered
// typedef requests that target it. A template-applied typedef naming neither
// a scope generic nor the built-in pair wrapper is an error.
func collectRequests(decls []ast.Decl) (map[string][]*ast.Typedef, map[*ast.Typedef]bool, error) {
	generics := make(map[string]bool)
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.Class:
			if decl.IsTemplate() {
				generics[decl.Name] = true
			}
		case *ast.Function:
			if decl.IsTemplate() {
				generics[decl.Name] = true
			}
		}
	}

	requests := make(map[string][]*ast.Typedef)
	consumed := make(map[*ast.Typedef]bool)
	for _, d := range decls {
		td, ok := d.(*ast.Typedef)
		if !ok || !td.IsInstantiation() {
			continue
		}
		if generics[td.Type.Name] {
			requests[td.Type.Name] = append(requests[td.Type.Name], td)
			consumed[td] = true
		} else if td.Type.Name != "pair" {
			return nil, nil, &InstantiationError{
				Decl:   td.Name,
				Detail: fmt.Sprintf("unknown template %q", td.Type.Name),
			}
		}
	}
	return requests, consumed, nil
}

// argumentTuples resolves the concrete argument tuples for one generic
// declaration, in request order, together with the concrete declaration
// names: the typedef alias when explicitly requested, the original name
// otherwise.
func argumentTuples(name string, params ast.TemplateParamList, requests []*ast.Typedef) ([][]ast.TypeRef, []string, error) {
	if len(requests) > 0 {
		tuples := make([][]ast.TypeRef, 0, len(requests))
		names := make([]string, 0, len(requests))
		for _, req := range requests {
			if len(req.Type.Args) != len(params) {
				return nil, nil, &InstantiationError{
					Decl: name,
					Detail: fmt.Sprintf("request %q supplies %d arguments, template takes %d",
						req.Name, len(req.Type.Args), len(params)),
				}
			}
			for i, arg := range req.Type.Args {
				if err := checkAllowed(name, params[i], arg); err != nil {
					return nil, nil, err
				}
			}
			tuples = append(tuples, req.Type.Args)
			names = append(names, req.Name)
		}
		return tuples, names, nil
	}

	if !params.Closed() {
		return nil, nil, &InstantiationError{
			Decl:   name,
			Detail: "open template has no instantiation request",
		}
	}

	// No explicit requests: take the cross product of the closed sets, first
	// parameter varying slowest.
	tuples := [][]ast.TypeRef{{}}
	for _, param := range params {
		var next [][]ast.TypeRef
		for _, tuple := range tuples {
			for _, allowed := range param.Allowed {
				extended := make([]ast.TypeRef, len(tuple), len(tuple)+1)
				copy(extended, tuple)
				next = append(next, append(extended, allowed))
			}
		}
		tuples = next
	}
	names := make([]string, len(tuples))
	for i := range names {
		names[i] = name
	}
	return tuples, names, nil
}

// checkAllowed verifies a requested argument against a closed parameter's set.
func checkAllowed(decl string, param ast.TemplateParam, arg ast.TypeRef) error {
	if len(param.Allowed) == 0 {
		return nil
	}
	for _, allowed := range param.Allowed {
		if allowed.Equal(arg) {
			return nil
		}
	}
	return &InstantiationError{
		Decl:   decl,
		Detail: fmt.Sprintf("type %s is not in the allowed set of parameter %s", arg.String(), param.Name),
	}
}

// checkFunctionOverloads rejects duplicate overload identities produced by
// expansion within one scope.
func checkFunctionOverloads(decls []ast.Decl) error {
	seen := make(map[string]bool)
	for _, d := range decls {
		fn, ok := d.(*ast.Function)
		if !ok {
			continue
		}
		key := fn.Name + "(" + ast.SignatureKey(fn.Params) + ")"
		if seen[key] {
			return &InstantiationError{
				Decl:   fn.Name,
				Detail: fmt.Sprintf("expansion produced duplicate signature %s", key),
			}
		}
		seen[key] = true
	}
	return nil
}

// bind pairs template parameter names with a concrete argument tuple.
func bind(names []string, tuple []ast.TypeRef) map[string]ast.TypeRef {
	bindings := make(map[string]ast.TypeRef, len(names))
	for i, name := range names {
		bindings[name] = tuple[i]
	}
	return bindings
}
