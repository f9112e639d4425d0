package instantiator

import (
	"idlwrap/pkg/ast"
)

// Substitute returns t with every occurrence of a bound template parameter
// name replaced by its concrete binding. Matching is structural: a reference
// is a parameter occurrence when its bare name equals a binding key, and
// substitution recurses into nested one-level generic arguments. Qualifiers
// declared at the occurrence are kept on the result. The input is never
// mutated.
func Substitute(t ast.TypeRef, bindings map[string]ast.TypeRef) ast.TypeRef {
	if len(t.Namespace) == 0 && len(t.Args) == 0 {
		if bound, ok := bindings[t.Name]; ok {
			out := bound
			out.Args = cloneTypeRefs(bound.Args)
			out.IsConst = t.IsConst || bound.IsConst
			out.IsPointer = t.IsPointer || bound.IsPointer
			out.IsRef = t.IsRef || bound.IsRef
			return out
		}
	}

	out := t
	if len(t.Args) > 0 {
		out.Args = make([]ast.TypeRef, len(t.Args))
		for i, arg := range t.Args {
			out.Args[i] = Substitute(arg, bindings)
		}
	}
	return out
}

// substituteClass rewrites every type-bearing field of a cloned class:
// base-class reference, constructor and method parameters, return types,
// operator types and property types.
func substituteClass(c *ast.Class, bindings map[string]ast.TypeRef) {
	if c.Base != nil {
		base := Substitute(*c.Base, bindings)
		c.Base = &base
	}
	for i := range c.Constructors {
		substituteParams(c.Constructors[i].Params, bindings)
	}
	for i := range c.Methods {
		substituteParams(c.Methods[i].Params, bindings)
		c.Methods[i].Returns = Substitute(c.Methods[i].Returns, bindings)
	}
	for i := range c.Operators {
		substituteParams(c.Operators[i].Params, bindings)
		c.Operators[i].Returns = Substitute(c.Operators[i].Returns, bindings)
	}
	for i := range c.Properties {
		c.Properties[i].Type = Substitute(c.Properties[i].Type, bindings)
	}
}

// substituteFunction rewrites the parameters and return type of a cloned
// free function.
func substituteFunction(f *ast.Function, bindings map[string]ast.TypeRef) {
	substituteParams(f.Params, bindings)
	f.Returns = Substitute(f.Returns, bindings)
}

func substituteParams(params []ast.Param, bindings map[string]ast.TypeRef) {
	for i := range params {
		params[i].Type = Substitute(params[i].Type, bindings)
	}
}

// cloneClass deep-copies a class declaration so substitution cannot alias the
// generic original.
func cloneClass(c *ast.Class) *ast.Class {
	out := &ast.Class{
		Name:         c.Name,
		IsVirtual:    c.IsVirtual,
		Serializable: c.Serializable,
		Pos:          c.Pos,
	}
	if c.Base != nil {
		base := *c.Base
		base.Args = cloneTypeRefs(c.Base.Args)
		out.Base = &base
	}
	out.Constructors = make([]ast.Constructor, len(c.Constructors))
	for i, ctor := range c.Constructors {
		out.Constructors[i] = ast.Constructor{Params: cloneParams(ctor.Params), Pos: ctor.Pos}
	}
	out.Methods = make([]ast.Method, len(c.Methods))
	for i, m := range c.Methods {
		out.Methods[i] = m
		out.Methods[i].Params = cloneParams(m.Params)
		out.Methods[i].Returns.Args = cloneTypeRefs(m.Returns.Args)
	}
	out.Operators = make([]ast.Operator, len(c.Operators))
	for i, op := range c.Operators {
		out.Operators[i] = op
		out.Operators[i].Params = cloneParams(op.Params)
		out.Operators[i].Returns.Args = cloneTypeRefs(op.Returns.Args)
	}
	out.Properties = make([]ast.Property, len(c.Properties))
	for i, prop := range c.Properties {
		out.Properties[i] = prop
		out.Properties[i].Type.Args = cloneTypeRefs(prop.Type.Args)
	}
	return out
}

// cloneFunction deep-copies a free function declaration.
func cloneFunction(f *ast.Function) *ast.Function {
	out := &ast.Function{
		Name:    f.Name,
		Returns: f.Returns,
		Pos:     f.Pos,
	}
	out.Params = cloneParams(f.Params)
	out.Returns.Args = cloneTypeRefs(f.Returns.Args)
	return out
}

func cloneParams(params []ast.Param) []ast.Param {
	out := make([]ast.Param, len(params))
	for i, p := range params {
		out[i] = p
		out[i].Type.Args = cloneTypeRefs(p.Type.Args)
	}
	return out
}

func cloneTypeRefs(refs []ast.TypeRef) []ast.TypeRef {
	if refs == nil {
		return nil
	}
	out := make([]ast.TypeRef, len(refs))
	for i, r := range refs {
		out[i] = r
		out[i].Args = cloneTypeRefs(r.Args)
	}
	return out
}
