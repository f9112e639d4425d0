// Package ast defines the declaration tree produced by parsing an interface file.
//
// A Module is an ordered sequence of declarations. Order is significant: it is
// preserved through template instantiation and determines the order of the
// generated binding code.
package ast

import (
	"strings"
)

// Position is a location in the interface source, used for diagnostics.
type Position struct {
	Line   int
	Column int
}

// DeclKind identifies a declaration variant. The set is closed; every stage of
// the pipeline switches exhaustively over it.
type DeclKind int

const (
	KindNamespace DeclKind = iota
	KindClass
	KindFunction
	KindEnum
	KindTypedef
	KindForwardDecl
	KindInclude
)

func (k DeclKind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindEnum:
		return "enum"
	case KindTypedef:
		return "typedef"
	case KindForwardDecl:
		return "forward declaration"
	case KindInclude:
		return "include"
	default:
		return "unknown"
	}
}

// Decl is the closed set of declarations a Module or Namespace may hold.
type Decl interface {
	Kind() DeclKind
	DeclName() string
}

// TypeRef is a reference to a type: a name, an optional namespace path,
// optional bound template arguments and const/pointer/reference qualifiers.
// The interface language only describes types, so qualifiers are plain flags.
type TypeRef struct {
	Name      string
	Namespace []string
	Args      []TypeRef
	IsConst   bool
	IsPointer bool
	IsRef     bool
}

// Qualified returns the namespace-qualified name without template arguments.
func (t TypeRef) Qualified() string {
	if len(t.Namespace) == 0 {
		return t.Name
	}
	return strings.Join(t.Namespace, "::") + "::" + t.Name
}

// String renders the reference the way it appears in interface source.
func (t TypeRef) String() string {
	var b strings.Builder
	if t.IsConst {
		b.WriteString("const ")
	}
	b.WriteString(t.Qualified())
	if len(t.Args) > 0 {
		b.WriteString("<")
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(">")
	}
	if t.IsPointer {
		b.WriteString("*")
	}
	if t.IsRef {
		b.WriteString("&")
	}
	return b.String()
}

// Equal reports structural equality: name, namespace path and template
// arguments. Qualifiers do not participate in type identity.
func (t TypeRef) Equal(o TypeRef) bool {
	if t.Name != o.Name || len(t.Namespace) != len(o.Namespace) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Namespace {
		if t.Namespace[i] != o.Namespace[i] {
			return false
		}
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// IsVoid reports whether the reference names the void type.
func (t TypeRef) IsVoid() bool {
	return t.Name == "void" && len(t.Namespace) == 0 && len(t.Args) == 0
}

// TemplateParam is a single template parameter. A nil Allowed set marks an
// open parameter; a non-empty set restricts the parameter to those types.
type TemplateParam struct {
	Name    string
	Allowed []TypeRef
}

// TemplateParamList is the ordered parameter list of a generic declaration.
type TemplateParamList []TemplateParam

// Names returns the parameter names in order.
func (l TemplateParamList) Names() []string {
	names := make([]string, len(l))
	for i, p := range l {
		names[i] = p.Name
	}
	return names
}

// Closed reports whether every parameter carries an explicit allowed set.
func (l TemplateParamList) Closed() bool {
	if len(l) == 0 {
		return false
	}
	for _, p := range l {
		if len(p.Allowed) == 0 {
			return false
		}
	}
	return true
}

// Param is a function, method or constructor parameter. Default holds the
// literal text of a default argument, empty when none was declared.
type Param struct {
	Name    string
	Type    TypeRef
	Default string
}

// SignatureKey renders an ordered parameter list as the comma-joined list of
// parameter types. Together with a name it forms the overload identity of a
// declaration.
func SignatureKey(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Type.String()
	}
	return strings.Join(parts, ", ")
}

// Constructor is one constructor declaration of a class.
type Constructor struct {
	Params []Param
	Pos    Position
}

// Method is an instance or static method of a class.
type Method struct {
	Name     string
	Params   []Param
	Returns  TypeRef
	IsStatic bool
	IsConst  bool
	Pos      Position
}

// Operator is an operator overload bound to a class. Token is drawn from the
// fixed supported set ("+", "==", "[]", "()", "<<", ...).
type Operator struct {
	Token   string
	Params  []Param
	Returns TypeRef
	IsConst bool
	Pos     Position
}

// Property is a directly exposed data member.
type Property struct {
	Name string
	Type TypeRef
	Pos  Position
}

// Class is a class declaration. Base is nil for root classes; single
// inheritance only. TemplateParams is non-nil on generic classes and is
// consumed by the instantiator: a class that still carries template
// parameters must never reach the generator.
type Class struct {
	Name           string
	Base           *TypeRef
	TemplateParams TemplateParamList
	Constructors   []Constructor
	Methods        []Method
	Operators      []Operator
	Properties     []Property
	IsVirtual      bool
	Serializable   bool
	Pos            Position
}

func (c *Class) Kind() DeclKind   { return KindClass }
func (c *Class) DeclName() string { return c.Name }
func (c *Class) IsTemplate() bool { return len(c.TemplateParams) > 0 }

// Function is a free function at namespace or module scope.
type Function struct {
	Name           string
	Params         []Param
	Returns        TypeRef
	TemplateParams TemplateParamList
	Pos            Position
}

func (f *Function) Kind() DeclKind   { return KindFunction }
func (f *Function) DeclName() string { return f.Name }
func (f *Function) IsTemplate() bool { return len(f.TemplateParams) > 0 }

// Enum is an enumeration. Enumerator values are their ordinal positions,
// starting at zero.
type Enum struct {
	Name        string
	Enumerators []string
	Pos         Position
}

func (e *Enum) Kind() DeclKind   { return KindEnum }
func (e *Enum) DeclName() string { return e.Name }

// Typedef binds an alias to a type reference. A typedef whose right-hand side
// carries template arguments is an explicit instantiation request and is
// consumed by the instantiator.
type Typedef struct {
	Name string
	Type TypeRef
	Pos  Position
}

func (t *Typedef) Kind() DeclKind   { return KindTypedef }
func (t *Typedef) DeclName() string { return t.Name }

// IsInstantiation reports whether the typedef requests a template
// instantiation rather than declaring a plain alias.
func (t *Typedef) IsInstantiation() bool {
	return len(t.Type.Args) > 0
}

// ForwardDecl records a class declared elsewhere. Forward-declared classes are
// legal base classes but produce no binding themselves.
type ForwardDecl struct {
	Type      TypeRef
	IsVirtual bool
	Pos       Position
}

func (f *ForwardDecl) Kind() DeclKind   { return KindForwardDecl }
func (f *ForwardDecl) DeclName() string { return f.Type.Qualified() }

// Include is a header include directive carried through to generated output.
type Include struct {
	Path string
	Pos  Position
}

func (i *Include) Kind() DeclKind   { return KindInclude }
func (i *Include) DeclName() string { return i.Path }

// Namespace holds an ordered sequence of nested declarations. Namespaces nest
// to arbitrary depth.
type Namespace struct {
	Name  string
	Decls []Decl
	Pos   Position
}

func (n *Namespace) Kind() DeclKind   { return KindNamespace }
func (n *Namespace) DeclName() string { return n.Name }

// Module is the root of the declaration tree for one interface source.
type Module struct {
	Decls []Decl
}

// Includes returns the include directives of the module in declaration order.
func (m *Module) Includes() []*Include {
	var includes []*Include
	for _, d := range m.Decls {
		if inc, ok := d.(*Include); ok {
			includes = append(includes, inc)
		}
	}
	return includes
}
