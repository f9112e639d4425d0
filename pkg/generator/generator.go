package generator

import (
	"fmt"
	"strings"

	"idlwrap/pkg/ast"
)

// Pybind emits pybind11 module registration code.
type Pybind struct{}

// NewPybind creates the pybind11 backend.
func NewPybind() *Pybind {
	return &Pybind{}
}

// Generate walks the concrete module in declaration order and substitutes the
// generated text into the template. It performs no file I/O.
func (g *Pybind) Generate(module *ast.Module, opts Options) (string, error) {
	for _, required := range []string{PlaceholderModuleName, PlaceholderWrappedModule} {
		if !strings.Contains(opts.Template, required) {
			return "", &GenerationError{Detail: fmt.Sprintf("template is missing the %s placeholder", required)}
		}
	}

	w := &emitter{
		holder:   "std::shared_ptr",
		ignore:   make(map[string]bool),
		allow:    make(map[string]bool),
		known:    make(map[string]string),
		filtered: len(opts.TopNamespaces) > 0,
	}
	if opts.UseBoost {
		w.holder = "boost::shared_ptr"
	}
	for _, name := range opts.IgnoreClasses {
		w.ignore[name] = true
	}
	for _, name := range opts.TopNamespaces {
		w.allow[name] = true
	}

	w.indexClasses(module.Decls, nil, true)

	var stmts []string
	if err := w.wrapScope(module.Decls, nil, "m_", true, &stmts); err != nil {
		return "", err
	}

	var includes []string
	w.collectIncludes(module.Decls, true, &includes)

	boost := ""
	if opts.UseBoost {
		boost = "#include <boost/smart_ptr/shared_ptr.hpp>\n"
	}

	out := strings.ReplaceAll(opts.Template, PlaceholderModuleName, opts.ModuleName)
	out = strings.ReplaceAll(out, PlaceholderWrappedModule, strings.Join(stmts, "\n"))
	out = strings.ReplaceAll(out, PlaceholderIncludes, strings.Join(includes, "\n"))
	out = strings.ReplaceAll(out, PlaceholderIncludeBoost, boost)
	return out, nil
}

// emitter carries per-run generation state. known maps bare class names to
// their qualified C++ names so base-class registrations can reference the
// generated binding identifier.
type emitter struct {
	holder   string
	ignore   map[string]bool
	allow    map[string]bool
	filtered bool
	known    map[string]string
}

// indexClasses registers every class that will produce a binding, plus
// forward declarations, which are legal base classes bound elsewhere.
func (w *emitter) indexClasses(decls []ast.Decl, path []string, top bool) {
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.Namespace:
			if top && w.filtered && !w.allow[decl.Name] {
				continue
			}
			w.indexClasses(decl.Decls, childPath(path, decl.Name), false)
		case *ast.Class:
			if w.ignore[decl.Name] {
				continue
			}
			if _, exists := w.known[decl.Name]; !exists {
				w.known[decl.Name] = qualify(path, decl.Name)
			}
		case *ast.ForwardDecl:
			name := decl.Type.Name
			if w.ignore[name] {
				continue
			}
			if _, exists := w.known[name]; !exists {
				w.known[name] = decl.Type.Qualified()
			}
		}
	}
}

// wrapScope emits the statements of one scope in declaration order.
func (w *emitter) wrapScope(decls []ast.Decl, path []string, modVar string, top bool, stmts *[]string) error {
	emittedFuncs := make(map[string]bool)

	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.Include, *ast.Typedef, *ast.ForwardDecl:
			// no binding output

		case *ast.Namespace:
			if top && w.filtered && !w.allow[decl.Name] {
				continue
			}
			subVar := childVar(modVar, decl.Name)
			*stmts = append(*stmts, fmt.Sprintf("    pybind11::module %s = %s.def_submodule(\"%s\", \"%s submodule\");",
				subVar, modVar, decl.Name, decl.Name))
			if err := w.wrapScope(decl.Decls, childPath(path, decl.Name), subVar, false, stmts); err != nil {
				return err
			}

		case *ast.Class:
			if w.ignore[decl.Name] {
				continue
			}
			stmt, err := w.wrapClass(decl, path, modVar)
			if err != nil {
				return err
			}
			*stmts = append(*stmts, stmt)

		case *ast.Enum:
			*stmts = append(*stmts, w.wrapEnum(decl, path, modVar))

		case *ast.Function:
			if emittedFuncs[decl.Name] {
				continue
			}
			emittedFuncs[decl.Name] = true
			var group []*ast.Function
			for _, other := range decls {
				if fn, ok := other.(*ast.Function); ok && fn.Name == decl.Name {
					group = append(group, fn)
				}
			}
			lines, err := w.wrapFunctions(group, path, modVar)
			if err != nil {
				return err
			}
			*stmts = append(*stmts, lines...)
		}
	}
	return nil
}

// wrapClass emits one class registration with its chained member bindings.
func (w *emitter) wrapClass(c *ast.Class, path []string, modVar string) (string, error) {
	if c.IsTemplate() {
		return "", &GenerationError{Detail: fmt.Sprintf("class %s still carries template parameters", c.Name)}
	}
	qual := qualify(path, c.Name)

	classArgs := []string{qual}
	if c.Base != nil {
		baseQual, err := w.resolveBase(c, qual)
		if err != nil {
			return "", err
		}
		classArgs = append(classArgs, baseQual)
	}
	classArgs = append(classArgs, w.holder+"<"+qual+">")

	lines := []string{fmt.Sprintf("    py::class_<%s>(%s, \"%s\")", strings.Join(classArgs, ", "), modVar, c.Name)}

	for _, ctor := range c.Constructors {
		lines = append(lines, fmt.Sprintf("        .def(py::init<%s>()%s)", paramTypes(ctor.Params), argList(ctor.Params)))
	}

	for _, group := range groupMethods(c.Methods) {
		overloaded := len(group) > 1
		for _, m := range group {
			lines = append(lines, methodLine(qual, m, overloaded))
		}
	}

	for _, op := range c.Operators {
		line, err := operatorLine(qual, op)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	for _, prop := range c.Properties {
		lines = append(lines, fmt.Sprintf("        .def_readwrite(\"%s\", &%s::%s)", prop.Name, qual, prop.Name))
	}

	if c.Serializable {
		lines = append(lines,
			fmt.Sprintf("        .def(\"serialize\", [](const %s& self) { std::ostringstream os; boost::archive::text_oarchive ar(os); ar << self; return os.str(); })", qual),
			fmt.Sprintf("        .def(\"deserialize\", [](%s& self, const std::string& serialized) { std::istringstream is(serialized); boost::archive::text_iarchive ar(is); ar >> self; })", qual))
	}

	lines[len(lines)-1] += ";"
	return strings.Join(lines, "\n"), nil
}

// resolveBase returns the generated binding identifier of a class's base.
// Inheritance is expressed through the registration call, so an ignored or
// undeclared base cannot be wired and is an error.
func (w *emitter) resolveBase(c *ast.Class, qual string) (string, error) {
	base := *c.Base
	if w.ignore[base.Name] {
		return "", &GenerationError{Detail: fmt.Sprintf("class %s derives from ignored class %s", qual, base.Name)}
	}
	known, ok := w.known[base.Name]
	if !ok {
		return "", &GenerationError{Detail: fmt.Sprintf("class %s derives from undeclared class %s", qual, base.Qualified())}
	}
	if len(base.Namespace) > 0 {
		return base.Qualified(), nil
	}
	return known, nil
}

// methodLine emits one .def or .def_static entry. A group with a single
// declaration binds the plain member pointer for readability; overload sets
// disambiguate with py::overload_cast.
func methodLine(qual string, m ast.Method, overloaded bool) string {
	def := ".def"
	if m.IsStatic {
		def = ".def_static"
	}
	target := fmt.Sprintf("&%s::%s", qual, m.Name)
	if overloaded {
		constTag := ""
		if m.IsConst {
			constTag = ", py::const_"
		}
		target = fmt.Sprintf("py::overload_cast<%s>(&%s::%s%s)", paramTypes(m.Params), qual, m.Name, constTag)
	}
	return fmt.Sprintf("        %s(\"%s\", %s%s)", def, m.Name, target, argList(m.Params))
}

// operatorLine emits the special-method binding for one operator overload.
// Stream output has no member address to take and renders through an
// ostringstream lambda instead.
func operatorLine(qual string, op ast.Operator) (string, error) {
	special, ok := pythonSpecialName(op.Token)
	if !ok {
		return "", &GenerationError{Detail: fmt.Sprintf("operator%s on %s has no special-method mapping", op.Token, qual)}
	}
	if op.Token == "<<" {
		return fmt.Sprintf("        .def(\"__repr__\", [](const %s& self) { std::ostringstream os; os << self; return os.str(); })", qual), nil
	}
	return fmt.Sprintf("        .def(\"%s\", &%s::operator%s%s)", special, qual, op.Token, argList(op.Params)), nil
}

// wrapEnum emits an enum registration listing enumerators in declaration
// order; values are implied by position.
func (w *emitter) wrapEnum(e *ast.Enum, path []string, modVar string) string {
	qual := qualify(path, e.Name)
	lines := []string{fmt.Sprintf("    py::enum_<%s>(%s, \"%s\")", qual, modVar, e.Name)}
	for _, enumerator := range e.Enumerators {
		lines = append(lines, fmt.Sprintf("        .value(\"%s\", %s::%s)", enumerator, qual, enumerator))
	}
	lines[len(lines)-1] += ";"
	return strings.Join(lines, "\n")
}

// wrapFunctions emits one def per declared signature of a free-function
// overload group, in declaration order.
func (w *emitter) wrapFunctions(group []*ast.Function, path []string, modVar string) ([]string, error) {
	overloaded := len(group) > 1
	var lines []string
	for _, fn := range group {
		if fn.IsTemplate() {
			return nil, &GenerationError{Detail: fmt.Sprintf("function %s still carries template parameters", fn.Name)}
		}
		qual := qualify(path, fn.Name)
		target := "&" + qual
		if overloaded {
			target = fmt.Sprintf("py::overload_cast<%s>(&%s)", paramTypes(fn.Params), qual)
		}
		lines = append(lines, fmt.Sprintf("    %s.def(\"%s\", %s%s);", modVar, fn.Name, target, argList(fn.Params)))
	}
	return lines, nil
}

// collectIncludes gathers include directives from every exposed scope in
// declaration order.
func (w *emitter) collectIncludes(decls []ast.Decl, top bool, out *[]string) {
	for _, d := range decls {
		switch decl := d.(type) {
		case *ast.Include:
			*out = append(*out, "#include <"+decl.Path+">")
		case *ast.Namespace:
			if top && w.filtered && !w.allow[decl.Name] {
				continue
			}
			w.collectIncludes(decl.Decls, false, out)
		}
	}
}

// groupMethods groups methods by name, groups ordered by first declaration.
func groupMethods(methods []ast.Method) [][]ast.Method {
	var order []string
	byName := make(map[string][]ast.Method)
	for _, m := range methods {
		if _, seen := byName[m.Name]; !seen {
			order = append(order, m.Name)
		}
		byName[m.Name] = append(byName[m.Name], m)
	}
	groups := make([][]ast.Method, len(order))
	for i, name := range order {
		groups[i] = byName[name]
	}
	return groups
}

// paramTypes renders an ordered parameter list as C++ types.
func paramTypes(params []ast.Param) string {
	types := make([]string, len(params))
	for i, p := range params {
		types[i] = cppType(p.Type)
	}
	return strings.Join(types, ", ")
}

// argList renders the trailing py::arg entries for a parameter list,
// carrying default-argument literals through verbatim.
func argList(params []ast.Param) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString(fmt.Sprintf(", py::arg(\"%s\")", p.Name))
		if p.Default != "" {
			b.WriteString(" = " + p.Default)
		}
	}
	return b.String()
}

// cppType renders a type reference as C++ source text.
func cppType(t ast.TypeRef) string {
	var b strings.Builder
	if t.IsConst {
		b.WriteString("const ")
	}
	b.WriteString(cppBase(t))
	if t.IsPointer {
		b.WriteString("*")
	} else if t.IsRef {
		b.WriteString("&")
	}
	return b.String()
}

// cppBase maps the built-in wrappers to their standard-library spellings and
// renders template arguments recursively.
func cppBase(t ast.TypeRef) string {
	name := t.Qualified()
	if len(t.Namespace) == 0 {
		switch t.Name {
		case "pair":
			name = "std::pair"
		case "string":
			name = "std::string"
		}
	}
	if len(t.Args) == 0 {
		return name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = cppType(a)
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

func qualify(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, "::") + "::" + name
}

func childPath(path []string, name string) []string {
	child := make([]string, 0, len(path)+1)
	child = append(child, path...)
	return append(child, name)
}

func childVar(parent, name string) string {
	if parent == "m_" {
		return "m_" + name
	}
	return parent + "_" + name
}
