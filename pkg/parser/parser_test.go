package parser

import (
	"strings"
	"testing"

	"idlwrap/pkg/ast"
)

func TestBasicNamespaceParsing(t *testing.T) {
	content := `namespace gtsam {
class Point2 {
  Point2();
  double x() const;
  double y() const;
};
}`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(module.Decls) != 1 {
		t.Fatalf("Expected 1 top-level declaration, got %d", len(module.Decls))
	}

	ns, ok := module.Decls[0].(*ast.Namespace)
	if !ok || ns.Name != "gtsam" {
		t.Fatalf("Expected namespace gtsam, got %s %s", module.Decls[0].Kind(), module.Decls[0].DeclName())
	}

	if len(ns.Decls) != 1 {
		t.Fatalf("Expected 1 declaration in namespace, got %d", len(ns.Decls))
	}

	cls, ok := ns.Decls[0].(*ast.Class)
	if !ok || cls.Name != "Point2" {
		t.Fatalf("Expected class Point2, got %s %s", ns.Decls[0].Kind(), ns.Decls[0].DeclName())
	}
	if len(cls.Constructors) != 1 {
		t.Errorf("Expected 1 constructor, got %d", len(cls.Constructors))
	}
	if len(cls.Methods) != 2 {
		t.Errorf("Expected 2 methods, got %d", len(cls.Methods))
	}
	if !cls.Methods[0].IsConst {
		t.Errorf("Expected method x to be const")
	}
}

func TestClassMembers(t *testing.T) {
	content := `class Pose2 {
  Pose2();
  Pose2(double x, double y, double theta);
  static gtsam::Pose2 Identity();
  double x() const;
  gtsam::Pose2 compose(const gtsam::Pose2& other) const;
  double theta;
};`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	cls := module.Decls[0].(*ast.Class)

	if len(cls.Constructors) != 2 {
		t.Fatalf("Expected 2 constructors, got %d", len(cls.Constructors))
	}
	if len(cls.Constructors[1].Params) != 3 {
		t.Errorf("Expected 3 constructor parameters, got %d", len(cls.Constructors[1].Params))
	}

	if len(cls.Methods) != 3 {
		t.Fatalf("Expected 3 methods, got %d", len(cls.Methods))
	}
	if cls.Methods[0].Name != "Identity" || !cls.Methods[0].IsStatic {
		t.Errorf("Expected static method Identity, got %s (static=%v)", cls.Methods[0].Name, cls.Methods[0].IsStatic)
	}

	compose := cls.Methods[2]
	if compose.Name != "compose" {
		t.Fatalf("Expected method compose, got %s", compose.Name)
	}
	param := compose.Params[0].Type
	if !param.IsConst || !param.IsRef || param.Name != "Pose2" || len(param.Namespace) != 1 || param.Namespace[0] != "gtsam" {
		t.Errorf("Expected parameter type const gtsam::Pose2&, got %s", param.String())
	}

	if len(cls.Properties) != 1 || cls.Properties[0].Name != "theta" {
		t.Errorf("Expected property theta, got %d properties", len(cls.Properties))
	}
}

func TestSerializeMarksClass(t *testing.T) {
	content := `class Point3 {
  Point3();
  void serialize() const;
};`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	cls := module.Decls[0].(*ast.Class)
	if !cls.Serializable {
		t.Errorf("Expected class to be marked serializable")
	}
	if len(cls.Methods) != 0 {
		t.Errorf("Expected serialize not to be bound as a method, got %d methods", len(cls.Methods))
	}
}

func TestOperatorOverloads(t *testing.T) {
	content := `class Rot2 {
  gtsam::Rot2 operator+(const gtsam::Rot2& other) const;
  bool operator==(const gtsam::Rot2& other) const;
  double operator[](int i) const;
  double operator()(int i, int j) const;
};`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	cls := module.Decls[0].(*ast.Class)
	if len(cls.Operators) != 4 {
		t.Fatalf("Expected 4 operators, got %d", len(cls.Operators))
	}

	expected := []string{"+", "==", "[]", "()"}
	for i, token := range expected {
		if cls.Operators[i].Token != token {
			t.Errorf("Operator %d: expected token %q, got %q", i, token, cls.Operators[i].Token)
		}
		if !cls.Operators[i].IsConst {
			t.Errorf("Operator %d: expected const", i)
		}
	}
	if len(cls.Operators[3].Params) != 2 {
		t.Errorf("Expected 2 parameters on operator(), got %d", len(cls.Operators[3].Params))
	}
}

func TestInheritance(t *testing.T) {
	content := `namespace gtsam {
virtual class Base {
  Base();
};
virtual class Derived : gtsam::Base {
  Derived();
};
}`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	ns := module.Decls[0].(*ast.Namespace)
	derived := ns.Decls[1].(*ast.Class)
	if !derived.IsVirtual {
		t.Errorf("Expected virtual class")
	}
	if derived.Base == nil {
		t.Fatalf("Expected a base class")
	}
	if derived.Base.Qualified() != "gtsam::Base" {
		t.Errorf("Expected base gtsam::Base, got %s", derived.Base.Qualified())
	}
}

func TestForwardDeclaration(t *testing.T) {
	content := `virtual class gtsam::Value;
class KeySet;`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	fwd := module.Decls[0].(*ast.ForwardDecl)
	if !fwd.IsVirtual {
		t.Errorf("Expected virtual forward declaration")
	}
	if fwd.Type.Qualified() != "gtsam::Value" {
		t.Errorf("Expected gtsam::Value, got %s", fwd.Type.Qualified())
	}

	plain := module.Decls[1].(*ast.ForwardDecl)
	if plain.Type.Name != "KeySet" || len(plain.Type.Namespace) != 0 {
		t.Errorf("Expected unqualified KeySet, got %s", plain.Type.Qualified())
	}
}

func TestTemplateClass(t *testing.T) {
	content := `template<T = {gtsam::Point2, gtsam::Point3}>
virtual class PriorFactor {
  PriorFactor(const T& prior);
  T prior() const;
};`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	cls := module.Decls[0].(*ast.Class)
	if !cls.IsTemplate() {
		t.Fatalf("Expected a template class")
	}
	if len(cls.TemplateParams) != 1 || cls.TemplateParams[0].Name != "T" {
		t.Fatalf("Expected 1 template parameter T, got %d", len(cls.TemplateParams))
	}
	if len(cls.TemplateParams[0].Allowed) != 2 {
		t.Errorf("Expected 2 allowed types, got %d", len(cls.TemplateParams[0].Allowed))
	}
	if !cls.TemplateParams.Closed() {
		t.Errorf("Expected a closed template parameter list")
	}
}

func TestOpenTemplateAndRequest(t *testing.T) {
	content := `template<T>
class Container {
  T get(int i) const;
};
typedef Container<gtsam::Point2> ContainerPoint2;`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	cls := module.Decls[0].(*ast.Class)
	if cls.TemplateParams.Closed() {
		t.Errorf("Expected an open template parameter list")
	}

	td := module.Decls[1].(*ast.Typedef)
	if !td.IsInstantiation() {
		t.Errorf("Expected the typedef to be an instantiation request")
	}
	if td.Name != "ContainerPoint2" || td.Type.Name != "Container" {
		t.Errorf("Expected ContainerPoint2 = Container<...>, got %s = %s", td.Name, td.Type.Name)
	}
}

func TestGlobalFunctions(t *testing.T) {
	content := `namespace gtsam {
gtsam::Point3 triangulate(const gtsam::Pose3& pose, const gtsam::Point2& measured);
gtsam::Point3 triangulate(const gtsam::Pose3& pose);
double norm(const gtsam::Point3& p);
}`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	ns := module.Decls[0].(*ast.Namespace)
	if len(ns.Decls) != 3 {
		t.Fatalf("Expected 3 functions, got %d", len(ns.Decls))
	}
	fn := ns.Decls[0].(*ast.Function)
	if fn.Name != "triangulate" || len(fn.Params) != 2 {
		t.Errorf("Expected triangulate with 2 parameters, got %s with %d", fn.Name, len(fn.Params))
	}
}

func TestEnumParsing(t *testing.T) {
	content := `enum Color { Red, Green, Blue };`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	e := module.Decls[0].(*ast.Enum)
	if e.Name != "Color" {
		t.Errorf("Expected enum Color, got %s", e.Name)
	}
	expected := []string{"Red", "Green", "Blue"}
	if len(e.Enumerators) != len(expected) {
		t.Fatalf("Expected %d enumerators, got %d", len(expected), len(e.Enumerators))
	}
	for i, name := range expected {
		if e.Enumerators[i] != name {
			t.Errorf("Enumerator %d: expected %s, got %s", i, name, e.Enumerators[i])
		}
	}
}

func TestIncludeDirective(t *testing.T) {
	content := `#include <gtsam/geometry/Point2.h>
class Point2;`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	inc := module.Decls[0].(*ast.Include)
	if inc.Path != "gtsam/geometry/Point2.h" {
		t.Errorf("Expected include path gtsam/geometry/Point2.h, got %s", inc.Path)
	}
}

func TestDefaultArguments(t *testing.T) {
	content := `class Printer {
  void print(const string& name = "", int precision = -1, double tol = 1e-9, gtsam::Mode mode = gtsam::Mode::Fast);
};`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	params := module.Decls[0].(*ast.Class).Methods[0].Params
	expected := []string{`""`, "-1", "1e-9", "gtsam::Mode::Fast"}
	for i, def := range expected {
		if params[i].Default != def {
			t.Errorf("Parameter %d: expected default %s, got %s", i, def, params[i].Default)
		}
	}
}

func TestPairTypes(t *testing.T) {
	content := `class Camera {
  pair<gtsam::Point2, bool> project(const gtsam::Point3& p) const;
};`

	parser := New()
	module, err := parser.Parse(content)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	returns := module.Decls[0].(*ast.Class).Methods[0].Returns
	if returns.Name != "pair" || len(returns.Args) != 2 {
		t.Fatalf("Expected pair with 2 arguments, got %s with %d", returns.Name, len(returns.Args))
	}
	if returns.Args[0].Qualified() != "gtsam::Point2" || returns.Args[1].Name != "bool" {
		t.Errorf("Expected pair<gtsam::Point2, bool>, got %s", returns.String())
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		expected string
	}{
		{
			"multiple inheritance",
			`class C : gtsam::A, gtsam::B { C(); };`,
			"multiple inheritance is not supported",
		},
		{
			"member template",
			`class C { template<T> T get(); };`,
			"member templates are not supported",
		},
		{
			"default template argument",
			`template<T = gtsam::Point2> class C { C(); };`,
			"default template arguments are not supported",
		},
		{
			"duplicate method signature",
			`class C { void f(int x); void f(int y); };`,
			"already declared",
		},
		{
			"duplicate function signature",
			`void f(int x);
void f(int y);`,
			"already declared",
		},
		{
			"unsupported operator",
			`class C { C operator.(int i); };`,
			"a supported operator token",
		},
		{
			"deep template nesting",
			`typedef A<B<C<D>>> Alias;`,
			"nested deeper than one level",
		},
		{
			"qualified class definition",
			`class gtsam::Point2 { };`,
			"';' after qualified class name",
		},
		{
			"template forward declaration",
			`template<T> class C;`,
			"class body after template clause",
		},
		{
			"missing semicolon",
			`class C { C(); }`,
			"';' after class body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parser := New()
			_, err := parser.Parse(tc.content)
			if err == nil {
				t.Fatalf("Expected parse error, got none")
			}
			parseErr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("Expected *ParseError, got %T: %v", err, err)
			}
			if !strings.Contains(parseErr.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %q", tc.expected, parseErr.Error())
			}
		})
	}
}

func TestErrorsCarryScope(t *testing.T) {
	content := `namespace gtsam {
class Pose2 {
  void f(int x);
  void f(int y);
};
}`

	parser := New()
	_, err := parser.Parse(content)
	if err == nil {
		t.Fatalf("Expected parse error, got none")
	}
	if !strings.Contains(err.Error(), "gtsam::Pose2") {
		t.Errorf("Expected error to name the enclosing scope, got %q", err.Error())
	}
}
