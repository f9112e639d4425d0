package ast

import "testing"

func TestTypeRefString(t *testing.T) {
	cases := []struct {
		ref      TypeRef
		expected string
	}{
		{TypeRef{Name: "double"}, "double"},
		{TypeRef{Name: "Point2", Namespace: []string{"gtsam"}}, "gtsam::Point2"},
		{TypeRef{Name: "Point2", Namespace: []string{"gtsam"}, IsConst: true, IsRef: true}, "const gtsam::Point2&"},
		{TypeRef{Name: "Value", Namespace: []string{"gtsam"}, IsPointer: true}, "gtsam::Value*"},
		{
			TypeRef{Name: "pair", Args: []TypeRef{
				{Name: "Point2", Namespace: []string{"gtsam"}},
				{Name: "double"},
			}},
			"pair<gtsam::Point2, double>",
		},
	}

	for _, tc := range cases {
		if got := tc.ref.String(); got != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, got)
		}
	}
}

func TestTypeRefEqualIgnoresQualifiers(t *testing.T) {
	a := TypeRef{Name: "Point2", Namespace: []string{"gtsam"}, IsConst: true, IsRef: true}
	b := TypeRef{Name: "Point2", Namespace: []string{"gtsam"}}

	if !a.Equal(b) {
		t.Errorf("Expected qualifier differences not to affect identity")
	}

	c := TypeRef{Name: "Point2", Namespace: []string{"other"}}
	if a.Equal(c) {
		t.Errorf("Expected namespace differences to affect identity")
	}

	d := TypeRef{Name: "Point2", Namespace: []string{"gtsam"}, Args: []TypeRef{{Name: "double"}}}
	if a.Equal(d) {
		t.Errorf("Expected template arguments to affect identity")
	}
}

func TestSignatureKey(t *testing.T) {
	params := []Param{
		{Name: "a", Type: TypeRef{Name: "Point2", Namespace: []string{"gtsam"}, IsConst: true, IsRef: true}},
		{Name: "tol", Type: TypeRef{Name: "double"}},
	}

	expected := "const gtsam::Point2&, double"
	if got := SignatureKey(params); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	if got := SignatureKey(nil); got != "" {
		t.Errorf("Expected empty key for no parameters, got %q", got)
	}
}

func TestTemplateParamListClosed(t *testing.T) {
	open := TemplateParamList{{Name: "T"}}
	if open.Closed() {
		t.Errorf("Expected an unrestricted parameter list to be open")
	}

	closed := TemplateParamList{{Name: "T", Allowed: []TypeRef{{Name: "Point2", Namespace: []string{"gtsam"}}}}}
	if !closed.Closed() {
		t.Errorf("Expected a restricted parameter list to be closed")
	}

	mixed := TemplateParamList{
		{Name: "T", Allowed: []TypeRef{{Name: "Point2", Namespace: []string{"gtsam"}}}},
		{Name: "U"},
	}
	if mixed.Closed() {
		t.Errorf("Expected a partially restricted list to be open")
	}
}

func TestTypedefIsInstantiation(t *testing.T) {
	plain := &Typedef{Name: "Alias", Type: TypeRef{Name: "Point2", Namespace: []string{"gtsam"}}}
	if plain.IsInstantiation() {
		t.Errorf("Expected a plain alias not to be an instantiation request")
	}

	request := &Typedef{Name: "PriorFactorPoint2", Type: TypeRef{
		Name:      "PriorFactor",
		Namespace: []string{"gtsam"},
		Args:      []TypeRef{{Name: "Point2", Namespace: []string{"gtsam"}}},
	}}
	if !request.IsInstantiation() {
		t.Errorf("Expected a template-applied typedef to be an instantiation request")
	}
}
