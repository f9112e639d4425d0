package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"idlwrap/pkg/ast"
	"idlwrap/pkg/instantiator"
	"idlwrap/pkg/parser"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an interface file and output the declaration tree",
	Long: `Parse a C++ interface definition file and print its declaration tree.
The output can be in JSON format for further processing or human-readable format.
With --expand, template instantiation requests are expanded before printing,
showing the concrete classes and functions the wrap command would generate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}

		p := parser.New()
		module, err := p.Parse(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse file %s: %w", filename, err)
		}

		expand, _ := cmd.Flags().GetBool("expand")
		if expand {
			if err := instantiator.Instantiate(module); err != nil {
				return fmt.Errorf("failed to expand templates in %s: %w", filename, err)
			}
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			return outputJSON(filename, module)
		default:
			return outputHuman(filename, module)
		}
	},
}

func init() {
	parseCmd.Flags().StringP("format", "f", "human", "Output format (human, json)")
	parseCmd.Flags().BoolP("expand", "e", false, "Expand template instantiation requests before printing")
}

func outputJSON(filename string, module *ast.Module) error {
	type JSONDecl struct {
		Kind     string     `json:"kind"`
		Name     string     `json:"name"`
		Line     int        `json:"line"`
		Column   int        `json:"column"`
		Children []JSONDecl `json:"children,omitempty"`
	}

	var convertDecl func(ast.Decl) JSONDecl
	convertDecl = func(d ast.Decl) JSONDecl {
		jd := JSONDecl{
			Kind: d.Kind().String(),
			Name: d.DeclName(),
		}
		pos := declPos(d)
		jd.Line = pos.Line
		jd.Column = pos.Column

		if ns, ok := d.(*ast.Namespace); ok {
			for _, child := range ns.Decls {
				jd.Children = append(jd.Children, convertDecl(child))
			}
		}
		return jd
	}

	var decls []JSONDecl
	for _, d := range module.Decls {
		decls = append(decls, convertDecl(d))
	}

	output := map[string]interface{}{
		"filename":     filename,
		"declarations": decls,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputHuman(filename string, module *ast.Module) error {
	fmt.Printf("Parsed file: %s\n", filename)
	fmt.Printf("=====================================\n\n")

	for _, d := range module.Decls {
		printDecl(d, 0)
	}

	counts := make(map[ast.DeclKind]int)
	total := 0
	var countDecls func([]ast.Decl)
	countDecls = func(decls []ast.Decl) {
		for _, d := range decls {
			counts[d.Kind()]++
			total++
			if ns, ok := d.(*ast.Namespace); ok {
				countDecls(ns.Decls)
			}
		}
	}
	countDecls(module.Decls)

	fmt.Printf("\nSummary:\n")
	fmt.Printf("--------\n")
	fmt.Printf("Total declarations: %d\n", total)
	for kind := ast.KindNamespace; kind <= ast.KindInclude; kind++ {
		if counts[kind] > 0 {
			fmt.Printf("%s: %d\n", kind.String(), counts[kind])
		}
	}

	return nil
}

func printDecl(d ast.Decl, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}

	fmt.Printf("%s%s: %s", indent, d.Kind().String(), d.DeclName())

	switch decl := d.(type) {
	case *ast.Class:
		if decl.IsTemplate() {
			fmt.Printf(" [template]")
		}
		if decl.IsVirtual {
			fmt.Printf(" [virtual]")
		}
		if decl.Base != nil {
			fmt.Printf(" : %s", decl.Base.String())
		}
	case *ast.Function:
		if decl.IsTemplate() {
			fmt.Printf(" [template]")
		}
	case *ast.ForwardDecl:
		if decl.IsVirtual {
			fmt.Printf(" [virtual]")
		}
	}

	pos := declPos(d)
	fmt.Printf("\n%s  Location: Line %d, Column %d\n", indent, pos.Line, pos.Column)

	switch decl := d.(type) {
	case *ast.Namespace:
		for _, child := range decl.Decls {
			printDecl(child, depth+1)
		}
	case *ast.Class:
		fmt.Printf("%s  Constructors: %d, Methods: %d, Operators: %d, Properties: %d\n",
			indent, len(decl.Constructors), len(decl.Methods), len(decl.Operators), len(decl.Properties))
	case *ast.Enum:
		fmt.Printf("%s  Enumerators: %d\n", indent, len(decl.Enumerators))
	}
}

func declPos(d ast.Decl) ast.Position {
	switch decl := d.(type) {
	case *ast.Namespace:
		return decl.Pos
	case *ast.Class:
		return decl.Pos
	case *ast.Function:
		return decl.Pos
	case *ast.Enum:
		return decl.Pos
	case *ast.Typedef:
		return decl.Pos
	case *ast.ForwardDecl:
		return decl.Pos
	case *ast.Include:
		return decl.Pos
	}
	return ast.Position{}
}
