package cmd

import (
	"fmt"
	"os"

	"idlwrap/pkg/generator"
	"idlwrap/pkg/instantiator"
	"idlwrap/pkg/parser"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// WrapConfig represents the structure of an idlwrap YAML configuration file.
// Flags given on the command line override the corresponding config entries.
type WrapConfig struct {
	Module        string   `yaml:"module,omitempty"`
	TopNamespaces []string `yaml:"top_namespaces,omitempty"`
	IgnoreClasses []string `yaml:"ignore_classes,omitempty"`
	UseBoost      bool     `yaml:"use_boost,omitempty"`
}

var wrapCmd = &cobra.Command{
	Use:   "wrap [file]",
	Short: "Generate pybind11 wrapper code from an interface file",
	Long: `Generate pybind11 registration code from a C++ interface definition file.
The interface file is parsed, template instantiation requests are expanded,
and the resulting concrete declarations are wrapped into a C++ source file
ready to compile as a Python extension module.

Generation settings can be given as flags or collected in a YAML
configuration file:

  module: mylib
  top_namespaces:
    - mylib
  ignore_classes:
    - Internal
  use_boost: false`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		config, err := loadWrapConfig(cmd)
		if err != nil {
			return err
		}
		if config.Module == "" {
			return fmt.Errorf("no module name given: set --module or the config file's module entry")
		}

		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}

		p := parser.New()
		module, err := p.Parse(string(content))
		if err != nil {
			return fmt.Errorf("failed to parse file %s: %w", filename, err)
		}

		if err := instantiator.Instantiate(module); err != nil {
			return fmt.Errorf("failed to expand templates in %s: %w", filename, err)
		}

		template := generator.DefaultTemplate
		if templateFile, _ := cmd.Flags().GetString("template"); templateFile != "" {
			templateContent, err := os.ReadFile(templateFile)
			if err != nil {
				return fmt.Errorf("failed to read template file %s: %w", templateFile, err)
			}
			template = string(templateContent)
		}

		backend := generator.NewPybind()
		output, err := backend.Generate(module, generator.Options{
			ModuleName:    config.Module,
			UseBoost:      config.UseBoost,
			TopNamespaces: config.TopNamespaces,
			IgnoreClasses: config.IgnoreClasses,
			Template:      template,
		})
		if err != nil {
			return fmt.Errorf("failed to generate wrapper for %s: %w", filename, err)
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			fmt.Print(output)
			return nil
		}
		if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
		}
		fmt.Printf("Wrote %s\n", outputFile)
		return nil
	},
}

func init() {
	wrapCmd.Flags().StringP("module", "m", "", "Name of the generated extension module")
	wrapCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	wrapCmd.Flags().StringP("template", "t", "", "Output template file (default: built-in template)")
	wrapCmd.Flags().StringP("config", "c", "", "YAML configuration file")
	wrapCmd.Flags().Bool("boost", false, "Use boost::shared_ptr as the holder type")
	wrapCmd.Flags().StringSlice("top", nil, "Top-level namespaces to expose (default: all)")
	wrapCmd.Flags().StringSlice("ignore", nil, "Classes to omit from generation")
}

// loadWrapConfig merges the optional YAML configuration file with command-line
// flags; flags win.
func loadWrapConfig(cmd *cobra.Command) (*WrapConfig, error) {
	var config WrapConfig

	if configFile, _ := cmd.Flags().GetString("config"); configFile != "" {
		content, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(content, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	}

	if module, _ := cmd.Flags().GetString("module"); module != "" {
		config.Module = module
	}
	if top, _ := cmd.Flags().GetStringSlice("top"); len(top) > 0 {
		config.TopNamespaces = top
	}
	if ignore, _ := cmd.Flags().GetStringSlice("ignore"); len(ignore) > 0 {
		config.IgnoreClasses = ignore
	}
	if boost, _ := cmd.Flags().GetBool("boost"); boost {
		config.UseBoost = true
	}

	return &config, nil
}
