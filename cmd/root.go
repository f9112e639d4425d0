package cmd

import (
	"fmt"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
)

// Version information
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "idlwrap",
	Short: "A C++ interface-file wrapper generator for pybind11",
	Long: `idlwrap parses C++ interface definition files (.i) describing the classes,
functions, enums and templates of a native library, expands template
instantiation requests, and generates the pybind11 registration code that
exposes the library to Python.`,
	Version: getVersionString(),
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(buildVersion().String())
	},
}

func buildVersion() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("idlwrap", "A C++ interface-file wrapper generator for pybind11", ""),
		func(i *goversion.Info) {
			if commit != "unknown" {
				i.GitCommit = commit
			}
			if version != "dev" {
				i.GitVersion = version
			}
			if date != "unknown" {
				i.BuildDate = date
			}
		},
	)
}

func getVersionString() string {
	if version == "dev" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return version
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = getVersionString()
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(wrapCmd)
	rootCmd.AddCommand(versionCmd)
}
