//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nsondb/nson-go-sdk/nsondb/logger"
)

var (
	outputPath string
	pretty     bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nsontool",
	Short: "nsontool converts between NSON binary values and JSON",
	Long: `nsontool converts between NSON binary values and JSON text.

Use "nsontool encode" to turn a JSON document into its NSON encoding and
"nsontool decode" to turn an NSON encoding back into JSON. Both commands
read from a file argument or from stdin when no file is given.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "write output to this file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decode traces to stderr")
}

// toolLogger returns a logger honoring the --verbose flag.
func toolLogger() *logger.Logger {
	if verbose {
		return logger.New(os.Stderr, logger.Fine)
	}
	return nil
}

// readInput reads the whole input: the named file, or stdin for "" or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes the result to the --output file, or stdout.
func writeOutput(data []byte) error {
	if outputPath == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}
