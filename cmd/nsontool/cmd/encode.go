//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nsondb/nson-go-sdk/nsondb"
	"github.com/nsondb/nson-go-sdk/nsondb/jsonutil"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode a JSON document as an NSON binary value",
	Long: `Encode a JSON document as an NSON binary value.

The JSON is read from the named file, or from stdin when no file is
given. JSON numbers encode losslessly: integers become Integer or Long,
floats that round-trip become Double, and everything else becomes an
arbitrary-precision Number.

Example:
  echo '{"id": 1, "name": "jane"}' | nsontool encode -o row.nson`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		data, err := readInput(path)
		if err != nil {
			return err
		}

		value, err := jsonutil.ExpectValue(data)
		if err != nil {
			return fmt.Errorf("invalid JSON input: %w", err)
		}

		encoded, err := nsondb.Marshal(value)
		if err != nil {
			return err
		}
		return writeOutput(encoded)
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}
