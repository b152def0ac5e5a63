//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nsondb/nson-go-sdk/nsondb"
	"github.com/nsondb/nson-go-sdk/nsondb/jsonutil"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode an NSON binary value into JSON",
	Long: `Decode an NSON binary value into JSON text.

The encoding is read from the named file, or from stdin when no file is
given. Numbers print in canonical decimal form, timestamps as ISO 8601
text and binary fields as base64 strings.

Example:
  nsontool decode --pretty row.nson`,
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

		lgr := toolLogger()
		lgr.Fine("decoding %d bytes", len(data))

		value, err := nsondb.Unmarshal(data)
		if err != nil {
			return err
		}
		jv, err := nsondb.JSONValue(value)
		if err != nil {
			return err
		}

		var out string
		if pretty {
			out = jsonutil.AsPrettyJSON(jv)
		} else {
			out = jsonutil.AsJSON(jv)
		}
		return writeOutput([]byte(out + "\n"))
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
