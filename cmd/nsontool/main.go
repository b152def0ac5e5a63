//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

// nsontool converts between NSON binary encodings and JSON text.
package main

import (
	"github.com/nsondb/nson-go-sdk/cmd/nsontool/cmd"
)

func main() {
	cmd.Execute()
}
