//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

/*
This is the Go SDK for the NSON binary value format used by the NoSQL
database client driver.

NSON is a compact, self-describing, typed binary encoding for database
values: booleans, sized and arbitrary-precision numbers, strings,
timestamps, binary blobs, and nested arrays, maps and records. Every
encoded value starts with a one-byte type tag; arrays and maps are
length-framed so that a consumer can skip or validate nested structures
without decoding them.

The value model and the JSON mappings live in the nsondb/types package.
Encoding and decoding entry points live in the nsondb package. The
nsontool command under cmd/nsontool converts between NSON files and JSON.
*/
package nson
