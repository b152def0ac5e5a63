//
// Copyright (c) 2024, 2026 the nson-go-sdk authors. All rights reserved.
//
// Licensed under the Universal Permissive License v 1.0 as shown at
//  https://oss.oracle.com/licenses/upl/
//

package nsondb

// Field names used for throughput accounting in server responses. Short
// names keep the per-response overhead small.
const (
	fieldConsumed   = "consumed"
	fieldReadKB     = "rkb"
	fieldReadUnits  = "ru"
	fieldWriteKB    = "wkb"
	fieldWriteUnits = "wu"
)

// Capacity reports the throughput consumed by an operation.
type Capacity struct {
	// ReadKB is the number of kilobytes consumed for reads.
	ReadKB int

	// ReadUnits is the number of read units consumed. A read unit differs
	// from ReadKB when the operation uses absolute consistency, which
	// doubles the unit cost of each kilobyte read.
	ReadUnits int

	// WriteKB is the number of kilobytes consumed for writes.
	WriteKB int

	// WriteUnits is the number of write units consumed.
	WriteUnits int
}

// WriteConsumed appends a consumed-capacity field to the map currently
// open on the serializer.
func WriteConsumed(ns *Serializer, c Capacity) error {
	if err := ns.StartField(fieldConsumed); err != nil {
		return err
	}
	if err := ns.StartMap(); err != nil {
		return err
	}
	if err := ns.WriteIntField(fieldReadKB, c.ReadKB); err != nil {
		return err
	}
	if err := ns.WriteIntField(fieldReadUnits, c.ReadUnits); err != nil {
		return err
	}
	if err := ns.WriteIntField(fieldWriteKB, c.WriteKB); err != nil {
		return err
	}
	if err := ns.WriteIntField(fieldWriteUnits, c.WriteUnits); err != nil {
		return err
	}
	if err := ns.EndMap(); err != nil {
		return err
	}
	return ns.EndField()
}

// ReadConsumed decodes a consumed-capacity map at the walker's current
// field. Unknown fields are skipped, so the decode keeps working when the
// producer adds accounting fields this reader does not know about.
func ReadConsumed(mw *MapWalker) (Capacity, error) {
	var c Capacity

	inner, err := NewMapWalkerWithLogger(mw.Reader(), mw.logger)
	if err != nil {
		return c, err
	}
	for inner.HasNext() {
		if err = inner.Next(); err != nil {
			return c, err
		}
		switch inner.Name() {
		case fieldReadKB:
			c.ReadKB, err = inner.ReadInt()
		case fieldReadUnits:
			c.ReadUnits, err = inner.ReadInt()
		case fieldWriteKB:
			c.WriteKB, err = inner.ReadInt()
		case fieldWriteUnits:
			c.WriteUnits, err = inner.ReadInt()
		default:
			err = inner.SkipField()
		}
		if err != nil {
			return c, err
		}
	}
	return c, nil
}
