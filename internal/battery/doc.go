// Package battery turns a parsed NASA PCoE battery archive into one flat
// table. It consolidates the complete transform lifecycle: date-vector
// conversion, per-cycle metadata extraction, schema-driven flattening of
// the nested data blocks, and whole-archive assembly.
//
// # Data Flow
//
// The typical flow through this package:
//
//	.mat archive → matfile.File → CycleMetadata → per-cycle Frame → combined Frame
//
// # Schema
//
// The field set of a cycle's data block is fixed per cycle type and the
// blocks carry no field names of their own, so extraction is positional:
// field j of the block is column j of the type's schema. Unknown cycle
// types and blocks whose field count disagrees with the schema abort the
// whole transform; there is no per-cycle fault isolation.
//
// # Usage
//
//	frame, summary, err := battery.ReadArchive(paths.GetArchivePath(5))
//	if err != nil {
//	    // no partial output exists
//	}
package battery
