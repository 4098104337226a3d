// Package matfile reads MAT-file Level 5 binary archives, the container
// format the battery test rigs export. It implements the subset the NASA
// PCoE archives use: numeric arrays (all integer and float widths, real or
// complex, stored column-major), character arrays, cell arrays, struct
// arrays, and zlib-compressed elements, in either byte order.
//
// The whole file is read into memory up front; archives are a handful of
// megabytes at most. The reader is read-only, there is no writer.
//
// Struct arrays preserve field DECLARATION ORDER, and fields are
// addressable by position as well as by name. The cycle data blocks in the
// battery archives carry no per-field names of their own, so downstream
// code matches fields positionally.
package matfile
