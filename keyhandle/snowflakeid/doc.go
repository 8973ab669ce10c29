// Package snowflakeid generates time ordered, unique 64 bit ids suitable for
// use as key handles that must not collide across processes.
//
// An id is laid out, most significant bits first, as
//
//	[ 40 bits milliseconds since epoch | worker id | sequence ]
//
// where worker id and sequence share the low 24 bits. The split between them
// is configured either from a CIDR mask applied to a private host address, or
// from an explicit worker id and bit width.
//
// The following properties hold for the generated ids:
//
//   - ids from a single IDState strictly increase
//   - two generators with distinct worker ids never produce the same id
//   - an id is never zero, so zero stays free as a "no handle" value
package snowflakeid
