// Package packet decodes and evaluates BITS transmissions.
//
// A transmission is a hex string that expands to a bit sequence holding one
// top-level packet. Every packet starts with a 3-bit version and a 3-bit type
// id. Type 4 is a literal whose value is carried in 5-bit groups (a
// continuation bit followed by a nibble). Every other type id is an operator
// whose sub-packets are framed either by a 15-bit total bit length or by an
// 11-bit packet count.
//
// The package is layered leaf-first:
//   - DecodeHex expands hex text into bits (one byte per bit, MSB first)
//   - Cursor reads fixed-width fields and carves bounded sub-views
//   - Parse builds the Packet tree by recursive descent
//   - VersionSum and Eval are read-only traversals over the tree
//   - Encode and Render go the other way, for tooling and tests
//
// Everything here is pure: no I/O, no logging, no shared state. A Packet tree
// is built once by Parse and never mutated afterwards.
//
// Trailing bits after the top-level packet are zero padding to a hex boundary
// and are ignored. Inside a bit-length framed operator the sub-view must be
// consumed exactly by its children; leftover bits there are reported as
// TRUNCATED_BITSTREAM when the parser fails to read another packet from them.
package packet
