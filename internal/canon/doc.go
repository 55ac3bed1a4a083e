// Package canon provides the canonical serialized forms of a packet tree.
//
// Marshal emits RFC 8785 canonical JSON over a small closed set of value
// types (no floats, no null). Digest hashes that form with a domain prefix so
// that a decoded transmission has a stable identity independent of padding
// and operator framing. Node is the loose, editable tree used for JSON/YAML
// output and as encoder input.
//
// canon imports packet; packet imports nothing internal.
package canon
