// Package harness runs conformance suites against the packet decoder.
//
// # Suite Format
//
// Suites are YAML files:
//
//	name: examples
//	description: "Worked transmissions"
//	max_depth: 64          # optional
//	cases:
//	  - name: literal
//	    hex: D2FE28
//	    version_sum: 6
//	    value: "2021"
//	    digest: 2596784a...
//	  - hex: D2FE
//	    error: TRUNCATED_BITSTREAM
//
// Every case needs hex and at least one expectation. error is exclusive
// with version_sum, value and digest. value is a decimal string so it can
// exceed 64 bits.
//
// A failing case never aborts the suite; its failures are listed in the
// Result. RunWithGolden additionally snapshots the observed outputs as
// canonical JSON under testdata/golden.
package harness
