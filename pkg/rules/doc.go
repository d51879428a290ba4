// Package rules defines the predicates Bongard problems illustrate.
//
// A Rule pairs a human-readable description with a predicate over a grid.
// Grids satisfying the predicate are followers; the rest are rogues. Rules
// are collected in a Set, which keeps them in insertion order and uses the
// description as the identity key: no two rules in a Set share a description.
//
// Standard enumerates the rule collection used by the generator, sweeping
// rows, columns, individual cells, corners, edges, and rotation and mirror
// symmetry for every variety:
//
//	"2 of variety circle @ row 1"
//	"variety square @ [3, 2]"
//	"any of variety star in edge cells"
//	"rotated clockwise # 2"
//	"mirrored vertical"
//
// Pattern rules ("pattern (?1)>(R1,?1)") evaluate a compiled pattern selector
// with the match package.
package rules
