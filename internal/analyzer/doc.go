// Package analyzer is the contract with the external source analyzer.
//
// The analyzer parses source files and resolves symbols, static types and
// constant values. sharpc never re-derives any of those facts: it consumes
// the analyzer's output as unit dumps, one per compilation unit, encoded as
// msgpack (.mp, .msgpack) or JSON (.json).
//
// A dump is a tree of Nodes. Declaration nodes carry the declared symbol
// path; expression nodes carry the resolved static type; constant
// initializers carry the folded value.
package analyzer
