// Package sgf holds the tree model for SGF game records. Parsing and
// serialization live in the game usecase; this package is data only.
package sgf

// GameTree is one tree in an SGF file: a node sequence (the main line)
// plus child trees for variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node is a single SGF node: a property set such as B[pd], W[dd] or
// C[...]. Properties may carry several values (e.g. AB[aa][bb]).
type Node struct {
	Properties map[string][]string
}

// SGF is the root of a parsed record.
type SGF struct {
	Root *GameTree
}
