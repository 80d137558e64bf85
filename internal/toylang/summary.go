package toylang

import (
	mdwast "github.com/msto63/pcomb/foundation/combinator/ast"
)

// Summary counts the declarations and statements of a parsed program
type Summary struct {
	Consts     int `json:"consts" yaml:"consts"`
	Structs    int `json:"structs" yaml:"structs"`
	Functions  int `json:"functions" yaml:"functions"`
	Ifs        int `json:"ifs" yaml:"ifs"`
	Fors       int `json:"fors" yaml:"fors"`
	Fragments  int `json:"fragments" yaml:"fragments"`
	TreeDepth  int `json:"tree_depth" yaml:"tree_depth"`
	Parameters int `json:"parameters" yaml:"parameters"`
}

// Summarize walks the fragments produced by the program rule
func Summarize(fragments []mdwast.Fragment) Summary {
	names := mdwast.Names(fragments)
	return Summary{
		Consts:     names[NodeConst],
		Structs:    names[NodeStruct],
		Functions:  names[NodeFunction],
		Ifs:        names[NodeIf],
		Fors:       names[NodeFor],
		Parameters: names[NodeParameter],
		Fragments:  mdwast.Count(fragments),
		TreeDepth:  mdwast.Depth(fragments),
	}
}

// Declarations returns the top-level declarations below the "ast" node
func Declarations(fragments []mdwast.Fragment) []mdwast.Fragment {
	program, ok := mdwast.First(fragments, NodeProgram)
	if !ok {
		return nil
	}
	items, _ := program.Children()
	decls := make([]mdwast.Fragment, 0, len(items))
	for _, item := range items {
		children, ok := item.Children()
		if !ok {
			continue
		}
		decls = append(decls, children...)
	}
	return decls
}
