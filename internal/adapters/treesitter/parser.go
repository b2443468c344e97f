package treesitter

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ParseResult is the outcome of parsing one file with an installed grammar.
type ParseResult struct {
	Language string
	RootKind string
	RootSexp string
	HasError bool
	Bytes    int
}

// Parse parses source with the named language's installed grammar and
// summarizes the resulting tree.
func Parse(loader *Loader, lang string, source []byte) (*ParseResult, error) {
	language, err := loader.Load(lang)
	if err != nil {
		return nil, err
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("grammar %q: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	return &ParseResult{
		Language: lang,
		RootKind: root.Kind(),
		RootSexp: root.ToSexp(),
		HasError: root.HasError(),
		Bytes:    len(source),
	}, nil
}
