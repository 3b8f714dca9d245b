package tspool

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/smellscan/pkg/domain"
)

// QueryResult contains the result of a tree-sitter query match.
type QueryResult struct {
	// Node is the first captured node in this match.
	Node *sitter.Node
	// Captures maps capture names to their corresponding nodes.
	Captures map[string]*sitter.Node
}

type queryKey struct {
	lang  domain.Language
	query string
}

// compiledQuery is compiled at most once; concurrent callers wait on once.
type compiledQuery struct {
	once  sync.Once
	query *sitter.Query
	err   error
}

var queryCache sync.Map

func compile(lang domain.Language, queryStr string) (*sitter.Query, error) {
	val, _ := queryCache.LoadOrStore(queryKey{lang: lang, query: queryStr}, &compiledQuery{})
	cq, ok := val.(*compiledQuery)
	if !ok {
		return nil, fmt.Errorf("invalid cache entry type %T", val)
	}

	cq.once.Do(func() {
		grammar, err := Grammar(lang)
		if err != nil {
			cq.err = err
			return
		}
		cq.query, cq.err = sitter.NewQuery([]byte(queryStr), grammar)
	})

	return cq.query, cq.err
}

// QueryWithCache executes a tree-sitter query, compiling it once per language.
// The compiled query is shared and must not be closed by callers.
func QueryWithCache(root *sitter.Node, source []byte, lang domain.Language, queryStr string) ([]QueryResult, error) {
	query, err := compile(lang, queryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	cursor.Exec(query, root)

	var results []QueryResult
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)

		result := QueryResult{
			Captures: make(map[string]*sitter.Node, len(match.Captures)),
		}
		for _, capture := range match.Captures {
			name := query.CaptureNameForId(capture.Index)
			result.Captures[name] = capture.Node
			if result.Node == nil {
				result.Node = capture.Node
			}
		}
		if len(result.Captures) == 0 {
			continue
		}

		results = append(results, result)
	}

	return results, nil
}
