// Package search resolves full-text keyword queries to post identifiers.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rpupo63/blog-api/models"
)

// Result is one match reported by a backend. Key holds the post identifier in decimal.
type Result struct {
	Schema string  `json:"schema" gorm:"column:schema_name"`
	Table  string  `json:"table" gorm:"column:table_name"`
	Column string  `json:"column" gorm:"column:column_name"`
	Key    string  `json:"key" gorm:"column:matched_key"`
	Score  float64 `json:"score" gorm:"column:score"`
}

// Searcher returns matches ordered by relevance, best first.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]Result, error)
}

// Indexer is implemented by backends that keep their own copy of post text and
// must be told about writes.
type Indexer interface {
	Index(ctx context.Context, posts ...models.Post) error
	Remove(ctx context.Context, ids ...uint64) error
	Reset(ctx context.Context) error
}

// PostIDs extracts the post identifiers from results, keeping their order.
func PostIDs(results []Result) ([]uint64, error) {
	ids := make([]uint64, 0, len(results))
	for _, result := range results {
		id, err := strconv.ParseUint(result.Key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("search result key %q is not a post id: %w", result.Key, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Terms lowercases text and splits it on anything that is not a letter or digit.
func Terms(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
