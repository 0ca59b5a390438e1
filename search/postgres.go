package search

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// searchableDocument must stay identical to the expression in models.FullTextIndexDDL.
const searchableDocument = `to_tsvector('simple', coalesce(post_title, '') || ' ' || coalesce(post_body, ''))`

var fullTextQuery = fmt.Sprintf(`
	SELECT current_schema() AS schema_name,
		'posts' AS table_name,
		'post_title,post_body' AS column_name,
		id::text AS matched_key,
		ts_rank(%[1]s, plainto_tsquery('simple', ?)) AS score
	FROM posts
	WHERE %[1]s @@ plainto_tsquery('simple', ?)
	ORDER BY score DESC, id ASC
`, searchableDocument)

// PostgresSearcher runs keyword queries against the posts table with the built-in
// text search, backed by the GIN index that migrations create.
type PostgresSearcher struct {
	db *gorm.DB
}

func NewPostgresSearcher(db *gorm.DB) *PostgresSearcher {
	return &PostgresSearcher{db}
}

func (s *PostgresSearcher) Search(ctx context.Context, keyword string) ([]Result, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []Result{}, nil
	}

	var results []Result
	if err := s.db.WithContext(ctx).Raw(fullTextQuery, keyword, keyword).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("full-text query for %q: %w", keyword, err)
	}
	return results, nil
}
