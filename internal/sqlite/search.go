package sqlite

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/rpggio/weekgrid/internal/domain/task"
)

// SearchRepository implements task.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search performs a full-text search over task titles and categories. Each
// word of the query is matched as a prefix.
func (r *SearchRepository) Search(ctx context.Context, userID, workspaceID, query string, opts task.SearchOptions) ([]task.SearchResult, error) {
	match := prefixQuery(query)
	if match == "" {
		return []task.SearchResult{}, nil
	}

	baseQuery := `
		SELECT
			t.id, t.user_id, t.workspace_id, t.title, t.status, t.category,
			t.tick, t.created_at, t.updated_at,
			bm25(tasks_fts) AS rank
		FROM tasks_fts
		JOIN tasks t ON t.rowid = tasks_fts.rowid
		WHERE t.user_id = ? AND t.workspace_id = ? AND tasks_fts MATCH ?
	`
	args := []any{userID, workspaceID, match}

	if !opts.ShowCompleted {
		baseQuery += " AND t.status != ?"
		args = append(args, task.StatusCompleted)
	}
	baseQuery += " ORDER BY rank, t.created_at"

	if opts.Limit > 0 {
		baseQuery += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	defer rows.Close()

	results := []task.SearchResult{}
	for rows.Next() {
		var result task.SearchResult
		t, err := scanTask(rankScanner{rows: rows, rank: &result.Rank})
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result: %w", err)
		}
		result.Task = *t
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating search results: %w", err)
	}

	return results, nil
}

// rankScanner appends the rank column to a task scan.
type rankScanner struct {
	rows rowScanner
	rank *float64
}

func (s rankScanner) Scan(dest ...any) error {
	return s.rows.Scan(append(dest, s.rank)...)
}

// prefixQuery turns free text into an FTS5 query of quoted prefix terms so
// that user input never reaches the MATCH grammar. Anything other than
// letters and digits separates words.
func prefixQuery(query string) string {
	words := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := make([]string, len(words))
	for i, word := range words {
		terms[i] = `"` + word + `"*`
	}
	return strings.Join(terms, " ")
}
