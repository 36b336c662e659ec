package faqsource

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

// Querier is the subset of *pgxpool.Pool the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads question/answer rows from a table using pgx.
type PostgresSource struct {
	db    Querier
	table string
}

// NewPostgresSource constructs the source. table defaults to faq_entries.
func NewPostgresSource(db Querier, table string) *PostgresSource {
	if table == "" {
		table = "faq_entries"
	}
	return &PostgresSource{db: db, table: table}
}

// Name implements faq.Source.
func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

// Load implements faq.Source. Rows come back in id order, which stands in
// for source row order.
func (s *PostgresSource) Load(ctx context.Context) (faq.RecordSet, error) {
	rows, err := s.db.Query(ctx, s.loadQuery())
	if err != nil {
		return nil, fmt.Errorf("query faq entries: %w", err)
	}
	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("scan faq entries: %w", err)
	}
	if records == nil {
		records = []faq.Record{}
	}
	return faq.RecordSet(records), nil
}

func (s *PostgresSource) loadQuery() string {
	return fmt.Sprintf(
		"SELECT COALESCE(question, ''), COALESCE(answer, '') FROM %s ORDER BY id",
		pgx.Identifier(strings.Split(s.table, ".")).Sanitize(),
	)
}

func scanRecord(row pgx.CollectableRow) (faq.Record, error) {
	var rec faq.Record
	if err := row.Scan(&rec.Question, &rec.Answer); err != nil {
		return faq.Record{}, err
	}
	rec.Question = faq.Normalize(rec.Question)
	return rec, nil
}

var _ faq.Source = (*PostgresSource)(nil)
