package faqsource

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

func TestPostgresSourceLoad(t *testing.T) {
	rows := &stubRows{data: [][2]string{
		{"  What is Devbay? ", "A marketplace."},
		{"How do I SELL?", "Open a seller account."},
	}}
	db := &stubQuerier{rows: rows}
	src := NewPostgresSource(db, "public.faq_entries")

	records, err := src.Load(context.Background())

	require.NoError(t, err)
	require.Equal(t, faq.RecordSet{
		{Question: "what is devbay?", Answer: "A marketplace."},
		{Question: "how do i sell?", Answer: "Open a seller account."},
	}, records)
	require.Equal(t, `SELECT COALESCE(question, ''), COALESCE(answer, '') FROM "public"."faq_entries" ORDER BY id`, db.sql)
	require.True(t, rows.closed)
	require.Equal(t, "postgres:public.faq_entries", src.Name())
}

func TestPostgresSourceEmptyTable(t *testing.T) {
	records, err := NewPostgresSource(&stubQuerier{rows: &stubRows{}}, "").Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestPostgresSourceQueryError(t *testing.T) {
	_, err := NewPostgresSource(&stubQuerier{err: errors.New("relation does not exist")}, "").Load(context.Background())

	require.ErrorContains(t, err, "query faq entries")
}

func TestPostgresSourceRowsError(t *testing.T) {
	rows := &stubRows{data: [][2]string{{"q", "a"}}, err: errors.New("conn reset")}

	_, err := NewPostgresSource(&stubQuerier{rows: rows}, "").Load(context.Background())

	require.ErrorContains(t, err, "scan faq entries")
}

func TestPostgresSourceSanitizesTable(t *testing.T) {
	src := NewPostgresSource(nil, `faq"; DROP TABLE users; --`)

	require.Contains(t, src.loadQuery(), `FROM "faq""; DROP TABLE users; --" ORDER BY id`)
}

type stubQuerier struct {
	rows *stubRows
	err  error
	sql  string
}

func (q *stubQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

type stubRows struct {
	data   [][2]string
	pos    int
	err    error
	closed bool
}

func (r *stubRows) Close() { r.closed = true }

func (r *stubRows) Err() error { return r.err }

func (r *stubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (r *stubRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	*dest[0].(*string) = row[0]
	*dest[1].(*string) = row[1]
	return nil
}

func (r *stubRows) Values() ([]any, error) {
	row := r.data[r.pos-1]
	return []any{row[0], row[1]}, nil
}

func (r *stubRows) RawValues() [][]byte { return nil }

func (r *stubRows) Conn() *pgx.Conn { return nil }
