package faq

import "context"

// Source fetches and parses the question/answer table once per call.
type Source interface {
	Name() string
	Load(ctx context.Context) (RecordSet, error)
}
