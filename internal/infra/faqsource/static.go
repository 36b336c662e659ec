package faqsource

import (
	"context"

	"github.com/yanqian/faq-assistant/internal/domain/faq"
)

// StaticSource parses a table held in memory. Useful for tests and local dev.
type StaticSource struct {
	text string
}

// NewStaticSource constructs the source.
func NewStaticSource(text string) *StaticSource {
	return &StaticSource{text: text}
}

// Name implements faq.Source.
func (s *StaticSource) Name() string {
	return "static"
}

// Load implements faq.Source.
func (s *StaticSource) Load(_ context.Context) (faq.RecordSet, error) {
	return faq.ParseRecords(s.text), nil
}

var _ faq.Source = (*StaticSource)(nil)
