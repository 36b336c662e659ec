package faq

import (
	"sync/atomic"
	"time"
)

// Snapshot is an immutable view of the loaded table.
type Snapshot struct {
	Records  RecordSet
	Source   string
	LoadedAt time.Time
	Notice   string
}

// KnowledgeBase publishes the current snapshot. Readers never block; a reload
// builds a new snapshot and swaps it in.
type KnowledgeBase struct {
	current atomic.Pointer[Snapshot]
}

// NewKnowledgeBase starts with an empty, not yet loaded snapshot.
func NewKnowledgeBase() *KnowledgeBase {
	kb := &KnowledgeBase{}
	kb.current.Store(&Snapshot{Records: RecordSet{}})
	return kb
}

// Snapshot returns the snapshot currently served.
func (kb *KnowledgeBase) Snapshot() *Snapshot {
	return kb.current.Load()
}

// Replace publishes snap as the current snapshot.
func (kb *KnowledgeBase) Replace(snap Snapshot) {
	if snap.Records == nil {
		snap.Records = RecordSet{}
	}
	kb.current.Store(&snap)
}

// Status summarizes the snapshot for callers.
func (s *Snapshot) Status() Status {
	return Status{
		Ready:    !s.LoadedAt.IsZero(),
		Records:  len(s.Records),
		Source:   s.Source,
		LoadedAt: s.LoadedAt,
		Notice:   s.Notice,
	}
}
