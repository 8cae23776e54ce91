package renderer

import (
	"slices"
	"sync"
)

// RecordingSink is a headless Sink that keeps every submission for inspection and reports
// one draw per drawable and one dispatch per compute drawable.
type RecordingSink interface {
	Sink

	// Submissions returns a copy of every submission received since the last Reset.
	//
	// Returns:
	//   - []Submission: the recorded submissions in arrival order
	Submissions() []Submission

	// Last returns the most recent submission and whether one exists.
	//
	// Returns:
	//   - Submission: the last submission
	//   - bool: false if nothing has been submitted
	Last() (Submission, bool)

	// Totals returns the stats accumulated across all recorded submissions.
	Totals() SubmitStats

	// Reset discards recorded submissions and totals.
	Reset()
}

type recordingSink struct {
	mu          *sync.Mutex
	submissions []Submission
	totals      SubmitStats
}

var _ RecordingSink = &recordingSink{}

// NewRecordingSink creates an empty RecordingSink.
//
// Returns:
//   - RecordingSink: the new sink
func NewRecordingSink() RecordingSink {
	return &recordingSink{mu: &sync.Mutex{}}
}

func (s *recordingSink) Submit(sub Submission) (SubmitStats, error) {
	stats := countCalls(sub.Batches)

	// Batches are frame scratch owned by the caller; keep a copy.
	kept := Submission{Token: sub.Token, Camera: sub.Camera, Batches: make([]Batch, len(sub.Batches))}
	for i, b := range sub.Batches {
		kept.Batches[i] = Batch{Technique: b.Technique, Renderables: slices.Clone(b.Renderables)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, kept)
	s.totals = s.totals.Add(stats)
	return stats, nil
}

func (s *recordingSink) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.submissions)
}

func (s *recordingSink) Last() (Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.submissions) == 0 {
		return Submission{}, false
	}
	return s.submissions[len(s.submissions)-1], true
}

func (s *recordingSink) Totals() SubmitStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

func (s *recordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = nil
	s.totals = SubmitStats{}
}
