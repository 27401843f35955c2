package client

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an in-flight submission.
type Status string

const (
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Submission is a client-only optimistic entry for one submitted URL. Its id
// lives in its own namespace and never collides with server item ids.
type Submission struct {
	ID          string
	URL         string
	Status      Status
	Error       string
	Duplicate   bool
	Item        *Item
	SubmittedAt time.Time

	seq  uint64
	done chan struct{}
}

// Saver performs the actual save round trip. Satisfied by *Client.
type Saver interface {
	SaveArticle(ctx context.Context, url string) (*Item, error)
}

// DefaultSuccessTTL is how long a successful entry stays visible before the
// authoritative server list is expected to supersede it.
const DefaultSuccessTTL = time.Second

// Tracker coordinates concurrent optimistic submissions. Each submission is
// tracked independently by its own id; there is no global single-submission
// lock, and responses arriving out of order reconcile correctly because the
// matching is by id, never by position.
type Tracker struct {
	saver      Saver
	successTTL time.Duration

	mu          sync.Mutex
	submissions map[string]*Submission
	nextSeq     uint64
}

func NewTracker(saver Saver) *Tracker {
	return &Tracker{
		saver:       saver,
		successTTL:  DefaultSuccessTTL,
		submissions: make(map[string]*Submission),
	}
}

// SetSuccessTTL overrides how long success entries linger. Call before the
// first Submit.
func (t *Tracker) SetSuccessTTL(d time.Duration) {
	t.successTTL = d
}

// Submit registers a new loading entry and starts the save in the
// background. Returns the submission's local id immediately.
func (t *Tracker) Submit(ctx context.Context, url string) string {
	t.mu.Lock()
	t.nextSeq++
	sub := &Submission{
		ID:          uuid.New().String(),
		URL:         url,
		Status:      StatusLoading,
		SubmittedAt: time.Now(),
		seq:         t.nextSeq,
		done:        make(chan struct{}),
	}
	t.submissions[sub.ID] = sub
	t.mu.Unlock()

	go t.run(ctx, sub)

	return sub.ID
}

func (t *Tracker) run(ctx context.Context, sub *Submission) {
	// Always closed, even for dismissed entries, so waiters never hang.
	// Ids are never re-registered, so closing a dismissed entry's channel
	// is safe.
	defer close(sub.done)

	item, err := t.saver.SaveArticle(ctx, sub.URL)

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.submissions[sub.ID]; !ok {
		// Dismissed while in flight; drop the result
		return
	}

	if err != nil {
		sub.Status = StatusError
		sub.Error = err.Error()
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			sub.Duplicate = apiErr.IsDuplicate()
		}
		return
	}

	sub.Status = StatusSuccess
	sub.Item = item

	// The refreshed server list takes over shortly; drop the transient entry
	time.AfterFunc(t.successTTL, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if current, ok := t.submissions[sub.ID]; ok && current.Status == StatusSuccess {
			delete(t.submissions, sub.ID)
		}
	})
}

// Retry discards a failed entry and submits its URL again under a brand-new
// id. Returns an error if the entry is missing or still loading.
func (t *Tracker) Retry(ctx context.Context, id string) (string, error) {
	t.mu.Lock()
	sub, ok := t.submissions[id]
	if !ok {
		t.mu.Unlock()
		return "", errors.New("submission not found")
	}
	if sub.Status == StatusLoading {
		t.mu.Unlock()
		return "", errors.New("submission still in flight")
	}
	url := sub.URL
	delete(t.submissions, id)
	t.mu.Unlock()

	return t.Submit(ctx, url), nil
}

// Dismiss removes an entry with no further action.
func (t *Tracker) Dismiss(id string) {
	t.mu.Lock()
	delete(t.submissions, id)
	t.mu.Unlock()
}

// Get returns a snapshot of one submission.
func (t *Tracker) Get(id string) (Submission, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sub, ok := t.submissions[id]
	if !ok {
		return Submission{}, false
	}
	return *sub, true
}

// Wait blocks until the submission leaves the loading state. Returns
// immediately if the id is unknown (dismissed or already cleaned up).
func (t *Tracker) Wait(id string) {
	t.mu.Lock()
	sub, ok := t.submissions[id]
	t.mu.Unlock()
	if !ok {
		return
	}
	<-sub.done
}

// Pending returns all transient entries ordered by submission time
// descending (newest first).
func (t *Tracker) Pending() []Submission {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending := make([]Submission, 0, len(t.submissions))
	for _, sub := range t.submissions {
		pending = append(pending, *sub)
	}
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].SubmittedAt.Equal(pending[j].SubmittedAt) {
			return pending[i].SubmittedAt.After(pending[j].SubmittedAt)
		}
		return pending[i].seq > pending[j].seq
	})
	return pending
}

// FeedEntry is one row of the merged view: either a transient submission or
// a committed item, never both.
type FeedEntry struct {
	Submission *Submission
	Item       *Item
}

// MergedView merges transient entries with the authoritative server list:
// pending/error/success entries first, newest submission first, followed by
// committed items by relevance descending then save time descending.
func (t *Tracker) MergedView(committed []Item) []FeedEntry {
	pending := t.Pending()

	sorted := make([]Item, len(committed))
	copy(sorted, committed)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RelevanceScore != sorted[j].RelevanceScore {
			return sorted[i].RelevanceScore > sorted[j].RelevanceScore
		}
		return sorted[i].SavedAt.After(sorted[j].SavedAt)
	})

	entries := make([]FeedEntry, 0, len(pending)+len(sorted))
	for i := range pending {
		entries = append(entries, FeedEntry{Submission: &pending[i]})
	}
	for i := range sorted {
		entries = append(entries, FeedEntry{Item: &sorted[i]})
	}
	return entries
}
