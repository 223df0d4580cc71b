package daily

import (
	"context"

	"github.com/vovakirdan/oddgravity/internal/storage"
)

// ScoreQueue holds submissions the server has not accepted yet.
// storage.Store implements it over the score_queue table.
type ScoreQueue interface {
	EnqueueScore(playerID string, score int, mode string) error
	PendingScores() ([]storage.QueuedScore, error)
	DequeueScore(id int64) error
}

// Submitter delivers scores, parking them in the queue when the server is
// unreachable.
type Submitter struct {
	client *Client
	queue  ScoreQueue
}

// NewSubmitter creates a submitter.
func NewSubmitter(client *Client, queue ScoreQueue) *Submitter {
	return &Submitter{client: client, queue: queue}
}

// Submit tries to deliver one score; on failure it enqueues the entry so a
// later Flush can retry. Only a failed enqueue surfaces as an error.
func (s *Submitter) Submit(ctx context.Context, playerID string, score int, modeName string) error {
	if err := s.client.PostScore(ctx, playerID, score, modeName); err != nil {
		return s.queue.EnqueueScore(playerID, score, modeName)
	}
	return nil
}

// Flush drains the queue in enqueue order, stopping at the first failure so
// ordering is preserved for the next attempt. Returns how many entries were
// delivered.
func (s *Submitter) Flush(ctx context.Context) (int, error) {
	pending, err := s.queue.PendingScores()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, q := range pending {
		if err := s.client.PostScore(ctx, q.PlayerID, q.Score, q.Mode); err != nil {
			return sent, err
		}
		if err := s.queue.DequeueScore(q.ID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
