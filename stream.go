package nitter

import (
	"context"
	"iter"
	"log/slog"
)

// step is the decision taken by one turn of the stream state machine.
type step int

const (
	stepStop        step = iota // already terminal
	stepEnd                     // end normally
	stepYieldPinned             // emit the stashed pinned tweet
	stepYieldHead               // emit the queue head
	stepFloor                   // queue head is below MinID
	stepFetch                   // queue is empty, fetch the next page
)

// Stream is a lazily fetched sequence of tweets for one query.
// A Stream is not safe for concurrent use; each Timeline call returns an
// independent one.
type Stream struct {
	client       *Client
	cfg          StreamConfig
	path         string
	initialQuery string

	queue   []*Tweet
	cursor  Cursor
	pinned  *Tweet
	emitted int
	status  Status
	err     error
}

func newStream(c *Client, cfg StreamConfig) *Stream {
	path, rawQuery := cfg.Query.Encode()
	return &Stream{
		client:       c,
		cfg:          cfg,
		path:         path,
		initialQuery: rawQuery,
		cursor:       InitialCursor(),
	}
}

// Next returns the next tweet. A parse or network failure is returned once
// as the final item; after that, and after any normal or account-state end,
// Next returns Done. Status reports why the stream ended.
func (s *Stream) Next(ctx context.Context) (*Tweet, error) {
	for {
		switch s.decide() {
		case stepStop:
			return nil, Done

		case stepEnd:
			s.finish(StatusEnded, nil)
			return nil, Done

		case stepYieldPinned:
			t := s.pinned
			s.pinned = nil
			return s.emit(t), nil

		case stepYieldHead:
			t := s.queue[0]
			s.queue[0] = nil
			s.queue = s.queue[1:]
			return s.emit(t), nil

		case stepFloor:
			// ids only decrease down the timeline, so nothing after this is wanted
			slog.Debug("min id reached",
				slog.String("query", s.cfg.Query.String()),
				slog.String("head_id", s.queue[0].IDStr))
			s.queue = nil
			s.cursor = s.cursor.Advance(EndCursor())

		case stepFetch:
			if err := s.fetchNext(ctx); err != nil {
				class := classifyError(err)
				s.finish(class.status(), err)
				if class == errOperational {
					return nil, err
				}
				return nil, Done
			}
		}
	}
}

// decide picks the next step from the current state without changing it.
func (s *Stream) decide() step {
	if s.status.Terminal() {
		return stepStop
	}
	if s.cfg.Limit > 0 && s.emitted >= s.cfg.Limit {
		return stepEnd
	}

	if len(s.queue) > 0 {
		head := s.queue[0]
		switch {
		case s.cfg.ReorderPinned && s.pinned != nil && s.pinned.CreatedAtTS > head.CreatedAtTS:
			return stepYieldPinned
		case s.belowFloor(head):
			return stepFloor
		default:
			return stepYieldHead
		}
	}

	if s.cursor.IsEnd() {
		if s.pinned != nil {
			return stepYieldPinned
		}
		return stepEnd
	}
	return stepFetch
}

// fetchNext loads the page at the current cursor into the queue.
func (s *Stream) fetchNext(ctx context.Context) error {
	rawQuery := s.initialQuery
	if s.cursor.State == CursorMore {
		rawQuery = s.cursor.Token
	}
	url := s.client.pageURL(s.path, rawQuery)

	page, err := s.client.fetcher.fetch(ctx, url)
	if err != nil {
		return err
	}
	tweets, next, err := s.client.parser.ParsePage(page)
	if err != nil {
		return err
	}

	slog.Debug("page fetched",
		slog.String("url", url),
		slog.Int("tweets", len(tweets)),
		slog.String("cursor", next.String()))

	if next.State == CursorMore && s.cursor.State == CursorMore && next.Token == s.cursor.Token {
		slog.Warn("instance returned the same cursor twice, stopping", slog.String("url", url))
		next = EndCursor()
	}

	s.enqueue(tweets)
	s.cursor = s.cursor.Advance(next)
	return nil
}

// enqueue applies the retweet filter and pinned stashing, then appends
// the remaining tweets in page order.
func (s *Stream) enqueue(tweets []*Tweet) {
	for _, t := range tweets {
		if s.cfg.SkipRetweets && t.Retweet {
			continue
		}
		if s.cfg.ReorderPinned && t.Pinned {
			if !s.belowFloor(t) {
				s.pinned = t
			}
			continue
		}
		s.queue = append(s.queue, t)
	}
}

func (s *Stream) belowFloor(t *Tweet) bool {
	return s.cfg.MinID > 0 && t.ID < s.cfg.MinID
}

func (s *Stream) emit(t *Tweet) *Tweet {
	s.emitted++
	return t
}

func (s *Stream) finish(status Status, err error) {
	s.status = status
	s.err = err
	s.queue = nil
	s.pinned = nil

	attrs := []any{
		slog.String("query", s.cfg.Query.String()),
		slog.String("status", status.String()),
		slog.Int("emitted", s.emitted),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	slog.Info("stream ended", attrs...)
}

// All returns an iterator over the remaining items of the stream. It stops
// after the final error item, if any.
func (s *Stream) All(ctx context.Context) iter.Seq2[*Tweet, error] {
	return func(yield func(*Tweet, error) bool) {
		for {
			t, err := s.Next(ctx)
			if err == Done {
				return
			}
			if !yield(t, err) || err != nil {
				return
			}
		}
	}
}

// Status returns the stream's status; StatusRunning until it ends.
func (s *Stream) Status() Status { return s.status }

// Err returns the error that ended the stream, if any. Account-state ends
// report ErrProtected, ErrSuspended or ErrNotFound (possibly wrapped).
func (s *Stream) Err() error { return s.err }

// Emitted returns the number of tweets returned so far.
func (s *Stream) Emitted() int { return s.emitted }

// Cursor returns the current pagination cursor.
func (s *Stream) Cursor() Cursor { return s.cursor }
