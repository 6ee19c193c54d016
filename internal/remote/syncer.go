package remote

import (
	"context"
	"log/slog"
	"time"
)

type Saver interface {
	Save(ctx context.Context, userID string, snap *Snapshot) error
}

// Syncer pushes snapshots to a Saver from a single background goroutine.
// Only the most recent pending snapshot is kept; older ones are replaced.
type Syncer struct {
	saver   Saver
	userID  string
	logger  *slog.Logger
	timeout time.Duration

	pending chan *Snapshot
	quit    chan struct{}
	done    chan struct{}
}

func NewSyncer(saver Saver, userID string, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Syncer{
		saver:   saver,
		userID:  userID,
		logger:  logger,
		timeout: 10 * time.Second,
		pending: make(chan *Snapshot, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s
}

// Push queues snap for saving without blocking. A snapshot still waiting
// in the queue is dropped in favour of snap.
func (s *Syncer) Push(snap *Snapshot) {
	for {
		select {
		case s.pending <- snap:
			return
		default:
		}
		select {
		case <-s.pending:
		default:
		}
	}
}

// Close saves whatever is still queued and stops the goroutine.
func (s *Syncer) Close() {
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
	<-s.done
}

func (s *Syncer) loop() {
	defer close(s.done)
	for {
		select {
		case snap := <-s.pending:
			s.save(snap)
		case <-s.quit:
			select {
			case snap := <-s.pending:
				s.save(snap)
			default:
			}
			return
		}
	}
}

func (s *Syncer) save(snap *Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.saver.Save(ctx, s.userID, snap); err != nil {
		s.logger.Warn("remote save failed", "user", s.userID, "error", err)
		return
	}
	s.logger.Debug("remote save", "user", s.userID)
}
