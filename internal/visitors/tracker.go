package visitors

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Hasher turns IP addresses into stable, salted, truncated digests.
type Hasher struct {
	salt string
}

// NewHasher uses salt, or a random per-process salt when salt is empty.
// A random salt means hashes do not line up across restarts.
func NewHasher(salt string) (h Hasher, err error) {
	if salt == "" {
		b := make([]byte, 32)
		_, err = rand.Read(b)
		if err != nil {
			err = errors.Wrap(err, "failed to generate hashing salt")
			return h, err
		}
		salt = hex.EncodeToString(b)
	}
	h = Hasher{salt: salt}
	return h, err
}

// Hash returns the first 16 hex characters of sha256(ip + salt).
func (h Hasher) Hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Hit is a raw page view before hashing.
type Hit struct {
	IP        string
	UserAgent string
	Path      string
}

// Tracker records hits on a single background worker so request
// handlers never wait on the database.
type Tracker struct {
	store  *Store
	hasher Hasher
	log    *zap.Logger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan Hit
	done   chan struct{}
}

// NewTracker starts the worker. queueSize bounds how many hits may wait;
// beyond that Track drops them.
func NewTracker(store *Store, hasher Hasher, logger *zap.Logger, queueSize int) *Tracker {
	if queueSize <= 0 {
		queueSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{
		store:  store,
		hasher: hasher,
		log:    logger,
		now:    time.Now,
		queue:  make(chan Hit, queueSize),
		done:   make(chan struct{}),
	}
	go t.run()
	return t
}

// Track queues h and reports whether it was accepted.
func (t *Tracker) Track(h Hit) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return false
	}
	select {
	case t.queue <- h:
		return true
	default:
		t.log.Warn("visit queue full, dropping hit", zap.String("path", h.Path))
		return false
	}
}

// Close stops accepting hits and waits for queued ones to be written.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	close(t.queue)
	t.mu.Unlock()
	<-t.done
}

func (t *Tracker) run() {
	defer close(t.done)
	for h := range t.queue {
		v := Visit{
			HashedIP:  t.hasher.Hash(h.IP),
			UserAgent: h.UserAgent,
			Path:      h.Path,
			VisitedAt: t.now(),
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := t.store.Record(ctx, v)
		cancel()
		if err != nil {
			t.log.Error("failed to record visit", zap.Error(err))
		}
	}
}

// PruneLoop deletes visits older than retention once immediately and then
// every interval until ctx is done.
func PruneLoop(ctx context.Context, store *Store, retention time.Duration, interval time.Duration, logger *zap.Logger) error {
	prune := func() {
		n, err := store.Prune(ctx, time.Now().Add(-retention))
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("visit pruning failed", zap.Error(err))
			}
			return
		}
		if n > 0 {
			logger.Info("pruned old visits", zap.Int64("rows", n), zap.Duration("retention", retention))
		}
	}

	prune()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			prune()
		}
	}
}
