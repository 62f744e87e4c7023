// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-focus-warrior/pkg/character"
	"github.com/AccelByte/extend-focus-warrior/pkg/common"
	"github.com/AccelByte/extend-focus-warrior/pkg/metrics"
	"github.com/AccelByte/extend-focus-warrior/pkg/service"
)

// persister writes character snapshots on a single goroutine. Only the
// newest unsaved snapshot is kept, so writes never reorder and a burst
// of mutations costs one save.
type persister struct {
	repo    service.CharacterRepository
	timeout time.Duration

	mu      sync.Mutex
	pending *character.Character
	closed  bool

	wake    chan struct{}
	flushes chan chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func newPersister(repo service.CharacterRepository, timeout time.Duration) *persister {
	p := &persister{
		repo:    repo,
		timeout: timeout,
		wake:    make(chan struct{}, 1),
		flushes: make(chan chan struct{}),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

// enqueue schedules c for saving. It never blocks.
func (p *persister) enqueue(c character.Character) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.pending = &c
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.stopped)

	for {
		select {
		case <-p.wake:
			p.save()
		case ack := <-p.flushes:
			p.save()
			close(ack)
		case <-p.done:
			p.save()
			return
		}
	}
}

func (p *persister) save() {
	p.mu.Lock()
	c := p.pending
	p.pending = nil
	p.mu.Unlock()

	if c == nil {
		return
	}

	scope := common.NewScope(context.Background(), "progression.save")
	defer scope.Finish()
	scope.SetAttributes("level", c.Level)
	scope.SetAttributes("experience", c.Experience)

	ctx, cancel := context.WithTimeout(scope.Ctx, p.timeout)
	defer cancel()

	if err := p.repo.UpdateCharacter(ctx, c); err != nil {
		metrics.PersistenceFailuresTotal.WithLabelValues("save").Inc()
		scope.TraceError(err)
		scope.Log.Warnf("failed to save character, keeping in-memory state: %v", err)
		return
	}

	scope.Log.Debugf("saved character: level=%d, experience=%d", c.Level, c.Experience)
}

// flush waits until everything enqueued before the call has been handled.
func (p *persister) flush(ctx context.Context) error {
	ack := make(chan struct{})

	select {
	case p.flushes <- ack:
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close saves the last pending snapshot and stops the goroutine.
func (p *persister) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.done)
	<-p.stopped
}
