package scene

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene_node"
)

func (s *sceneManager) Start() {
	s.tickMu.Lock()
	closed := s.closed
	s.tickMu.Unlock()
	if closed {
		return
	}

	s.startOnce.Do(func() {
		ticks := s.ticks
		var ticker *time.Ticker
		if ticks == nil {
			ticker = time.NewTicker(s.tickInterval)
			ticks = ticker.C
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if ticker != nil {
				defer ticker.Stop()
			}
			s.updateThreadFunc(ticks)
		}()
		s.logger.Info("scene update thread started", "workers", s.workers, "interval", s.tickInterval)
	})
}

func (s *sceneManager) Suspend() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.suspended = true
	s.logger.Debug("scene update thread suspended")
}

func (s *sceneManager) Resume() {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	s.suspended = false
	s.resumed.Broadcast()
	s.logger.Debug("scene update thread resumed")
}

func (s *sceneManager) Suspended() bool {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	return s.suspended
}

func (s *sceneManager) Close() error {
	s.tickMu.Lock()
	if s.closed {
		s.tickMu.Unlock()
		return nil
	}
	s.closed = true
	s.resumed.Broadcast()
	s.tickMu.Unlock()

	close(s.quit)
	s.wg.Wait()
	s.pool.Stop()

	s.mu.Lock()
	s.cameras = nil
	s.lights = nil
	s.sceneNodes = nil
	s.activeFrustum = nil
	s.mu.Unlock()

	s.logger.Info("scene manager closed", "background_ticks", s.bgTicks.Load())
	return nil
}

// updateThreadFunc runs a background tick for every value received on ticks until quit.
func (s *sceneManager) updateThreadFunc(ticks <-chan time.Time) {
	for {
		select {
		case <-s.quit:
			return
		case <-ticks:
		}
		if !s.backgroundTick() {
			return
		}
	}
}

// backgroundTick runs every registered root's background commands. It holds tickMu for
// the whole tick so Update and Suspend wait for it, and blocks while suspended.
// Returns false once the manager is closed.
func (s *sceneManager) backgroundTick() bool {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()
	for s.suspended && !s.closed {
		s.resumed.Wait()
	}
	if s.closed {
		return false
	}

	s.setState(StateBackgroundUpdate)
	defer s.setState(StateIdle)

	elapsed := s.SceneUpdateElapse()
	now := s.now()
	if elapsed <= 0 && !s.lastTick.IsZero() {
		elapsed = float32(now.Sub(s.lastTick).Seconds())
	}
	s.lastTick = now
	appTime := s.appTime

	s.mu.Lock()
	roots := s.rootsLocked()
	s.mu.Unlock()

	// A WaitGroup gives the per-tick barrier; pool.Wait blocks until workers idle out,
	// which is unsuitable at tick rate.
	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		r := root
		s.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				r.Traverse(func(n scene_node.Node) bool {
					n.SubThreadUpdate(appTime, elapsed)
					return true
				})
				return nil, nil
			},
		})
	}
	wg.Wait()

	s.bgTicks.Add(1)
	return true
}
