package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"omal-editor/internal/logger"
)

const DefaultStepTimeout = 10 * time.Second

type Shutdownable interface {
	Shutdown()
}

type step struct {
	name      string
	component Shutdownable
}

// Manager stops registered components in reverse registration order, once.
type Manager struct {
	logger      logger.Logger
	stepTimeout time.Duration

	mu    sync.Mutex
	steps []step
	once  sync.Once
	done  chan struct{}
}

func NewManager(log logger.Logger, stepTimeout time.Duration) *Manager {
	if stepTimeout <= 0 {
		stepTimeout = DefaultStepTimeout
	}
	return &Manager{
		logger:      log,
		stepTimeout: stepTimeout,
		done:        make(chan struct{}),
	}
}

func (m *Manager) Register(name string, component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, step{name: name, component: component})
}

// Listen shuts down on SIGINT/SIGTERM and then calls onSignal, which the
// entrypoint uses to quit the event loop. It stops listening when ctx ends.
func (m *Manager) Listen(ctx context.Context, onSignal func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			m.logger.Info("Shutdown", "signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
			if onSignal != nil {
				onSignal()
			}
		case <-ctx.Done():
		case <-m.done:
		}
	}()
}

// Shutdown is safe to call more than once; only the first call does work.
func (m *Manager) Shutdown() {
	m.once.Do(m.shutdown)
}

func (m *Manager) shutdown() {
	defer close(m.done)

	m.mu.Lock()
	steps := make([]step, len(m.steps))
	copy(steps, m.steps)
	m.mu.Unlock()

	m.logger.Info("Shutdown", "shutdown sequence initiated", map[string]interface{}{
		"components": len(steps),
	})

	for i := len(steps) - 1; i >= 0; i-- {
		s := steps[i]

		finished := make(chan struct{})
		go func() {
			defer close(finished)
			s.component.Shutdown()
		}()

		select {
		case <-finished:
			m.logger.Debug("Shutdown", "component stopped", map[string]interface{}{"component": s.name})
		case <-time.After(m.stepTimeout):
			m.logger.Warning("Shutdown", "component shutdown timeout", map[string]interface{}{
				"component": s.name,
			})
		}
	}

	m.logger.Info("Shutdown", "shutdown sequence completed", nil)
}

func (m *Manager) Done() <-chan struct{} {
	return m.done
}
