package app

import (
	"sync"

	"cruze/gateway"
	"cruze/llm"
)

// Manager hands out one Controller per authenticated user. A controller is
// created on the user's first request after sign-in; its initial remote
// load runs at most once.
type Manager struct {
	gw       gateway.Gateway
	provider llm.Provider

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewManager(gw gateway.Gateway, provider llm.Provider) *Manager {
	return &Manager{
		gw:          gw,
		provider:    provider,
		controllers: make(map[string]*Controller),
	}
}

// Controller returns the controller for the user, creating it on first use.
func (m *Manager) Controller(userCode string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.controllers[userCode]; ok {
		return c
	}
	c := NewController(userCode, m.gw, m.provider)
	m.controllers[userCode] = c
	return c
}

// Evict drops the user's controller, used on sign-out so the next sign-in
// starts from a fresh remote load.
func (m *Manager) Evict(userCode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.controllers, userCode)
}
