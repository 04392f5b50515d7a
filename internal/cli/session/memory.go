package session

import "sync"

// Memory is an in-memory Store used by tests and anywhere a throwaway
// session is acceptable.
type Memory struct {
	mu      sync.Mutex
	token   string
	profile *Profile
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Set(token string, profile *Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.profile = profile
	return nil
}

func (m *Memory) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.token, nil
}

func (m *Memory) Profile() *Profile {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.profile
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.profile = nil
	return nil
}
