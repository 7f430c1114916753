// Package state tracks each chat's position in the booking dialog,
// together with the transient selections (service, time) gathered along
// the way. Everything here is in-memory and thrown away when the dialog
// completes or is cancelled.
package state

import "sync"

// Manager holds per-chat dialog state behind a mutex, since bot handlers
// run on separate goroutines.
type Manager struct {
	mu    sync.RWMutex
	chats map[int64]*chatData
}

func NewManager() *Manager {
	return &Manager{
		chats: make(map[int64]*chatData),
	}
}

// GetState returns the chat's current dialog state.
func (m *Manager) GetState(chatID int64) DialogState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		return d.State
	}
	return StateNone
}

// SetState moves the chat to a dialog state. Setting StateNone clears the
// chat's entry entirely, selections included.
func (m *Manager) SetState(chatID int64, state DialogState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state == StateNone {
		delete(m.chats, chatID)
		return
	}

	if d, ok := m.chats[chatID]; ok {
		d.State = state
		return
	}
	m.chats[chatID] = &chatData{
		State: state,
		Data:  make(map[string]string),
	}
}

// GetData returns a transient selection stored for the chat.
func (m *Manager) GetData(chatID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if d, ok := m.chats[chatID]; ok {
		v, ok := d.Data[key]
		return v, ok
	}
	return "", false
}

// SetData stores a transient selection for the chat.
func (m *Manager) SetData(chatID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.chats[chatID]
	if !ok {
		d = &chatData{
			State: StateNone,
			Data:  make(map[string]string),
		}
		m.chats[chatID] = d
	}
	d.Data[key] = value
}

// Clear drops the chat's dialog state and selections.
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.chats, chatID)
}
