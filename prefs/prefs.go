package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/orchidsoft/taskgate/storage"
)

const storageKey = "tg_app_prefs"

// Known theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Prefs is the persisted preference document.
type Prefs struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	Size          string `json:"size"`
	SidebarOpened bool   `json:"sidebar_opened"`
}

func defaults() Prefs {
	return Prefs{
		Theme:         ThemeLight,
		Language:      "zh-cn",
		Size:          "default",
		SidebarOpened: true,
	}
}

// Manager holds the in-memory preference state and writes every change
// through to the backing store. Safe for concurrent use.
type Manager struct {
	store storage.Store

	mu    sync.Mutex
	prefs Prefs
}

// NewManager builds a Manager with defaults; call Load to pick up the
// persisted state.
func NewManager(store storage.Store) *Manager {
	return &Manager{
		store: store,
		prefs: defaults(),
	}
}

// Load replaces in-memory state with the persisted document. A missing or
// corrupt document leaves the defaults in place.
func (m *Manager) Load(ctx context.Context) error {
	raw, err := m.store.Get(ctx, storageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("prefs: load: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil
	}

	m.mu.Lock()
	m.prefs = p
	m.mu.Unlock()

	return nil
}

// Snapshot returns a copy of the current preferences.
func (m *Manager) Snapshot() Prefs {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

// SetTheme updates and persists the theme.
func (m *Manager) SetTheme(ctx context.Context, theme string) error {
	return m.update(ctx, func(p *Prefs) { p.Theme = theme })
}

// SetLanguage updates and persists the UI language.
func (m *Manager) SetLanguage(ctx context.Context, language string) error {
	return m.update(ctx, func(p *Prefs) { p.Language = language })
}

// SetSize updates and persists the UI density.
func (m *Manager) SetSize(ctx context.Context, size string) error {
	return m.update(ctx, func(p *Prefs) { p.Size = size })
}

// ToggleSidebar flips the sidebar state and returns the new value.
func (m *Manager) ToggleSidebar(ctx context.Context) (bool, error) {
	var opened bool
	err := m.update(ctx, func(p *Prefs) {
		p.SidebarOpened = !p.SidebarOpened
		opened = p.SidebarOpened
	})
	return opened, err
}

func (m *Manager) update(ctx context.Context, mutate func(*Prefs)) error {
	m.mu.Lock()
	mutate(&m.prefs)
	p := m.prefs
	m.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := m.store.Set(ctx, storageKey, string(data), 0); err != nil {
		return fmt.Errorf("prefs: persist: %w", err)
	}
	return nil
}
