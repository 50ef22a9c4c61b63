package prefs

import (
	"context"
	"testing"

	"github.com/orchidsoft/taskgate/storage"
)

func TestDefaults(t *testing.T) {
	m := NewManager(storage.NewMemory())

	p := m.Snapshot()
	if p.Theme != ThemeLight || p.Language != "zh-cn" || !p.SidebarOpened {
		t.Fatalf("defaults = %+v", p)
	}
}

func TestLoadMissingKeepsDefaults(t *testing.T) {
	m := NewManager(storage.NewMemory())

	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p := m.Snapshot(); p.Theme != ThemeLight {
		t.Fatalf("prefs after empty load = %+v", p)
	}
}

func TestChangesPersistAcrossManagers(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	m1 := NewManager(store)
	if err := m1.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if err := m1.SetLanguage(ctx, "en"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	if opened, err := m1.ToggleSidebar(ctx); err != nil || opened {
		t.Fatalf("ToggleSidebar = (%v, %v)", opened, err)
	}

	m2 := NewManager(store)
	if err := m2.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := m2.Snapshot()
	if p.Theme != ThemeDark || p.Language != "en" || p.SidebarOpened {
		t.Fatalf("reloaded prefs = %+v", p)
	}
}

func TestLoadCorruptDocumentKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	if err := store.Set(ctx, "tg_app_prefs", "{not json", 0); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := NewManager(store)
	if err := m.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p := m.Snapshot(); p.Theme != ThemeLight {
		t.Fatalf("prefs after corrupt load = %+v", p)
	}
}
