package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/huddle/internal/models"
	"github.com/julianstephens/huddle/internal/storage/sqlite"
)

func backends(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"sqlite": New(filepath.Join(dir, "huddle.db"), nil),
		"json":   New(filepath.Join(dir, "huddle.json"), nil),
	}
}

func setupStore(t *testing.T, p Provider) {
	t.Helper()
	if err := p.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
}

func slot(day, time string) models.TimeSlot {
	return models.TimeSlot{Day: day, Time: time}
}

func TestNewSelectsBackend(t *testing.T) {
	if _, ok := New("x/huddle.json", nil).(*JSONStore); !ok {
		t.Error("expected JSONStore for .json path")
	}
	if _, ok := New("x/huddle.db", nil).(*sqlite.Store); !ok {
		t.Error("expected sqlite.Store for .db path")
	}
}

func TestLoadMissingStore(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := p.Load(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("Load() error = %v, want ErrNotInitialized", err)
			}
			if _, err := p.ListAll(); !errors.Is(err, ErrNotInitialized) {
				t.Errorf("ListAll() before load error = %v, want ErrNotInitialized", err)
			}
		})
	}
}

func TestOpenInitializesMissingStore(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := Open(p); err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			defer p.Close()

			subs, err := p.ListAll()
			if err != nil {
				t.Fatalf("ListAll() failed: %v", err)
			}
			if len(subs) != 0 {
				t.Errorf("expected empty store, got %d submissions", len(subs))
			}
			if _, err := os.Stat(p.GetConfigPath()); err != nil {
				t.Errorf("store file not created: %v", err)
			}
		})
	}
}

func TestUpsertInsertAndReplace(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			setupStore(t, p)

			if err := p.Upsert(models.Submission{Name: "Ada", Availability: []models.TimeSlot{slot("Monday", "09:00")}}); err != nil {
				t.Fatalf("Upsert(Ada) failed: %v", err)
			}
			if err := p.Upsert(models.Submission{Name: "Grace", Availability: []models.TimeSlot{slot("Tuesday", "10:00")}}); err != nil {
				t.Fatalf("Upsert(Grace) failed: %v", err)
			}

			before, err := p.ListAll()
			if err != nil {
				t.Fatalf("ListAll() failed: %v", err)
			}
			if len(before) != 2 {
				t.Fatalf("expected 2 submissions, got %d", len(before))
			}
			if before[0].ID == "" || before[1].ID == "" || before[0].ID == before[1].ID {
				t.Fatalf("expected distinct generated IDs, got %q and %q", before[0].ID, before[1].ID)
			}

			replacement := []models.TimeSlot{slot("Friday", "15:00"), slot("Friday", "16:00")}
			if err := p.Upsert(models.Submission{Name: "Ada", Availability: replacement}); err != nil {
				t.Fatalf("Upsert(Ada again) failed: %v", err)
			}

			after, err := p.ListAll()
			if err != nil {
				t.Fatalf("ListAll() failed: %v", err)
			}
			if len(after) != 2 {
				t.Fatalf("expected 2 submissions after replace, got %d", len(after))
			}
			if after[0].Name != "Ada" || after[1].Name != "Grace" {
				t.Errorf("replacement should keep position, got order %q, %q", after[0].Name, after[1].Name)
			}
			if after[0].ID != before[0].ID {
				t.Errorf("replacement should keep ID %q, got %q", before[0].ID, after[0].ID)
			}
			if len(after[0].Availability) != 2 || after[0].Availability[0] != replacement[0] {
				t.Errorf("replacement should overwrite availability in full, got %v", after[0].Availability)
			}
		})
	}
}

func TestUpsertKeepsCallerID(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			setupStore(t, p)
			if err := p.Upsert(models.Submission{ID: "fixed-id", Name: "Ada"}); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
			subs, _ := p.ListAll()
			if len(subs) != 1 || subs[0].ID != "fixed-id" {
				t.Errorf("expected caller ID to be stored, got %+v", subs)
			}
		})
	}
}

func TestClearAll(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			setupStore(t, p)
			for _, n := range []string{"Ada", "Grace", "Linus"} {
				if err := p.Upsert(models.Submission{Name: n}); err != nil {
					t.Fatalf("Upsert(%s) failed: %v", n, err)
				}
			}

			if err := p.ClearAll(); err != nil {
				t.Fatalf("ClearAll() failed: %v", err)
			}
			subs, err := p.ListAll()
			if err != nil {
				t.Fatalf("ListAll() failed: %v", err)
			}
			if len(subs) != 0 {
				t.Errorf("expected no submissions after clear, got %d", len(subs))
			}

			if err := p.Upsert(models.Submission{Name: "Ada"}); err != nil {
				t.Fatalf("Upsert after clear failed: %v", err)
			}
			subs, _ = p.ListAll()
			if len(subs) != 1 {
				t.Errorf("expected 1 submission after clear and insert, got %d", len(subs))
			}
		})
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := p.Init(); err != nil {
				t.Fatalf("Init() failed: %v", err)
			}
			if err := p.Upsert(models.Submission{Name: "Ada", Availability: []models.TimeSlot{slot("Sunday", "23:00")}}); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}
			p.Close()

			reopened := New(p.GetConfigPath(), nil)
			if err := reopened.Load(); err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			defer reopened.Close()

			subs, err := reopened.ListAll()
			if err != nil {
				t.Fatalf("ListAll() failed: %v", err)
			}
			if len(subs) != 1 || subs[0].Name != "Ada" || subs[0].Availability[0] != slot("Sunday", "23:00") {
				t.Errorf("unexpected submissions after reopen: %+v", subs)
			}
		})
	}
}

func TestListAllReturnsCopies(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			setupStore(t, p)
			if err := p.Upsert(models.Submission{Name: "Ada", Availability: []models.TimeSlot{slot("Monday", "09:00")}}); err != nil {
				t.Fatalf("Upsert failed: %v", err)
			}

			subs, _ := p.ListAll()
			subs[0].Availability[0] = slot("Sunday", "00:00")
			subs[0].Name = "Mallory"

			again, _ := p.ListAll()
			if again[0].Name != "Ada" || again[0].Availability[0] != slot("Monday", "09:00") {
				t.Errorf("mutating a listed submission changed the store: %+v", again[0])
			}
		})
	}
}

func TestJSONStoreLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huddle.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Upsert(models.Submission{ID: "abc", Name: "Ada", Availability: []models.TimeSlot{slot("Monday", "09:00")}}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read store: %v", err)
	}
	want := `{
  "meetingSubmissions": [
    {
      "id": "abc",
      "name": "Ada",
      "availability": [
        {
          "day": "Monday",
          "time": "09:00"
        }
      ]
    }
  ]
}`
	if string(data) != want {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestJSONStoreMalformedContent(t *testing.T) {
	tests := map[string]string{
		"not json":        "this is not json",
		"wrong type":      `{"meetingSubmissions": "oops"}`,
		"truncated":       `{"meetingSubmissions": [{"name": "Ada"`,
		"nameless entry":  `{"meetingSubmissions": [{"id": "x", "name": "  "}]}`,
		"other record":    `{"somethingElse": [1, 2, 3]}`,
		"empty file":      ``,
		"null submission": `{"meetingSubmissions": null}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "huddle.json")
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				t.Fatalf("failed to seed store: %v", err)
			}

			store := NewJSONStore(path)
			if err := store.Load(); err != nil {
				t.Fatalf("Load() should tolerate malformed content, got %v", err)
			}
			subs, err := store.ListAll()
			if err != nil {
				t.Fatalf("ListAll() failed: %v", err)
			}
			if len(subs) != 0 {
				t.Errorf("expected malformed content to read as empty, got %+v", subs)
			}

			if err := store.Upsert(models.Submission{Name: "Ada"}); err != nil {
				t.Fatalf("Upsert after malformed load failed: %v", err)
			}
			reloaded := NewJSONStore(path)
			if err := reloaded.Load(); err != nil {
				t.Fatalf("reload failed: %v", err)
			}
			subs, _ = reloaded.ListAll()
			if len(subs) != 1 {
				t.Errorf("expected next write to replace malformed content, got %+v", subs)
			}
		})
	}
}

func TestJSONStoreFailedWriteLeavesStateUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huddle.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Upsert(models.Submission{Name: "Ada"}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// A directory at the store path makes every write fail
	if err := os.Remove(path); err != nil {
		t.Fatalf("failed to remove store: %v", err)
	}
	if err := os.Mkdir(path, 0700); err != nil {
		t.Fatalf("failed to create blocking directory: %v", err)
	}

	if err := store.Upsert(models.Submission{Name: "Grace"}); err == nil {
		t.Fatal("expected write failure")
	}
	if err := store.ClearAll(); err == nil {
		t.Fatal("expected clear failure")
	}

	subs, _ := store.ListAll()
	if len(subs) != 1 || subs[0].Name != "Ada" {
		t.Errorf("failed writes should not change the store, got %+v", subs)
	}
}

func TestSQLiteStoreSkipsMalformedRows(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "huddle.db"), nil)
	setupStore(t, store)

	if err := store.Upsert(models.Submission{Name: "Ada", Availability: []models.TimeSlot{slot("Monday", "09:00")}}); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	_, err := store.GetDB().Exec(`INSERT INTO submissions (id, name, position, availability, updated_at)
		VALUES ('bad', 'Broken', 99, '{not json', '2024-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to seed malformed row: %v", err)
	}

	subs, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	if len(subs) != 1 || subs[0].Name != "Ada" {
		t.Errorf("expected malformed row to be skipped, got %+v", subs)
	}
}

func TestSQLiteSchemaVersion(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "huddle.db"), nil)
	setupStore(t, store)

	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() failed: %v", err)
	}
	if current != latest || current < 1 {
		t.Errorf("expected fully migrated schema, got current=%d latest=%d", current, latest)
	}
}

func TestOpenOrEmptyUnreadableStore(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string) string
	}{
		{
			name: "sqlite file with garbage",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "huddle.db")
				if err := os.WriteFile(path, []byte(strings.Repeat("this is not a sqlite database\n", 64)), 0600); err != nil {
					t.Fatal(err)
				}
				return path
			},
		},
		{
			name: "json path is a directory",
			setup: func(t *testing.T, dir string) string {
				path := filepath.Join(dir, "huddle.json")
				if err := os.Mkdir(path, 0700); err != nil {
					t.Fatal(err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t, t.TempDir())
			before, _ := os.ReadFile(path)

			raw := New(path, nil)
			if err := Open(raw); err == nil {
				t.Fatal("Open() should fail for an unreadable store")
			}
			raw.Close()

			p := OpenOrEmpty(New(path, nil))
			defer p.Close()

			subs, err := p.ListAll()
			if err != nil {
				t.Fatalf("ListAll() error = %v", err)
			}
			if len(subs) != 0 {
				t.Errorf("ListAll() = %v, want empty", subs)
			}
			if p.GetConfigPath() != path {
				t.Errorf("GetConfigPath() = %q, want %q", p.GetConfigPath(), path)
			}

			if err := p.Upsert(models.Submission{Name: "Alice", Availability: []models.TimeSlot{slot("Monday", "09:00")}}); err == nil {
				t.Error("Upsert() should fail on an unreadable store")
			}
			if err := p.ClearAll(); err == nil {
				t.Error("ClearAll() should fail on an unreadable store")
			}

			after, _ := os.ReadFile(path)
			if string(before) != string(after) {
				t.Error("unreadable store was modified")
			}
		})
	}
}

func TestOpenOrEmptyKeepsHealthyStore(t *testing.T) {
	for name, p := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got := OpenOrEmpty(p)
			defer got.Close()
			if got != p {
				t.Fatalf("OpenOrEmpty() replaced a healthy %s store", name)
			}
			if err := got.Upsert(models.Submission{Name: "Alice"}); err != nil {
				t.Errorf("Upsert() error = %v", err)
			}
		})
	}
}
