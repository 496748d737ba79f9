package models

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func testRecord() *SaveRecord {
	return &SaveRecord{
		Player:          Character{Name: "Investigador", Dialog: "Preciso descobrir a verdade..."},
		Inventory:       []Item{{Name: "lanterna", Effects: Effects{StatFear: -10}}},
		CurrentRoom:     "corredor",
		Health:          80,
		Fear:            35,
		Sanity:          70,
		Luck:            42,
		IsNight:         true,
		GameTime:        12,
		CompletedEvents: []string{"quiz:retratos"},
		EndingFlags:     map[string]bool{"good": false, "bad": false},
		RoomItems:       map[string][]string{"hall_entrada": {}},
	}
}

func TestSaveRecordYAML(t *testing.T) {
	data, err := EncodeSaveRecord(testRecord())
	if err != nil {
		t.Fatalf("Failed to marshal record: %v", err)
	}

	rec, err := DecodeSaveRecord(data)
	if err != nil {
		t.Fatalf("Failed to decode record: %v", err)
	}
	if rec.CurrentRoom != "corredor" || rec.Luck != 42 || !rec.IsNight {
		t.Errorf("Unexpected record %+v", rec)
	}
	if len(rec.Inventory) != 1 || rec.Inventory[0].Effects[StatFear] != -10 {
		t.Errorf("Expected inventory to survive, got %+v", rec.Inventory)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "saves"))

	if err := store.Save(ctx, "slot1", testRecord()); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	rec, err := store.Load(ctx, "slot1")
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if rec.GameTime != 12 || rec.CompletedEvents[0] != "quiz:retratos" {
		t.Errorf("Unexpected record %+v", rec)
	}

	slots, err := store.List(ctx)
	if err != nil || len(slots) != 1 || slots[0] != "slot1" {
		t.Errorf("Expected [slot1], got %v (%v)", slots, err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errorsIs(err, ErrSaveNotFound) {
		t.Errorf("Expected ErrSaveNotFound, got %v", err)
	}

	malformed := filepath.Join(dir, "malformed.yaml")
	os.WriteFile(malformed, []byte("player: [unclosed"), 0644)
	if _, err := LoadFile(malformed); !errorsIs(err, ErrSaveParse) {
		t.Errorf("Expected ErrSaveParse, got %v", err)
	}

	var fields map[string]any
	data, _ := EncodeSaveRecord(testRecord())
	yaml.Unmarshal(data, &fields)
	delete(fields, "luck")
	data, _ = yaml.Marshal(fields)
	incomplete := filepath.Join(dir, "incomplete.yaml")
	os.WriteFile(incomplete, data, 0644)
	if _, err := LoadFile(incomplete); !errorsIs(err, ErrSaveSchema) {
		t.Errorf("Expected ErrSaveSchema, got %v", err)
	}
}

func TestLoadFileAcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")
	os.WriteFile(path, []byte(`{
  "player": {"name": "Investigador", "description": "", "dialog": ""},
  "inventory": [],
  "current_room": "hall_entrada",
  "health": 100, "fear": 0, "sanity": 100, "luck": 7,
  "is_night": false, "game_time": 0,
  "completed_events": [],
  "ending_flags": {"good": false, "bad": false}
}`), 0644)

	rec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("Failed to load JSON save: %v", err)
	}
	if rec.Luck != 7 || rec.CurrentRoom != "hall_entrada" {
		t.Errorf("Unexpected record %+v", rec)
	}
}

func TestSaveFileUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	os.WriteFile(blocker, []byte("x"), 0644)

	// The parent "directory" is a regular file, so MkdirAll must fail.
	if err := SaveFile(filepath.Join(blocker, "save.yaml"), testRecord()); !errorsIs(err, ErrSaveIO) {
		t.Errorf("Expected ErrSaveIO, got %v", err)
	}
	if err := NewFileStore(dir).Save(context.Background(), "../escape", testRecord()); !errorsIs(err, ErrSaveIO) {
		t.Errorf("Expected ErrSaveIO for an invalid slot, got %v", err)
	}
}
