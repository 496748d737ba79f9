package models

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultSaveDir is where FileStore keeps its slots.
	DefaultSaveDir = ".saves"
	// DefaultSlot is used when the player saves without naming a slot.
	DefaultSlot = "save_game"

	saveExt = ".yaml"
)

// SaveRecord is the serialized form of a game in progress.
type SaveRecord struct {
	Player          Character           `yaml:"player"`
	Inventory       []Item              `yaml:"inventory"`
	CurrentRoom     string              `yaml:"current_room"`
	Health          int                 `yaml:"health"`
	Fear            int                 `yaml:"fear"`
	Sanity          int                 `yaml:"sanity"`
	Luck            int                 `yaml:"luck"`
	IsNight         bool                `yaml:"is_night"`
	GameTime        int                 `yaml:"game_time"`
	CompletedEvents []string            `yaml:"completed_events"`
	EndingFlags     map[string]bool     `yaml:"ending_flags"`
	RoomItems       map[string][]string `yaml:"room_items,omitempty"` // room ID -> items left there
}

// requiredSaveFields must all be present in a save for it to load.
var requiredSaveFields = []string{
	"player", "inventory", "current_room", "health", "fear", "sanity",
	"luck", "is_night", "game_time", "completed_events", "ending_flags",
}

// SaveStore persists save records by slot name.
type SaveStore interface {
	Save(ctx context.Context, slot string, rec *SaveRecord) error
	Load(ctx context.Context, slot string) (*SaveRecord, error)
	List(ctx context.Context) ([]string, error)
}

// EncodeSaveRecord marshals rec to YAML.
func EncodeSaveRecord(rec *SaveRecord) ([]byte, error) {
	return yaml.Marshal(rec)
}

// DecodeSaveRecord unmarshals a YAML (or JSON) save and checks that every
// required field is present. It never returns a partial record.
func DecodeSaveRecord(data []byte) (*SaveRecord, error) {
	var fields map[string]yaml.Node
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveParse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: empty document", ErrSaveParse)
	}

	var missing []string
	for _, name := range requiredSaveFields {
		if _, ok := fields[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrSaveSchema, strings.Join(missing, ", "))
	}

	var rec SaveRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveParse, err)
	}
	if rec.EndingFlags == nil {
		rec.EndingFlags = map[string]bool{}
	}
	return &rec, nil
}

// SaveFile writes rec to path, creating the parent directory if needed.
func SaveFile(path string, rec *SaveRecord) error {
	data, err := EncodeSaveRecord(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveIO, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveIO, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveIO, err)
	}
	return nil
}

// LoadFile reads a save from path.
func LoadFile(path string) (*SaveRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSaveNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveParse, err)
	}
	rec, err := DecodeSaveRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// FileStore keeps one YAML file per slot in Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir, or DefaultSaveDir when dir is empty.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultSaveDir
	}
	return &FileStore{Dir: dir}
}

func (s *FileStore) Save(_ context.Context, slot string, rec *SaveRecord) error {
	path, err := s.path(slot)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveIO, err)
	}
	return SaveFile(path, rec)
}

func (s *FileStore) Load(_ context.Context, slot string) (*SaveRecord, error) {
	path, err := s.path(slot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveNotFound, err)
	}
	return LoadFile(path)
}

// List returns the slots that have a save file.
func (s *FileStore) List(_ context.Context) ([]string, error) {
	if _, err := os.Stat(s.Dir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == saveExt {
			slots = append(slots, strings.TrimSuffix(entry.Name(), saveExt))
		}
	}
	return slots, nil
}

func (s *FileStore) path(slot string) (string, error) {
	if err := ValidateSlot(slot); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, slot+saveExt), nil
}

// ValidateSlot rejects slot names that would escape the save directory.
func ValidateSlot(slot string) error {
	if slot == "" || slot == "." || slot == ".." || strings.ContainsAny(slot, `/\`) {
		return fmt.Errorf("invalid slot name %q", slot)
	}
	return nil
}
