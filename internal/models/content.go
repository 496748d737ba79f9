package models

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Content file names inside a content directory.
const (
	WorldFile   = "world.yaml"
	QuizFile    = "quizzes.yaml"
	PuzzleFile  = "puzzles.yaml"
	ItemFile    = "items.yaml"
	RecipesFile = "recipes.yaml"
)

// Quiz is a multiple-choice challenge bound to a room.
type Quiz struct {
	ID           string   `yaml:"-"`
	Prompt       string   `yaml:"prompt"`
	Options      []string `yaml:"options"`
	Correct      int      `yaml:"correct"`
	RewardItem   string   `yaml:"reward_item"`
	RewardEffect Effects  `yaml:"reward_effect"`
	Penalty      Effects  `yaml:"penalty"`
}

// Solution is the set of accepted answers to a puzzle. In YAML it is either
// a single string or a list of strings.
type Solution []string

// UnmarshalYAML accepts a scalar or a sequence.
func (s *Solution) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = Solution{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	return fmt.Errorf("line %d: solution must be a string or a list of strings", node.Line)
}

// Matches reports whether text is an accepted answer, ignoring case.
func (s Solution) Matches(text string) bool {
	text = strings.TrimSpace(text)
	return slices.ContainsFunc(s, func(accepted string) bool {
		return strings.EqualFold(accepted, text)
	})
}

// Puzzle is a free-text riddle bound to a room.
type Puzzle struct {
	ID           string   `yaml:"-"`
	Prompt       string   `yaml:"prompt"`
	Solution     Solution `yaml:"solution"`
	RewardItem   string   `yaml:"reward_item"`
	RewardEffect Effects  `yaml:"reward_effect"`
	Unlocks      string   `yaml:"unlocks"`
	Penalty      Effects  `yaml:"penalty"`
}

// QuizRegistry is a read-only table of quizzes.
type QuizRegistry struct {
	quizzes map[string]*Quiz
}

// NewQuizRegistry indexes the given quizzes by ID.
func NewQuizRegistry(quizzes ...*Quiz) *QuizRegistry {
	r := &QuizRegistry{quizzes: make(map[string]*Quiz, len(quizzes))}
	for _, q := range quizzes {
		r.quizzes[q.ID] = q
	}
	return r
}

// Get returns the quiz with the given ID, or nil.
func (r *QuizRegistry) Get(id string) *Quiz {
	return r.quizzes[id]
}

// ValidateAnswer reports whether index is the registered correct option.
// Out-of-range indexes and unknown quizzes are simply wrong answers.
func (r *QuizRegistry) ValidateAnswer(id string, index int) bool {
	q := r.quizzes[id]
	if q == nil {
		return false
	}
	return index >= 0 && index < len(q.Options) && index == q.Correct
}

// Reward returns what answering the quiz correctly grants.
func (r *QuizRegistry) Reward(id string) (Reward, bool) {
	q := r.quizzes[id]
	if q == nil {
		return Reward{}, false
	}
	return Reward{Item: q.RewardItem, Effect: q.RewardEffect}, true
}

// Penalty returns the effect applied on a wrong answer.
func (r *QuizRegistry) Penalty(id string) (Effects, bool) {
	q := r.quizzes[id]
	if q == nil || len(q.Penalty) == 0 {
		return nil, false
	}
	return q.Penalty, true
}

// IDs returns the registered quiz IDs.
func (r *QuizRegistry) IDs() []string {
	return sortedKeys(r.quizzes)
}

// PuzzleRegistry is a read-only table of puzzles.
type PuzzleRegistry struct {
	puzzles map[string]*Puzzle
}

// NewPuzzleRegistry indexes the given puzzles by ID.
func NewPuzzleRegistry(puzzles ...*Puzzle) *PuzzleRegistry {
	r := &PuzzleRegistry{puzzles: make(map[string]*Puzzle, len(puzzles))}
	for _, p := range puzzles {
		r.puzzles[p.ID] = p
	}
	return r
}

// Get returns the puzzle with the given ID, or nil.
func (r *PuzzleRegistry) Get(id string) *Puzzle {
	return r.puzzles[id]
}

// CheckSolution reports whether text solves the puzzle.
func (r *PuzzleRegistry) CheckSolution(id, text string) bool {
	p := r.puzzles[id]
	if p == nil {
		return false
	}
	return p.Solution.Matches(text)
}

// Reward returns what solving the puzzle grants.
func (r *PuzzleRegistry) Reward(id string) (Reward, bool) {
	p := r.puzzles[id]
	if p == nil {
		return Reward{}, false
	}
	return Reward{Item: p.RewardItem, Effect: p.RewardEffect, Unlocks: p.Unlocks}, true
}

// Penalty returns the effect applied on a wrong solution.
func (r *PuzzleRegistry) Penalty(id string) (Effects, bool) {
	p := r.puzzles[id]
	if p == nil || len(p.Penalty) == 0 {
		return nil, false
	}
	return p.Penalty, true
}

// IDs returns the registered puzzle IDs.
func (r *PuzzleRegistry) IDs() []string {
	return sortedKeys(r.puzzles)
}

// ItemCatalog holds the definitions of every known item.
type ItemCatalog struct {
	items map[string]Item
}

// NewItemCatalog indexes item definitions by lower-cased name.
func NewItemCatalog(items ...Item) *ItemCatalog {
	c := &ItemCatalog{items: make(map[string]Item, len(items))}
	for _, item := range items {
		c.items[strings.ToLower(item.Name)] = item
	}
	return c
}

// New returns a fresh item for name. Unknown names yield a bare item.
func (c *ItemCatalog) New(name string) Item {
	def, ok := c.items[strings.ToLower(name)]
	if !ok {
		return Item{Name: name}
	}
	def.Effects = maps.Clone(def.Effects)
	return def
}

// Known reports whether the catalog defines name.
func (c *ItemCatalog) Known(name string) bool {
	_, ok := c.items[strings.ToLower(name)]
	return ok
}

// RecipeBook finds the result of combining two items.
type RecipeBook struct {
	recipes []Recipe
}

// NewRecipeBook wraps the given recipes.
func NewRecipeBook(recipes ...Recipe) *RecipeBook {
	return &RecipeBook{recipes: recipes}
}

// Find returns the recipe for a and b in either order.
func (b *RecipeBook) Find(x, y string) (Recipe, bool) {
	for _, r := range b.recipes {
		if strings.EqualFold(r.Items[0], x) && strings.EqualFold(r.Items[1], y) ||
			strings.EqualFold(r.Items[0], y) && strings.EqualFold(r.Items[1], x) {
			return r, true
		}
	}
	return Recipe{}, false
}

// Recipes returns every known recipe.
func (b *RecipeBook) Recipes() []Recipe {
	return slices.Clone(b.recipes)
}

// Content bundles everything loaded from a content directory.
type Content struct {
	World   *World
	Quizzes *QuizRegistry
	Puzzles *PuzzleRegistry
	Items   *ItemCatalog
	Recipes *RecipeBook
}

// LoadContent reads every content file from fsys. Only the world file is
// mandatory; the other tables are empty when their file is absent.
func LoadContent(fsys fs.FS) (*Content, error) {
	world, err := LoadWorld(fsys, WorldFile)
	if err != nil {
		return nil, err
	}

	var quizSpecs map[string]*Quiz
	if err := loadOptional(fsys, QuizFile, &quizSpecs); err != nil {
		return nil, err
	}
	quizzes := make([]*Quiz, 0, len(quizSpecs))
	for id, q := range quizSpecs {
		if q == nil {
			return nil, fmt.Errorf("%s: %w: quiz %q is empty", QuizFile, ErrLoad, id)
		}
		q.ID = id
		quizzes = append(quizzes, q)
	}

	var puzzleSpecs map[string]*Puzzle
	if err := loadOptional(fsys, PuzzleFile, &puzzleSpecs); err != nil {
		return nil, err
	}
	puzzles := make([]*Puzzle, 0, len(puzzleSpecs))
	for id, p := range puzzleSpecs {
		if p == nil || len(p.Solution) == 0 {
			return nil, fmt.Errorf("%s: %w: puzzle %q has no solution", PuzzleFile, ErrLoad, id)
		}
		p.ID = id
		puzzles = append(puzzles, p)
	}

	var itemSpecs map[string]Item
	if err := loadOptional(fsys, ItemFile, &itemSpecs); err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(itemSpecs))
	for name, item := range itemSpecs {
		item.Name = name
		items = append(items, item)
	}

	var recipeSpecs []struct {
		Items   []string `yaml:"items"`
		Result  string   `yaml:"result"`
		Message string   `yaml:"message"`
	}
	if err := loadOptional(fsys, RecipesFile, &recipeSpecs); err != nil {
		return nil, err
	}
	recipes := make([]Recipe, 0, len(recipeSpecs))
	for i, spec := range recipeSpecs {
		if len(spec.Items) != 2 || spec.Result == "" {
			return nil, fmt.Errorf("%s: %w: recipe %d needs two items and a result", RecipesFile, ErrLoad, i)
		}
		recipes = append(recipes, Recipe{
			Items:   [2]string{spec.Items[0], spec.Items[1]},
			Result:  spec.Result,
			Message: spec.Message,
		})
	}

	return &Content{
		World:   world,
		Quizzes: NewQuizRegistry(quizzes...),
		Puzzles: NewPuzzleRegistry(puzzles...),
		Items:   NewItemCatalog(items...),
		Recipes: NewRecipeBook(recipes...),
	}, nil
}

// Validate cross-checks rooms against the quiz, puzzle and item tables.
func (c *Content) Validate(startRoom string) []error {
	errs := c.World.Validate(startRoom)
	for _, id := range c.World.RoomIDs() {
		room := c.World.Room(id)
		if room.QuizID != "" && c.Quizzes.Get(room.QuizID) == nil {
			errs = append(errs, fmt.Errorf("room %q: unknown quiz %q", id, room.QuizID))
		}
		if room.PuzzleID != "" && c.Puzzles.Get(room.PuzzleID) == nil {
			errs = append(errs, fmt.Errorf("room %q: unknown puzzle %q", id, room.PuzzleID))
		}
		for _, item := range room.Items {
			if !c.Items.Known(item) {
				errs = append(errs, fmt.Errorf("room %q: item %q has no definition", id, item))
			}
		}
	}
	for _, id := range c.Quizzes.IDs() {
		q := c.Quizzes.Get(id)
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			errs = append(errs, fmt.Errorf("quiz %q: correct option %d out of range", id, q.Correct))
		}
		if q.RewardItem != "" && !c.Items.Known(q.RewardItem) {
			errs = append(errs, fmt.Errorf("quiz %q: reward item %q has no definition", id, q.RewardItem))
		}
	}
	for _, id := range c.Puzzles.IDs() {
		if p := c.Puzzles.Get(id); p.RewardItem != "" && !c.Items.Known(p.RewardItem) {
			errs = append(errs, fmt.Errorf("puzzle %q: reward item %q has no definition", id, p.RewardItem))
		}
	}
	for _, r := range c.Recipes.Recipes() {
		if !c.Items.Known(r.Result) {
			errs = append(errs, fmt.Errorf("recipe %s+%s: result %q has no definition", r.Items[0], r.Items[1], r.Result))
		}
	}
	return errs
}

func loadOptional(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %w", name, ErrLoad, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w: %w", name, ErrLoad, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
