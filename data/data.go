// Package data embeds the default game content.
package data

import "embed"

// FS holds world.yaml, quizzes.yaml, puzzles.yaml, items.yaml and recipes.yaml.
//
//go:embed *.yaml
var FS embed.FS
