package models

import "errors"

var (
	// ErrLoad is returned when game content is missing or malformed.
	ErrLoad = errors.New("cannot load game content")

	// ErrSaveIO is returned when a save cannot be written.
	ErrSaveIO = errors.New("cannot write save")
	// ErrSaveNotFound is returned when the requested save does not exist.
	ErrSaveNotFound = errors.New("save not found")
	// ErrSaveParse is returned when a save cannot be decoded.
	ErrSaveParse = errors.New("malformed save")
	// ErrSaveSchema is returned when a decoded save misses required fields or holds invalid values.
	ErrSaveSchema = errors.New("incomplete save")
)
