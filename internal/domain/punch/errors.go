package punch

import "errors"

var (
	ErrEmptyImport  = errors.New("import source contains no parseable punch rows")
	ErrNoStatusText = errors.New("status text does not contain an in/out marker")
)
