package renderer

import "errors"

var (
	ErrInvalidCamera = errors.New("renderer: invalid camera configuration")
	ErrInterrupted   = errors.New("renderer: interrupted while rendering")
)
