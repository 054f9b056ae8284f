package repositories

import "errors"

var (
	ErrNotFound   = errors.New("record not found")
	ErrUserExists = errors.New("username already taken")
)
