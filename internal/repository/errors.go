package repository

import "errors"

var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateCart     = errors.New("cart already exists for user")
)
