package company

import "errors"

var (
	ErrNotFound  = errors.New("company not found")
	ErrNameTaken = errors.New("company name already registered")
)
