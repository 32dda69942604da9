package domain

import "errors"

var (
	ErrMissingCompanyID = errors.New("company ID not found, please login again")
	ErrInvalidResponse  = errors.New("invalid response format")
	ErrTransport        = errors.New("request failed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrLoginFailed      = errors.New("login failed")
	ErrConfigConflict   = errors.New("configuration was modified concurrently")
)
