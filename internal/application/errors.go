package application

import "errors"

// Service-level error taxonomy. Handlers map these onto the uniform
// error envelope: 400 invalid argument, 401 credential/token failures,
// 403 ownership violations, 404 not found, 500 everything else.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized request")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrEmptyImport        = errors.New("file is empty, no books added")
)
