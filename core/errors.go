package core

import "errors"

// Authorization errors (raised locally, before any gateway call)
var (
	ErrNotAuthenticated = errors.New("not authenticated") // 401
)

// Auth gateway errors
var (
	ErrUserExists         = errors.New("user already exists")       // 409 Conflict
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 Unauthorized
	ErrSessionNotFound    = errors.New("session not found")         // 401
	ErrSessionExpired     = errors.New("session expired")           // 401
)

// Entity gateway errors
var (
	ErrPostNotFound    = errors.New("post not found")    // 404
	ErrCommentNotFound = errors.New("comment not found") // 404
)

// Validation errors (client input)
var (
	ErrEmailRequired    = errors.New("email is required")    // 400
	ErrPasswordRequired = errors.New("password is required") // 400
	ErrTitleRequired    = errors.New("title is required")    // 400
	ErrBodyRequired     = errors.New("body is required")     // 400
)

// Config errors (wiring mistakes, surfaced by the constructor)
var (
	ErrGatewayRequired = errors.New("gateway adapter is required")
	ErrInvalidPageSize = errors.New("page size must be positive")
)
