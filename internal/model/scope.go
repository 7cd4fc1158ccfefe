package model

// Scope carries the caller's identity through the usecase layer.
type Scope struct {
	UserID   string
	Username string
}
