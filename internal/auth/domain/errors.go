package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrDocumentTaken     = errors.New("document (CPF/CNPJ) already registered")
	ErrPendingApproval   = errors.New("user pending approval")
	ErrNotAdmin          = errors.New("admin access required")
	ErrInvalidProfileReq = errors.New("invalid profile")
)

// ProfileError reports which profile field failed validation.
type ProfileError struct {
	Field string
	Msg   string
}

func (e *ProfileError) Error() string { return e.Field + ": " + e.Msg }

func (e *ProfileError) Unwrap() error { return ErrInvalidProfileReq }
