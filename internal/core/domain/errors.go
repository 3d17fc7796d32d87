package domain

import "errors"

// Denials: expected outcomes, reported without detail to callers.
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPermissionDenied = errors.New("permission denied")
var ErrResourceDenied = errors.New("resource access denied")
var ErrSessionExpired = errors.New("session expired")

// Directory errors.
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")

// Contract violations: caller errors that must not be silently swallowed.
var ErrUnknownPaymentMethod = errors.New("unknown payment method")

// Configuration gaps: reported so callers can tell "denied" from
// "the system does not know this role/channel".
var ErrUnknownRole = errors.New("role not present in role table")
var ErrUnknownChannel = errors.New("unknown notification channel")
var ErrNoRecipient = errors.New("no recipient for notification channel")
