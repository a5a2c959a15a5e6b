package podigest

import (
	"podigest/article"
	"podigest/cache"
	"podigest/feishu"
)

// Error types re-exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, podigest.ErrArticleNotFound) {
//		fmt.Println("no such article")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var authErr *podigest.AuthError
//	if errors.As(err, &authErr) {
//		fmt.Printf("credential exchange failed: %v\n", authErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// AuthError indicates the credential exchange with the content API
	// failed; fatal for the whole refresh cycle.
	AuthError = feishu.AuthError
	// RefreshError indicates a refresh failed with no stale or snapshot
	// data to fall back to.
	RefreshError = cache.RefreshError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrArticleNotFound indicates no article exists for the requested ID.
	ErrArticleNotFound = article.ErrNotFound
	// ErrMissingCredentials indicates app credentials are unset.
	ErrMissingCredentials = feishu.ErrMissingCredentials
)
