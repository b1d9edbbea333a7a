package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNetwork: the call never completed. Callers surface it; nothing
	// retries automatically.
	ErrNetwork = errors.New("marketplace unreachable")

	// ErrUnauthorized: the upstream rejected the bearer token (or its
	// absence).
	ErrUnauthorized = errors.New("marketplace rejected authorization")

	// ErrNotFound: the entity does not exist upstream.
	ErrNotFound = errors.New("not found upstream")

	// ErrConflict: the upstream refused a mutation as a duplicate or
	// self action (e.g. double vote, self vote). This is the
	// authoritative rejection; the client-side guard is advisory only.
	ErrConflict = errors.New("conflicting action rejected upstream")
)

// statusError maps an upstream response status onto the error taxonomy.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusConflict:
		return ErrConflict
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("marketplace: unexpected status %d: %s",
			resp.StatusCode, string(body))
	}
}
