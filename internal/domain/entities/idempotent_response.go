package entities

import "time"

// IdempotentResponse is the record behind an Idempotency-Key. It is pending
// while the first request is running and holds the successful response once
// that request completes.
type IdempotentResponse struct {
	Key         string
	Fingerprint string
	StatusCode  int
	Body        []byte
	CreatedAt   time.Time
}

// Pending reports whether the request that reserved the key is still running.
func (r *IdempotentResponse) Pending() bool {
	return r.StatusCode == 0
}
