package llm

import "errors"

// Closed set of failure kinds the generation client can surface. Handlers map
// these to HTTP statuses and user-facing messages; raw upstream detail stays
// in the server log.
var (
	ErrTimeout        = errors.New("llm: upstream call timed out")
	ErrBadRequest     = errors.New("llm: upstream rejected the request")
	ErrAuth           = errors.New("llm: upstream authentication failed")
	ErrRateLimited    = errors.New("llm: upstream rate limit exceeded")
	ErrUpstream       = errors.New("llm: upstream call failed")
	ErrNoCandidates   = errors.New("llm: response contained no candidates")
	ErrBlockedSafety  = errors.New("llm: generation blocked by safety filters")
	ErrBlockedContent = errors.New("llm: generation stopped by content restrictions")
	ErrNoImageData    = errors.New("llm: response contained no image data")
)
