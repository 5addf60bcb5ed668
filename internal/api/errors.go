package api

import (
	"errors"
	"net/http"

	"alibi/internal/excuses"
	"alibi/internal/images"
	"alibi/internal/llm"
)

// failure is one entry of the closed error taxonomy: an internal tag for
// logs/metrics plus the status and user-presentable message the caller sees.
// Raw upstream or model output is never part of a response body.
type failure struct {
	tag     string
	status  int
	message string
}

var (
	failureRateLimited = failure{"rate_limited", http.StatusTooManyRequests, "Too many requests. Please try again in a few moments."}
	failureConfig      = failure{"config_error", http.StatusInternalServerError, "Server configuration error. Please contact support."}
	failureUpstream    = failure{"upstream_error", http.StatusInternalServerError, "Failed to generate. Please try again."}
	failureTimeout     = failure{"timeout", http.StatusGatewayTimeout, "Request timed out. Please try again."}
	failureBadResponse = failure{"bad_upstream_response", http.StatusInternalServerError, "Received an invalid response. Please try again."}
	failureBadPrompt   = failure{"upstream_rejected_prompt", http.StatusBadRequest, "Invalid request to the generation API. Please try a different prompt."}
	failureUpstream429 = failure{"upstream_rate_limited", http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a few moments."}
	failureSafety      = failure{"content_blocked_safety", http.StatusBadRequest, "Image generation was blocked by safety filters. Please try a different prompt or image."}
	failureRestricted  = failure{"content_blocked", http.StatusInternalServerError, "Image generation failed due to content restrictions. Please try without uploading a photo, or try a different excuse."}
	failureUnexpected  = failure{"unexpected_error", http.StatusInternalServerError, "An unexpected error occurred. Please try again."}
)

func inputFailure(reason string) failure {
	return failure{tag: "invalid_input", status: http.StatusBadRequest, message: reason}
}

// classifyFailure maps any error escaping the pipeline onto the taxonomy.
// Validation errors keep their own user-facing reason; everything else gets a
// fixed message for its kind.
func classifyFailure(err error) failure {
	var excuseInvalid *excuses.ValidationError
	if errors.As(err, &excuseInvalid) {
		return inputFailure(excuseInvalid.Reason)
	}
	var imageInvalid *images.ValidationError
	if errors.As(err, &imageInvalid) {
		return inputFailure(imageInvalid.Reason)
	}

	switch {
	case errors.Is(err, llm.ErrTimeout):
		return failureTimeout
	case errors.Is(err, llm.ErrBadRequest):
		return failureBadPrompt
	case errors.Is(err, llm.ErrAuth):
		return failureConfig
	case errors.Is(err, llm.ErrRateLimited):
		return failureUpstream429
	case errors.Is(err, llm.ErrBlockedSafety):
		return failureSafety
	case errors.Is(err, llm.ErrBlockedContent):
		return failureRestricted
	case errors.Is(err, llm.ErrNoCandidates), errors.Is(err, llm.ErrNoImageData),
		errors.Is(err, excuses.ErrParse), errors.Is(err, excuses.ErrSchema):
		return failureBadResponse
	case errors.Is(err, llm.ErrUpstream):
		return failureUpstream
	default:
		return failureUnexpected
	}
}
