package excuses

import (
	"fmt"
	"strings"
	"time"

	"alibi/internal/catalog"
)

const (
	maxScenarioLength = 1000
	maxAudienceLength = 100
)

// ValidationError carries a user-presentable reason for rejecting a request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a decoded request against the catalog as of now and returns
// a normalized copy. Rules run in order and the first failure wins; a request
// either passes entirely or is rejected with a single reason.
func Validate(req Request, now time.Time) (Request, error) {
	scenario := strings.TrimSpace(req.Scenario)
	audience := strings.TrimSpace(req.Audience)

	if scenario == "" {
		return Request{}, invalid("Scenario must be a non-empty string.")
	}
	if audience == "" {
		return Request{}, invalid("Audience must be a non-empty string.")
	}
	if len(req.Scenario) > maxScenarioLength {
		return Request{}, invalid("Scenario is too long. Please limit to %d characters.", maxScenarioLength)
	}
	if len(req.Audience) > maxAudienceLength {
		return Request{}, invalid("Audience is too long. Please limit to %d characters.", maxAudienceLength)
	}

	normalized := Request{Scenario: scenario, Audience: audience}
	if req.CustomOptions == nil {
		return normalized, nil
	}

	options, err := validateCustomOptions(*req.CustomOptions, now)
	if err != nil {
		return Request{}, err
	}
	normalized.CustomOptions = &options
	return normalized, nil
}

func validateCustomOptions(options CustomOptions, now time.Time) (CustomOptions, error) {
	validated := CustomOptions{}

	if style := strings.TrimSpace(options.Style); style != "" && !strings.EqualFold(style, catalog.StyleSurpriseMe) {
		canonical, ok := catalog.ResolveStyle(style)
		if !ok {
			return CustomOptions{}, invalid("Unknown comedic style %q.", style)
		}
		validated.Style = canonical
	}

	if len(options.NarrativeElements) > catalog.MaxNarrativeElements {
		return CustomOptions{}, invalid("Too many narrative elements. Please select at most %d.", catalog.MaxNarrativeElements)
	}
	seen := make(map[string]bool, len(options.NarrativeElements))
	for _, id := range options.NarrativeElements {
		id = strings.TrimSpace(id)
		if seen[id] {
			return CustomOptions{}, invalid("Narrative element %q was selected more than once.", id)
		}
		seen[id] = true

		element, ok := catalog.LookupElement(id)
		if !ok || !element.AvailableAt(now) {
			return CustomOptions{}, invalid("Narrative element %q is not currently available.", id)
		}
		validated.NarrativeElements = append(validated.NarrativeElements, id)
	}

	if focus := strings.TrimSpace(options.ExcuseFocus); focus != "" {
		if _, ok := catalog.LookupFocus(focus); !ok {
			return CustomOptions{}, invalid("Unknown excuse focus %q.", focus)
		}
		validated.ExcuseFocus = focus
	}

	return validated, nil
}
