package excuses

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"alibi/internal/catalog"
)

const sectionRule = "═══════════════════════════════════════════════════════════"

// Composer builds the instruction sent to the text-generation model. The
// random source used for style selection is injectable so tests can pin it.
type Composer struct {
	intn func(n int) int
}

func NewComposer() *Composer {
	return &Composer{intn: rand.IntN}
}

// NewComposerWithRand builds a composer whose style selection draws from intn.
func NewComposerWithRand(intn func(n int) int) *Composer {
	return &Composer{intn: intn}
}

// ResolveStyle picks the comedic style for a request: the explicit style when
// one was validated in, otherwise a uniform draw over the full style set. The
// surprise-me sentinel and the no-options case are equivalent.
func (c *Composer) ResolveStyle(req Request) string {
	if req.CustomOptions != nil && req.CustomOptions.Style != "" {
		return req.CustomOptions.Style
	}
	ids := catalog.StyleIDs()
	return ids[c.intn(len(ids))]
}

// Compose resolves the style and assembles the full prompt. The style must be
// resolved first because both the comedic section and the output contract
// reference it.
func (c *Composer) Compose(req Request) (prompt string, resolvedStyle string) {
	style := c.ResolveStyle(req)
	instruction, _ := catalog.StyleInstruction(style)

	var b strings.Builder

	fmt.Fprintf(&b, `You are an expert excuse generator creating highly varied, genuinely funny excuses for comedy entertainment. Generate TWO distinct excuses for the following scenario.

LANGUAGE: Use British English spelling throughout (realise, colour, favour, whilst, etc.)

SCENARIO: %s
AUDIENCE: %s

Generate TWO excuses - one mundane, one comedic:

%s
EXCUSE 1 - THE BELIEVABLE EXCUSE (Mundane & Practical)
%s

This is your BORING excuse. Make it:
- Completely mundane and realistic
- Something that actually could have happened
- Short and to the point (2-5 sentences)
- An EXCUSE (explain what prevented you), not an apology
- Title: Short and boring (3-5 words) like "Traffic Delay" or "Phone Battery Died"

The humor comes from how BORING and ORDINARY this is compared to excuse 2.

%s
EXCUSE 2 - THE RISKY EXCUSE (%s Comedy Style)
%s

%s

REQUIREMENTS:
- Length: 3-7 sentences (you have room to develop the comedy)
- Make it FUNNY and highly creative within this comedic style
- Title: Short and punchy (4-6 words max)
- Appropriate for %s but push comedic boundaries
- Be SPECIFIC and VIVID - avoid vague generic humor
- Find FRESH angles - avoid overused tropes for this style
`, req.Scenario, req.Audience, sectionRule, sectionRule, sectionRule, style, sectionRule, instruction, req.Audience)

	c.writeElementsBlock(&b, req)
	c.writeFocusBlock(&b, req)

	fmt.Fprintf(&b, `
Remember: The two excuses should be POLAR OPPOSITES - one boring and realistic, one wildly comedic using %s style.

Return your response as a JSON object with this EXACT structure:
{
  "excuse1": {
    "title": "short boring title (3-5 words)",
    "text": "the mundane believable excuse (2-5 sentences)"
  },
  "excuse2": {
    "title": "short punchy title (4-6 words)",
    "text": "the %s comedy excuse (3-7 sentences)"
  }
}

DO NOT include any text outside the JSON object. DO NOT use markdown code blocks. Return ONLY the raw JSON.`, style, style)

	return b.String(), style
}

// writeElementsBlock lists the selected narrative elements as loose creative
// seasoning rather than a checklist, so the model weaves them in instead of
// ticking them off.
func (c *Composer) writeElementsBlock(b *strings.Builder, req Request) {
	if req.CustomOptions == nil || len(req.CustomOptions.NarrativeElements) == 0 {
		return
	}

	b.WriteString("\nOPTIONAL SEASONING: If it fits naturally, weave the following into the comedic excuse. Treat these as inspiration, not a checklist:\n")
	for _, id := range req.CustomOptions.NarrativeElements {
		element, ok := catalog.LookupElement(id)
		if !ok {
			continue
		}
		fmt.Fprintf(b, "- %s\n", element.PromptFragment)
	}
}

func (c *Composer) writeFocusBlock(b *strings.Builder, req Request) {
	if req.CustomOptions == nil || req.CustomOptions.ExcuseFocus == "" {
		return
	}
	focus, ok := catalog.LookupFocus(req.CustomOptions.ExcuseFocus)
	if !ok || focus.PromptFragment == "" {
		return
	}
	fmt.Fprintf(b, "\nCREATIVE ANGLE (a direction, not a hard constraint): %s\n", focus.PromptFragment)
}
