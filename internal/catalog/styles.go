package catalog

import "strings"

// StyleSurpriseMe is the sentinel callers send when they want the service to
// pick a comedic style for them. It never appears in responses.
const StyleSurpriseMe = "surprise-me"

type Style struct {
	ID          string
	Instruction string
}

var styles = []Style{
	{
		ID: "Absurdist",
		Instruction: `Use ABSURDIST comedy:
- Introduce surreal, impossible scenarios that defy logic and physics
- Include talking animals, sentient objects, or things that shouldn't exist
- Make the bizarre feel matter-of-fact (quantum mechanics in daily life, time paradoxes)
- Layer absurdity upon absurdity - don't settle for one weird thing
- Examples of absurdist elements: parallel dimensions, objects with personalities, animals doing human jobs, impossible weather
- Avoid clichés: Don't just say "aliens did it" - be creative and specific`,
	},
	{
		ID: "Observational",
		Instruction: `Use OBSERVATIONAL comedy:
- Point out the ironic, annoying, or contradictory aspects of everyday situations
- "Have you ever noticed..." style observations about modern life
- Highlight the absurdity in normal social conventions or technology
- Make it relatable - focus on universal frustrations everyone experiences
- Examples: smartphone glitches at crucial moments, autocorrect disasters, social media timing fails
- Avoid clichés: Find fresh angles on common annoyances, not tired old "traffic sucks" jokes`,
	},
	{
		ID: "Deadpan",
		Instruction: `Use DEADPAN comedy:
- State completely outrageous things in a serious, matter-of-fact tone
- No exclamation marks, no dramatics - just calm delivery of absurd content
- Use formal, professional language to describe ridiculous situations
- The humor comes from the contrast between tone and content
- Examples: "I was engaged in a minor territorial dispute with a swan" or "A series of cascading failures in my morning routine"
- Avoid clichés: Don't be boring - make the content wild but the delivery flat`,
	},
	{
		ID: "Hyperbolic",
		Instruction: `Use HYPERBOLIC comedy:
- Blow everything wildly out of proportion
- Use extreme exaggerations: "worst disaster in human history", "literally impossible"
- Stack superlatives and extremes: epic, catastrophic, unprecedented
- Make small problems into world-ending events
- Examples: missed alarm becomes "apocalyptic chronological failure", traffic becomes "automotive gridlock of biblical proportions"
- Avoid clichés: Don't just add "super" or "really" - go ridiculously over the top`,
	},
	{
		ID: "Self-deprecating",
		Instruction: `Use SELF-DEPRECATING comedy:
- Make yourself the fool/incompetent one
- Highlight your own flaws, mistakes, or poor judgment
- Own the failure completely - you're the problem, not circumstances
- Be specific about your incompetence (can't read clocks, terrible at technology, etc.)
- Examples: "I have the spatial awareness of a concussed pigeon" or "My organizational skills peaked in kindergarten"
- Avoid clichés: Don't just say "I'm bad at things" - be creatively self-critical`,
	},
	{
		ID: "Ironic",
		Instruction: `Use IRONIC comedy:
- Say the opposite of what you mean to highlight contradictions
- Point out situations where the opposite of what should happen occurs
- Use dramatic irony - when trying to fix something makes it worse
- Highlight hypocrisy or contradictory outcomes
- Examples: "I was trying to be MORE responsible which is exactly why I'm late" or attempting to avoid a problem creates the problem
- Avoid clichés: Find genuine ironic twists, not just sarcasm`,
	},
	{
		ID: "Meta",
		Instruction: `Use META comedy:
- Break the 4th wall - acknowledge you're making an excuse
- Reference the fact that this is obviously an excuse
- Be self-aware about how ridiculous/transparent the excuse is
- Comment on the excuse-making process itself
- Examples: "I'm aware this sounds like an excuse, which it absolutely is, but..." or "The beauty of this explanation is that it's technically true while being completely misleading"
- Avoid clichés: Don't just say "I know this sounds fake" - play with the meta-ness creatively`,
	},
	{
		ID: "Paranoid",
		Instruction: `Use PARANOID/CONSPIRACY comedy:
- Connect unrelated events into elaborate conspiracy theories
- Everything is suspicious and interconnected
- Use phrases like "it's no coincidence that...", "they don't want you to know..."
- Build increasingly complex chains of cause and effect
- Examples: neighbors are in on it, corporations tracking you, elaborate schemes by mundane organizations
- Avoid clichés: Don't just say "Illuminati" - create specific, silly conspiracies`,
	},
}

var styleAliases = buildStyleAliases()

func buildStyleAliases() map[string]string {
	aliases := make(map[string]string, len(styles))
	for _, style := range styles {
		aliases[strings.ToLower(style.ID)] = style.ID
	}
	return aliases
}

// Styles returns every comedic style in catalog order.
func Styles() []Style {
	return styles
}

// StyleIDs returns the enumerated style identifiers in catalog order.
func StyleIDs() []string {
	ids := make([]string, 0, len(styles))
	for _, style := range styles {
		ids = append(ids, style.ID)
	}
	return ids
}

// ResolveStyle maps a caller-supplied style name to its canonical identifier.
// Matching is case-insensitive and accepts the hyphenated lowercase ids the
// browser form sends ("self-deprecating" resolves to "Self-deprecating").
func ResolveStyle(name string) (string, bool) {
	canonical, ok := styleAliases[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// StyleInstruction returns the prompt fragment for a canonical style id.
func StyleInstruction(id string) (string, bool) {
	for _, style := range styles {
		if style.ID == id {
			return style.Instruction, true
		}
	}
	return "", false
}
