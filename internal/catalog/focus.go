package catalog

// FocusLetAIDecide is the neutral focus sentinel: it is always valid and
// contributes no prompt text.
const FocusLetAIDecide = "let-ai-decide"

type Focus struct {
	ID             string
	PromptFragment string
}

var focusOptions = []Focus{
	{ID: FocusLetAIDecide, PromptFragment: ""},
	{ID: "blame-technology", PromptFragment: "The excuse should primarily blame technology, apps, devices, or digital systems."},
	{ID: "blame-nature", PromptFragment: "The excuse should primarily blame natural phenomena, weather, or environmental factors."},
	{ID: "blame-animals", PromptFragment: "The excuse should primarily blame animals, pets, or wildlife."},
	{ID: "blame-other-people", PromptFragment: "The excuse should primarily blame other people, strangers, or human interference."},
	{ID: "blame-yourself", PromptFragment: "The excuse should primarily blame your own mistakes, incompetence, or poor judgment."},
	{ID: "blame-universe", PromptFragment: "The excuse should primarily blame cosmic forces, fate, destiny, or universal conspiracies."},
	{ID: "blame-transport", PromptFragment: "The excuse should primarily blame transportation issues, traffic, public transit, or vehicles."},
	{ID: "blame-time", PromptFragment: "The excuse should primarily blame time paradoxes, temporal anomalies, or the nature of time itself."},
}

// LookupFocus finds a focus option by id.
func LookupFocus(id string) (Focus, bool) {
	for _, focus := range focusOptions {
		if focus.ID == id {
			return focus, true
		}
	}
	return Focus{}, false
}
