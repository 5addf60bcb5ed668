package excuses

// CustomOptions is the optional customisation bundle from the browser's
// advanced mode. Style may be a canonical style id, a lowercase alias, or the
// surprise-me sentinel.
type CustomOptions struct {
	Style             string   `json:"style,omitempty"`
	NarrativeElements []string `json:"narrativeElements,omitempty"`
	ExcuseFocus       string   `json:"excuseFocus,omitempty"`
}

// Request is a validated excuse-generation request. Scenario and Audience are
// trimmed; CustomOptions, when present, resolved against the catalog at
// validation time.
type Request struct {
	Scenario      string         `json:"scenario"`
	Audience      string         `json:"audience"`
	CustomOptions *CustomOptions `json:"customOptions,omitempty"`
}

type ExcuseItem struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Pair is the generation result. Excuse1 is always the mundane excuse,
// Excuse2 the comedic one written in ComedicStyle. ComedicStyle is always a
// concrete catalog style, never the surprise-me sentinel.
type Pair struct {
	Excuse1      ExcuseItem `json:"excuse1"`
	Excuse2      ExcuseItem `json:"excuse2"`
	ComedicStyle string     `json:"comedicStyle"`
}
