package catalog

import "time"

// MaxNarrativeElements bounds how many elements one request may select.
const MaxNarrativeElements = 3

// DateWindow is a year-independent month/day range. A window whose start and
// end month are equal covers days within that month; otherwise it spans from
// the start day to the end day across the intervening months. Windows do not
// wrap across a year boundary.
type DateWindow struct {
	StartMonth int
	StartDay   int
	EndMonth   int
	EndDay     int
}

// Contains reports whether the window covers the month/day of now.
func (w DateWindow) Contains(now time.Time) bool {
	month := int(now.Month())
	day := now.Day()

	if w.StartMonth == w.EndMonth {
		return month == w.StartMonth && day >= w.StartDay && day <= w.EndDay
	}
	switch {
	case month == w.StartMonth:
		return day >= w.StartDay
	case month == w.EndMonth:
		return day <= w.EndDay
	default:
		return month > w.StartMonth && month < w.EndMonth
	}
}

type NarrativeElement struct {
	ID             string
	PromptFragment string
	// Window is nil for always-available elements.
	Window *DateWindow
}

// AvailableAt reports whether the element may be requested on the given date.
func (e NarrativeElement) AvailableAt(now time.Time) bool {
	return e.Window == nil || e.Window.Contains(now)
}

var narrativeElements = []NarrativeElement{
	{ID: "barrister-pigeon", PromptFragment: "a pigeon wearing a barrister's wig"},
	{ID: "suspicious-duck", PromptFragment: "a suspicious-looking duck"},
	{ID: "shifty-dog", PromptFragment: "a dog with shifty, suspicious eyes"},
	{ID: "victorian-gentleman", PromptFragment: "a Victorian gentleman in a top hat and monocle"},
	{ID: "alien-involvement", PromptFragment: "alien presence or extraterrestrial technology"},
	{ID: "freak-weather", PromptFragment: "impossibly specific freak weather event (sideways hail, localized tornado, etc.)"},
	{ID: "robot-malfunction", PromptFragment: "a malfunctioning robot or AI system"},
	{ID: "time-traveler", PromptFragment: "a confused time traveler from the past or future"},

	{ID: "cupid-revenge", PromptFragment: "Cupid or Valentine's Day-related romantic mishap", Window: &DateWindow{StartMonth: 2, StartDay: 1, EndMonth: 2, EndDay: 14}},
	{ID: "easter-bunny", PromptFragment: "Easter Bunny causing chaos or mischief", Window: &DateWindow{StartMonth: 3, StartDay: 15, EndMonth: 4, EndDay: 30}},
	{ID: "fireworks-disaster", PromptFragment: "explosive fireworks-related incident", Window: &DateWindow{StartMonth: 7, StartDay: 1, EndMonth: 7, EndDay: 14}},
	{ID: "halloween-chaos", PromptFragment: "spooky Halloween-related supernatural event", Window: &DateWindow{StartMonth: 10, StartDay: 1, EndMonth: 10, EndDay: 31}},
	{ID: "santa-fault", PromptFragment: "Santa Claus or Christmas elves causing problems", Window: &DateWindow{StartMonth: 12, StartDay: 1, EndMonth: 12, EndDay: 25}},
}

// AvailableElements returns the elements that may be requested on the given
// date: every always-available element plus the seasonal ones whose window
// covers now.
func AvailableElements(now time.Time) []NarrativeElement {
	available := make([]NarrativeElement, 0, len(narrativeElements))
	for _, element := range narrativeElements {
		if element.AvailableAt(now) {
			available = append(available, element)
		}
	}
	return available
}

// LookupElement finds an element by id, available or not.
func LookupElement(id string) (NarrativeElement, bool) {
	for _, element := range narrativeElements {
		if element.ID == id {
			return element, true
		}
	}
	return NarrativeElement{}, false
}
