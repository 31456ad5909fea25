package model

// ViewID names one of the two mutually exclusive views.
type ViewID string

const (
	ScanView    ViewID = "scan"
	DetailsView ViewID = "details"
)

// Severity tags a feedback message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

type Feedback struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// ViewState is a point-in-time copy of the view controller.
type ViewState struct {
	Active   ViewID        `json:"active"`
	Feedback Feedback      `json:"feedback"`
	Display  *DisplayState `json:"display,omitempty"`
	Version  uint64        `json:"version"`
}

// Outcome is the result of a catalog lookup.
type Outcome int

const (
	OutcomeLoading Outcome = iota
	OutcomeFound
	OutcomeNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeFound:
		return "found"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
