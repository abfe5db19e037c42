package output

import "time"

const (
	APIVersionV1 = "v1"
	FormatHuman  = "human"
	FormatJSON   = "json"
)

// Envelope is the single document every command prints
type Envelope struct {
	Ok       bool             `json:"ok"`
	Data     any              `json:"data"`
	Warnings []WarningPayload `json:"warnings"`
	Error    *ErrorPayload    `json:"error"`
	Meta     Meta             `json:"meta"`
}

type WarningPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// Navigation records the screen a command drove and where that screen sent
// the user. Notice is the failure handed to the next screen, if any.
type Navigation struct {
	Screen      string `json:"screen"`
	NavigatedTo string `json:"navigated_to,omitempty"`
	Notice      string `json:"notice,omitempty"`
}

type Meta struct {
	APIVersion   string      `json:"api_version"`
	TimestampUTC string      `json:"timestamp_utc"`
	APIBaseURL   string      `json:"api_base_url,omitempty"`
	Navigation   *Navigation `json:"navigation,omitempty"`
}

func NewSuccessEnvelope(data any, warnings []WarningPayload) Envelope {
	if warnings == nil {
		warnings = []WarningPayload{}
	}

	return Envelope{
		Ok:       true,
		Data:     data,
		Warnings: warnings,
		Meta:     NewMetaNow(),
	}
}

func NewErrorEnvelope(code, message string, details any, warnings []WarningPayload) Envelope {
	if warnings == nil {
		warnings = []WarningPayload{}
	}

	return Envelope{
		Ok: false,
		Error: &ErrorPayload{
			Code:    code,
			Message: message,
			Details: details,
		},
		Warnings: warnings,
		Meta:     NewMetaNow(),
	}
}

// WithNavigation returns a copy of e carrying nav in its meta
func (e Envelope) WithNavigation(nav Navigation) Envelope {
	e.Meta.Navigation = &nav
	return e
}

func NewMetaNow() Meta {
	return Meta{
		APIVersion:   APIVersionV1,
		TimestampUTC: time.Now().UTC().Format(time.RFC3339Nano),
	}
}
