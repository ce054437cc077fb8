package contact

import (
	"strconv"

	"github.com/dmitrymomot/contactform/svc/contactform"
)

// FormSignals are the bound signals Datastar posts with every action.
// A nil member was not sent.
type FormSignals struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Subject    *string `json:"subject"`
	Message    *string `json:"message"`
	Newsletter *bool   `json:"newsletter"`
}

// Value returns the posted value of f and whether it was sent.
func (s FormSignals) Value(f contactform.Field) (string, bool) {
	var p *string
	switch f {
	case contactform.FieldName:
		p = s.Name
	case contactform.FieldEmail:
		p = s.Email
	case contactform.FieldPhone:
		p = s.Phone
	case contactform.FieldSubject:
		p = s.Subject
	case contactform.FieldMessage:
		p = s.Message
	case contactform.FieldNewsletter:
		if s.Newsletter == nil {
			return "", false
		}
		return strconv.FormatBool(*s.Newsletter), true
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Values returns every posted value keyed by field.
func (s FormSignals) Values() map[contactform.Field]string {
	out := make(map[contactform.Field]string, len(contactform.Fields))
	for _, f := range contactform.Fields {
		if v, ok := s.Value(f); ok {
			out[f] = v
		}
	}
	return out
}

type sessionRequest struct {
	Session string `path:"id"`
}

type fieldRequest struct {
	Session     string `path:"id" json:"-"`
	Field       string `path:"field" json:"-"`
	FormSignals `path:"-"`
}

type submitRequest struct {
	Session     string `path:"id" json:"-"`
	FormSignals `path:"-"`
}

type fillRequest struct {
	Session string `path:"id"`
	Preset  string `path:"preset"`
}

// StateResponse is the JSON view of a session's form.
type StateResponse struct {
	Status         contactform.Status `json:"status"`
	Values         map[string]string  `json:"values"`
	Errors         map[string]string  `json:"errors,omitempty"`
	Styles         map[string]string  `json:"styles,omitempty"`
	Count          string             `json:"count"`
	CountLevel     string             `json:"count_level,omitempty"`
	Banner         string             `json:"banner,omitempty"`
	FormVisible    bool               `json:"form_visible"`
	SuccessVisible bool               `json:"success_visible"`
}

func newStateResponse(snap contactform.Snapshot) StateResponse {
	resp := StateResponse{
		Status:         snap.Status,
		Values:         make(map[string]string, len(contactform.Fields)),
		Errors:         make(map[string]string, len(snap.Errors)),
		Styles:         make(map[string]string, len(snap.Styles)),
		Count:          snap.Count.String(),
		CountLevel:     string(snap.Count.Level),
		Banner:         snap.Banner,
		FormVisible:    snap.FormVisible,
		SuccessVisible: snap.SuccessVisible,
	}
	for _, f := range contactform.Fields {
		resp.Values[string(f)] = snap.Value(f)
	}
	for f, msg := range snap.Errors {
		resp.Errors[string(f)] = msg
	}
	for f, style := range snap.Styles {
		resp.Styles[string(f)] = string(style)
	}
	return resp
}

// CheckResponse is returned by the check endpoint when every field passes.
type CheckResponse struct {
	Valid bool `json:"valid"`
}
