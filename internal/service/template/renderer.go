package template

import (
	"fmt"
	"html"
	"strings"

	"github.com/KasumiMercury/primind-booking-reminder/internal/domain"
)

const (
	DefaultAgentName  = "Travel Partner"
	DefaultClientName = "Valued Guest"
	UnknownDateText   = "date to be confirmed"
)

// Message is a rendered reminder ready for the mail transport.
type Message struct {
	Subject string
	HTML    string
}

type Renderer struct {
	templates map[domain.ReminderType]reminderTemplate
}

// NewRenderer returns a renderer over the built-in templates. It fails if any template
// references a placeholder outside the known set.
func NewRenderer() (*Renderer, error) {
	return newRenderer(builtinTemplates)
}

func newRenderer(templates map[domain.ReminderType]reminderTemplate) (*Renderer, error) {
	for t, tmpl := range templates {
		if err := Validate(tmpl.Subject); err != nil {
			return nil, fmt.Errorf("template %s subject: %w", t, err)
		}
		if err := Validate(tmpl.Body); err != nil {
			return nil, fmt.Errorf("template %s body: %w", t, err)
		}
	}

	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(t domain.ReminderType, snapshot domain.BookingSnapshot) (*Message, error) {
	tmpl, ok := r.templates[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReminderType, t)
	}

	vars := VarsFromSnapshot(snapshot)

	subject, err := Substitute(tmpl.Subject, vars, nil)
	if err != nil {
		return nil, fmt.Errorf("template %s subject: %w", t, err)
	}
	body, err := Substitute(tmpl.Body, vars, html.EscapeString)
	if err != nil {
		return nil, fmt.Errorf("template %s body: %w", t, err)
	}

	return &Message{
		Subject: subject,
		HTML:    body,
	}, nil
}

func VarsFromSnapshot(snapshot domain.BookingSnapshot) Vars {
	return Vars{
		VarAgentName:    withDefault(snapshot.AgentName, DefaultAgentName),
		VarClientName:   withDefault(snapshot.ClientName, DefaultClientName),
		VarCheckInDate:  longDate(snapshot.CheckInDate),
		VarCheckOutDate: longDate(snapshot.CheckOutDate),
	}
}

func withDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}

// longDate re-renders stored DD/MM/YYYY text. Text that does not parse is never copied into
// the message.
func longDate(text string) string {
	d, err := domain.ParseCheckInDate(text)
	if err != nil {
		return UnknownDateText
	}
	return d.LongForm()
}
