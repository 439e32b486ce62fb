// Package knowledge defines the document model for the team knowledge base.
// Each source record type carries its own formatter that renders the
// structured fields into the canonical text used for chunking and embedding.
package knowledge

import (
	"fmt"
	"strings"
)

// ResourceType identifies the kind of source record a document came from.
type ResourceType string

const (
	TypeTicket        ResourceType = "ticket"
	TypeWiki          ResourceType = "wiki"
	TypeContract      ResourceType = "contract"
	TypeChatThread    ResourceType = "chat-thread"
	TypeEmail         ResourceType = "email"
	TypeMeetingNote   ResourceType = "meeting-note"
	TypePostmortem    ResourceType = "postmortem"
	TypeSupportTicket ResourceType = "support-ticket"
	TypeAPITestReport ResourceType = "api-test-report"
	TypeE2EReport     ResourceType = "e2e-scenario-report"
)

// Document is one source record ready for ingestion. CanonicalText must be
// deterministic for a given record: the same fields always produce the same
// text.
type Document interface {
	Type() ResourceType
	SourceID() string
	Title() string
	CanonicalText() string
	Metadata() map[string]any
}

// Comment is a dated remark on a ticket.
type Comment struct {
	Author string
	Text   string
	Date   string
}

// Message is one entry in a chat thread or support conversation.
type Message struct {
	From      string
	Text      string
	Timestamp string
}

// Ticket is an issue-tracker record (story, bug, or task).
type Ticket struct {
	ID          string
	Kind        string
	Name        string
	Status      string
	Priority    string
	Assignee    string
	StoryPoints int
	Description string
	Comments    []Comment
}

func (t Ticket) Type() ResourceType { return TypeTicket }
func (t Ticket) SourceID() string   { return t.ID }
func (t Ticket) Title() string      { return t.Name }

func (t Ticket) CanonicalText() string {
	parts := []string{
		fmt.Sprintf("[Ticket %s] %s: %s", strings.ToUpper(t.Kind), t.ID, t.Name),
		fmt.Sprintf("Status: %s | Priority: %s | Assignee: %s", t.Status, t.Priority, t.Assignee),
		"",
		t.Description,
	}
	if len(t.Comments) > 0 {
		parts = append(parts, "", "--- Comments ---")
		for _, c := range t.Comments {
			parts = append(parts, fmt.Sprintf("%s (%s): %s", c.Author, c.Date, c.Text))
		}
	}
	return strings.Join(parts, "\n")
}

func (t Ticket) Metadata() map[string]any {
	return map[string]any{
		"kind":        t.Kind,
		"status":      t.Status,
		"priority":    t.Priority,
		"assignee":    t.Assignee,
		"storyPoints": t.StoryPoints,
	}
}

// WikiPage is an internal documentation page.
type WikiPage struct {
	ID       string
	Name     string
	Category string
	Author   string
	Updated  string
	Content  string
}

func (p WikiPage) Type() ResourceType { return TypeWiki }
func (p WikiPage) SourceID() string   { return p.ID }
func (p WikiPage) Title() string      { return p.Name }

func (p WikiPage) CanonicalText() string {
	return fmt.Sprintf("[Wiki - %s] %s\nAuthor: %s\n\n%s", p.Category, p.Name, p.Author, p.Content)
}

func (p WikiPage) Metadata() map[string]any {
	return map[string]any{"category": p.Category, "author": p.Author, "lastUpdated": p.Updated}
}

// Contract is a vendor agreement.
type Contract struct {
	ID            string
	Name          string
	Vendor        string
	EffectiveDate string
	Expiration    string
	KeyTerms      []string
	Content       string
}

func (c Contract) Type() ResourceType { return TypeContract }
func (c Contract) SourceID() string   { return c.ID }
func (c Contract) Title() string      { return c.Name }

func (c Contract) CanonicalText() string {
	return fmt.Sprintf("[Contract] %s\nVendor: %s | Effective: %s\n\n%s",
		c.Name, c.Vendor, c.EffectiveDate, c.Content)
}

func (c Contract) Metadata() map[string]any {
	return map[string]any{
		"vendor":         c.Vendor,
		"effectiveDate":  c.EffectiveDate,
		"expirationDate": c.Expiration,
		"keyTerms":       c.KeyTerms,
	}
}

// ChatThread is an archived channel conversation.
type ChatThread struct {
	ID       string
	Channel  string
	Topic    string
	Messages []Message
}

func (t ChatThread) Type() ResourceType { return TypeChatThread }
func (t ChatThread) SourceID() string   { return t.ID }
func (t ChatThread) Title() string      { return t.Topic }

func (t ChatThread) CanonicalText() string {
	lines := make([]string, 0, len(t.Messages))
	for _, m := range t.Messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.From, m.Text))
	}
	return fmt.Sprintf("[Chat - %s] %s\n\n%s", t.Channel, t.Topic, strings.Join(lines, "\n"))
}

func (t ChatThread) Metadata() map[string]any {
	return map[string]any{"channel": t.Channel, "messageCount": len(t.Messages)}
}

// Email is an archived internal email.
type Email struct {
	ID      string
	Subject string
	From    string
	To      []string
	Date    string
	Body    string
}

func (e Email) Type() ResourceType { return TypeEmail }
func (e Email) SourceID() string   { return e.ID }
func (e Email) Title() string      { return e.Subject }

func (e Email) CanonicalText() string {
	return fmt.Sprintf("[Email] %s\nFrom: %s | To: %s\nDate: %s\n\n%s",
		e.Subject, e.From, strings.Join(e.To, ", "), e.Date, e.Body)
}

func (e Email) Metadata() map[string]any {
	return map[string]any{"from": e.From, "to": e.To, "date": e.Date}
}

// MeetingNote captures the notes of a recurring or ad-hoc meeting.
type MeetingNote struct {
	ID        string
	Name      string
	Kind      string
	Date      string
	Duration  string
	Attendees []string
	Notes     string
}

func (m MeetingNote) Type() ResourceType { return TypeMeetingNote }
func (m MeetingNote) SourceID() string   { return m.ID }
func (m MeetingNote) Title() string      { return m.Name }

func (m MeetingNote) CanonicalText() string {
	return fmt.Sprintf("[Meeting - %s] %s\nDate: %s | Duration: %s\nAttendees: %s\n\n%s",
		m.Kind, m.Name, m.Date, m.Duration, strings.Join(m.Attendees, ", "), m.Notes)
}

func (m MeetingNote) Metadata() map[string]any {
	return map[string]any{"kind": m.Kind, "date": m.Date, "duration": m.Duration, "attendees": m.Attendees}
}

// Postmortem is an incident writeup.
type Postmortem struct {
	ID           string
	Name         string
	IncidentDate string
	Severity     string
	Duration     string
	Author       string
	Content      string
}

func (p Postmortem) Type() ResourceType { return TypePostmortem }
func (p Postmortem) SourceID() string   { return p.ID }
func (p Postmortem) Title() string      { return p.Name }

func (p Postmortem) CanonicalText() string {
	return fmt.Sprintf("[Postmortem %s] %s\nIncident: %s | Duration: %s | Author: %s\n\n%s",
		p.Severity, p.Name, p.IncidentDate, p.Duration, p.Author, p.Content)
}

func (p Postmortem) Metadata() map[string]any {
	return map[string]any{
		"incidentDate": p.IncidentDate,
		"severity":     p.Severity,
		"duration":     p.Duration,
		"author":       p.Author,
	}
}

// SupportTicket is a customer support conversation.
type SupportTicket struct {
	ID       string
	Subject  string
	Customer string
	Priority string
	Status   string
	Category string
	Created  string
	Messages []Message
}

func (s SupportTicket) Type() ResourceType { return TypeSupportTicket }
func (s SupportTicket) SourceID() string   { return s.ID }
func (s SupportTicket) Title() string      { return s.Subject }

func (s SupportTicket) CanonicalText() string {
	lines := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", m.From, m.Timestamp, m.Text))
	}
	return fmt.Sprintf("[Support - %s] %s\nCustomer: %s | Priority: %s | Status: %s\n\n%s",
		s.Category, s.Subject, s.Customer, s.Priority, s.Status, strings.Join(lines, "\n"))
}

func (s SupportTicket) Metadata() map[string]any {
	return map[string]any{
		"customer": s.Customer,
		"priority": s.Priority,
		"status":   s.Status,
		"category": s.Category,
	}
}

// TestCase is one entry in an API test suite report.
type TestCase struct {
	Name        string
	Status      string
	Duration    string
	Description string
}

// APITestReport summarises the latest run of an API test suite.
type APITestReport struct {
	ID       string
	Suite    string
	Endpoint string
	Method   string
	Status   string
	LastRun  string
	Coverage string
	Tests    []TestCase
	Notes    string
}

func (r APITestReport) Type() ResourceType { return TypeAPITestReport }
func (r APITestReport) SourceID() string   { return r.ID }
func (r APITestReport) Title() string      { return r.Suite }

func (r APITestReport) CanonicalText() string {
	parts := []string{
		fmt.Sprintf("[API Test - %s] %s", r.Status, r.Suite),
		fmt.Sprintf("Endpoint: %s %s | Coverage: %s | Last run: %s", r.Method, r.Endpoint, r.Coverage, r.LastRun),
		"",
	}
	for _, tc := range r.Tests {
		parts = append(parts, fmt.Sprintf("- %s [%s] (%s): %s", tc.Name, tc.Status, tc.Duration, tc.Description))
	}
	if r.Notes != "" {
		parts = append(parts, "", r.Notes)
	}
	return strings.Join(parts, "\n")
}

func (r APITestReport) Metadata() map[string]any {
	return map[string]any{
		"endpoint": r.Endpoint,
		"method":   r.Method,
		"status":   r.Status,
		"lastRun":  r.LastRun,
		"coverage": r.Coverage,
	}
}

// ScenarioStep is one step of an end-to-end scenario.
type ScenarioStep struct {
	Step     int
	Action   string
	Expected string
	Status   string
}

// E2EScenarioReport summarises the latest run of an end-to-end scenario.
type E2EScenarioReport struct {
	ID       string
	Name     string
	Flow     string
	Priority string
	Status   string
	LastRun  string
	Duration string
	Steps    []ScenarioStep
	Notes    string
}

func (r E2EScenarioReport) Type() ResourceType { return TypeE2EReport }
func (r E2EScenarioReport) SourceID() string   { return r.ID }
func (r E2EScenarioReport) Title() string      { return r.Name }

func (r E2EScenarioReport) CanonicalText() string {
	parts := []string{
		fmt.Sprintf("[E2E - %s] %s", r.Priority, r.Name),
		fmt.Sprintf("Flow: %s | Status: %s | Last run: %s", r.Flow, r.Status, r.LastRun),
		"",
	}
	for _, step := range r.Steps {
		parts = append(parts, fmt.Sprintf("Step %d: %s -> %s [%s]", step.Step, step.Action, step.Expected, step.Status))
	}
	if r.Notes != "" {
		parts = append(parts, "", r.Notes)
	}
	return strings.Join(parts, "\n")
}

func (r E2EScenarioReport) Metadata() map[string]any {
	return map[string]any{
		"flow":     r.Flow,
		"priority": r.Priority,
		"status":   r.Status,
		"lastRun":  r.LastRun,
		"duration": r.Duration,
	}
}
