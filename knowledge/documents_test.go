package knowledge

import (
	"strings"
	"testing"
)

func TestTicketCanonicalText(t *testing.T) {
	ticket := Ticket{
		ID:          "PAY-404",
		Kind:        "bug",
		Name:        "Refund webhook dropped",
		Status:      "In Progress",
		Priority:    "High",
		Assignee:    "Sarah Chen",
		Description: "Webhook retries exhausted after 3 attempts.",
		Comments: []Comment{
			{Author: "Marcus Rivera", Date: "2025-02-10", Text: "Reproduced on staging."},
		},
	}

	want := "[Ticket BUG] PAY-404: Refund webhook dropped\n" +
		"Status: In Progress | Priority: High | Assignee: Sarah Chen\n" +
		"\n" +
		"Webhook retries exhausted after 3 attempts.\n" +
		"\n" +
		"--- Comments ---\n" +
		"Marcus Rivera (2025-02-10): Reproduced on staging."

	if got := ticket.CanonicalText(); got != want {
		t.Fatalf("canonical text mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTicketWithoutCommentsOmitsSection(t *testing.T) {
	ticket := Ticket{ID: "PAY-1", Kind: "story", Name: "X", Description: "Y"}
	if strings.Contains(ticket.CanonicalText(), "--- Comments ---") {
		t.Fatal("expected no comments section when there are no comments")
	}
}

func TestChatThreadRendersMessagesInOrder(t *testing.T) {
	thread := ChatThread{
		ID:      "chat-7",
		Channel: "payments-eng",
		Topic:   "Gateway timeout spike",
		Messages: []Message{
			{From: "sarah", Text: "Timeouts up since 14:00."},
			{From: "marcus", Text: "Rolling back the pool change."},
		},
	}

	text := thread.CanonicalText()
	if !strings.HasPrefix(text, "[Chat - payments-eng] Gateway timeout spike\n\n") {
		t.Fatalf("unexpected header: %q", text)
	}
	first := strings.Index(text, "sarah: Timeouts up since 14:00.")
	second := strings.Index(text, "marcus: Rolling back the pool change.")
	if first < 0 || second < 0 || second < first {
		t.Fatalf("expected messages rendered in order, got:\n%s", text)
	}
}

func TestCanonicalTextIsDeterministic(t *testing.T) {
	for _, doc := range SeedDocuments() {
		first := doc.CanonicalText()
		for i := 0; i < 3; i++ {
			if doc.CanonicalText() != first {
				t.Fatalf("%s: canonical text varies between calls", doc.SourceID())
			}
		}
	}
}

func TestSeedDocumentsCoverEveryType(t *testing.T) {
	seen := make(map[ResourceType]bool)
	ids := make(map[string]bool)
	for _, doc := range SeedDocuments() {
		seen[doc.Type()] = true
		if ids[doc.SourceID()] {
			t.Fatalf("duplicate source id %s", doc.SourceID())
		}
		ids[doc.SourceID()] = true

		if doc.SourceID() == "" || doc.Title() == "" {
			t.Fatalf("seed document of type %s missing id or title", doc.Type())
		}
		if strings.TrimSpace(doc.CanonicalText()) == "" {
			t.Fatalf("%s: empty canonical text", doc.SourceID())
		}
	}

	for _, typ := range []ResourceType{
		TypeTicket, TypeWiki, TypeContract, TypeChatThread, TypeEmail,
		TypeMeetingNote, TypePostmortem, TypeSupportTicket,
		TypeAPITestReport, TypeE2EReport,
	} {
		if !seen[typ] {
			t.Errorf("no seed document of type %s", typ)
		}
	}
}

func TestReportFormattersIncludeStepsAndCases(t *testing.T) {
	api := APITestReport{
		ID: "API-1", Suite: "Refund API", Endpoint: "/v1/refunds", Method: "POST",
		Status: "passing", Coverage: "92%", LastRun: "2025-02-11",
		Tests: []TestCase{{Name: "creates refund", Status: "pass", Duration: "120ms", Description: "happy path"}},
	}
	if !strings.Contains(api.CanonicalText(), "- creates refund [pass] (120ms): happy path") {
		t.Fatalf("unexpected api report text:\n%s", api.CanonicalText())
	}

	e2e := E2EScenarioReport{
		ID: "E2E-1", Name: "Checkout", Flow: "purchase", Priority: "critical",
		Status: "passing", LastRun: "2025-02-11",
		Steps: []ScenarioStep{{Step: 1, Action: "add to cart", Expected: "cart updated", Status: "pass"}},
	}
	if !strings.Contains(e2e.CanonicalText(), "Step 1: add to cart -> cart updated [pass]") {
		t.Fatalf("unexpected e2e report text:\n%s", e2e.CanonicalText())
	}
}
