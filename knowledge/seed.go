package knowledge

// SeedDocuments returns the static demo corpus: a slice of the payments
// team's internal records covering every supported resource type. The corpus
// is rebuilt wholesale on every seed run, so order and content are fixed.
func SeedDocuments() []Document {
	return []Document{
		Ticket{
			ID:          "PAY-101",
			Kind:        "story",
			Name:        "Integrate Stripe Payment Intents API for checkout flow",
			Status:      "in_progress",
			Priority:    "critical",
			Assignee:    "Sarah Chen",
			StoryPoints: 13,
			Description: "Migrate checkout payment processing from the legacy Charges API to the " +
				"Payment Intents API. Required for Strong Customer Authentication (SCA) support. " +
				"Per the Stripe Processing Agreement (Section 4.2), the SLA target is 99.95% uptime " +
				"on payment processing endpoints.\n\n" +
				"The backend service at /api/payments/create-intent must create the PaymentIntent " +
				"server-side with the correct amount, currency, and metadata, and idempotency keys " +
				"must be scoped per attempt to prevent duplicate charges on network retries.",
			Comments: []Comment{
				{Author: "Mike Rodriguez", Date: "2026-01-08", Text: "The requires_action status needs special handling for 3DS challenges; the client must call handleCardAction in that case."},
				{Author: "Priya Sharma", Date: "2026-01-10", Text: "Idempotency keys must be scoped per-attempt, not per-order. See postmortem INC-2045 for what happens otherwise."},
			},
		},
		Ticket{
			ID:          "PAY-102",
			Kind:        "bug",
			Name:        "Checkout timeout causing 504 errors under high concurrency",
			Status:      "done",
			Priority:    "critical",
			Assignee:    "Mike Rodriguez",
			StoryPoints: 8,
			Description: "Under traffic spikes above 2,000 concurrent checkouts, POST /api/checkout/complete " +
				"returns HTTP 504 after the 30-second proxy timeout. Root cause is connection pool " +
				"exhaustion on the payment service's HTTP client toward Stripe: the pool was capped " +
				"at 50 connections with no circuit breaker.\n\n" +
				"Fix raised the pool to 200 connections with a 5s per-request timeout, added a circuit " +
				"breaker with a 10-second half-open reset, and load shedding now returns 503 with a " +
				"Retry-After header instead of 504.",
			Comments: []Comment{
				{Author: "James Wilson", Date: "2026-01-06", Text: "p99 latency to Stripe jumped from 800ms to 12s during the incident window; the pool was the bottleneck, not Stripe."},
			},
		},
		WikiPage{
			ID:       "wiki-001",
			Name:     "Payment Gateway Integration Guide",
			Category: "Engineering",
			Author:   "Sarah Chen",
			Updated:  "2025-12-10",
			Content: "The checkout flow creates a PaymentIntent server-side, confirms it client-side " +
				"with the returned client secret, and handles 3D Secure challenges via the " +
				"requires_action status. Webhook handlers listen for payment_intent.succeeded and " +
				"payment_intent.payment_failed and must be idempotent: the same event can be " +
				"delivered more than once.\n\n" +
				"All amounts are integer cents. Currency conversion happens upstream in the pricing " +
				"service; the gateway layer never converts.",
		},
		WikiPage{
			ID:       "wiki-002",
			Name:     "Refund Processing Runbook",
			Category: "Operations",
			Author:   "Priya Sharma",
			Updated:  "2026-01-04",
			Content: "Full refunds are issued against the original PaymentIntent. Partial refunds for " +
				"partially fulfilled orders must subtract already-captured shipping costs before " +
				"computing the refundable amount. Refunds settle in 5-10 business days; support can " +
				"quote that window to customers.",
		},
		Contract{
			ID:            "CONTRACT-001",
			Name:          "Payment Processing Services Agreement",
			Vendor:        "Stripe, Inc.",
			EffectiveDate: "2024-01-15",
			Expiration:    "2027-01-14",
			KeyTerms:      []string{"transaction fee 2.9% + $0.30", "uptime SLA 99.95%", "chargeback fee $15"},
			Content: "Stripe provides payment processing services at a blended rate of 2.9% + $0.30 per " +
				"successful card transaction. Section 4.2 commits both parties to a 99.95% monthly " +
				"uptime SLA on processing endpoints; Section 7 caps chargeback fees at $15 per " +
				"disputed transaction. The agreement renews annually unless terminated with 90 days " +
				"written notice.",
		},
		ChatThread{
			ID:      "chat-001",
			Channel: "#payments-eng",
			Topic:   "Refund logic for partially fulfilled orders",
			Messages: []Message{
				{From: "priya", Text: "Quick sanity check: for a partially fulfilled order, do we refund shipping pro-rata or in full?"},
				{From: "mike", Text: "Pro-rata. The runbook on the wiki has the exact formula - refundable = captured - shipped portion of shipping."},
				{From: "sarah", Text: "And always refund against the original PaymentIntent, never a fresh charge reversal."},
			},
		},
		Email{
			ID:      "EMAIL-001",
			Subject: "Payment Gateway Migration: Timeline & Assignments",
			From:    "David Kim <david.kim@acmecommerce.com>",
			To:      []string{"payments-eng@acmecommerce.com"},
			Date:    "2026-01-02",
			Body: "Team, the legacy gateway migration to Stripe Payment Intents is our top priority for " +
				"Q1. Sarah owns the server-side intent creation (PAY-101), Mike owns resiliency work " +
				"coming out of the January incident (PAY-102). Target completion is end of Sprint 25. " +
				"Flag blockers in #payments-eng, not in email.",
		},
		MeetingNote{
			ID:        "MEETING-001",
			Name:      "Sprint Planning - Sprint 24",
			Kind:      "planning",
			Date:      "2026-01-12",
			Duration:  "45m",
			Attendees: []string{"Sarah Chen", "Mike Rodriguez", "Priya Sharma", "James Wilson"},
			Notes: "Committed: PAY-101 (13 pts, Sarah), PAY-102 verification in prod (Mike). Carry-over: " +
				"webhook idempotency audit. Decision: circuit breaker thresholds stay at 50% error " +
				"rate with a 10s reset until we have two weeks of production data.",
		},
		Postmortem{
			ID:           "POSTMORTEM-001",
			Name:         "Payment Processing Outage - Black Friday 2024",
			IncidentDate: "2024-11-29",
			Severity:     "SEV-1",
			Duration:     "2h 15m",
			Author:       "Marcus Chen",
			Content: "At 14:32 UTC checkout availability dropped to 12%. The payment service exhausted " +
				"its Stripe connection pool when upstream latency degraded, and pending requests " +
				"queued unboundedly until memory pressure triggered restarts.\n\n" +
				"Contributing factors: no circuit breaker, unbounded request queue, health checks " +
				"sharing the same HTTP client as payment traffic.\n\n" +
				"Action items: bounded queues with fast-fail (done), bulkhead between health checks " +
				"and payment calls (done), load test at 5,000 concurrent checkouts before every " +
				"peak season (recurring).",
		},
		SupportTicket{
			ID:       "SUPPORT-001",
			Subject:  "Charged twice for order #ORD-8847",
			Customer: "Jane Doyle",
			Priority: "high",
			Status:   "resolved",
			Category: "billing",
			Created:  "2026-01-09",
			Messages: []Message{
				{From: "Jane Doyle", Timestamp: "2026-01-09 10:02", Text: "I was charged twice for order ORD-8847, please refund one of the charges."},
				{From: "Support", Timestamp: "2026-01-09 11:45", Text: "Confirmed a duplicate authorization from a network retry. The duplicate has been voided; you will see the release in 5-10 business days."},
			},
		},
		APITestReport{
			ID:       "API-TEST-001",
			Suite:    "Payment Intents API",
			Endpoint: "/api/payments/create-intent",
			Method:   "POST",
			Status:   "passing",
			LastRun:  "2026-01-14",
			Coverage: "87%",
			Tests: []TestCase{
				{Name: "creates intent with valid order", Status: "pass", Duration: "120ms", Description: "PaymentIntent created with correct amount and metadata"},
				{Name: "rejects zero amount", Status: "pass", Duration: "45ms", Description: "400 returned for non-positive amounts"},
				{Name: "retries are idempotent", Status: "pass", Duration: "310ms", Description: "same idempotency key returns the original intent"},
			},
			Notes: "Suite runs on every merge to main; flaky 3DS simulation test was quarantined in December.",
		},
		E2EScenarioReport{
			ID:       "E2E-001",
			Name:     "Guest checkout with 3DS challenge",
			Flow:     "checkout",
			Priority: "critical",
			Status:   "automated",
			LastRun:  "2026-01-14",
			Duration: "3m 40s",
			Steps: []ScenarioStep{
				{Step: 1, Action: "Add item to cart as guest", Expected: "cart shows one item", Status: "pass"},
				{Step: 2, Action: "Submit card requiring 3DS", Expected: "challenge iframe appears", Status: "pass"},
				{Step: 3, Action: "Complete challenge", Expected: "order confirmation page", Status: "pass"},
			},
			Notes: "Runs nightly against staging with Stripe test cards.",
		},
	}
}
