package enums

import "fmt"

// QuoteUrgency describes how quickly the customer needs pricing back.
type QuoteUrgency string

const (
	QuoteUrgencyStandard  QuoteUrgency = "standard"
	QuoteUrgencyUrgent    QuoteUrgency = "urgent"
	QuoteUrgencyEmergency QuoteUrgency = "emergency"
)

var validQuoteUrgencies = []QuoteUrgency{
	QuoteUrgencyStandard,
	QuoteUrgencyUrgent,
	QuoteUrgencyEmergency,
}

// IsValid reports whether the value matches the canonical urgency enum.
func (u QuoteUrgency) IsValid() bool {
	for _, candidate := range validQuoteUrgencies {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseQuoteUrgency converts the raw string to QuoteUrgency.
func ParseQuoteUrgency(value string) (QuoteUrgency, error) {
	for _, candidate := range validQuoteUrgencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote urgency %q", value)
}

// QuoteStatus tracks the back-office lifecycle of a quote request.
type QuoteStatus string

const (
	QuoteStatusPending    QuoteStatus = "pending"
	QuoteStatusProcessing QuoteStatus = "processing"
	QuoteStatusQuoted     QuoteStatus = "quoted"
	QuoteStatusCompleted  QuoteStatus = "completed"
	QuoteStatusCancelled  QuoteStatus = "cancelled"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusProcessing,
	QuoteStatusQuoted,
	QuoteStatusCompleted,
	QuoteStatusCancelled,
}

// IsValid reports whether the value matches the canonical quote status enum.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts the raw string to QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
