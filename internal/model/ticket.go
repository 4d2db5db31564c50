package model

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

// Ticket statuses.
const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in-progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// TicketCategory is the support queue a ticket belongs to.
type TicketCategory string

// Ticket categories.
const (
	TicketBilling   TicketCategory = "billing"
	TicketTechnical TicketCategory = "technical"
	TicketAccount   TicketCategory = "account"
	TicketFeature   TicketCategory = "feature"
)

// TicketStatuses lists every valid TicketStatus.
var TicketStatuses = []TicketStatus{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}

// TicketPriorities lists the priorities a ticket may carry.
var TicketPriorities = []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}

// TicketCategories lists every valid TicketCategory.
var TicketCategories = []TicketCategory{TicketBilling, TicketTechnical, TicketAccount, TicketFeature}

// TicketDimensions are the filter dimensions of the tickets page.
var TicketDimensions = []DimensionSpec{
	dimension(DimStatus, "Status", TicketStatuses),
	dimension(DimPriority, "Priority", TicketPriorities),
	dimension(DimCategory, "Category", TicketCategories),
}

var ticketMetrics = []string{MetricResponseHours, MetricSatisfaction}

// Ticket is a customer support ticket.
type Ticket struct {
	ID            string         `yaml:"id" json:"id"`
	Subject       string         `yaml:"subject" json:"subject"`
	Customer      string         `yaml:"customer" json:"customer"`
	Description   string         `yaml:"description" json:"description"`
	Assignee      string         `yaml:"assignee" json:"assignee,omitempty"`
	Status        TicketStatus   `yaml:"status" json:"status"`
	Priority      Priority       `yaml:"priority" json:"priority"`
	Category      TicketCategory `yaml:"category" json:"category"`
	Tags          []string       `yaml:"tags" json:"tags,omitempty"`
	ResponseHours float64        `yaml:"response_hours" json:"response_hours"`
	Satisfaction  float64        `yaml:"satisfaction" json:"satisfaction"`
}

// RecordID implements Identified.
func (t Ticket) RecordID() string { return t.ID }

// SearchFields implements Searchable.
func (t Ticket) SearchFields() []string { return []string{t.Subject, t.Customer, t.Description} }

// TagSet implements Searchable.
func (t Ticket) TagSet() []string { return t.Tags }

// Dimension implements Categorized.
func (t Ticket) Dimension(name string) (string, bool) {
	switch name {
	case DimStatus:
		return string(t.Status), true
	case DimPriority:
		return string(t.Priority), true
	case DimCategory:
		return string(t.Category), true
	}
	return "", false
}

// Metric implements Measured.
func (t Ticket) Metric(name string) (float64, bool) {
	switch name {
	case MetricResponseHours:
		return t.ResponseHours, true
	case MetricSatisfaction:
		return t.Satisfaction, true
	}
	return 0, false
}

// Validate checks categorical fields and metrics.
func (t Ticket) Validate() error {
	return validateRecord(t, TicketDimensions, ticketMetrics)
}
