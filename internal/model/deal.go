package model

// DealStage is the pipeline stage of a deal.
type DealStage string

// Deal stages.
const (
	StageLead        DealStage = "lead"
	StageQualified   DealStage = "qualified"
	StageProposal    DealStage = "proposal"
	StageNegotiation DealStage = "negotiation"
	StageWon         DealStage = "won"
	StageLost        DealStage = "lost"
)

// Priority is shared by deals and tickets.
type Priority string

// Priorities.
const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DealStages lists every valid DealStage in pipeline order.
var DealStages = []DealStage{StageLead, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost}

// DealPriorities lists the priorities a deal may carry.
var DealPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// DealDimensions are the filter dimensions of the pipeline page.
var DealDimensions = []DimensionSpec{
	dimension(DimStage, "Stage", DealStages),
	dimension(DimPriority, "Priority", DealPriorities),
}

var dealMetrics = []string{MetricValue, MetricProbability}

// Deal is an opportunity in the sales pipeline.
type Deal struct {
	ID          string    `yaml:"id" json:"id"`
	Title       string    `yaml:"title" json:"title"`
	Company     string    `yaml:"company" json:"company"`
	Owner       string    `yaml:"owner" json:"owner"`
	Stage       DealStage `yaml:"stage" json:"stage"`
	Priority    Priority  `yaml:"priority" json:"priority"`
	CloseDate   string    `yaml:"close_date" json:"close_date,omitempty"`
	Value       float64   `yaml:"value" json:"value"`
	Probability float64   `yaml:"probability" json:"probability"`
}

// RecordID implements Identified.
func (d Deal) RecordID() string { return d.ID }

// SearchFields implements Searchable.
func (d Deal) SearchFields() []string { return []string{d.Title, d.Company, d.Owner} }

// TagSet implements Searchable. Deals carry no tags.
func (d Deal) TagSet() []string { return nil }

// Dimension implements Categorized.
func (d Deal) Dimension(name string) (string, bool) {
	switch name {
	case DimStage:
		return string(d.Stage), true
	case DimPriority:
		return string(d.Priority), true
	}
	return "", false
}

// Metric implements Measured.
func (d Deal) Metric(name string) (float64, bool) {
	switch name {
	case MetricValue:
		return d.Value, true
	case MetricProbability:
		return d.Probability, true
	}
	return 0, false
}

// Validate checks categorical fields and metrics.
func (d Deal) Validate() error {
	return validateRecord(d, DealDimensions, dealMetrics)
}

// WeightedValue is the deal value scaled by its win probability.
func (d Deal) WeightedValue() float64 {
	return d.Value * d.Probability / 100
}
