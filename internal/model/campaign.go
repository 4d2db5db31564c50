package model

// CampaignStatus is the lifecycle state of a marketing campaign.
type CampaignStatus string

// Campaign statuses.
const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Channel is the marketing channel a campaign runs on.
type Channel string

// Channels.
const (
	ChannelEmail  Channel = "email"
	ChannelSocial Channel = "social"
	ChannelSearch Channel = "search"
	ChannelEvents Channel = "events"
)

// CampaignStatuses lists every valid CampaignStatus.
var CampaignStatuses = []CampaignStatus{CampaignDraft, CampaignScheduled, CampaignActive, CampaignPaused, CampaignCompleted}

// Channels lists every valid Channel.
var Channels = []Channel{ChannelEmail, ChannelSocial, ChannelSearch, ChannelEvents}

// CampaignDimensions are the filter dimensions of the campaigns page.
var CampaignDimensions = []DimensionSpec{
	dimension(DimStatus, "Status", CampaignStatuses),
	dimension(DimChannel, "Channel", Channels),
}

var campaignMetrics = []string{
	MetricBudget, MetricSpent, MetricRecipients, MetricOpened, MetricClicked, MetricConversions,
}

// Campaign is a marketing campaign with delivery and engagement counters.
type Campaign struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	Description string         `yaml:"description" json:"description"`
	Status      CampaignStatus `yaml:"status" json:"status"`
	Channel     Channel        `yaml:"channel" json:"channel"`
	StartDate   string         `yaml:"start_date" json:"start_date,omitempty"`
	Tags        []string       `yaml:"tags" json:"tags,omitempty"`
	Budget      float64        `yaml:"budget" json:"budget"`
	Spent       float64        `yaml:"spent" json:"spent"`
	Recipients  int            `yaml:"recipients" json:"recipients"`
	Opened      int            `yaml:"opened" json:"opened"`
	Clicked     int            `yaml:"clicked" json:"clicked"`
	Conversions int            `yaml:"conversions" json:"conversions"`
}

// RecordID implements Identified.
func (c Campaign) RecordID() string { return c.ID }

// SearchFields implements Searchable.
func (c Campaign) SearchFields() []string { return []string{c.Name, c.Description} }

// TagSet implements Searchable.
func (c Campaign) TagSet() []string { return c.Tags }

// Dimension implements Categorized.
func (c Campaign) Dimension(name string) (string, bool) {
	switch name {
	case DimStatus:
		return string(c.Status), true
	case DimChannel:
		return string(c.Channel), true
	}
	return "", false
}

// Metric implements Measured.
func (c Campaign) Metric(name string) (float64, bool) {
	switch name {
	case MetricBudget:
		return c.Budget, true
	case MetricSpent:
		return c.Spent, true
	case MetricRecipients:
		return float64(c.Recipients), true
	case MetricOpened:
		return float64(c.Opened), true
	case MetricClicked:
		return float64(c.Clicked), true
	case MetricConversions:
		return float64(c.Conversions), true
	}
	return 0, false
}

// Validate checks categorical fields and metrics.
func (c Campaign) Validate() error {
	return validateRecord(c, CampaignDimensions, campaignMetrics)
}
