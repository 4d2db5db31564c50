package model

// PartnerTier is the program level of a channel partner.
type PartnerTier string

// Partner tiers.
const (
	PartnerPlatinum PartnerTier = "platinum"
	PartnerGold     PartnerTier = "gold"
	PartnerSilver   PartnerTier = "silver"
	PartnerBronze   PartnerTier = "bronze"
)

// PartnerType is the kind of partnership.
type PartnerType string

// Partner types.
const (
	PartnerReseller   PartnerType = "reseller"
	PartnerReferral   PartnerType = "referral"
	PartnerTechnology PartnerType = "technology"
	PartnerConsulting PartnerType = "consulting"
)

// PartnerStatus is the lifecycle state of a partnership.
type PartnerStatus string

// Partner statuses.
const (
	PartnerActive   PartnerStatus = "active"
	PartnerPending  PartnerStatus = "pending"
	PartnerInactive PartnerStatus = "inactive"
)

// PartnerTiers lists every valid PartnerTier.
var PartnerTiers = []PartnerTier{PartnerPlatinum, PartnerGold, PartnerSilver, PartnerBronze}

// PartnerTypes lists every valid PartnerType.
var PartnerTypes = []PartnerType{PartnerReseller, PartnerReferral, PartnerTechnology, PartnerConsulting}

// PartnerStatuses lists every valid PartnerStatus.
var PartnerStatuses = []PartnerStatus{PartnerActive, PartnerPending, PartnerInactive}

// PartnerDimensions are the filter dimensions of the partners page.
var PartnerDimensions = []DimensionSpec{
	dimension(DimTier, "Tier", PartnerTiers),
	dimension(DimType, "Type", PartnerTypes),
	dimension(DimStatus, "Status", PartnerStatuses),
}

var partnerMetrics = []string{MetricRevenue, MetricDeals, MetricCommission}

// Partner is a reseller, referral, technology or consulting partner.
type Partner struct {
	ID         string        `yaml:"id" json:"id"`
	Name       string        `yaml:"name" json:"name"`
	Contact    string        `yaml:"contact" json:"contact"`
	Email      string        `yaml:"email" json:"email"`
	Tier       PartnerTier   `yaml:"tier" json:"tier"`
	Type       PartnerType   `yaml:"type" json:"type"`
	Status     PartnerStatus `yaml:"status" json:"status"`
	Tags       []string      `yaml:"tags" json:"tags,omitempty"`
	Revenue    float64       `yaml:"revenue" json:"revenue"`
	Deals      int           `yaml:"deals" json:"deals"`
	Commission float64       `yaml:"commission" json:"commission"`
}

// RecordID implements Identified.
func (p Partner) RecordID() string { return p.ID }

// SearchFields implements Searchable.
func (p Partner) SearchFields() []string { return []string{p.Name, p.Contact, p.Email} }

// TagSet implements Searchable.
func (p Partner) TagSet() []string { return p.Tags }

// Dimension implements Categorized.
func (p Partner) Dimension(name string) (string, bool) {
	switch name {
	case DimTier:
		return string(p.Tier), true
	case DimType:
		return string(p.Type), true
	case DimStatus:
		return string(p.Status), true
	}
	return "", false
}

// Metric implements Measured.
func (p Partner) Metric(name string) (float64, bool) {
	switch name {
	case MetricRevenue:
		return p.Revenue, true
	case MetricDeals:
		return float64(p.Deals), true
	case MetricCommission:
		return p.Commission, true
	}
	return 0, false
}

// Validate checks categorical fields and metrics.
func (p Partner) Validate() error {
	return validateRecord(p, PartnerDimensions, partnerMetrics)
}
