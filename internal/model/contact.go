package model

// ContactStatus is the lifecycle state of a customer contact.
type ContactStatus string

// Contact statuses.
const (
	ContactActive   ContactStatus = "active"
	ContactProspect ContactStatus = "prospect"
	ContactInactive ContactStatus = "inactive"
	ContactChurned  ContactStatus = "churned"
)

// ContactTier is the account tier of a customer contact.
type ContactTier string

// Contact tiers.
const (
	TierEnterprise ContactTier = "enterprise"
	TierBusiness   ContactTier = "business"
	TierStarter    ContactTier = "starter"
)

// ContactStatuses lists every valid ContactStatus.
var ContactStatuses = []ContactStatus{ContactActive, ContactProspect, ContactInactive, ContactChurned}

// ContactTiers lists every valid ContactTier.
var ContactTiers = []ContactTier{TierEnterprise, TierBusiness, TierStarter}

// ContactDimensions are the filter dimensions of the customers page.
var ContactDimensions = []DimensionSpec{
	dimension(DimStatus, "Status", ContactStatuses),
	dimension(DimTier, "Tier", ContactTiers),
}

var contactMetrics = []string{MetricRevenue, MetricDeals}

// Contact represents a customer contact.
type Contact struct {
	ID          string        `yaml:"id" json:"id"`
	Name        string        `yaml:"name" json:"name"`
	Company     string        `yaml:"company" json:"company"`
	Email       string        `yaml:"email" json:"email"`
	Phone       string        `yaml:"phone" json:"phone,omitempty"`
	Status      ContactStatus `yaml:"status" json:"status"`
	Tier        ContactTier   `yaml:"tier" json:"tier"`
	LastContact string        `yaml:"last_contact" json:"last_contact,omitempty"`
	Tags        []string      `yaml:"tags" json:"tags,omitempty"`
	Revenue     float64       `yaml:"revenue" json:"revenue"`
	Deals       int           `yaml:"deals" json:"deals"`
}

// RecordID implements Identified.
func (c Contact) RecordID() string { return c.ID }

// SearchFields implements Searchable.
func (c Contact) SearchFields() []string { return []string{c.Name, c.Company, c.Email} }

// TagSet implements Searchable.
func (c Contact) TagSet() []string { return c.Tags }

// Dimension implements Categorized.
func (c Contact) Dimension(name string) (string, bool) {
	switch name {
	case DimStatus:
		return string(c.Status), true
	case DimTier:
		return string(c.Tier), true
	}
	return "", false
}

// Metric implements Measured.
func (c Contact) Metric(name string) (float64, bool) {
	switch name {
	case MetricRevenue:
		return c.Revenue, true
	case MetricDeals:
		return float64(c.Deals), true
	}
	return 0, false
}

// Validate checks categorical fields and metrics.
func (c Contact) Validate() error {
	return validateRecord(c, ContactDimensions, contactMetrics)
}
