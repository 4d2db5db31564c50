package page

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/aggregate"
	"github.com/Veraticus/crm-dashboard/internal/fixtures"
	"github.com/Veraticus/crm-dashboard/internal/model"
)

// Page names.
const (
	Customers = "customers"
	Pipeline  = "pipeline"
	Partners  = "partners"
	Campaigns = "campaigns"
	Tickets   = "tickets"
)

// Default builds the standard dashboard over a record catalog.
func Default(c *fixtures.Catalog) (*Registry, error) {
	pages := make([]Page, 0, 5)
	for _, build := range []func(*fixtures.Catalog) (Page, error){
		customersPage,
		pipelinePage,
		partnersPage,
		campaignsPage,
		ticketsPage,
	} {
		p, err := build(c)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return NewRegistry(pages...)
}

func customersPage(c *fixtures.Catalog) (Page, error) {
	return New(Definition[model.Contact]{
		Name:       Customers,
		Title:      "Customers",
		Module:     ModuleSales,
		Store:      c.Contacts,
		Dimensions: model.ContactDimensions,
		Metrics:    []string{model.MetricRevenue, model.MetricDeals},
		Columns: []Column[model.Contact]{
			{Title: "Name", Width: 18, Value: func(r model.Contact) string { return r.Name }},
			{Title: "Company", Width: 18, Value: func(r model.Contact) string { return r.Company }},
			{Title: "Email", Width: 26, Value: func(r model.Contact) string { return r.Email }},
			{Title: "Status", Width: 10, Value: func(r model.Contact) string { return string(r.Status) }},
			{Title: "Tier", Width: 11, Value: func(r model.Contact) string { return string(r.Tier) }},
			{Title: "Revenue", Width: 14, Value: func(r model.Contact) string { return aggregate.FormatCurrency(r.Revenue) }},
			{Title: "Tags", Width: 20, Value: func(r model.Contact) string { return strings.Join(r.Tags, ", ") }},
		},
		Stats: []StatDef{
			{Label: "Total Customers", Kind: KindCount, Scope: ScopeAll},
			{Label: "Active", Kind: KindCount, Scope: ScopeAll, Where: DimensionIs(model.DimStatus, string(model.ContactActive))},
			{Label: "Total Revenue", Kind: KindSum, Scope: ScopeFiltered, Metric: model.MetricRevenue, Format: FormatCurrency},
			{Label: "Avg Revenue", Kind: KindAverage, Scope: ScopeFiltered, Metric: model.MetricRevenue, Format: FormatCurrency},
		},
		SeriesMetric: model.MetricRevenue,
		SeriesFormat: FormatCurrency,
	})
}

func pipelinePage(c *fixtures.Catalog) (Page, error) {
	return New(Definition[model.Deal]{
		Name:       Pipeline,
		Title:      "Pipeline",
		Module:     ModuleSales,
		Store:      c.Deals,
		Dimensions: model.DealDimensions,
		Metrics:    []string{model.MetricValue, model.MetricProbability},
		Columns: []Column[model.Deal]{
			{Title: "Deal", Width: 26, Value: func(r model.Deal) string { return r.Title }},
			{Title: "Company", Width: 18, Value: func(r model.Deal) string { return r.Company }},
			{Title: "Owner", Width: 14, Value: func(r model.Deal) string { return r.Owner }},
			{Title: "Stage", Width: 12, Value: func(r model.Deal) string { return string(r.Stage) }},
			{Title: "Value", Width: 14, Value: func(r model.Deal) string { return aggregate.FormatCurrency(r.Value) }},
			{Title: "Prob.", Width: 6, Value: func(r model.Deal) string { return strconv.FormatFloat(r.Probability, 'f', 0, 64) + "%" }},
			{Title: "Close", Width: 10, Value: func(r model.Deal) string { return r.CloseDate }},
		},
		Stats: []StatDef{
			{Label: "Deals", Kind: KindCount, Scope: ScopeFiltered},
			{Label: "Pipeline Value", Kind: KindSum, Scope: ScopeFiltered, Metric: model.MetricValue, Format: FormatCurrency},
			{Label: "Avg Deal Size", Kind: KindAverage, Scope: ScopeFiltered, Metric: model.MetricValue, Format: FormatCurrency},
			{Label: "Avg Probability", Kind: KindAverage, Scope: ScopeFiltered, Metric: model.MetricProbability, Format: FormatDecimal},
			{Label: "Won", Kind: KindCount, Scope: ScopeAll, Where: DimensionIs(model.DimStage, string(model.StageWon))},
		},
		SeriesMetric: model.MetricValue,
		SeriesFormat: FormatCurrency,
	})
}

func partnersPage(c *fixtures.Catalog) (Page, error) {
	return New(Definition[model.Partner]{
		Name:       Partners,
		Title:      "Partners",
		Module:     ModuleSales,
		Store:      c.Partners,
		Dimensions: model.PartnerDimensions,
		Metrics:    []string{model.MetricRevenue, model.MetricDeals, model.MetricCommission},
		Columns: []Column[model.Partner]{
			{Title: "Partner", Width: 22, Value: func(r model.Partner) string { return r.Name }},
			{Title: "Contact", Width: 16, Value: func(r model.Partner) string { return r.Contact }},
			{Title: "Tier", Width: 9, Value: func(r model.Partner) string { return string(r.Tier) }},
			{Title: "Type", Width: 11, Value: func(r model.Partner) string { return string(r.Type) }},
			{Title: "Status", Width: 9, Value: func(r model.Partner) string { return string(r.Status) }},
			{Title: "Revenue", Width: 14, Value: func(r model.Partner) string { return aggregate.FormatCurrency(r.Revenue) }},
			{Title: "Deals", Width: 6, Value: func(r model.Partner) string { return strconv.Itoa(r.Deals) }},
		},
		Stats: []StatDef{
			{Label: "Total Partners", Kind: KindCount, Scope: ScopeAll},
			{Label: "Partner Revenue", Kind: KindSum, Scope: ScopeFiltered, Metric: model.MetricRevenue, Format: FormatCurrency},
			{Label: "Deals Closed", Kind: KindSum, Scope: ScopeFiltered, Metric: model.MetricDeals},
			{Label: "Avg Commission", Kind: KindAverage, Scope: ScopeFiltered, Metric: model.MetricCommission, Format: FormatPercent},
		},
		SeriesMetric: model.MetricRevenue,
		SeriesFormat: FormatCurrency,
	})
}

func campaignsPage(c *fixtures.Catalog) (Page, error) {
	return New(Definition[model.Campaign]{
		Name:       Campaigns,
		Title:      "Campaigns",
		Module:     ModuleMarketing,
		Store:      c.Campaigns,
		Dimensions: model.CampaignDimensions,
		Metrics:    []string{model.MetricBudget, model.MetricSpent, model.MetricConversions},
		Columns: []Column[model.Campaign]{
			{Title: "Campaign", Width: 26, Value: func(r model.Campaign) string { return r.Name }},
			{Title: "Channel", Width: 8, Value: func(r model.Campaign) string { return string(r.Channel) }},
			{Title: "Status", Width: 10, Value: func(r model.Campaign) string { return string(r.Status) }},
			{Title: "Budget", Width: 12, Value: func(r model.Campaign) string { return aggregate.FormatCurrency(r.Budget) }},
			{Title: "Spent", Width: 12, Value: func(r model.Campaign) string { return aggregate.FormatCurrency(r.Spent) }},
			{Title: "Open Rate", Width: 9, Value: func(r model.Campaign) string {
				return aggregate.FormatPercent(aggregate.Rate(float64(r.Opened), float64(r.Recipients)))
			}},
			{Title: "Conv.", Width: 6, Value: func(r model.Campaign) string { return strconv.Itoa(r.Conversions) }},
		},
		Stats: []StatDef{
			{Label: "Campaigns", Kind: KindCount, Scope: ScopeFiltered},
			{Label: "Total Budget", Kind: KindSum, Scope: ScopeFiltered, Metric: model.MetricBudget, Format: FormatCurrency},
			{Label: "Budget Used", Kind: KindRate, Scope: ScopeFiltered, Metric: model.MetricSpent, Denominator: model.MetricBudget, Format: FormatPercent},
			{Label: "Open Rate", Kind: KindRate, Scope: ScopeFiltered, Metric: model.MetricOpened, Denominator: model.MetricRecipients, Format: FormatPercent},
			{Label: "Click Rate", Kind: KindRate, Scope: ScopeFiltered, Metric: model.MetricClicked, Denominator: model.MetricRecipients, Format: FormatPercent},
			{Label: "Conversions", Kind: KindSum, Scope: ScopeFiltered, Metric: model.MetricConversions},
		},
		SeriesMetric: model.MetricSpent,
		SeriesFormat: FormatCurrency,
	})
}

func ticketsPage(c *fixtures.Catalog) (Page, error) {
	return New(Definition[model.Ticket]{
		Name:       Tickets,
		Title:      "Tickets",
		Module:     ModuleSupport,
		Store:      c.Tickets,
		Dimensions: model.TicketDimensions,
		Metrics:    []string{model.MetricResponseHours, model.MetricSatisfaction},
		Columns: []Column[model.Ticket]{
			{Title: "ID", Width: 7, Value: func(r model.Ticket) string { return r.ID }},
			{Title: "Subject", Width: 30, Value: func(r model.Ticket) string { return r.Subject }},
			{Title: "Customer", Width: 18, Value: func(r model.Ticket) string { return r.Customer }},
			{Title: "Status", Width: 11, Value: func(r model.Ticket) string { return string(r.Status) }},
			{Title: "Priority", Width: 8, Value: func(r model.Ticket) string { return string(r.Priority) }},
			{Title: "Category", Width: 9, Value: func(r model.Ticket) string { return string(r.Category) }},
			{Title: "Response", Width: 8, Value: func(r model.Ticket) string { return fmt.Sprintf("%.1fh", r.ResponseHours) }},
		},
		Stats: []StatDef{
			{Label: "Total Tickets", Kind: KindCount, Scope: ScopeAll},
			{Label: "Open", Kind: KindCount, Scope: ScopeAll, Where: DimensionIs(model.DimStatus, string(model.TicketOpen))},
			{Label: "Urgent", Kind: KindCount, Scope: ScopeFiltered, Where: DimensionIs(model.DimPriority, string(model.PriorityUrgent))},
			{Label: "Avg Response", Kind: KindAverage, Scope: ScopeFiltered, Metric: model.MetricResponseHours, Format: FormatDecimal},
		},
	})
}
