package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/crm-dashboard/internal/model"
)

func sampleContacts() []model.Contact {
	return []model.Contact{
		{ID: "1", Name: "Acme Corp", Company: "Acme", Email: "ops@acme.io", Status: model.ContactActive, Tier: model.TierEnterprise, Tags: []string{"VIP", "Manufacturing"}},
		{ID: "2", Name: "Beta Inc", Company: "Beta", Email: "hello@beta.dev", Status: model.ContactProspect, Tier: model.TierStarter},
		{ID: "3", Name: "Gamma LLC", Company: "Gamma Holdings", Email: "info@gamma.com", Status: model.ContactActive, Tier: model.TierBusiness, Tags: []string{}},
	}
}

func ids(contacts []model.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.ID
	}
	return out
}

func TestMatches_PermissiveIdentity(t *testing.T) {
	f := FilterState{Query: "", Filters: map[string]string{model.DimStatus: All, model.DimTier: All}}
	for _, c := range sampleContacts() {
		assert.True(t, Matches(c, f), "record %s should pass the permissive filter", c.ID)
	}
	assert.True(t, f.IsPermissive())
}

func TestFilter_Scenarios(t *testing.T) {
	records := []model.Contact{
		{ID: "a", Name: "Acme Corp", Status: model.ContactActive},
		{ID: "b", Name: "Beta Inc", Status: model.ContactProspect},
	}

	tests := []struct {
		name  string
		state FilterState
		want  []string
	}{
		{
			name:  "query only",
			state: FilterState{Query: "acme", Filters: map[string]string{model.DimStatus: All}},
			want:  []string{"a"},
		},
		{
			name:  "status only",
			state: FilterState{Query: "", Filters: map[string]string{model.DimStatus: "prospect"}},
			want:  []string{"b"},
		},
		{
			name:  "unknown filter value yields empty result",
			state: FilterState{Filters: map[string]string{model.DimStatus: "archived"}},
			want:  []string{},
		},
		{
			name:  "nil filters",
			state: FilterState{Query: "inc"},
			want:  []string{"b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.state)
			require.NotNil(t, got)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMatches_CaseInsensitiveText(t *testing.T) {
	for _, c := range sampleContacts() {
		upper := Matches(c, NewFilterState("ACME"))
		lower := Matches(c, NewFilterState("acme"))
		assert.Equal(t, lower, upper, "record %s", c.ID)
	}
}

func TestMatches_SearchesTags(t *testing.T) {
	contacts := sampleContacts()
	got := Filter(contacts, NewFilterState("manufact"))
	assert.Equal(t, []string{"1"}, ids(got))

	// An empty tag set must not break matching.
	assert.False(t, Matches(contacts[2], NewFilterState("vip")))
}

func TestMatches_CategoricalIsCaseSensitive(t *testing.T) {
	c := sampleContacts()[0]
	assert.True(t, Matches(c, NewFilterState("").With(model.DimStatus, "active")))
	assert.False(t, Matches(c, NewFilterState("").With(model.DimStatus, "Active")))
}

func TestMatches_UnknownDimension(t *testing.T) {
	c := sampleContacts()[0]
	assert.False(t, Matches(c, NewFilterState("").With(model.DimChannel, "email")))
	assert.True(t, Matches(c, NewFilterState("").With(model.DimChannel, All)))
}

func TestMatchText_WhitespaceIsLiteral(t *testing.T) {
	assert.True(t, MatchText(" ", []string{"Acme Corp"}, nil))
	assert.False(t, MatchText(" ", []string{"Acme"}, nil))
	assert.False(t, MatchText("acme ", []string{"Acme"}, nil))
	assert.True(t, MatchText("", nil, nil))
}

func TestFilter_OnlySelectedValue(t *testing.T) {
	contacts := sampleContacts()
	for _, status := range model.ContactStatuses {
		got := Filter(contacts, NewFilterState("").With(model.DimStatus, string(status)))
		for _, c := range got {
			assert.Equal(t, status, c.Status)
		}
	}
}

func TestFilterState_WithDoesNotMutate(t *testing.T) {
	base := NewFilterState("acme").With(model.DimStatus, "active")
	next := base.With(model.DimTier, "starter")

	assert.Equal(t, All, base.Selected(model.DimTier))
	assert.Equal(t, "starter", next.Selected(model.DimTier))
	assert.Equal(t, "active", next.Selected(model.DimStatus))
	assert.Equal(t, "acme", next.Query)
	assert.False(t, next.IsPermissive())
}

func TestParseFilters(t *testing.T) {
	got, err := ParseFilters([]string{"status=active", "tier=all", "type="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "active", "tier": "all", "type": ""}, got)

	_, err = ParseFilters([]string{"status"})
	assert.ErrorIs(t, err, ErrMalformedFilter)

	_, err = ParseFilters([]string{"=active"})
	assert.ErrorIs(t, err, ErrMalformedFilter)
}
