package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Veraticus/crm-dashboard/internal/common"
	"github.com/Veraticus/crm-dashboard/internal/config"
	"github.com/Veraticus/crm-dashboard/internal/fixtures"
	"github.com/Veraticus/crm-dashboard/internal/forms"
	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/page"
	"github.com/Veraticus/crm-dashboard/internal/query"
	"github.com/Veraticus/crm-dashboard/internal/service"
	"github.com/Veraticus/crm-dashboard/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initStorage opens and migrates the submission database.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadRegistry builds the dashboard pages from data.dir, or the built-in
// sample data when it is unset.
func loadRegistry() (*page.Registry, error) {
	catalog, err := fixtures.Load(config.DataDir())
	if err != nil {
		return nil, common.NewUserError("Could not load CRM records", err)
	}
	return page.Default(catalog)
}

// resolvePage looks a page up by name, listing the valid names on a miss.
func resolvePage(reg *page.Registry, name string) (page.Page, error) {
	p, err := reg.Get(name)
	if err != nil {
		names := make([]string, 0, len(reg.Pages()))
		for _, p := range reg.Pages() {
			names = append(names, p.Name())
		}
		return nil, common.NewUserError(
			fmt.Sprintf("Unknown page %q; choose one of: %s", name, strings.Join(names, ", ")), err)
	}
	return p, nil
}

// newSubmitter returns the store-backed submitter when forms.persist is set,
// otherwise the logging no-op. The returned close func is always non-nil.
func newSubmitter(ctx context.Context) (forms.Submitter, func() error, error) {
	if !viper.GetBool("forms.persist") {
		return forms.NewNoopSubmitter(), func() error { return nil }, nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open submission store: %w", err)
	}
	return forms.NewStoreSubmitter(store), store.Close, nil
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "Free-text search (case-insensitive substring of names, companies and tags)")
	cmd.Flags().StringArrayP("filter", "f", nil, "Categorical filter as dimension=value, repeatable (value \"all\" clears it)")
}

// filterStateFromFlags builds the FilterState for p from --query and
// --filter, rejecting dimensions p does not have and values outside their
// closed sets.
func filterStateFromFlags(cmd *cobra.Command, p page.Page) (query.FilterState, error) {
	q, _ := cmd.Flags().GetString("query")
	pairs, _ := cmd.Flags().GetStringArray("filter")

	filters, err := query.ParseFilters(pairs)
	if err != nil {
		return query.FilterState{}, common.NewUserError("Invalid --filter", err)
	}

	dims := p.Dimensions()
	state := query.NewFilterState(q)
	for dim, value := range filters {
		i := slices.IndexFunc(dims, func(d model.DimensionSpec) bool { return d.Name == dim })
		if i < 0 {
			return query.FilterState{}, common.NewUserError(
				fmt.Sprintf("Page %s cannot be filtered by %q; use one of: %s", p.Name(), dim, dimensionNames(dims)),
				fmt.Errorf("%w: %s", page.ErrUnknownDimension, dim))
		}
		if value != query.All && !dims[i].Allows(value) {
			allowed := append([]string{query.All}, dims[i].Values...)
			return query.FilterState{}, common.NewUserError(
				fmt.Sprintf("%s must be one of: %s", dim, strings.Join(allowed, ", ")),
				fmt.Errorf("%w: %s %q", model.ErrInvalidCategory, dim, value))
		}
		state = state.With(dim, value)
	}
	return state, nil
}

func dimensionNames(dims []model.DimensionSpec) string {
	if len(dims) == 0 {
		return "(none)"
	}
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = d.Name
	}
	return strings.Join(names, ", ")
}

// describeState renders a FilterState for headings, e.g. `status=active, query "acme"`.
func describeState(state query.FilterState) string {
	var parts []string
	for _, dim := range slices.Sorted(maps.Keys(state.Filters)) {
		if v := state.Selected(dim); v != query.All {
			parts = append(parts, dim+"="+v)
		}
	}
	if state.Query != "" {
		parts = append(parts, fmt.Sprintf("query %q", state.Query))
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, ", ")
}
