// Package fixtures loads the record lists shown on the dashboard pages.
//
// The default data set is embedded in the binary. A directory holding the
// same YAML files can be supplied instead to substitute a real data source.
package fixtures

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/store"
)

//go:embed data/*.yaml
var embedded embed.FS

// File names of each record kind.
const (
	ContactsFile  = "contacts.yaml"
	DealsFile     = "deals.yaml"
	CampaignsFile = "campaigns.yaml"
	PartnersFile  = "partners.yaml"
	TicketsFile   = "tickets.yaml"
)

// Catalog holds one store per record kind.
type Catalog struct {
	Contacts  *store.Store[model.Contact]
	Deals     *store.Store[model.Deal]
	Campaigns *store.Store[model.Campaign]
	Partners  *store.Store[model.Partner]
	Tickets   *store.Store[model.Ticket]
}

// Default loads the embedded data set.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded fixtures: %w", err)
	}
	return LoadFS(sub)
}

// Load reads the data set from dir, or the embedded one when dir is empty.
func Load(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data path %s is not a directory", dir)
	}
	slog.Debug("Loading records from directory", "dir", dir)
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads every record file from fsys and validates it into stores.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	var (
		c   Catalog
		err error
	)

	if c.Contacts, err = loadStore[model.Contact](fsys, "contact", ContactsFile); err != nil {
		return nil, err
	}
	if c.Deals, err = loadStore[model.Deal](fsys, "deal", DealsFile); err != nil {
		return nil, err
	}
	if c.Campaigns, err = loadStore[model.Campaign](fsys, "campaign", CampaignsFile); err != nil {
		return nil, err
	}
	if c.Partners, err = loadStore[model.Partner](fsys, "partner", PartnersFile); err != nil {
		return nil, err
	}
	if c.Tickets, err = loadStore[model.Ticket](fsys, "ticket", TicketsFile); err != nil {
		return nil, err
	}

	slog.Debug("Loaded record catalog",
		"contacts", c.Contacts.Len(),
		"deals", c.Deals.Len(),
		"campaigns", c.Campaigns.Len(),
		"partners", c.Partners.Len(),
		"tickets", c.Tickets.Len())

	return &c, nil
}

func loadStore[T model.Record](fsys fs.FS, kind, name string) (*store.Store[T], error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	records, err := Decode[T](data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	s, err := store.New(kind, records)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return s, nil
}

// Decode parses a YAML list of records. Unknown fields are rejected.
func Decode[T any](data []byte) ([]T, error) {
	var records []T
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return []T{}, nil
		}
		return nil, err
	}
	return records, nil
}
