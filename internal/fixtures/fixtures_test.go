package fixtures

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/crm-dashboard/internal/model"
	"github.com/Veraticus/crm-dashboard/internal/store"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Positive(t, c.Contacts.Len())
	assert.Positive(t, c.Deals.Len())
	assert.Positive(t, c.Campaigns.Len())
	assert.Positive(t, c.Partners.Len())
	assert.Positive(t, c.Tickets.Len())

	acme, ok := c.Contacts.Get("C-1001")
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", acme.Company)
	assert.Equal(t, model.ContactActive, acme.Status)
}

func validFS() fstest.MapFS {
	empty := &fstest.MapFile{Data: []byte("[]\n")}
	return fstest.MapFS{
		ContactsFile:  empty,
		DealsFile:     empty,
		CampaignsFile: empty,
		PartnersFile:  empty,
		TicketsFile:   empty,
	}
}

func TestLoadFS_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		fsys := validFS()
		delete(fsys, TicketsFile)
		_, err := LoadFS(fsys)
		assert.ErrorContains(t, err, TicketsFile)
	})

	t.Run("duplicate id", func(t *testing.T) {
		fsys := validFS()
		fsys[ContactsFile] = &fstest.MapFile{Data: []byte(`
- {id: C-1, name: A, status: active, tier: starter}
- {id: C-1, name: B, status: active, tier: starter}
`)}
		_, err := LoadFS(fsys)
		assert.ErrorIs(t, err, store.ErrDuplicateID)
	})

	t.Run("unknown field", func(t *testing.T) {
		fsys := validFS()
		fsys[DealsFile] = &fstest.MapFile{Data: []byte(`- {id: D-1, amount: 5}`)}
		_, err := LoadFS(fsys)
		assert.Error(t, err)
	})

	t.Run("invalid category", func(t *testing.T) {
		fsys := validFS()
		fsys[PartnersFile] = &fstest.MapFile{Data: []byte(`- {id: P-1, tier: diamond, type: reseller, status: active}`)}
		_, err := LoadFS(fsys)
		assert.ErrorIs(t, err, model.ErrInvalidCategory)
	})

	for _, v := range []string{".nan", ".inf", "-.inf"} {
		t.Run("non-finite metric "+v, func(t *testing.T) {
			fsys := validFS()
			fsys[ContactsFile] = &fstest.MapFile{Data: []byte(`- {id: C-1, name: A, status: active, tier: starter, revenue: ` + v + `}`)}
			_, err := LoadFS(fsys)
			assert.ErrorIs(t, err, model.ErrInvalidMetric)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	assert.Error(t, err, "empty directory has no record files")

	_, err = Load(dir + "/missing")
	assert.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode[model.Ticket]([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
