package query_test

import (
	"net/url"
	"testing"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/query"
	"github.com/albretostimbung/naraicoderbe/internal/testutil"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var partners = query.Options{
	Filters: []query.Filter{
		{Param: "partnership_type", Column: "partnership_type"},
		{Param: "is_featured", Column: "is_featured", Kind: query.Bool},
		{Param: "id", Column: "id", Kind: query.Int},
	},
	SearchColumns: []string{"name", "description"},
	SortColumns:   []string{"name"},
}

func seedPartners(t *testing.T) *gorm.DB {
	t.Helper()

	db := testutil.Setup(t)
	desc := "Bootcamp for JAVA developers"
	require.NoError(t, db.Create(&[]model.Partner{
		{Name: "Tech Corp", PartnershipType: "corporate", IsActive: true, IsFeatured: true},
		{Name: "Digital Academy", PartnershipType: "educational", IsActive: true, Description: &desc},
		{Name: "Alpha Startup", PartnershipType: "startup", IsActive: true},
	}).Error)
	return db
}

func names(t *testing.T, db *gorm.DB, opts query.Options, raw string) []string {
	t.Helper()

	params, err := url.ParseQuery(raw)
	require.NoError(t, err)
	p, err := query.Paginate[model.Partner](db, opts, params, "http://api.test/partners")
	require.NoError(t, err)

	out := make([]string, 0, len(p.Data))
	for _, partner := range p.Data {
		out = append(out, partner.Name)
	}
	return out
}

func TestFilterAndSearch(t *testing.T) {
	db := seedPartners(t)

	assert.Equal(t, []string{"Digital Academy"}, names(t, db, partners, "partnership_type=educational"))
	assert.Equal(t, []string{"Tech Corp"}, names(t, db, partners, "is_featured=true"))
	assert.Len(t, names(t, db, partners, "is_featured=0&partnership_type="), 3)
	assert.Equal(t, []string{"Digital Academy"}, names(t, db, partners, "search=java"))
	assert.Equal(t, []string{"Alpha Startup", "Digital Academy"}, names(t, db, partners, "search=A&sort_by=name&sort_order=asc"))
}

func TestSearchGroupDoesNotEscapeFilters(t *testing.T) {
	db := seedPartners(t)

	// "corp" matches Tech Corp by name only; the type filter must still apply to it
	assert.Empty(t, names(t, db, partners, "search=corp&partnership_type=startup"))
}

func TestSortDefaultsAndTieBreak(t *testing.T) {
	db := seedPartners(t)

	assert.Equal(t, []string{"Alpha Startup", "Digital Academy", "Tech Corp"}, names(t, db, partners, "sort_by=name&sort_order=ASC"))
	assert.Equal(t, []string{"Alpha Startup", "Digital Academy", "Tech Corp"}, names(t, db, partners, ""))
	assert.Equal(t, []string{"Tech Corp", "Digital Academy", "Alpha Startup"}, names(t, db, partners, "sort_order=asc"))
}

func TestInvalidParameters(t *testing.T) {
	db := seedPartners(t)

	tests := []struct {
		raw   string
		field string
	}{
		{"is_featured=maybe", "is_featured"},
		{"id=one", "id"},
		{"sort_by=password", "sort_by"},
		{"sort_order=sideways", "sort_order"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			params, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)

			_, err = query.Paginate[model.Partner](db, partners, params, "http://api.test/partners")
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.field)
		})
	}
}

func TestPaginateCountsBeforePaging(t *testing.T) {
	db := seedPartners(t)

	params := url.Values{"per_page": {"2"}, "page": {"2"}, "sort_by": {"name"}, "sort_order": {"asc"}}
	p, err := query.Paginate[model.Partner](db, partners, params, "http://api.test/partners")
	require.NoError(t, err)

	assert.Equal(t, int64(3), p.Total)
	assert.Equal(t, 2, p.LastPage)
	require.Len(t, p.Data, 1)
	assert.Equal(t, "Tech Corp", p.Data[0].Name)
}
