// Package query turns list query parameters into filtered, sorted, paginated reads.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind is how a filter parameter is parsed before comparison
type Kind int

const (
	String Kind = iota
	Bool
	Int
)

// Filter binds a query parameter to an equality condition on Column
type Filter struct {
	Param  string
	Column string
	Kind   Kind
}

// Options describes what a resource list accepts
type Options struct {
	Filters       []Filter
	SearchColumns []string
	// SortColumns is the sort_by allow-list. The default sort column is always allowed.
	SortColumns []string
	DefaultSort string
}

const (
	defaultSort  = "created_at"
	defaultOrder = "desc"
)

// truthy mirrors form semantics: empty and "0" mean "not given"
func truthy(v string) bool {
	return v != "" && v != "0"
}

// Filter applies equality filters and the search group to db
func (o Options) Filter(db *gorm.DB, params url.Values) (*gorm.DB, error) {
	errs := validation.Errors{}

	for _, f := range o.Filters {
		raw := strings.TrimSpace(params.Get(f.Param))
		if !truthy(raw) {
			continue
		}

		var value interface{} = raw
		switch f.Kind {
		case Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				errs.Add(f.Param, "The selected "+validation.Attribute(f.Param)+" is invalid.")
				continue
			}
			value = b
		case Int:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				errs.Add(f.Param, "The selected "+validation.Attribute(f.Param)+" is invalid.")
				continue
			}
			value = n
		}

		db = db.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: value})
	}

	if len(errs) > 0 {
		return nil, errs
	}

	term := strings.TrimSpace(params.Get("search"))
	if truthy(term) && len(o.SearchColumns) > 0 {
		pattern := "%" + strings.ToLower(term) + "%"
		group := db.Session(&gorm.Session{NewDB: true})
		for i, column := range o.SearchColumns {
			like := clause.Expr{
				SQL:  "LOWER(?) LIKE ?",
				Vars: []interface{}{clause.Column{Name: column}, pattern},
			}
			if i == 0 {
				group = group.Where(like)
			} else {
				group = group.Or(like)
			}
		}
		db = db.Where(group)
	}

	return db, nil
}

// Sort orders db by sort_by and sort_order after checking both
func (o Options) Sort(db *gorm.DB, params url.Values) (*gorm.DB, error) {
	column := o.DefaultSort
	if column == "" {
		column = defaultSort
	}
	if requested := strings.TrimSpace(params.Get("sort_by")); requested != "" && requested != column {
		if !contains(o.SortColumns, requested) {
			return nil, validation.Errors{"sort_by": {"The selected sort by is invalid."}}
		}
		column = requested
	}

	order := strings.ToLower(strings.TrimSpace(params.Get("sort_order")))
	if order == "" {
		order = defaultOrder
	}
	if order != "asc" && order != "desc" {
		return nil, validation.Errors{"sort_order": {"The selected sort order is invalid."}}
	}

	desc := order == "desc"
	return db.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc}), nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
