package odk

import (
	"net/url"
	"strconv"
)

// QueryParams expresses the OData query options accepted by Central's .svc
// endpoints. All options are server-side; the client passes them through
// untouched.
type QueryParams struct {
	// Top limits the number of rows returned ($top).
	Top int
	// Skip offsets into the row set ($skip).
	Skip int
	// Count requests the @odata.count annotation ($count=true).
	Count bool
	// Filter is a raw OData filter expression ($filter).
	Filter string
	// Select names the columns to return ($select).
	Select string
	// OrderBy names the sort columns ($orderby).
	OrderBy string

	// Extra holds any additional query parameters (e.g. $wkt for geometry
	// formatting) keyed by their literal name.
	Extra map[string]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{}
}

// WithTop sets $top.
func (q *QueryParams) WithTop(n int) *QueryParams {
	q.Top = n

	return q
}

// WithSkip sets $skip.
func (q *QueryParams) WithSkip(n int) *QueryParams {
	q.Skip = n

	return q
}

// WithCount sets $count=true.
func (q *QueryParams) WithCount() *QueryParams {
	q.Count = true

	return q
}

// WithFilter sets a raw $filter expression.
func (q *QueryParams) WithFilter(expr string) *QueryParams {
	q.Filter = expr

	return q
}

// WithSelect sets $select.
func (q *QueryParams) WithSelect(columns string) *QueryParams {
	q.Select = columns

	return q
}

// WithOrderBy sets $orderby.
func (q *QueryParams) WithOrderBy(columns string) *QueryParams {
	q.OrderBy = columns

	return q
}

// WithParam sets an arbitrary query parameter by its literal name.
func (q *QueryParams) WithParam(key, value string) *QueryParams {
	if q.Extra == nil {
		q.Extra = make(map[string]string)
	}

	q.Extra[key] = value

	return q
}

// ToValues converts the params to url.Values. A nil receiver yields nil.
func (q *QueryParams) ToValues() url.Values {
	if q == nil {
		return nil
	}

	values := url.Values{}

	if q.Top > 0 {
		values.Set("$top", strconv.Itoa(q.Top))
	}

	if q.Skip > 0 {
		values.Set("$skip", strconv.Itoa(q.Skip))
	}

	if q.Count {
		values.Set("$count", "true")
	}

	if q.Filter != "" {
		values.Set("$filter", q.Filter)
	}

	if q.Select != "" {
		values.Set("$select", q.Select)
	}

	if q.OrderBy != "" {
		values.Set("$orderby", q.OrderBy)
	}

	for key, value := range q.Extra {
		values.Set(key, value)
	}

	if len(values) == 0 {
		return nil
	}

	return values
}
