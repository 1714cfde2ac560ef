// file: internal/response/pagination.go
package response

import (
	"net/http"
	"strconv"

	"zuna/internal/models"
)

// ParsePagination reads limit/offset pagination from the query string
// and clamps it to the service limits. Unparsable values fall back to
// the defaults rather than erroring.
func ParsePagination(r *http.Request) models.PaginationParams {
	query := r.URL.Query()

	params := models.PaginationParams{
		Sort:  query.Get("sort"),
		Order: query.Get("order"),
	}

	if v := query.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Limit = n
		}
	}
	if v := query.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Offset = n
		}
	}

	return params.Normalize()
}
