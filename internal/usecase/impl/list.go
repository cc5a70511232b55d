package impl

import (
	"strconv"
	"strings"

	"storerating/config"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/usecase"
)

// listRules whitelists what a list endpoint may sort, search and filter by.
type listRules struct {
	// sortColumns maps accepted sortBy values to database columns.
	sortColumns  map[string]string
	defaultSort  string
	searchFields []string
	allowRole    bool
}

var (
	adminStoreListRules = listRules{
		sortColumns:  storeSortColumns,
		defaultSort:  "name",
		searchFields: []string{"name", "email", "address"},
	}

	userStoreListRules = listRules{
		sortColumns:  storeSortColumns,
		defaultSort:  "name",
		searchFields: []string{"name", "address"},
	}

	userListRules = listRules{
		sortColumns: map[string]string{
			"name":       "name",
			"email":      "email",
			"address":    "address",
			"role":       "role",
			"created_at": "created_at",
			"createdAt":  "created_at",
		},
		defaultSort:  "name",
		searchFields: []string{"name", "email", "address"},
		allowRole:    true,
	}

	// Listing one's own ratings is always newest first.
	ratingListRules = listRules{
		sortColumns: map[string]string{"created_at": "created_at", "createdAt": "created_at"},
		defaultSort: "created_at",
	}
)

var storeSortColumns = map[string]string{
	"name":          "name",
	"email":         "email",
	"address":       "address",
	"avg_rating":    "avg_rating",
	"avgRating":     "avg_rating",
	"ratings_count": "ratings_count",
	"ratingsCount":  "ratings_count",
	"created_at":    "created_at",
	"createdAt":     "created_at",
}

// pager turns raw list parameters into a validated query.
type pager struct {
	defaultLimit int
	maxLimit     int
}

func newPager(cfg *config.Config) pager {
	p := pager{defaultLimit: 10, maxLimit: 100}
	if cfg != nil && cfg.Pagination != nil {
		if cfg.Pagination.DefaultLimit > 0 {
			p.defaultLimit = cfg.Pagination.DefaultLimit
		}
		if cfg.Pagination.MaxLimit >= p.defaultLimit {
			p.maxLimit = cfg.Pagination.MaxLimit
		}
	}

	return p
}

// query validates params against rules, collecting every violation.
func (p pager) query(params usecase.ListParams, rules listRules) (entity.ListQuery, error) {
	var violations []domainerrors.FieldViolation
	add := func(field, msg string) {
		violations = append(violations, domainerrors.FieldViolation{Field: field, Message: msg})
	}

	q := entity.ListQuery{
		Search:       strings.TrimSpace(params.Search),
		SearchFields: rules.searchFields,
		Page:         entity.PageRequest{Page: 1, Limit: p.defaultLimit},
		Sort:         entity.Sort{Column: rules.sortColumns[rules.defaultSort], Order: entity.SortAsc},
	}
	if rules.defaultSort == "created_at" {
		q.Sort.Order = entity.SortDesc
	}

	if raw := strings.TrimSpace(params.Page); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			add("page", "must be a positive integer")
		} else {
			q.Page.Page = page
		}
	}

	if raw := strings.TrimSpace(params.Limit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > p.maxLimit {
			add("limit", "must be an integer between 1 and "+strconv.Itoa(p.maxLimit))
		} else {
			q.Page.Limit = limit
		}
	}

	if raw := strings.TrimSpace(params.SortBy); raw != "" {
		column, ok := rules.sortColumns[raw]
		if !ok {
			add("sortBy", "is not a sortable field")
		} else {
			q.Sort.Column = column
		}
	}

	if raw := strings.TrimSpace(params.SortOrder); raw != "" {
		switch entity.SortOrder(strings.ToUpper(raw)) {
		case entity.SortAsc:
			q.Sort.Order = entity.SortAsc
		case entity.SortDesc:
			q.Sort.Order = entity.SortDesc
		default:
			add("sortOrder", "must be ASC or DESC")
		}
	}

	if raw := strings.TrimSpace(params.Role); raw != "" {
		role, ok := entity.ParseRole(raw)
		if !rules.allowRole || !ok {
			add("role", "must be one of ADMIN USER STORE_OWNER")
		} else {
			q.Role = role
		}
	}

	if len(violations) > 0 {
		return entity.ListQuery{}, domainerrors.NewValidationError(violations...)
	}

	return q, nil
}
