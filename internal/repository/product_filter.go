package repository

import (
	"fmt"
	"strconv"
	"strings"

	"garastore/internal/model"
)

// filterAll is the client's wildcard for category, price, rating and query.
const filterAll = "all"

// productQuery is a catalogue filter translated to SQL fragments.
type productQuery struct {
	where   string
	args    []any
	orderBy string
	limit   int
	offset  int
	page    int
}

// buildProductQuery translates filter into a WHERE clause, its positional
// arguments, an ORDER BY clause and the page window. Fields are applied in a
// fixed order so the same filter always yields the same SQL.
func buildProductQuery(filter model.ProductFilter) (*productQuery, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q := strings.TrimSpace(filter.Query); q != "" && q != filterAll {
		conds = append(conds, "name ILIKE "+arg("%"+escapeLike(q)+"%")+` ESCAPE '\'`)
	}

	if c := strings.TrimSpace(filter.Category); c != "" && c != filterAll {
		conds = append(conds, "category = "+arg(c))
	}

	if p := strings.TrimSpace(filter.Price); p != "" && p != filterAll {
		min, max, err := parsePriceRange(p)
		if err != nil {
			return nil, err
		}
		conds = append(conds, "price >= "+arg(min)+" AND price <= "+arg(max))
	}

	if r := strings.TrimSpace(filter.Rating); r != "" && r != filterAll {
		rating, err := strconv.ParseFloat(r, 64)
		if err != nil || rating < 0 || rating > 5 {
			return nil, model.NewValidationError(fmt.Sprintf("invalid rating filter %q", r))
		}
		conds = append(conds, "rating >= "+arg(rating))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = model.DefaultPageSize
	}

	return &productQuery{
		where:   where,
		args:    args,
		orderBy: sortClause(filter.Order),
		limit:   pageSize,
		offset:  (page - 1) * pageSize,
		page:    page,
	}, nil
}

// sortClause maps a catalogue sort order to ORDER BY. Every clause ends on id
// so pages never overlap. Featured has no ranking of its own and falls back
// to newest insertion first.
func sortClause(order string) string {
	switch order {
	case model.SortLowest:
		return "ORDER BY price ASC, id DESC"
	case model.SortHighest:
		return "ORDER BY price DESC, id DESC"
	case model.SortTopRated:
		return "ORDER BY rating DESC, id DESC"
	case model.SortNewest:
		return "ORDER BY created_at DESC, id DESC"
	default:
		return "ORDER BY id DESC"
	}
}

// parsePriceRange parses "min-max".
func parsePriceRange(s string) (float64, float64, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, model.NewValidationError(fmt.Sprintf("invalid price filter %q", s))
	}

	min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, model.NewValidationError(fmt.Sprintf("invalid price filter %q", s))
	}
	max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, model.NewValidationError(fmt.Sprintf("invalid price filter %q", s))
	}
	if min < 0 || max < min {
		return 0, 0, model.NewValidationError(fmt.Sprintf("invalid price filter %q", s))
	}

	return min, max, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so the query is matched literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
