package postgres

import (
	"database/sql"
	"slices"
	"strings"

	"storerating/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes every character of term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// containsPattern builds a substring pattern for ILIKE.
func containsPattern(term string) string {
	return "%" + escapeLike(term) + "%"
}

// applySearch adds a case-insensitive substring match over the allowed fields.
// Fields outside allowed are ignored.
func applySearch(db *gorm.DB, search string, fields, allowed []string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return db
	}

	conds := make([]string, 0, len(fields))
	for _, field := range fields {
		if slices.Contains(allowed, field) {
			conds = append(conds, field+" ILIKE @term")
		}
	}
	if len(conds) == 0 {
		return db
	}

	return db.Where("("+strings.Join(conds, " OR ")+")", sql.Named("term", containsPattern(search)))
}

// applyOrder orders by a whitelisted column with id as tie-breaker.
func applyOrder(db *gorm.DB, sort entity.Sort, allowed []string, fallback string) *gorm.DB {
	column := sort.Column
	if !slices.Contains(allowed, column) {
		column = fallback
	}

	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: sort.Desc()})
	if column != "id" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: sort.Desc()})
	}

	return db
}

func applyPage(db *gorm.DB, page entity.PageRequest) *gorm.DB {
	if page.Limit <= 0 {
		return db
	}

	return db.Offset(page.Offset()).Limit(page.Limit)
}
