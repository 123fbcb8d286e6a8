package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// stringFilters adds filters for the text columns of the list endpoints to
// the query. A value that was set in the URL but is empty filters for
// emptiness.
func stringFilters(query *gorm.DB, setFields []string, name, merchant, account string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if merchant != "" {
		query = query.Where("merchant LIKE ?", fmt.Sprintf("%%%s%%", merchant))
	} else if slices.Contains(setFields, "Merchant") {
		query = query.Where("merchant = ''")
	}

	if account != "" {
		query = query.Where("account LIKE ?", fmt.Sprintf("%%%s%%", account))
	} else if slices.Contains(setFields, "Account") {
		query = query.Where("account = ''")
	}

	return query
}
