package dataprocessing

import (
	"sort"

	"github.com/samber/lo"

	"stpflow/pkg/contracts/domain"
)

// MonthGroups maps a YYYY-MM key to that month's records in input order.
type MonthGroups map[string][]domain.DailyRecord

// GroupByMonth partitions records by the first seven characters of their
// normalized date. Records keep their input order inside each group.
func GroupByMonth(records []domain.DailyRecord) MonthGroups {
	return lo.GroupBy(records, func(r domain.DailyRecord) string {
		return r.MonthKey()
	})
}

// Keys returns the month keys in ascending order.
func (g MonthGroups) Keys() []string {
	keys := lo.Keys(g)
	sort.Strings(keys)
	return keys
}
