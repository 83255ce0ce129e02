package pagination

import (
	"gorm.io/gorm"
)

// GormSource adapts a GORM query to the Source interface. Query must return a
// fresh base query on every call because GORM builders accumulate state.
// MatchColumn is the display column the substring filter applies to.
type GormSource[T any] struct {
	Query       func() *gorm.DB
	MatchColumn string
	// TieBreak is appended to every ordering so windows are deterministic.
	TieBreak string
}

func (s GormSource[T]) apply(filter string) *gorm.DB {
	tx := s.Query()
	if filter != "" && s.MatchColumn != "" {
		tx = tx.Where(s.MatchColumn+" LIKE ?", "%"+escapeLike(filter)+"%")
	}
	return tx
}

func (s GormSource[T]) Count(filter string) (int64, error) {
	var total int64
	if err := s.apply(filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s GormSource[T]) FetchSlice(filter, orderBy string, desc bool, limit, offset int) ([]T, error) {
	tx := s.apply(filter)

	dir := " ASC"
	if desc {
		dir = " DESC"
	}
	tx = tx.Order(orderBy + dir)
	if s.TieBreak != "" && s.TieBreak != orderBy {
		tx = tx.Order(s.TieBreak + " ASC")
	}

	var items []T
	if err := tx.Offset(offset).Limit(limit).Scan(&items).Error; err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied filters.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
