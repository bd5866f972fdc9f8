package scope

import (
	"time"

	"gorm.io/gorm"
)

func ByEmployee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// StartingInYear limits rows to those whose start_date falls in the given calendar year.
func StartingInYear(year int) func(db *gorm.DB) *gorm.DB {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date >= ? AND start_date < ?", from, to)
	}
}

func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 10
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
