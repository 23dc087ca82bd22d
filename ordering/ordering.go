package ordering

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an id referenced by an operation does not
// match any row of the target table.
var ErrNotFound = errors.New("record not found")

// Assignment pairs a record id with its new zero-based display position.
// A reorder request carries the full listing after a drag-and-drop move.
type Assignment struct {
	ID       int `json:"id" binding:"required"`
	Position int `json:"position"`
}

// Next returns the position for a new row of the model's table: one past the
// current maximum, 0 on an empty table. The maximum is taken across all rows
// of the table, not per owner. Callers that insert right after must pass
// their transaction handle so the read and the insert serialize against
// concurrent creates.
func Next(tx *gorm.DB, model interface{}) (int, error) {
	var max sql.NullInt64
	if err := tx.Model(model).Select("MAX(position)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}

// Reorder applies every assignment to the model's table inside one
// transaction. If any id matches no row the whole batch rolls back and
// ErrNotFound is returned; no partial reorder is ever visible.
func Reorder(db *gorm.DB, model interface{}, assignments []Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for _, a := range assignments {
			result := tx.Model(model).Where("id = ?", a.ID).Update("position", a.Position)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}

// Delete hard-deletes the row. Remaining rows keep their positions, so the
// sequence grows a gap; ordering is relative, not dense, and the next full
// reorder renumbers everything anyway.
func Delete(db *gorm.DB, model interface{}, id int) error {
	result := db.Where("id = ?", id).Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
