package ordering

import "gorm.io/gorm"

// TogglePublished flips the published flag in a single UPDATE so two admins
// toggling at once cannot lose a write. Returns the new value.
func TogglePublished(db *gorm.DB, model interface{}, id int) (bool, error) {
	result := db.Model(model).Where("id = ?", id).
		Update("published", gorm.Expr("NOT published"))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, ErrNotFound
	}

	var published bool
	err := db.Model(model).Where("id = ?", id).Select("published").Scan(&published).Error
	return published, err
}

// ToggleFlag is TogglePublished for any other boolean column, e.g. a
// project's archived flag or a contact message's read flag.
func ToggleFlag(db *gorm.DB, model interface{}, id int, column string) (bool, error) {
	result := db.Model(model).Where("id = ?", id).
		Update(column, gorm.Expr("NOT "+column))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, ErrNotFound
	}

	var value bool
	err := db.Model(model).Where("id = ?", id).Select(column).Scan(&value).Error
	return value, err
}
