package database

import "inkwell/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Author{},
		&models.Profile{},
		&models.Post{},
		&models.Tag{},
		&models.PostTag{},
	}
}
