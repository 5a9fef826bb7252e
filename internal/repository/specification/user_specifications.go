package specification

import "gorm.io/gorm"

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// EmailContains matches a case-insensitive substring of the email column.
type EmailContains struct {
	Term string
}

func (s EmailContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email ILIKE ?", "%"+s.Term+"%")
}
