package models

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `gorm:"not null" json:"full_name"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	// Relations
	Teams []TeamProfile `gorm:"foreignKey:OwnerID" json:"-"`
}
