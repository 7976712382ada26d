package users

import "time"

type User struct {
	ID           string    `gorm:"type:char(36);primaryKey"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash []byte    `gorm:"type:varbinary(100);not null"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	Role         string    `gorm:"type:varchar(32);not null;default:customer"`
	CreatedAt    time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt    time.Time `gorm:"type:datetime(3);not null"`
}

func (User) TableName() string { return "users" }
