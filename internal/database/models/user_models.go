package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

// Profile is created in the same transaction as its User; there is no
// lazy create-on-update path.
type Profile struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	UserID int64  `gorm:"uniqueIndex;not null" json:"-"`
	RoleID *int64 `gorm:"index" json:"role"`
	Role   *Role  `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"-"`
	Phone  string `gorm:"size:20" json:"phone"`
	Status string `gorm:"size:20;default:Pending" json:"status"`
	Steps  int    `gorm:"default:0" json:"steps"`
}

// UserCountSnapshot records one total-user count per day; the dashboard
// growth figure is derived from consecutive snapshots.
type UserCountSnapshot struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Total     int64     `gorm:"not null" json:"total"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
