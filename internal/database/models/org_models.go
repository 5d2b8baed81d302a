package models

import "time"

type Company struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Locations []Location `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
}

type Location struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CompanyID int64     `gorm:"not null;index" json:"company"`
	Company   *Company  `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Shops []Shop `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
}

type Shop struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:200;not null" json:"name"`
	LocationID int64     `gorm:"not null;index" json:"location"`
	Location   *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Role anchors a permission set to one company/location/shop triple. The
// triple is not checked for mutual consistency; the admin UI supplies it.
type Role struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	CompanyID   int64  `gorm:"not null;index" json:"company"`
	LocationID  int64  `gorm:"not null;index" json:"location"`
	ShopID      int64  `gorm:"not null;index" json:"shop"`

	Company  *Company  `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE" json:"-"`
	Location *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"-"`
	Shop     *Shop     `gorm:"foreignKey:ShopID;constraint:OnDelete:CASCADE" json:"-"`

	RoleCreate bool `gorm:"default:false" json:"role_create"`
	RoleEdit   bool `gorm:"default:false" json:"role_edit"`
	RoleDelete bool `gorm:"default:false" json:"role_delete"`
	RoleView   bool `gorm:"default:false" json:"role_view"`

	UserCreate bool `gorm:"default:false" json:"user_create"`
	UserEdit   bool `gorm:"default:false" json:"user_edit"`
	UserDelete bool `gorm:"default:false" json:"user_delete"`
	UserView   bool `gorm:"default:false" json:"user_view"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
