package models

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Jewellery struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	JewelleryID    string `gorm:"size:100;uniqueIndex;not null" json:"jewellery_id"`
	DesignNumber   string `gorm:"size:100" json:"design_number"`
	CollectionType string `gorm:"size:100" json:"collection_type"`
	MetalType      string `gorm:"size:100" json:"metal_type"`
	Category       string `gorm:"size:100" json:"category"`
	SubCategory    string `gorm:"size:100" json:"sub_category"`
	Status         string `gorm:"size:20;default:active" json:"status"`
	AddedByID      *int64 `gorm:"index" json:"added_by"`
	AddedBy        *User  `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type RFID struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Tag       string `gorm:"size:100;uniqueIndex;not null" json:"tag"`
	Status    string `gorm:"size:20;default:active" json:"status"`
	AddedByID *int64 `gorm:"index" json:"added_by"`
	AddedBy   *User  `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RFIDJewelleryMap links one tag to one jewellery item; the composite unique
// index rejects duplicate pairs at the store level.
type RFIDJewelleryMap struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	JewelleryID int64      `gorm:"not null;uniqueIndex:idx_jewellery_rfid" json:"jewellery"`
	RFIDID      int64      `gorm:"column:rfid_id;not null;uniqueIndex:idx_jewellery_rfid" json:"rfid"`
	Jewellery   *Jewellery `gorm:"foreignKey:JewelleryID;constraint:OnDelete:CASCADE" json:"-"`
	RFID        *RFID      `gorm:"foreignKey:RFIDID;constraint:OnDelete:CASCADE" json:"-"`
	Status      string     `gorm:"size:20;default:active" json:"status"`
	AddedByID   *int64     `gorm:"index" json:"added_by"`
	AddedBy     *User      `gorm:"foreignKey:AddedByID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
