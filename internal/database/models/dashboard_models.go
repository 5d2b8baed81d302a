package models

import "time"

// Dashboard widget rows. Flat display fixtures, populated by the seed
// utility; the API only reads them.

type TrafficSource struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"size:50" json:"name"`
	Visitors int       `json:"visitors"`
	Date     time.Time `gorm:"autoCreateTime" json:"date"`
}

type NewUser struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	Role      string    `gorm:"size:100" json:"role"`
	TimeAdded time.Time `gorm:"index" json:"time_added"`
	Emoji     string    `gorm:"size:10" json:"emoji"`
}

type SalesDistribution struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	City  string `gorm:"size:50" json:"city"`
	Sales int    `json:"sales"`
}

type Project struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:100" json:"name"`
	Progress int    `json:"progress"`
	DueDays  int    `json:"due_days"`

	Tasks []ProjectTask `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"tasks"`
}

type ProjectTask struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID int64  `gorm:"not null;index" json:"project"`
	Name      string `gorm:"size:100" json:"name"`
	Icon      string `gorm:"size:10" json:"icon"`
	Status    string `gorm:"size:20" json:"status"`
}

type ActiveAuthor struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"size:100" json:"name"`
	Role     string `gorm:"size:100" json:"role"`
	Progress int    `json:"progress"`
	Trend    string `gorm:"size:10" json:"trend"`
}

type Designation struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string `gorm:"size:100" json:"title"`
	Company string `gorm:"size:100" json:"company"`
	Date    string `gorm:"size:10;index" json:"date"`
	Color   string `gorm:"size:7" json:"color"`
}

type UserActivity struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Month       string `gorm:"size:3" json:"month"`
	ActiveUsers int    `json:"active_users"`
	NewUsers    int    `json:"new_users"`
}
