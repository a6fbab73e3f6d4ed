package entity

import "time"

// Notification is a seller-facing message record.
type Notification struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	Location  string    `gorm:"column:location;type:varchar(128);not null" json:"location"`
	SelledBy  string    `gorm:"column:selled_by;type:varchar(128);not null" json:"selledBy"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false" json:"isRead"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
