package catalog

import "time"

// Category is a node in the 3-level category tree (parent → sub → leaf).
// Top-level categories (ParentID null) are the only ones eligible for
// gender/kids classification.
type Category struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null;index" json:"name"`
	ParentID  *uint     `gorm:"column:parent_id;index" json:"parentId,omitempty"`
	Parent    *Category `gorm:"foreignKey:ParentID" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Category) TableName() string {
	return "categories"
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}
