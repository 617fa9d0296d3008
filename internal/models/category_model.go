package models

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Icon      *string        `gorm:"size:500" json:"icon"`
	Blogs     []Blog         `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"blogs,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (c *Category) IsDeleted() bool { return c.DeletedAt.Valid }

// CategoryWithBlogs is the shape served by the category overview page.
type CategoryWithBlogs struct {
	Category
	BlogCount int64 `json:"blogCount"`
}
