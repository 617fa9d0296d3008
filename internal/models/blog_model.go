package models

import (
	"time"

	"gorm.io/gorm"
)

type Blog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Title      string         `gorm:"size:255;not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	Headline   string         `gorm:"size:500" json:"headline"`
	IsFeature  bool           `gorm:"not null;default:false;index" json:"isFeature"`
	CategoryID uint           `gorm:"not null;index" json:"categoryId"`
	Category   *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID   uint           `gorm:"not null;index" json:"authorId"`
	Author     *Author        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt  time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (b *Blog) IsDeleted() bool { return b.DeletedAt.Valid }
