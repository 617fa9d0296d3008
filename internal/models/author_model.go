package models

import (
	"time"

	"gorm.io/gorm"
)

type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Username  string         `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password  string         `gorm:"size:255" json:"-"`
	Profesi   string         `gorm:"size:100" json:"profesi"`
	Foto      string         `gorm:"size:500" json:"foto"`
	IsActive  bool           `gorm:"not null;default:false" json:"isActive"`
	Blogs     []Blog         `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"blogs,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (a *Author) IsDeleted() bool { return a.DeletedAt.Valid }

// AuthorSummary is the public card for an author, shared by the
// directory and the admin penulis list.
type AuthorSummary struct {
	ID         uint           `json:"id"`
	Name       string         `json:"name"`
	Username   string         `json:"username,omitempty"`
	Profesi    string         `json:"profesi"`
	Foto       string         `json:"foto"`
	IsActive   bool           `json:"isActive"`
	BlogCount  int            `json:"blogCount"`
	BlogTitles string         `json:"blogTitles"`
	CreatedAt  time.Time      `json:"createdAt"`
	DeletedAt  gorm.DeletedAt `json:"deletedAt"`
}
