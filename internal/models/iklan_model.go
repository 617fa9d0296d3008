package models

import (
	"time"

	"gorm.io/gorm"
)

type IklanJenis string

const (
	IklanPersegi        IklanJenis = "persegi"
	IklanPersegiPanjang IklanJenis = "persegi panjang"
)

func (j IklanJenis) Valid() bool {
	return j == IklanPersegi || j == IklanPersegiPanjang
}

// Iklan is an advertisement slot rendered by the public site.
type Iklan struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Judul     string         `gorm:"size:255;not null" json:"judul"`
	Gambar    *string        `gorm:"size:500" json:"gambar"`
	Jenis     IklanJenis     `gorm:"size:30;not null;index" json:"jenis"`
	Link      string         `gorm:"size:500;not null" json:"link"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Iklan) TableName() string { return "iklan" }

func (i *Iklan) IsDeleted() bool { return i.DeletedAt.Valid }
