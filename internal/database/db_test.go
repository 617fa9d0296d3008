package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type note struct {
	ID   uint
	Body string
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\temp`, EscapeLike(`c:\temp`))
}

func TestWhereContains(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&note{}))
	assert.NoError(t, db.Create(&[]note{
		{Body: "Diskon 100% hari ini"},
		{Body: "Diskon 1000 rupiah"},
		{Body: "kode_promo berlaku"},
		{Body: "kodeXpromo palsu"},
	}).Error)

	match := func(term string) []string {
		var bodies []string
		assert.NoError(t, WhereContains(db.Model(&note{}), "body", term).Order("id").Pluck("body", &bodies).Error)
		return bodies
	}

	t.Run("Success - Percent is literal", func(t *testing.T) {
		assert.Equal(t, []string{"Diskon 100% hari ini"}, match("100%"))
	})

	t.Run("Success - Underscore is literal", func(t *testing.T) {
		assert.Equal(t, []string{"kode_promo berlaku"}, match("kode_promo"))
	})

	t.Run("Success - Case is ignored", func(t *testing.T) {
		assert.Len(t, match("DISKON"), 2)
	})
}
