package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVisitorAppendVisit(t *testing.T) {
	v := &Visitor{IPAddress: "10.0.0.1"}

	times, err := v.VisitTimes()
	assert.NoError(t, err)
	assert.Empty(t, times)

	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	assert.NoError(t, v.AppendVisit(first))
	assert.NoError(t, v.AppendVisit(second))

	times, err = v.VisitTimes()
	assert.NoError(t, err)
	assert.Len(t, times, 2)
	assert.True(t, times[0].Equal(first))
	assert.True(t, times[1].Equal(second))
}

func TestIklanJenisValid(t *testing.T) {
	assert.True(t, IklanPersegi.Valid())
	assert.True(t, IklanPersegiPanjang.Valid())
	assert.False(t, IklanJenis("lingkaran").Valid())
}
