package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerForm struct {
	Name            string `form:"name" validate:"required,min=6"`
	Username        string `form:"username" validate:"required,email"`
	Password        string `form:"password" validate:"required,min=6"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=Password"`
}

func TestStruct(t *testing.T) {
	t.Run("Success - Valid struct", func(t *testing.T) {
		errs := Struct(registerForm{
			Name:            "Budi Santoso",
			Username:        "budi@example.com",
			Password:        "rahasia123",
			ConfirmPassword: "rahasia123",
		})
		assert.Nil(t, errs)
	})

	t.Run("Error - Reports fields by wire name", func(t *testing.T) {
		errs := Struct(registerForm{
			Name:            "Budi",
			Username:        "not-an-email",
			Password:        "rahasia123",
			ConfirmPassword: "berbeda123",
		})
		assert.Equal(t, "must be at least 6 characters", errs["name"])
		assert.Equal(t, "must be a valid email address", errs["username"])
		assert.Equal(t, "must match password", errs["confirmPassword"])
		assert.NotContains(t, errs, "password")
	})
}
