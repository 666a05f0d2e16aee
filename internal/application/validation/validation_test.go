package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/application/command"
	"catalog-service/internal/domain"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

func TestValidateProduct_Normalizes(t *testing.T) {
	out, err := ValidateProduct(command.ProductInput{
		Name:     "  Pen ",
		Qty:      intPtr(100),
		Price:    floatPtr(1.5),
		Category: strPtr("  office  "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pen", out.Name)
	assert.Equal(t, "office", *out.Category)
	assert.Equal(t, 100, *out.Qty)
	assert.Equal(t, 1.5, *out.Price)
}

func TestValidateProduct_OptionalCategory(t *testing.T) {
	base := command.ProductInput{Name: "Pen", Qty: intPtr(0), Price: floatPtr(0)}

	out, err := ValidateProduct(base)
	require.NoError(t, err)
	assert.Nil(t, out.Category)

	base.Category = strPtr("")
	out, err = ValidateProduct(base)
	require.NoError(t, err)
	assert.Equal(t, "", *out.Category)
}

func TestValidateProduct_Failures(t *testing.T) {
	tests := []struct {
		name    string
		in      command.ProductInput
		message string
	}{
		{
			name:    "missing name",
			in:      command.ProductInput{Qty: intPtr(1), Price: floatPtr(1)},
			message: `"name" is required`,
		},
		{
			name:    "blank name",
			in:      command.ProductInput{Name: "   ", Qty: intPtr(1), Price: floatPtr(1)},
			message: `"name" is required`,
		},
		{
			name:    "missing qty",
			in:      command.ProductInput{Name: "Pen", Price: floatPtr(1)},
			message: `"qty" is required`,
		},
		{
			name:    "missing price",
			in:      command.ProductInput{Name: "Pen", Qty: intPtr(1)},
			message: `"price" is required`,
		},
		{
			name:    "first failing rule wins",
			in:      command.ProductInput{},
			message: `"name" is required`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ValidateProduct(tt.in)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.EqualError(t, err, tt.message)
			assert.Equal(t, command.ProductInput{}, out)
		})
	}
}

func TestValidateUser(t *testing.T) {
	out, err := ValidateUser(command.CreateUserCommand{Name: " Ada ", Email: " ADA@Example.com "})
	require.NoError(t, err)
	assert.Equal(t, "Ada", out.Name)
	assert.Equal(t, "ada@example.com", out.Email)

	_, err = ValidateUser(command.CreateUserCommand{Name: "Ada", Email: "nope"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, `"email" must be a valid email`)

	_, err = ValidateUser(command.CreateUserCommand{Email: "ada@example.com"})
	assert.EqualError(t, err, `"name" is required`)
}

func TestTypeMismatch(t *testing.T) {
	err := TypeMismatch("price", "a number")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, `"price" must be a number`)

	assert.EqualError(t, TypeMismatch("qty", "an integer"), `"qty" must be an integer`)
}

func TestNotAllowed(t *testing.T) {
	err := NotAllowed("id")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "id", err.Field)
	assert.EqualError(t, err, `"id" is not allowed`)
}
