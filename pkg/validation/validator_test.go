package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/catalog-backoffice/pkg/optional"
)

type productBody struct {
	Name  optional.Field[string] `json:"product_name" binding:"omitempty,max=10"`
	Price optional.Field[int64]  `json:"price" binding:"omitempty,gte=0"`
	Email optional.Field[string] `json:"email" binding:"omitempty,email"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	Configure(v)
	return v
}

func decode(t *testing.T, raw string) productBody {
	t.Helper()
	var b productBody
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	return b
}

func TestOptionalFieldsSkipWhenAbsentOrNull(t *testing.T) {
	v := newValidator()
	assert.NoError(t, v.Struct(decode(t, `{}`)))
	assert.NoError(t, v.Struct(decode(t, `{"price": null, "email": null}`)))
}

func TestOptionalFieldsValidateInnerValue(t *testing.T) {
	v := newValidator()
	err := v.Struct(decode(t, `{"product_name": "a very long name", "price": -1, "email": "nope"}`))
	require.Error(t, err)

	assert.Equal(t, map[string]string{
		"product_name": "must be at most 10 characters long",
		"price":        "must be at least 0",
		"email":        "must be a valid email",
	}, ToDetails(err))
}

func TestToDetailsTypeMismatchNamesField(t *testing.T) {
	var b struct {
		Price int64 `json:"price"`
	}
	err := json.Unmarshal([]byte(`{"price": "abc"}`), &b)
	assert.Equal(t, map[string]string{"price": "must be an integer"}, ToDetails(err))
}

func TestToDetailsSyntaxAndFallback(t *testing.T) {
	var b map[string]any
	err := json.Unmarshal([]byte(`{"price":`), &b)
	var se *json.SyntaxError
	if errors.As(err, &se) {
		assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	}
	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
	assert.Nil(t, ToDetails(nil))
}
