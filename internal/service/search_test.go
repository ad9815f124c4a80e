package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"go-catalog-admin/internal/model"
)

func TestParseSearchDefaults(t *testing.T) {
	filter, page, err := parseSearch("", "", "")
	require.NoError(t, err)
	require.Equal(t, model.ProductFilter{}, filter)
	require.Equal(t, model.Pagination{Page: 1, Limit: 10}, page)
}

func TestParseSearchFullCriteria(t *testing.T) {
	raw := `{"name":"usb","productId":"42","status":"inactive","category":"Electronics"}`
	filter, page, err := parseSearch(raw, "3", "25")
	require.NoError(t, err)
	require.Equal(t, "usb", filter.Name)
	require.NotNil(t, filter.ProductID)
	require.Equal(t, int64(42), *filter.ProductID)
	require.Equal(t, model.StatusInactive, filter.Status)
	require.Equal(t, "Electronics", filter.CategoryName)
	require.Equal(t, model.Pagination{Page: 3, Limit: 25}, page)
}

func TestParseSearchProductIDCoercion(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		filter, _, err := parseSearch(`{"productId":7}`, "", "")
		require.NoError(t, err)
		require.Equal(t, int64(7), *filter.ProductID)
	})
	t.Run("empty string means unset", func(t *testing.T) {
		filter, _, err := parseSearch(`{"productId":""}`, "", "")
		require.NoError(t, err)
		require.Nil(t, filter.ProductID)
	})
	t.Run("fractional number", func(t *testing.T) {
		_, _, err := parseSearch(`{"productId":3.5}`, "", "")
		require.ErrorIs(t, err, ErrInvalidProductID)
	})
	t.Run("non-numeric string", func(t *testing.T) {
		_, _, err := parseSearch(`{"productId":"abc"}`, "", "")
		require.ErrorIs(t, err, ErrInvalidProductID)
	})
	t.Run("wrong type", func(t *testing.T) {
		_, _, err := parseSearch(`{"productId":true}`, "", "")
		require.ErrorIs(t, err, ErrInvalidProductID)
	})
}

func TestParseSearchRejectsMalformedQueries(t *testing.T) {
	for _, raw := range []string{
		`{bad json`,
		`{"name":"a"} trailing`,
		`{"unknown":"field"}`,
		`{"name":123}`,
		`[1,2,3]`,
	} {
		_, _, err := parseSearch(raw, "", "")
		require.ErrorIs(t, err, ErrMalformedQuery, "raw %q", raw)
	}
}

func TestParseSearchRejectsUnknownStatus(t *testing.T) {
	_, _, err := parseSearch(`{"status":"archived"}`, "", "")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParsePositiveInt(t *testing.T) {
	require.Equal(t, 1, parsePositiveInt("", 1))
	require.Equal(t, 10, parsePositiveInt("abc", 10))
	require.Equal(t, 1, parsePositiveInt("0", 1))
	require.Equal(t, 1, parsePositiveInt("-3", 1))
	require.Equal(t, 7, parsePositiveInt("7", 10))
}
