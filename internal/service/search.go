package service

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"go-catalog-admin/internal/model"
)

// searchParams mirrors the serialized search object the client sends.
// productId may arrive as a JSON string or a number.
type searchParams struct {
	Name      string      `json:"name"`
	ProductID interface{} `json:"productId"`
	Status    string      `json:"status"`
	Category  string      `json:"category"`
}

// parseSearch decodes the serialized search object plus the raw page/limit
// values into typed criteria and paging state. Malformed JSON, unknown keys
// and ill-typed values are rejected before anything reaches the store.
func parseSearch(rawSearch, rawPage, rawLimit string) (model.ProductFilter, model.Pagination, error) {
	page := model.Pagination{
		Page:  parsePositiveInt(rawPage, 1),
		Limit: parsePositiveInt(rawLimit, 10),
	}

	if strings.TrimSpace(rawSearch) == "" {
		rawSearch = "{}"
	}
	dec := json.NewDecoder(strings.NewReader(rawSearch))
	dec.DisallowUnknownFields()
	var params searchParams
	if err := dec.Decode(&params); err != nil || dec.More() {
		return model.ProductFilter{}, page, ErrMalformedQuery
	}

	status, ok := model.ParseStatus(params.Status)
	if !ok {
		return model.ProductFilter{}, page, ErrInvalidStatus
	}

	productID, err := parseProductID(params.ProductID)
	if err != nil {
		return model.ProductFilter{}, page, err
	}

	return model.ProductFilter{
		Name:         params.Name,
		ProductID:    productID,
		Status:       status,
		CategoryName: params.Category,
	}, page, nil
}

// parseProductID coerces the loosely-typed productId value to an integer.
func parseProductID(raw interface{}) (*int64, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, ErrInvalidProductID
		}
		return &n, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, ErrInvalidProductID
		}
		n := int64(v)
		return &n, nil
	default:
		return nil, ErrInvalidProductID
	}
}

// parsePositiveInt coerces a raw query value to a positive integer, falling
// back to the default when missing, non-numeric or below one.
func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
