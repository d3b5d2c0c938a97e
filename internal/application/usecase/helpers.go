package usecase

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
)

func validateDetails(price *decimal.Decimal, minStock *int) error {
	if price != nil && price.IsNegative() {
		return domain.NewValidationError("price", "Price must be a non-negative number", price.String())
	}
	if minStock != nil && *minStock < 0 {
		return domain.NewValidationError("minStock", "Min stock must be a non-negative integer", *minStock)
	}
	return nil
}

// normalizeSKU "" o solo espacios → sin SKU.
func normalizeSKU(sku *string) *string {
	if sku == nil {
		return nil
	}
	s := strings.TrimSpace(*sku)
	if s == "" {
		return nil
	}
	return &s
}

// clampPage mismos topes que dto.PageRequest.Normalize.
func clampPage(limit, offset int) (int, int) {
	p := dto.PageRequest{Limit: limit, Offset: offset}.Normalize()
	return p.Limit, p.Offset
}

func requireName(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", domain.NewValidationError(field, "Name is required", nil)
	}
	return v, nil
}
