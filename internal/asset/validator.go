package asset

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlexZinkM/asset-minter/internal/model"

	"github.com/go-playground/validator/v10"
)

// Ledger limits for asset metadata, in bytes.
const (
	MaxNameBytes     = 32
	MaxUnitNameBytes = 8
)

var (
	ErrNameLength   = fmt.Errorf("name should be between 1 and %d bytes long (UTF-8)", MaxNameBytes)
	ErrSymbolLength = fmt.Errorf("symbol should be between 1 and %d bytes long (UTF-8)", MaxUnitNameBytes)
	ErrNoSupply     = errors.New("supply is mandatory")
	ErrSupplyRange  = errors.New("supply should be greater than 0")
)

// Validator turns raw form input into asset creation parameters.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a Validator with the maxbytes rule registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// maxbytes counts bytes where the builtin max counts runes
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return fl.Field().Len() <= limit
	})
	return &Validator{validate: v}
}

// Validate checks raw in field order and reports the first failure.
// It performs no I/O.
func (v *Validator) Validate(raw model.RawAssetParams) (model.AssetCreationParams, error) {
	if err := v.validate.Struct(raw); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return model.AssetCreationParams{}, fmt.Errorf("failed to validate asset params: %w", err)
		}
		return model.AssetCreationParams{}, toKindError(verrs[0])
	}

	return model.AssetCreationParams{
		Name:          raw.Name,
		UnitName:      raw.Symbol,
		Total:         uint64(*raw.Supply),
		Decimals:      0,
		DefaultFrozen: false,
	}, nil
}

func toKindError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "Name":
		return model.NewError(model.KindInvalidName, ErrNameLength)
	case "Symbol":
		return model.NewError(model.KindInvalidSymbol, ErrSymbolLength)
	case "Supply":
		if fe.Tag() == "required" {
			return model.NewError(model.KindMissingSupply, ErrNoSupply)
		}
		return model.NewError(model.KindInvalidSupply, ErrSupplyRange)
	}
	return fmt.Errorf("unexpected validation failure on %s: %s", fe.Namespace(), fe.Tag())
}
