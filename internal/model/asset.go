package model

// RawAssetParams is the user-supplied asset form. A nil Supply means the field was left empty.
type RawAssetParams struct {
	Name   string `json:"name" validate:"min=1,maxbytes=32"`
	Symbol string `json:"symbol" validate:"min=1,maxbytes=8"`
	Supply *int64 `json:"supply" validate:"required,min=1"`
}

// AssetCreationParams are validated asset-creation parameters.
type AssetCreationParams struct {
	Name          string
	UnitName      string
	Total         uint64
	Decimals      uint32
	DefaultFrozen bool
}
