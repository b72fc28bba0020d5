package dto

import (
	"github.com/shopspring/decimal"

	"pharmapos/internal/core/entity"
	"pharmapos/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code              string            `json:"code"`
	Name              string            `json:"name" binding:"required"`
	GenericName       string            `json:"genericName"`
	Form              product.Form      `json:"form"`
	Strength          string            `json:"strength"`
	Barcode           *string           `json:"barcode"`
	RackLocation      string            `json:"rackLocation"`
	PackSize          int               `json:"packSize"`
	UnitPurchasePrice decimal.Decimal   `json:"unitPurchasePrice"`
	UnitSalePrice     decimal.Decimal   `json:"unitSalePrice"`
	ReorderLevel      decimal.Decimal   `json:"reorderLevel"`
	Attributes        entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	item := product.NewProduct(r.Code, r.Name)
	item.GenericName = r.GenericName
	if r.Form != "" {
		item.Form = r.Form
	}
	item.Strength = r.Strength
	item.Barcode = r.Barcode
	item.RackLocation = r.RackLocation
	item.PackSize = r.PackSize
	item.UnitPurchasePrice = r.UnitPurchasePrice
	item.UnitSalePrice = r.UnitSalePrice
	item.ReorderLevel = r.ReorderLevel
	item.Attributes = r.Attributes
	return item
}

// UpdateProductRequest is the request body for updating a product.
type UpdateProductRequest struct {
	Code              string            `json:"code"`
	Name              string            `json:"name" binding:"required"`
	GenericName       string            `json:"genericName"`
	Form              product.Form      `json:"form"`
	Strength          string            `json:"strength"`
	Barcode           *string           `json:"barcode"`
	RackLocation      string            `json:"rackLocation"`
	PackSize          int               `json:"packSize"`
	UnitPurchasePrice decimal.Decimal   `json:"unitPurchasePrice"`
	UnitSalePrice     decimal.Decimal   `json:"unitSalePrice"`
	ReorderLevel      decimal.Decimal   `json:"reorderLevel"`
	Attributes        entity.Attributes `json:"attributes"`
	Version           int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(item *product.Product) {
	item.Code = r.Code
	item.Name = r.Name
	item.GenericName = r.GenericName
	item.Form = r.Form
	item.Strength = r.Strength
	item.Barcode = r.Barcode
	item.RackLocation = r.RackLocation
	item.PackSize = r.PackSize
	item.UnitPurchasePrice = r.UnitPurchasePrice
	item.UnitSalePrice = r.UnitSalePrice
	item.ReorderLevel = r.ReorderLevel
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	BaseResponse
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	GenericName       string          `json:"genericName,omitempty"`
	Form              product.Form    `json:"form"`
	Strength          string          `json:"strength,omitempty"`
	Barcode           *string         `json:"barcode,omitempty"`
	RackLocation      string          `json:"rackLocation,omitempty"`
	PackSize          int             `json:"packSize"`
	UnitPurchasePrice decimal.Decimal `json:"unitPurchasePrice"`
	UnitSalePrice     decimal.Decimal `json:"unitSalePrice"`
	ReorderLevel      decimal.Decimal `json:"reorderLevel"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(item *product.Product) *ProductResponse {
	return &ProductResponse{
		BaseResponse:      FromBaseCatalog(item.BaseCatalog),
		Code:              item.Code,
		Name:              item.Name,
		GenericName:       item.GenericName,
		Form:              item.Form,
		Strength:          item.Strength,
		Barcode:           item.Barcode,
		RackLocation:      item.RackLocation,
		PackSize:          item.PackSize,
		UnitPurchasePrice: item.UnitPurchasePrice,
		UnitSalePrice:     item.UnitSalePrice,
		ReorderLevel:      item.ReorderLevel,
	}
}
