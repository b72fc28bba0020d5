package dto

import (
	"pharmapos/internal/core/entity"
	"pharmapos/internal/domain/catalogs/supplier"
)

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Code          string            `json:"code"`
	Name          string            `json:"name" binding:"required"`
	ContactPerson string            `json:"contactPerson"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	Address       string            `json:"address"`
	TaxNumber     *string           `json:"taxNumber"`
	Attributes    entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	item := supplier.NewSupplier(r.Code, r.Name)
	item.ContactPerson = r.ContactPerson
	item.Phone = r.Phone
	item.Email = r.Email
	item.Address = r.Address
	item.TaxNumber = r.TaxNumber
	item.Attributes = r.Attributes
	return item
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Code          string            `json:"code"`
	Name          string            `json:"name" binding:"required"`
	ContactPerson string            `json:"contactPerson"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	Address       string            `json:"address"`
	TaxNumber     *string           `json:"taxNumber"`
	Attributes    entity.Attributes `json:"attributes"`
	Version       int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSupplierRequest) ApplyTo(item *supplier.Supplier) {
	item.Code = r.Code
	item.Name = r.Name
	item.ContactPerson = r.ContactPerson
	item.Phone = r.Phone
	item.Email = r.Email
	item.Address = r.Address
	item.TaxNumber = r.TaxNumber
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	BaseResponse
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	ContactPerson string  `json:"contactPerson,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Email         string  `json:"email,omitempty"`
	Address       string  `json:"address,omitempty"`
	TaxNumber     *string `json:"taxNumber,omitempty"`
}

// FromSupplier creates response DTO from domain entity.
func FromSupplier(item *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		BaseResponse:  FromBaseCatalog(item.BaseCatalog),
		Code:          item.Code,
		Name:          item.Name,
		ContactPerson: item.ContactPerson,
		Phone:         item.Phone,
		Email:         item.Email,
		Address:       item.Address,
		TaxNumber:     item.TaxNumber,
	}
}
