package dto

import (
	"pharmapos/internal/core/entity"
	"pharmapos/internal/domain/catalogs/customer"
)

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	Address    string            `json:"address"`
	Attributes entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	item := customer.NewCustomer(r.Code, r.Name)
	item.Phone = r.Phone
	item.Email = r.Email
	item.Address = r.Address
	item.Attributes = r.Attributes
	return item
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	Address    string            `json:"address"`
	Attributes entity.Attributes `json:"attributes"`
	Version    int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateCustomerRequest) ApplyTo(item *customer.Customer) {
	item.Code = r.Code
	item.Name = r.Name
	item.Phone = r.Phone
	item.Email = r.Email
	item.Address = r.Address
	item.Attributes = r.Attributes
	item.Version = r.Version
}

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	BaseResponse
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(item *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		BaseResponse: FromBaseCatalog(item.BaseCatalog),
		Code:         item.Code,
		Name:         item.Name,
		Phone:        item.Phone,
		Email:        item.Email,
		Address:      item.Address,
	}
}
