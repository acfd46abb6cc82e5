package models

import "time"

type Customer struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Address   string     `json:"address,omitempty"`
	GSTIN     string     `json:"gstin,omitempty"`
	PANNumber string     `json:"panNumber,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type CreateCustomerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"omitempty,phone_in"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin" binding:"omitempty,gstin"`
	PANNumber string `json:"panNumber" binding:"omitempty,pan"`
}

// UpdateCustomerRequest is a partial update; nil fields are left unchanged.
type UpdateCustomerRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,phone_in"`
	Address   *string `json:"address"`
	GSTIN     *string `json:"gstin" binding:"omitempty,gstin"`
	PANNumber *string `json:"panNumber" binding:"omitempty,pan"`
}

// Apply copies the non-nil fields onto c.
func (r *UpdateCustomerRequest) Apply(c *Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.GSTIN != nil {
		c.GSTIN = *r.GSTIN
	}
	if r.PANNumber != nil {
		c.PANNumber = *r.PANNumber
	}
}
