package domain

import (
	"context"
	"fmt"
	"strings"
)

// User is the employee record. ID is 0 until the repository has persisted it.
type User struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	IsActive       bool    `json:"is_active"`
	Phone          string  `json:"phone"`
	Salary         float64 `json:"salary"`
	Position       string  `json:"position"`
	Department     string  `json:"department"`
	EmploymentType string  `json:"employment_type"`
	ManagerID      *int64  `json:"manager_id"`
	HireDate       string  `json:"hire_date"`
	BirthDate      string  `json:"birth_date"`
	Address        string  `json:"address"`
}

// UserInput carries the submitted fields of a create or update request.
// Pointer fields distinguish "submitted" from "omitted": omitted fields fall
// back to their defaults when the full record is built.
type UserInput struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	IsActive       *bool    `json:"is_active"`
	Phone          *string  `json:"phone"`
	Salary         *float64 `json:"salary"`
	Position       *string  `json:"position"`
	Department     *string  `json:"department"`
	EmploymentType *string  `json:"employment_type"`
	ManagerID      *int64   `json:"manager_id"`
	HireDate       *string  `json:"hire_date"`
	BirthDate      *string  `json:"birth_date"`
	Address        *string  `json:"address"`
}

type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

func invalid(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

// NewUser builds a validated User from the submitted fields. Omitted fields
// take defaults (is_active true, salary 0, everything else empty).
func NewUser(in *UserInput) (*User, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, invalid("name", "is required")
	}
	if in.Email == nil || !strings.Contains(*in.Email, "@") {
		return nil, invalid("email", "must contain @")
	}

	u := &User{
		Name:     *in.Name,
		Email:    *in.Email,
		IsActive: true,
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Salary != nil {
		u.Salary = *in.Salary
	}
	if in.Position != nil {
		u.Position = *in.Position
	}
	if in.Department != nil {
		u.Department = *in.Department
	}
	if in.EmploymentType != nil {
		u.EmploymentType = *in.EmploymentType
	}
	u.ManagerID = in.ManagerID
	if in.HireDate != nil {
		u.HireDate = *in.HireDate
	}
	if in.BirthDate != nil {
		u.BirthDate = *in.BirthDate
	}
	if in.Address != nil {
		u.Address = *in.Address
	}

	if !ValidPosition(u.Position) {
		return nil, invalid("position", fmt.Sprintf("unknown position %q", u.Position))
	}
	if !ValidDepartment(u.Department) {
		return nil, invalid("department", fmt.Sprintf("unknown department %q", u.Department))
	}
	if !ValidEmploymentType(u.EmploymentType) {
		return nil, invalid("employment_type", fmt.Sprintf("unknown employment type %q", u.EmploymentType))
	}
	return u, nil
}

// Fields renders the submitted fields as a payload map, for the generic
// created/updated audit events. Only submitted fields appear.
func (in *UserInput) Fields() map[string]any {
	m := map[string]any{}
	if in.Name != nil {
		m["name"] = *in.Name
	}
	if in.Email != nil {
		m["email"] = *in.Email
	}
	if in.IsActive != nil {
		m["is_active"] = *in.IsActive
	}
	if in.Phone != nil {
		m["phone"] = *in.Phone
	}
	if in.Salary != nil {
		m["salary"] = *in.Salary
	}
	if in.Position != nil {
		m["position"] = *in.Position
	}
	if in.Department != nil {
		m["department"] = *in.Department
	}
	if in.EmploymentType != nil {
		m["employment_type"] = *in.EmploymentType
	}
	if in.ManagerID != nil {
		m["manager_id"] = *in.ManagerID
	}
	if in.HireDate != nil {
		m["hire_date"] = *in.HireDate
	}
	if in.BirthDate != nil {
		m["birth_date"] = *in.BirthDate
	}
	if in.Address != nil {
		m["address"] = *in.Address
	}
	return m
}

// UserRepository is the persistence port for employee records. The concrete
// implementation lives in internal/repo; tests swap in doubles.
//
// GetByID and GetAll surface only active users; a soft-deleted user behaves as
// not-found. Not-found is (nil, nil), not an error.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int64, u *User) (*User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// AdminUserRepository is the operator-facing port: it sees soft-deleted rows
// too, which the public read path never does.
type AdminUserRepository interface {
	ListAll(ctx context.Context, includeInactive bool) ([]User, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
}
