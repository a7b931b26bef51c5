package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-hr-events/internal/domain"
)

// UserModel is the users table row. Soft delete is the explicit is_active
// flag, not gorm.DeletedAt: inactive employees stay readable for the admin
// surface and keep their event history linked.
type UserModel struct {
	ID             int64   `gorm:"primaryKey;autoIncrement"`
	Name           string  `gorm:"size:128;not null"`
	Email          string  `gorm:"uniqueIndex;size:255;not null"`
	IsActive       bool    `gorm:"not null;default:true"`
	Phone          string  `gorm:"size:32"`
	Salary         float64 `gorm:"not null;default:0"`
	Position       string  `gorm:"size:32"`
	Department     string  `gorm:"size:32"`
	EmploymentType string  `gorm:"size:32"`
	ManagerID      *int64  `gorm:"index"`
	HireDate       string  `gorm:"size:10"`
	BirthDate      string  `gorm:"size:10"`
	Address        string  `gorm:"size:255"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

// updatableColumns is the full-replacement column set for Update. Select is
// explicit so zero values (empty position, salary 0) overwrite too.
var updatableColumns = []string{
	"name", "email", "is_active", "phone", "salary", "position",
	"department", "employment_type", "manager_id", "hire_date",
	"birth_date", "address",
}

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var (
	_ domain.UserRepository      = (*UserRepo)(nil)
	_ domain.AdminUserRepository = (*UserRepo)(nil)
)

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomain(&m), nil
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	m := fromDomain(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	u.ID = m.ID
	return u, nil
}

func (r *UserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	var ms []UserModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(ms))
	for i := range ms {
		users = append(users, *toDomain(&ms[i]))
	}
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, u *domain.User) (*domain.User, error) {
	m := fromDomain(u)
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Select(updatableColumns).
		Updates(m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// mysql reports 0 affected when the new values equal the old ones,
		// so distinguish "no row" from "no change" explicitly
		var count int64
		if err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, nil
		}
	}
	u.ID = id
	return u, nil
}

func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListAll returns every row, optionally including inactive ones. Admin-only;
// the public read path goes through GetAll.
func (r *UserRepo) ListAll(ctx context.Context, includeInactive bool) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Model(&UserModel{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var ms []UserModel
	if err := q.Order("id ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(ms))
	for i := range ms {
		users = append(users, *toDomain(&ms[i]))
	}
	return users, nil
}

// SetActive flips the soft-delete flag in either direction. Reports false
// when the row is missing or already in the requested state.
func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND is_active = ?", id, !active).
		Update("is_active", active)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func toDomain(m *UserModel) *domain.User {
	return &domain.User{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		IsActive:       m.IsActive,
		Phone:          m.Phone,
		Salary:         m.Salary,
		Position:       m.Position,
		Department:     m.Department,
		EmploymentType: m.EmploymentType,
		ManagerID:      m.ManagerID,
		HireDate:       m.HireDate,
		BirthDate:      m.BirthDate,
		Address:        m.Address,
	}
}

func fromDomain(u *domain.User) *UserModel {
	return &UserModel{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		IsActive:       u.IsActive,
		Phone:          u.Phone,
		Salary:         u.Salary,
		Position:       u.Position,
		Department:     u.Department,
		EmploymentType: u.EmploymentType,
		ManagerID:      u.ManagerID,
		HireDate:       u.HireDate,
		BirthDate:      u.BirthDate,
		Address:        u.Address,
	}
}
