package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request модели

// RegisterRequest регистрация больницы и её первого администратора
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	HospitalName string `json:"hospitalName"`
}

// LoginRequest вход администратора (по email) или врача (по логину)
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"userType"` // admin | doctor
}

// BootstrapAdmin параметры администратора по умолчанию
type BootstrapAdmin struct {
	Name         string
	Email        string
	Password     string
	HospitalName string
}

// Response модели

// UserResponse данные вошедшего пользователя
type UserResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	HospitalID   int64  `json:"hospitalId"`
	HospitalName string `json:"hospitalName"`
}

// LoginResponse выданный токен
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RegisterResponse созданные больница и администратор
type RegisterResponse struct {
	HospitalID   int64  `json:"hospitalId"`
	HospitalName string `json:"hospitalName"`
	StaffID      int64  `json:"staffId"`
	Email        string `json:"email"`
}

// FromActor конвертирует пользователя в DTO
func FromActor(a domain.Actor) UserResponse {
	return UserResponse{
		ID:           a.ID,
		Name:         a.Name,
		Role:         string(a.Role),
		HospitalID:   a.HospitalID,
		HospitalName: a.HospitalName,
	}
}
