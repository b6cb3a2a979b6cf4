package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	doctorRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/doctor"
	staffRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-ClinicService/internal/service/auth/models"
)

// Service регистрация, вход и выход
type Service struct {
	hospitalRepo HospitalRepository
	staffRepo    StaffRepository
	doctorRepo   DoctorRepository
	hasher       PasswordHasher
	tokens       TokenIssuer
	sessions     SessionStore
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	hospitalRepo HospitalRepository,
	staffRepo StaffRepository,
	doctorRepo DoctorRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sessions SessionStore,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		hospitalRepo: hospitalRepo,
		staffRepo:    staffRepo,
		doctorRepo:   doctorRepo,
		hasher:       hasher,
		tokens:       tokens,
		sessions:     sessions,
		txManager:    txManager,
		logger:       logger,
	}
}

// Register создаёт больницу и её первого администратора в одной транзакции
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	s.logger.Info("Register: registering hospital=%q", req.HospitalName)

	if err := validateRegister(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	var (
		hospital *domain.Hospital
		staff    *domain.Staff
	)
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		hospital, err = s.hospitalRepo.Create(ctx, &domain.Hospital{Name: strings.TrimSpace(req.HospitalName)})
		if err != nil {
			return err
		}

		staff, err = s.staffRepo.Create(ctx, &domain.Staff{
			HospitalID:   hospital.ID,
			Name:         strings.TrimSpace(req.Name),
			Email:        req.Email,
			PasswordHash: hash,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, staffRepo.ErrEmailTaken) {
			s.logger.Warn("Register: email already registered")
			return nil, ErrEmailTaken
		}
		s.logger.Error("Register: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: Register - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Register: created hospital id=%d with admin id=%d", hospital.ID, staff.ID)
	return &models.RegisterResponse{
		HospitalID:   hospital.ID,
		HospitalName: hospital.Name,
		StaffID:      staff.ID,
		Email:        staff.Email,
	}, nil
}

// Login проверяет учётные данные и выдаёт токен
// Неизвестный пользователь и неверный пароль неразличимы для клиента
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	role, err := validateLogin(req)
	if err != nil {
		return nil, err
	}

	var (
		actor domain.Actor
		hash  string
	)
	switch role {
	case domain.RoleAdmin:
		staff, err := s.staffRepo.GetByEmail(ctx, req.Username)
		if err != nil {
			return nil, s.lookupError("admin", err, staffRepo.ErrStaffNotFound)
		}
		actor = domain.Actor{
			ID:           staff.ID,
			Role:         domain.RoleAdmin,
			HospitalID:   staff.HospitalID,
			Name:         staff.Name,
			HospitalName: staff.HospitalName,
		}
		hash = staff.PasswordHash
	case domain.RoleDoctor:
		doctor, err := s.doctorRepo.GetByUsername(ctx, req.Username)
		if err != nil {
			return nil, s.lookupError("doctor", err, doctorRepo.ErrDoctorNotFound)
		}
		if !doctor.HasCredentials() {
			s.logger.Warn("Login: doctor id=%d has no credentials", doctor.ID)
			return nil, ErrInvalidCredentials
		}
		actor = domain.Actor{
			ID:           doctor.ID,
			Role:         domain.RoleDoctor,
			HospitalID:   doctor.HospitalID,
			Name:         doctor.Name,
			HospitalName: doctor.HospitalName,
		}
		hash = *doctor.PasswordHash
	}

	ok, err := s.hasher.Verify(hash, req.Password)
	if err != nil {
		s.logger.Error("Login: failed to verify password for %s id=%d: %v", role, actor.ID, err)
		return nil, fmt.Errorf("%w: Login - verify password: %v", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("Login: wrong password for %s id=%d", role, actor.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(actor)
	if err != nil {
		s.logger.Error("Login: failed to issue token for %s id=%d: %v", role, actor.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: %s id=%d logged in, hospital=%d", role, actor.ID, actor.HospitalID)
	return &models.LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      models.FromActor(actor),
	}, nil
}

// Logout отзывает токен до окончания его срока действия
func (s *Service) Logout(ctx context.Context, actor domain.Actor, tokenID string, expiresAt time.Time) error {
	if err := s.sessions.Revoke(ctx, tokenID, expiresAt); err != nil {
		s.logger.Error("Logout: failed to revoke token for %s id=%d: %v", actor.Role, actor.ID, err)
		return fmt.Errorf("%w: Logout - revoke: %v", ErrInternal, err)
	}

	s.logger.Info("Logout: %s id=%d logged out", actor.Role, actor.ID)
	return nil
}

// EnsureDefaultAdmin создаёт больницу и администратора при первом запуске
// Если администратор с таким email уже есть, ничего не делает
func (s *Service) EnsureDefaultAdmin(ctx context.Context, admin models.BootstrapAdmin) (bool, error) {
	_, err := s.staffRepo.GetByEmail(ctx, admin.Email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, staffRepo.ErrStaffNotFound) {
		return false, fmt.Errorf("%w: EnsureDefaultAdmin - lookup: %v", ErrInternal, err)
	}

	_, err = s.Register(ctx, &models.RegisterRequest{
		Name:         admin.Name,
		Email:        admin.Email,
		Password:     admin.Password,
		HospitalName: admin.HospitalName,
	})
	if errors.Is(err, ErrEmailTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *Service) lookupError(kind string, err, notFound error) error {
	if errors.Is(err, notFound) {
		s.logger.Warn("Login: unknown %s", kind)
		return ErrInvalidCredentials
	}
	s.logger.Error("Login: failed to load %s: %v", kind, err)
	return fmt.Errorf("%w: Login - load %s: %v", ErrInternal, kind, err)
}
