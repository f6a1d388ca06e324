package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Invoicing-api/internal/application/audit"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
)

const usersTable = "users"

// PasswordHasher produces the stored form of a secret.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// UserUseCase user management within one company. A user's role must belong
// to the same company.
type UserUseCase struct {
	repo     repository.UserRepository
	roleRepo repository.RoleRepository
	hasher   PasswordHasher
	audit    *audit.Recorder
	now      func() time.Time
}

func NewUserUseCase(repo repository.UserRepository, roleRepo repository.RoleRepository, hasher PasswordHasher, rec *audit.Recorder) *UserUseCase {
	return &UserUseCase{repo: repo, roleRepo: roleRepo, hasher: hasher, audit: rec, now: time.Now}
}

func (uc *UserUseCase) Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if err := uc.checkRole(ctx, companyID, in.RoleID); err != nil {
		return nil, err
	}
	taken, err := uc.repo.IdentityTaken(ctx, companyID, in.Username, in.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		RoleID:       in.RoleID,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		FullNameAr:   in.FullNameAr,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	out := toUserResponse(u)
	uc.audit.Created(ctx, companyID, usersTable, u.ID, out)
	return out, nil
}

// checkRole a role of another company is treated as missing.
func (uc *UserUseCase) checkRole(ctx context.Context, companyID, roleID string) error {
	role, err := uc.roleRepo.GetByID(ctx, companyID, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return domain.Reference(domain.ErrRoleNotFound)
	}
	return nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(u), nil
}

func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.ListResponse[dto.UserResponse]{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Update keeps the stored password hash when in.Password is empty.
func (uc *UserUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.checkRole(ctx, companyID, in.RoleID); err != nil {
		return nil, err
	}
	taken, err := uc.repo.IdentityTaken(ctx, companyID, in.Username, in.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	before := toUserResponse(current)

	updated := *current
	updated.Username = in.Username
	updated.Email = in.Email
	updated.FullName = in.FullName
	updated.FullNameAr = in.FullNameAr
	updated.RoleID = in.RoleID
	if in.Password != "" {
		hash, err := uc.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}
	updated.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	out := toUserResponse(&updated)
	uc.audit.Modified(ctx, companyID, usersTable, id, before, out)
	return out, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, companyID, id string) error {
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.audit.Deleted(ctx, companyID, usersTable, id, toUserResponse(current))
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:         u.ID,
		CompanyID:  u.CompanyID,
		RoleID:     u.RoleID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		FullNameAr: u.FullNameAr,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
