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

const rolesTable = "roles"

// RoleUseCase role management within one company. Role names are not unique.
type RoleUseCase struct {
	repo  repository.RoleRepository
	audit *audit.Recorder
	now   func() time.Time
}

func NewRoleUseCase(repo repository.RoleRepository, rec *audit.Recorder) *RoleUseCase {
	return &RoleUseCase{repo: repo, audit: rec, now: time.Now}
}

func (uc *RoleUseCase) Create(ctx context.Context, companyID string, in dto.RoleRequest) (*dto.RoleResponse, error) {
	in = trimRole(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	r := &entity.Role{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		NameAr:        in.NameAr,
		Description:   in.Description,
		DescriptionAr: in.DescriptionAr,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	out := toRoleResponse(r)
	uc.audit.Created(ctx, companyID, rolesTable, r.ID, out)
	return out, nil
}

func (uc *RoleUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.RoleResponse, error) {
	r, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRoleNotFound
	}
	return toRoleResponse(r), nil
}

func (uc *RoleUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ListResponse[dto.RoleResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RoleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRoleResponse(r))
	}
	return &dto.ListResponse[dto.RoleResponse]{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *RoleUseCase) Update(ctx context.Context, companyID, id string, in dto.RoleRequest) (*dto.RoleResponse, error) {
	in = trimRole(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrRoleNotFound
	}
	before := toRoleResponse(current)

	updated := *current
	updated.Name = in.Name
	updated.NameAr = in.NameAr
	updated.Description = in.Description
	updated.DescriptionAr = in.DescriptionAr
	updated.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	out := toRoleResponse(&updated)
	uc.audit.Modified(ctx, companyID, rolesTable, id, before, out)
	return out, nil
}

// Delete fails with domain.ErrInUse while users hold the role.
func (uc *RoleUseCase) Delete(ctx context.Context, companyID, id string) error {
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrRoleNotFound
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.audit.Deleted(ctx, companyID, rolesTable, id, toRoleResponse(current))
	return nil
}

func trimRole(in dto.RoleRequest) dto.RoleRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	return in
}

func toRoleResponse(r *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:            r.ID,
		CompanyID:     r.CompanyID,
		Name:          r.Name,
		NameAr:        r.NameAr,
		Description:   r.Description,
		DescriptionAr: r.DescriptionAr,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
