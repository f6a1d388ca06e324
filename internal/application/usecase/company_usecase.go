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

const companiesTable = "companies"

// CompanyUseCase company rules. Reads and writes by id only reach the
// caller's own company; any other id is not found.
type CompanyUseCase struct {
	repo  repository.CompanyRepository
	audit *audit.Recorder
	now   func() time.Time
}

// NewCompanyUseCase builds the use case.
func NewCompanyUseCase(repo repository.CompanyRepository, rec *audit.Recorder) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, audit: rec, now: time.Now}
}

// GetMine the caller's company.
func (uc *CompanyUseCase) GetMine(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	return uc.get(ctx, companyID)
}

// GetByID returns domain.ErrCompanyNotFound for any id other than companyID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CompanyResponse, error) {
	if id != companyID {
		return nil, domain.ErrCompanyNotFound
	}
	return uc.get(ctx, id)
}

func (uc *CompanyUseCase) get(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return toCompanyResponse(c), nil
}

// Create a new tenant. Name and NameAr must be unused by every company.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	in = trimCompany(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	taken, err := uc.repo.NameTaken(ctx, in.Name, in.NameAr, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	now := uc.now().UTC()
	c := &entity.Company{
		ID:            uuid.New().String(),
		Name:          in.Name,
		NameAr:        in.NameAr,
		Description:   in.Description,
		DescriptionAr: in.DescriptionAr,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCompanyResponse(c)
	uc.audit.Created(ctx, c.ID, companiesTable, c.ID, out)
	return out, nil
}

func (uc *CompanyUseCase) Update(ctx context.Context, companyID, id string, in dto.CompanyRequest) (*dto.CompanyResponse, error) {
	in = trimCompany(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if id != companyID {
		return nil, domain.ErrCompanyNotFound
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrCompanyNotFound
	}
	taken, err := uc.repo.NameTaken(ctx, in.Name, in.NameAr, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	before := toCompanyResponse(current)

	updated := *current
	updated.Name = in.Name
	updated.NameAr = in.NameAr
	updated.Description = in.Description
	updated.DescriptionAr = in.DescriptionAr
	updated.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	out := toCompanyResponse(&updated)
	uc.audit.Modified(ctx, companyID, companiesTable, id, before, out)
	return out, nil
}

// Delete is a hard delete; it fails with domain.ErrInUse while the company
// still owns rows.
func (uc *CompanyUseCase) Delete(ctx context.Context, companyID, id string) error {
	if id != companyID {
		return domain.ErrCompanyNotFound
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrCompanyNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.Deleted(ctx, companyID, companiesTable, id, toCompanyResponse(current))
	return nil
}

func trimCompany(in dto.CompanyRequest) dto.CompanyRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	return in
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:            c.ID,
		Name:          c.Name,
		NameAr:        c.NameAr,
		Description:   c.Description,
		DescriptionAr: c.DescriptionAr,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
