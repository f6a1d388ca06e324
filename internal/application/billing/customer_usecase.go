package billing

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

const customersTable = "customers"

// CustomerUseCase customer management, always within one company.
type CustomerUseCase struct {
	repo  repository.CustomerRepository
	audit *audit.Recorder
	now   func() time.Time
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository, rec *audit.Recorder) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, audit: rec, now: time.Now}
}

// Create returns domain.ErrDuplicate when email or phone is already used in the company.
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	in = normalizeCustomer(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	taken, err := uc.repo.ContactTaken(ctx, companyID, in.Email, in.Phone, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	now := uc.now().UTC()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		NameAr:    in.NameAr,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	uc.audit.Created(ctx, companyID, customersTable, c.ID, out)
	return out, nil
}

// GetByID a customer of another company is reported as not found.
func (uc *CustomerUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return toCustomerResponse(c), nil
}

// List newest first.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ListResponse[dto.CustomerResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.ListResponse[dto.CustomerResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, companyID, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	in = normalizeCustomer(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrCustomerNotFound
	}
	taken, err := uc.repo.ContactTaken(ctx, companyID, in.Email, in.Phone, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	before := toCustomerResponse(current)

	updated := *current
	updated.Name = in.Name
	updated.NameAr = in.NameAr
	updated.Email = in.Email
	updated.Phone = in.Phone
	updated.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	out := toCustomerResponse(&updated)
	uc.audit.Modified(ctx, companyID, customersTable, id, before, out)
	return out, nil
}

// Delete fails with domain.ErrInUse while invoices reference the customer.
func (uc *CustomerUseCase) Delete(ctx context.Context, companyID, id string) error {
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrCustomerNotFound
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.audit.Deleted(ctx, companyID, customersTable, id, toCustomerResponse(current))
	return nil
}

// normalizeCustomer blank contact fields mean "absent".
func normalizeCustomer(in dto.CustomerRequest) dto.CustomerRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	in.Email = blankToNil(in.Email)
	in.Phone = blankToNil(in.Phone)
	return in
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		NameAr:    c.NameAr,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
