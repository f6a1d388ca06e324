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

const itemsTable = "items"

// ItemUseCase catalog management. Name and NameAr are unique per company.
// Editing an item never changes lines already attached to invoices.
type ItemUseCase struct {
	repo  repository.ItemRepository
	audit *audit.Recorder
	now   func() time.Time
}

func NewItemUseCase(repo repository.ItemRepository, rec *audit.Recorder) *ItemUseCase {
	return &ItemUseCase{repo: repo, audit: rec, now: time.Now}
}

func (uc *ItemUseCase) Create(ctx context.Context, companyID string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	in = trimItem(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	taken, err := uc.repo.NameTaken(ctx, companyID, in.Name, in.NameAr, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	now := uc.now().UTC()
	it := &entity.Item{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		NameAr:        in.NameAr,
		Description:   in.Description,
		DescriptionAr: in.DescriptionAr,
		UnitPrice:     in.UnitPrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	out := toItemResponse(it)
	uc.audit.Created(ctx, companyID, itemsTable, it.ID, out)
	return out, nil
}

func (uc *ItemUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ItemResponse, error) {
	it, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrItemNotFound
	}
	return toItemResponse(it), nil
}

func (uc *ItemUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.ListResponse[dto.ItemResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ListResponse[dto.ItemResponse]{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func (uc *ItemUseCase) Update(ctx context.Context, companyID, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	in = trimItem(in)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrItemNotFound
	}
	taken, err := uc.repo.NameTaken(ctx, companyID, in.Name, in.NameAr, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrDuplicate
	}
	before := toItemResponse(current)

	updated := *current
	updated.Name = in.Name
	updated.NameAr = in.NameAr
	updated.Description = in.Description
	updated.DescriptionAr = in.DescriptionAr
	updated.UnitPrice = in.UnitPrice
	updated.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	out := toItemResponse(&updated)
	uc.audit.Modified(ctx, companyID, itemsTable, id, before, out)
	return out, nil
}

// Delete fails with domain.ErrInUse while invoice lines reference the item.
func (uc *ItemUseCase) Delete(ctx context.Context, companyID, id string) error {
	current, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrItemNotFound
	}
	if err := uc.repo.Delete(ctx, companyID, id); err != nil {
		return err
	}
	uc.audit.Deleted(ctx, companyID, itemsTable, id, toItemResponse(current))
	return nil
}

func trimItem(in dto.ItemRequest) dto.ItemRequest {
	in.Name = strings.TrimSpace(in.Name)
	in.NameAr = strings.TrimSpace(in.NameAr)
	return in
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            it.ID,
		CompanyID:     it.CompanyID,
		Name:          it.Name,
		NameAr:        it.NameAr,
		Description:   it.Description,
		DescriptionAr: it.DescriptionAr,
		UnitPrice:     it.UnitPrice,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
