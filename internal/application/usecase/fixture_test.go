package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/application/audit"
	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/application/usecase"
	"github.com/jhoicas/Invoicing-api/internal/infrastructure/memory"
	"github.com/jhoicas/Invoicing-api/pkg/password"
)

type env struct {
	store     *memory.Store
	companies *usecase.CompanyUseCase
	roles     *usecase.RoleUseCase
	users     *usecase.UserUseCase
	items     *usecase.ItemUseCase
}

func newEnv() *env {
	s := memory.NewStore()
	rec := audit.NewRecorder(memory.NewAuditRepository(s), nil)
	return &env{
		store:     s,
		companies: usecase.NewCompanyUseCase(memory.NewCompanyRepository(s), rec),
		roles:     usecase.NewRoleUseCase(memory.NewRoleRepository(s), rec),
		users:     usecase.NewUserUseCase(memory.NewUserRepository(s), memory.NewRoleRepository(s), password.NewHasher(1000), rec),
		items:     usecase.NewItemUseCase(memory.NewItemRepository(s), rec),
	}
}

func (e *env) company(t *testing.T, name, nameAr string) string {
	t.Helper()
	c, err := e.companies.Create(context.Background(), dto.CompanyRequest{Name: name, NameAr: nameAr})
	require.NoError(t, err)
	return c.ID
}

func (e *env) role(t *testing.T, companyID, name, nameAr string) string {
	t.Helper()
	r, err := e.roles.Create(context.Background(), companyID, dto.RoleRequest{Name: name, NameAr: nameAr})
	require.NoError(t, err)
	return r.ID
}

func (e *env) item(t *testing.T, companyID, name, nameAr, price string) string {
	t.Helper()
	it, err := e.items.Create(context.Background(), companyID, itemReq(name, nameAr, price))
	require.NoError(t, err)
	return it.ID
}

func itemReq(name, nameAr, price string) dto.ItemRequest {
	return dto.ItemRequest{Name: name, NameAr: nameAr, UnitPrice: decimal.RequireFromString(price)}
}
