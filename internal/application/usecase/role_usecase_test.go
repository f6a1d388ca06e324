package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

func TestRole_NamesMayRepeat(t *testing.T) {
	e := newEnv()
	a := e.company(t, "Acme", "أكمي")

	e.role(t, a, "Admin", "مدير")
	e.role(t, a, "Admin", "مدير")

	list, err := e.roles.List(context.Background(), a, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestRole_CrossTenantIsNotFound(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.company(t, "Acme", "أكمي")
	b := e.company(t, "Globex", "جلوبكس")
	id := e.role(t, a, "Manager", "مدير")

	_, err := e.roles.GetByID(ctx, b, id)
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)

	_, err = e.roles.Update(ctx, b, id, dto.RoleRequest{Name: "Hijacked", NameAr: "مخترق"})
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)

	assert.ErrorIs(t, e.roles.Delete(ctx, b, id), domain.ErrRoleNotFound)

	got, err := e.roles.GetByID(ctx, a, id)
	require.NoError(t, err)
	assert.Equal(t, "Manager", got.Name)
}

func TestRole_DeleteWhileHeld(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	a := e.company(t, "Acme", "أكمي")
	held := e.role(t, a, "Accountant", "محاسب")
	free := e.role(t, a, "User", "مستخدم")

	_, err := e.users.Create(ctx, a, dto.CreateUserRequest{
		Username: "bob", Email: "bob@acme.test", Password: "secret-1",
		FullName: "Bob", FullNameAr: "بوب", RoleID: held,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, e.roles.Delete(ctx, a, held), domain.ErrInUse)
	require.NoError(t, e.roles.Delete(ctx, a, free))

	entries := e.store.AuditEntries()
	last := entries[len(entries)-1]
	assert.Equal(t, entity.AuditDeleted, last.Action)
	assert.Equal(t, free, last.KeyValue)
}

func TestRole_Validation(t *testing.T) {
	e := newEnv()
	a := e.company(t, "Acme", "أكمي")

	_, err := e.roles.Create(context.Background(), a, dto.RoleRequest{Name: "Admin", NameAr: "Admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
