// Package policy holds the static table of operations and the roles allowed
// to run them.
package policy

import (
	"strings"

	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
)

// Policy named operation guarded by a role list.
type Policy string

const (
	CompanyViewOwn     Policy = "company.view.own"
	CompanyView        Policy = "company.view"
	CompanyMutate      Policy = "company.mutate"
	CustomerView       Policy = "customer.view"
	CustomerMutate     Policy = "customer.mutate"
	ItemView           Policy = "item.view"
	ItemMutate         Policy = "item.mutate"
	RoleView           Policy = "role.view"
	RoleMutate         Policy = "role.mutate"
	UserManage         Policy = "user.manage"
	CreateInvoice      Policy = "CreateInvoice"
	ViewInvoice        Policy = "ViewInvoice"
	CreateInvoiceItems Policy = "CreateInvoiceItems"
)

var table = map[Policy][]string{
	CompanyViewOwn:     {entity.RoleAdmin, entity.RoleUser},
	CompanyView:        {entity.RoleAdmin},
	CompanyMutate:      {entity.RoleAdmin},
	CustomerView:       {entity.RoleAdmin, entity.RoleManager},
	CustomerMutate:     {entity.RoleAdmin, entity.RoleManager},
	ItemView:           {entity.RoleAdmin, entity.RoleManager, entity.RoleUser},
	ItemMutate:         {entity.RoleAdmin, entity.RoleManager},
	RoleView:           {entity.RoleAdmin, entity.RoleManager, entity.RoleUser},
	RoleMutate:         {entity.RoleAdmin},
	UserManage:         {entity.RoleAdmin},
	CreateInvoice:      {entity.RoleAdmin, entity.RoleAccountant},
	ViewInvoice:        {entity.RoleAdmin, entity.RoleAccountant, entity.RoleUser},
	CreateInvoiceItems: {entity.RoleAdmin, entity.RoleManager},
}

// Roles allowed for p. Unknown policies allow nobody.
func Roles(p Policy) []string {
	return table[p]
}

// Allows reports whether roleName may run p.
func Allows(p Policy, roleName string) bool {
	return HasRole(roleName, table[p]...)
}

// HasRole case-insensitive membership test.
func HasRole(roleName string, allowed ...string) bool {
	if roleName == "" {
		return false
	}
	for _, r := range allowed {
		if strings.EqualFold(r, roleName) {
			return true
		}
	}
	return false
}
