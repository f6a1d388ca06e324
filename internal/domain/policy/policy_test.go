package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllows_Table(t *testing.T) {
	cases := []struct {
		policy Policy
		role   string
		want   bool
	}{
		{CompanyViewOwn, "Admin", true},
		{CompanyViewOwn, "User", true},
		{CompanyViewOwn, "Manager", false},
		{CompanyMutate, "User", false},
		{CustomerView, "Manager", true},
		{CustomerView, "User", false},
		{ItemView, "User", true},
		{ItemMutate, "User", false},
		{RoleView, "Manager", true},
		{RoleMutate, "Manager", false},
		{UserManage, "Admin", true},
		{UserManage, "Accountant", false},
		{CreateInvoice, "Accountant", true},
		{CreateInvoice, "Manager", false},
		{ViewInvoice, "User", true},
		{ViewInvoice, "Manager", false},
		{CreateInvoiceItems, "Manager", true},
		{CreateInvoiceItems, "Accountant", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allows(tc.policy, tc.role), "%s/%s", tc.policy, tc.role)
	}
}

func TestAllows_CaseInsensitive(t *testing.T) {
	assert.True(t, Allows(CreateInvoice, "accountant"))
	assert.True(t, Allows(CompanyView, "ADMIN"))
}

func TestAllows_UnknownOrEmpty(t *testing.T) {
	assert.False(t, Allows(Policy("nope"), "Admin"))
	assert.False(t, Allows(ViewInvoice, ""))
}
