package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Invoicing-api/internal/domain"
)

const (
	companyA = "6f1c1a52-6a0b-4d55-9a57-2d0c0a6e6a01"
	companyB = "0b7e43f4-90a3-45a0-8d67-5b1f4fd2c102"
	companyC = "c4d2a9d0-2f71-4d2c-b3a1-0f7fe0c0c203"
)

func TestResolve_ClaimBeatsHeader(t *testing.T) {
	id, err := Resolve(Sources{Claim: companyA, Header: companyB})
	require.NoError(t, err)
	assert.Equal(t, companyA, id)
}

func TestResolve_Precedence(t *testing.T) {
	cases := []struct {
		name string
		in   Sources
		want string
	}{
		{"claim only", Sources{Claim: companyA}, companyA},
		{"header when no claim", Sources{Header: companyB, Pipeline: companyC}, companyB},
		{"pipeline last", Sources{Pipeline: companyC}, companyC},
		{"invalid claim falls through", Sources{Claim: "nope", Header: companyB}, companyB},
		{"invalid header falls through", Sources{Header: "123", Pipeline: companyC}, companyC},
		{"upper case is normalized", Sources{Header: "6F1C1A52-6A0B-4D55-9A57-2D0C0A6E6A01"}, companyA},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := Resolve(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestResolve_NoValidTenant(t *testing.T) {
	cases := []Sources{
		{},
		{Header: "not-a-uuid"},
		{Claim: "00000000-0000-0000-0000-000000000000"},
	}
	for _, in := range cases {
		_, err := Resolve(in)
		assert.ErrorIs(t, err, domain.ErrInvalidTenant)
	}
}
