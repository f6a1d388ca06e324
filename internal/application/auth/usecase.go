package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Invoicing-api/internal/application/dto"
	"github.com/jhoicas/Invoicing-api/internal/domain"
	"github.com/jhoicas/Invoicing-api/internal/domain/entity"
	"github.com/jhoicas/Invoicing-api/internal/domain/repository"
	"github.com/jhoicas/Invoicing-api/pkg/jwt"
	"github.com/jhoicas/Invoicing-api/pkg/logger"
)

// CredentialVerifier hashes and verifies secrets.
type CredentialVerifier interface {
	Hash(secret string) (string, error)
	Verify(secret, stored string) (bool, error)
}

// AuthUseCase login: credential check and token issuance.
type AuthUseCase struct {
	userRepo repository.UserRepository
	verifier CredentialVerifier
	jwtCfg   jwt.Config
	log      *logger.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(userRepo repository.UserRepository, verifier CredentialVerifier, jwtCfg jwt.Config, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, verifier: verifier, jwtCfg: jwtCfg, log: log}
}

// Login checks the credentials and issues a token. companyID (from the
// X-Company-Id header, may be empty) narrows the search to one tenant;
// without it the username or email must match exactly one user.
//
// Unknown user, ambiguous match, wrong password and a corrupt stored hash all
// return domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, companyID string, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.UsernameOrEmail = strings.TrimSpace(in.UsernameOrEmail)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	users, err := uc.userRepo.FindByLogin(ctx, companyID, in.UsernameOrEmail)
	if err != nil {
		return nil, err
	}
	if len(users) != 1 {
		// Same work as a real check so timing does not reveal unknown users.
		_, _ = uc.verifier.Verify(in.Password, uc.dummy())
		return nil, domain.ErrInvalidCredentials
	}
	user := users[0]

	ok, err := uc.verifier.Verify(in.Password, user.PasswordHash)
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Str("company_id", user.CompanyID).Msg("stored credential unreadable")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg, user.ID, user.CompanyID, user.RoleID, user.RoleName)
	if err != nil {
		return nil, err
	}
	return toLoginResponse(token, user), nil
}

func (uc *AuthUseCase) dummy() string {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = uc.verifier.Hash("dummy-password-for-timing")
	})
	return uc.dummyHash
}

func toLoginResponse(token string, u *entity.UserWithRole) *dto.LoginResponse {
	return &dto.LoginResponse{
		Token:     token,
		UserID:    u.ID,
		CompanyID: u.CompanyID,
		RoleID:    u.RoleID,
		RoleName:  u.RoleName,
	}
}
