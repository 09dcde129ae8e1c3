// Package rest adapts the HireSafe REST backend to the domain ports.
package rest

import (
	"context"

	"github.com/artem13815/hr/portal/pkg/apiclient"
	"github.com/artem13815/hr/portal/pkg/auth"
)

// AuthRepository implements auth.Authenticator and auth.IdentityRepository.
// Login needs no token; Me uses whatever token the client is bound to.
type AuthRepository struct {
	api *apiclient.Client
}

func NewAuthRepository(api *apiclient.Client) *AuthRepository {
	return &AuthRepository{api: api}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AuthRepository) Login(ctx context.Context, email, password string) (auth.LoginResult, error) {
	var out auth.LoginResult
	if err := r.api.Post(ctx, "auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return auth.LoginResult{}, err
	}
	return out, nil
}

func (r *AuthRepository) Me(ctx context.Context) (auth.User, error) {
	var u auth.User
	if err := r.api.Get(ctx, "auth/me", nil, &u); err != nil {
		return auth.User{}, err
	}
	return u, nil
}
