package handler

import "github.com/evento-nomina/payroll-system/internal/core/domain"

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// refreshRequest is the deprecated body form of the refresh call. New
// clients send the token in the Authorization header; the body is only
// consulted when the header is absent.
type refreshRequest struct {
	Token string `json:"token"`
}

type authResponse struct {
	User    *domain.Account `json:"user"`
	Profile *domain.Profile `json:"profile"`
	Token   string          `json:"token"`
}

type identityResponse struct {
	User    *domain.Account `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
