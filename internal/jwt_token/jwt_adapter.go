package jwttoken

import (
	authmw "campus/pkg/platform/middleware/auth"
)

// JWTServiceAdapter bridges JWTService to the middleware's validator
// interface so the middleware package stays free of JWT details.
type JWTServiceAdapter struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *JWTServiceAdapter {
	return &JWTServiceAdapter{service: service}
}

func (a *JWTServiceAdapter) ValidateToken(tokenString string) (*authmw.Claims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &authmw.Claims{
		UserID: claims.UserID,
		Locale: claims.Locale,
		Staff:  claims.Staff,
	}, nil
}
