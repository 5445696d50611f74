package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"vetclinic/internal/domain/user"
	reqdto "vetclinic/internal/handler/dto/request"
	"vetclinic/internal/pkg/errs"
	"vetclinic/internal/pkg/jwt"
	"vetclinic/internal/pkg/password"
	"vetclinic/internal/usecase/queries"
	"vetclinic/internal/usecase/shared"
)

var (
	ErrUserInactive    = errs.New("user inactive")
	ErrTokenGeneration = errs.New("token generation failed")
	ErrTokenValidation = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	view, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	accessToken, err := a.jwtService.GenerateAccessToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if updateErr := tx.Users().UpdateLastLogin(ctx, tx.DB(), view.ID); updateErr != nil {
			slog.Warn("failed to update last login", "user_id", view.ID, "error", updateErr.Error())
		}
		return nil
	})
	if err != nil {
		// Login already succeeded; only the last_login bookkeeping failed.
		slog.Warn("transaction failed during login", "user_id", view.ID, "error", err.Error())
	}

	return &LoginResult{
		UserID:    view.ID,
		TokenPair: &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken},
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	view, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil || view == nil {
		return nil, errs.ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	accessToken, err := a.jwtService.GenerateAccessToken(claims.UserID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	newRefreshToken, err := a.jwtService.GenerateRefreshToken(claims.UserID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration.
		return nil, errs.ErrInvalidCredentials
	}
	if view == nil {
		return nil, errs.ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	if err := password.ComparePassword(hashedPassword, credentials.Password()); err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return view, nil
}
