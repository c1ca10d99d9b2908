package httpadapter

import (
	"context"
	"log/slog"

	"musubime/contexts/identity-access/auth-service/application"
	domainerrors "musubime/contexts/identity-access/auth-service/domain/errors"
	httptransport "musubime/contexts/identity-access/auth-service/transport/http"

	"github.com/go-playground/validator/v10"
)

type Handler struct {
	Service  application.Service
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	v := h.Validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(req); err != nil {
		return httptransport.LoginResponse{}, domainerrors.ErrInvalidLoginInput
	}
	user, err := h.Service.Login(ctx, req.ID, req.Password)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{
		Success: true,
		User: httptransport.UserDTO{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		},
	}, nil
}
