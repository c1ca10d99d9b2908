package httpadapter

import (
	"context"
	"fmt"
	"log/slog"

	"musubime/contexts/assistant/chatbot-service/application"
	domainerrors "musubime/contexts/assistant/chatbot-service/domain/errors"
	"musubime/contexts/assistant/chatbot-service/ports"
	httptransport "musubime/contexts/assistant/chatbot-service/transport/http"

	"github.com/go-playground/validator/v10"
)

type Handler struct {
	Service  application.Service
	Validate *validator.Validate
	Logger   *slog.Logger
}

func (h Handler) ChatHandler(ctx context.Context, actor ports.Actor, req httptransport.ChatRequest) (httptransport.ChatResponse, error) {
	v := h.Validate
	if v == nil {
		v = validator.New()
	}
	if err := v.Struct(req); err != nil {
		return httptransport.ChatResponse{}, fmt.Errorf("%w: %s", domainerrors.ErrInvalidMessage, err.Error())
	}
	reply, err := h.Service.Chat(ctx, application.ChatCommand{
		Actor:        actor,
		CampaignID:   req.CampaignID,
		InfluencerID: req.InfluencerID,
		Message:      req.Message,
	})
	if err != nil {
		return httptransport.ChatResponse{}, err
	}
	return httptransport.ChatResponse{
		Success: true,
		Answer:  reply.Answer,
		Source:  string(reply.Source),
		FAQID:   reply.FAQID,
	}, nil
}
