package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"musubime/contexts/assistant/chatbot-service/adapters/memory"
	"musubime/contexts/assistant/chatbot-service/domain/entities"
	domainerrors "musubime/contexts/assistant/chatbot-service/domain/errors"
	"musubime/contexts/assistant/chatbot-service/ports"
)

type staticFAQ []entities.FAQEntry

func (f staticFAQ) Entries(context.Context) ([]entities.FAQEntry, error) {
	return f, nil
}

var (
	influencer = ports.Actor{ID: "INF-001", Role: ports.RoleInfluencer}
	faq        = staticFAQ{
		{ID: "schedule", Question: "日程変更", Keywords: []string{"日程", "変更"}, Answer: "変更リクエストから送信してください。"},
	}
)

func newService(store *memory.Store) Service {
	return Service{FAQ: faq, Campaigns: store, Model: store}
}

func TestChatAnswersConfidentFAQWithoutModel(t *testing.T) {
	store := memory.NewStore()
	store.Script(nil, "should not be used")
	reply, err := newService(store).Chat(context.Background(), ChatCommand{Actor: influencer, Message: "日程を変更したい"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Source != entities.SourceFAQ || reply.FAQID != "schedule" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if len(store.Prompts()) != 0 {
		t.Fatalf("model must not be consulted for confident faq matches")
	}
}

func TestChatAsksModelWithCampaignContext(t *testing.T) {
	store := memory.NewStore(entities.CampaignSnapshot{CampaignID: "CMP-001", InfluencerID: "INF-001", Status: "draft_creating", DraftDate: "2026-10-25"})
	store.Script(nil, "下書きの締切は10月25日です。")
	reply, err := newService(store).Chat(context.Background(), ChatCommand{Actor: influencer, CampaignID: "CMP-001", Message: "締切はいつ？"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if reply.Source != entities.SourceAssistant || reply.Answer != "下書きの締切は10月25日です。" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	prompts := store.Prompts()
	if len(prompts) != 1 || !strings.Contains(prompts[0].System, "draft date: 2026-10-25") || prompts[0].Question != "締切はいつ？" {
		t.Fatalf("unexpected prompt %+v", prompts)
	}
}

func TestChatFallsBackWhenModelFails(t *testing.T) {
	store := memory.NewStore()
	store.Script(errors.New("quota exceeded"))
	service := newService(store)
	service.Confidence = 0.75

	partial, err := service.Chat(context.Background(), ChatCommand{Actor: influencer, Message: "日程について"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if partial.Source != entities.SourceFAQ || len(store.Prompts()) != 1 {
		t.Fatalf("expected closest faq entry after model failure, got %+v", partial)
	}

	canned, err := service.Chat(context.Background(), ChatCommand{Actor: influencer, Message: "こんにちは"})
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if canned.Source != entities.SourceFallback || canned.Answer != entities.FallbackAnswer {
		t.Fatalf("expected canned fallback, got %+v", canned)
	}
}

func TestChatValidatesInputAndAccess(t *testing.T) {
	service := newService(memory.NewStore())
	if _, err := service.Chat(context.Background(), ChatCommand{Actor: influencer, Message: "  "}); !errors.Is(err, domainerrors.ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
	if _, err := service.Chat(context.Background(), ChatCommand{Actor: influencer, Message: strings.Repeat("あ", 2001)}); !errors.Is(err, domainerrors.ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage for long message, got %v", err)
	}
	if _, err := service.Chat(context.Background(), ChatCommand{Actor: influencer, InfluencerID: "INF-002", Message: "hi"}); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := service.Chat(context.Background(), ChatCommand{Actor: ports.Actor{Role: ports.RoleAdmin}, Message: "hi"}); err != nil {
		t.Fatalf("admin chat without influencer should succeed, got %v", err)
	}
}
