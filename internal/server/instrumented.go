package server

import (
	"context"
	"time"

	"github.com/inboxgate/inboxgate/internal/gmail"
	"github.com/inboxgate/inboxgate/internal/instrumentation"
)

// instrumentedService decorates a gmail.Service with per-operation metrics.
// Operation names follow the provider's method naming.
type instrumentedService struct {
	svc     gmail.Service
	metrics *instrumentation.Metrics
}

var _ gmail.Service = (*instrumentedService)(nil)

func (s *instrumentedService) observe(ctx context.Context, operation string, start time.Time, err error) {
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	s.metrics.RecordGmailOperation(ctx, operation, status, time.Since(start))
}

func (s *instrumentedService) ListMessages(ctx context.Context, q gmail.MessageQuery) ([]gmail.MessageSummary, error) {
	start := time.Now()
	out, err := s.svc.ListMessages(ctx, q)
	s.observe(ctx, "messages.list", start, err)
	return out, err
}

func (s *instrumentedService) GetMessage(ctx context.Context, messageID string) (*gmail.MessageDetail, error) {
	start := time.Now()
	out, err := s.svc.GetMessage(ctx, messageID)
	s.observe(ctx, "messages.get", start, err)
	return out, err
}

func (s *instrumentedService) SearchMessages(ctx context.Context, q gmail.MessageQuery) ([]gmail.MessageDetail, error) {
	start := time.Now()
	out, err := s.svc.SearchMessages(ctx, q)
	s.observe(ctx, "messages.search", start, err)
	return out, err
}

func (s *instrumentedService) SendMessage(ctx context.Context, msg *gmail.OutboundMessage) (*gmail.SendResult, error) {
	start := time.Now()
	out, err := s.svc.SendMessage(ctx, msg)
	s.observe(ctx, "messages.send", start, err)
	return out, err
}

func (s *instrumentedService) ModifyMessage(ctx context.Context, messageID string, addLabels, removeLabels []string) (*gmail.MessageSummary, error) {
	start := time.Now()
	out, err := s.svc.ModifyMessage(ctx, messageID, addLabels, removeLabels)
	s.observe(ctx, "messages.modify", start, err)
	return out, err
}

func (s *instrumentedService) DeleteMessage(ctx context.Context, messageID string) error {
	start := time.Now()
	err := s.svc.DeleteMessage(ctx, messageID)
	s.observe(ctx, "messages.trash", start, err)
	return err
}

func (s *instrumentedService) ListLabels(ctx context.Context) ([]gmail.Label, error) {
	start := time.Now()
	out, err := s.svc.ListLabels(ctx)
	s.observe(ctx, "labels.list", start, err)
	return out, err
}
