package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pacerhq/pacer/pkg/domain"
)

// AuditService writes the hash-chained event log. Every evaluation, AI call
// and proposal decision lands here, so the history of AI-driven changes is
// reconstructable and tamper-evident.
type AuditService struct {
	repo domain.WorkspaceRepository
}

// Compile-time check that AuditService implements AuditLogger
var _ domain.AuditLogger = (*AuditService)(nil)

func NewAuditService(repo domain.WorkspaceRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Log(action string, actor string, metadata map[string]interface{}) error {
	// Get the latest event to continue the hash chain
	events, _ := s.repo.LoadEvents()
	prevHash := ""
	if len(events) > 0 {
		prevHash = events[len(events)-1].Hash
	}

	event := domain.Event{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Action:    action,
		Actor:     actor,
		Metadata:  metadata,
		PrevHash:  prevHash,
	}
	event.Hash = event.CalculateHash()

	return s.repo.RecordEvent(event)
}

func (s *AuditService) GetTimeline() ([]domain.Event, error) {
	return s.repo.LoadEvents()
}

func (s *AuditService) VerifyIntegrity() ([]string, error) {
	events, err := s.repo.LoadEvents()
	if err != nil {
		return nil, err
	}

	var violations []string
	lastHash := ""

	for i, e := range events {
		// 1. Verify links
		if e.PrevHash != lastHash {
			violations = append(violations, fmt.Sprintf("Event %d (%s): PrevHash mismatch. Audit trail broken.", i, e.ID))
		}

		// 2. Verify self-hash
		expected := e.CalculateHash()
		if e.Hash != expected {
			violations = append(violations, fmt.Sprintf("Event %d (%s): Content hash mismatch. Possible tampering.", i, e.ID))
		}

		lastHash = e.Hash
	}

	return violations, nil
}

// AcceptanceRate returns the share of decided proposals the user accepted,
// from the event log. Returns 0 when nothing has been decided yet.
func (s *AuditService) AcceptanceRate() (float64, error) {
	events, err := s.repo.LoadEvents()
	if err != nil {
		return 0, err
	}

	accepted := 0
	decided := 0
	for _, e := range events {
		switch e.Action {
		case "adaptation.accept":
			accepted++
			decided++
		case "adaptation.reject":
			decided++
		}
	}

	if decided == 0 {
		return 0, nil
	}
	return float64(accepted) / float64(decided), nil
}
