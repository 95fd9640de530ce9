package store

import (
	"context"

	"github.com/google/uuid"
)

const sqlCreateClickEvent = `
INSERT INTO click_events (link_id, visitor_fingerprint)
VALUES ($1, $2)
RETURNING id, link_id, visitor_fingerprint, created_at
`

// CreateClickEvent records one visit through a link
func (s *Store) CreateClickEvent(ctx context.Context, linkID uuid.UUID, fingerprint string) (ClickEvent, error) {
	var click ClickEvent
	if err := s.db.GetContext(ctx, &click, sqlCreateClickEvent, linkID, fingerprint); err != nil {
		s.logger.Error(ctx, "failed to create click event", err)
		return ClickEvent{}, dbError("create click event", err)
	}
	return click, nil
}

const sqlCountClickEventsByLink = `
SELECT COUNT(*)
FROM click_events
WHERE link_id = $1
`

// CountClickEventsByLink counts recorded clicks for a link
func (s *Store) CountClickEventsByLink(ctx context.Context, linkID uuid.UUID) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, sqlCountClickEventsByLink, linkID); err != nil {
		s.logger.Error(ctx, "failed to count click events", err)
		return 0, dbError("count click events", err)
	}
	return count, nil
}
