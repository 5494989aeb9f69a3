package server

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"glimpse/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventPostCreated         = "post_created"
	EventPostReactionUpdated = "post_reaction_updated"
)

// publishFeedEvent fans a feed refresh event out to every connected client.
// With Redis present the event goes through the shared channel so all
// replicas deliver it; the local subscriber echoes it back to this replica's
// hub. Without Redis only the local hub is notified.
func (s *Server) publishFeedEvent(eventType string, payload map[string]interface{}) {
	payload["at"] = time.Now().UTC().Format(time.RFC3339Nano)

	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(eventJSON)

	if s.notifier != nil {
		if err := s.notifier.PublishFeedEvent(context.Background(), message); err != nil {
			log.Printf("failed to publish %s event: %v", eventType, err)
			// Degrade to local delivery so this replica's clients still refresh.
			if s.hub != nil {
				s.hub.BroadcastAll(message)
			}
		}
	} else if s.hub != nil {
		s.hub.BroadcastAll(message)
	}

	observability.FeedEventsPublished.WithLabelValues(eventType).Inc()
}
