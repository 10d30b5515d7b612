package paymock

import (
	"fmt"

	"github.com/samber/lo"
	"go.jetify.com/typeid/v2"

	"github.com/xraph/paymock/event"
	"github.com/xraph/paymock/id"
	"github.com/xraph/paymock/types"
)

// recordEvent appends an entry to the account's local event feed. The feed
// exists for test introspection only; nothing is delivered anywhere.
func (b *Backend) recordEvent(account, eventType string, obj any) {
	evt := &event.Event{
		ID:      newEventID(),
		Object:  event.ObjectName,
		Account: account,
		Created: b.now(),
		Data:    event.Data{Object: obj},
		Type:    eventType,
	}
	b.events.Put(account, evt)

	b.logger.Debug("recorded event",
		"account", account,
		"type", eventType,
		"event_id", evt.ID,
	)
}

// newEventID generates a feed-entry id. Event ids are emulator-internal
// (clients never pattern-match them), so they use TypeID and stay
// K-sortable, which keeps the feed naturally time-ordered.
func newEventID() string {
	tid, err := typeid.Generate(string(id.PrefixEvent))
	if err != nil {
		panic(fmt.Sprintf("paymock: invalid event id prefix: %v", err))
	}

	return tid.String()
}

// GetEvent retrieves an event by id, failing with a 404 resource_missing
// error naming param if absent.
func (b *Backend) GetEvent(account, eventID, param string) (*event.Event, error) {
	evt, ok := b.events.Get(account, eventID)
	if !ok {
		return nil, NewNotFoundError("event", param, eventID)
	}

	return evt, nil
}

// ListEvents returns the account's event feed, optionally narrowed to one
// event type, paginated like every other list call.
func (b *Backend) ListEvents(account string, params *event.ListParams) (*types.List[*event.Event], error) {
	if params == nil {
		params = &event.ListParams{}
	}

	all := b.events.All(account)
	if params.Type != "" {
		all = lo.Filter(all, func(e *event.Event, _ int) bool {
			return e.Type == params.Type
		})
	}

	return types.ApplyListParams(all, params.ListParams, func(entityID, param string) error {
		_, err := b.GetEvent(account, entityID, param)
		return err
	})
}
