package types

// Object is implemented by every mocked entity: a stable id plus the
// object-kind tag discriminating its shape.
type Object interface {
	ObjectID() string
	ObjectKind() string
}

// ObjectList is the object-kind tag carried by every list envelope.
const ObjectList = "list"

// DefaultListLimit is the page size applied when a list call does not
// supply a limit, matching the real API's convention.
const DefaultListLimit = 10

// List is the paginated-result envelope wrapping an ordered page of
// entities. TotalCount is the size of the full matching set, not the
// returned page; HasMore reports whether entities exist beyond the page in
// the requested direction.
type List[T Object] struct {
	Object     string `json:"object"`
	Data       []T    `json:"data"`
	HasMore    bool   `json:"has_more"`
	TotalCount int    `json:"total_count"`
	URL        string `json:"url,omitempty"`
}

// NewList builds a complete, untruncated list envelope over data. Owned
// nested lists (a customer's sources, a charge's refunds, a subscription's
// items) always carry the full set: has_more false and total_count equal to
// the page length.
func NewList[T Object](url string, data []T) *List[T] {
	if data == nil {
		data = []T{}
	}

	return &List[T]{
		Object:     ObjectList,
		Data:       data,
		HasMore:    false,
		TotalCount: len(data),
		URL:        url,
	}
}

// Append adds an entity to the envelope, keeping total_count consistent.
func (l *List[T]) Append(v T) {
	l.Data = append(l.Data, v)
	l.TotalCount = len(l.Data)
}

// ListParams are the pagination options recognized by every list operation.
// A nil Limit means the default page size. StartingAfter and EndingBefore
// are entity-id cursors; supplying both is rejected.
type ListParams struct {
	Limit         *int   `json:"limit,omitempty"`
	StartingAfter string `json:"starting_after,omitempty"`
	EndingBefore  string `json:"ending_before,omitempty"`
}

// CursorResolver checks that a cursor id exists within the account, failing
// with a 404 resource_missing error that names param when it does not.
// Managers bind this to their retrieve operation so cursor errors carry the
// same shape as direct retrieval errors.
type CursorResolver func(id, param string) error

// ApplyListParams runs the pagination engine over full, the ordered
// candidate set already narrowed by any kind-specific filter:
//
//   - starting_after returns up to limit entities strictly after the
//     cursor's position, in original order.
//   - ending_before returns up to limit entities strictly before the
//     cursor's position.
//   - neither returns the first limit entities.
//
// A cursor id unknown to the account propagates the resolver's error
// unchanged. A cursor that exists but is excluded by the active filter
// positions the page at the boundary of the filtered set in the requested
// direction.
func ApplyListParams[T Object](full []T, params ListParams, resolve CursorResolver) (*List[T], error) {
	limit := DefaultListLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	if limit <= 0 {
		return nil, NewInvalidIntegerError("limit", int64(limit))
	}

	if params.StartingAfter != "" && params.EndingBefore != "" {
		return nil, NewInvalidRequestError(
			"You cannot use both starting_after and ending_before in the same request.",
			"starting_after",
		)
	}

	out := &List[T]{
		Object:     ObjectList,
		Data:       []T{},
		TotalCount: len(full),
	}

	switch {
	case params.StartingAfter != "":
		if err := resolve(params.StartingAfter, "starting_after"); err != nil {
			return nil, err
		}
		start := indexOf(full, params.StartingAfter) + 1
		end := min(start+limit, len(full))
		out.Data = append(out.Data, full[start:end]...)
		out.HasMore = end < len(full)

	case params.EndingBefore != "":
		if err := resolve(params.EndingBefore, "ending_before"); err != nil {
			return nil, err
		}
		end := indexOf(full, params.EndingBefore)
		if end < 0 {
			end = len(full)
		}
		start := max(0, end-limit)
		out.Data = append(out.Data, full[start:end]...)
		out.HasMore = start > 0

	default:
		end := min(limit, len(full))
		out.Data = append(out.Data, full[:end]...)
		out.HasMore = end < len(full)
	}

	return out, nil
}

// indexOf returns the position of the entity with the given id, or -1.
func indexOf[T Object](entities []T, entityID string) int {
	for i, v := range entities {
		if v.ObjectID() == entityID {
			return i
		}
	}

	return -1
}
