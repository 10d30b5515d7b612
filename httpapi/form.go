package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/xraph/paymock/card"
	"github.com/xraph/paymock/subscription"
	"github.com/xraph/paymock/types"
)

// form wraps the merged query and body values of a request. Bodies are
// application/x-www-form-urlencoded with the bracketed key convention the
// real service uses: metadata[k], items[0][plan], source[number].
type form struct {
	values url.Values
}

func parseForm(r *http.Request) (*form, error) {
	if err := r.ParseForm(); err != nil {
		return nil, types.NewInvalidRequestError("Could not parse request body.", "")
	}

	return &form{values: r.Form}, nil
}

func (f *form) get(key string) string { return f.values.Get(key) }

func (f *form) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// hasPrefix reports whether any submitted key starts with prefix. Used to
// detect nested bracketed groups before decoding them.
func (f *form) hasPrefix(prefix string) bool {
	for key := range f.values {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	return false
}

func (f *form) intPtr(key string) (*int, error) {
	raw := f.get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, types.NewInvalidRequestError(fmt.Sprintf("Invalid integer: %s", raw), key)
	}

	return &n, nil
}

func (f *form) int64Ptr(key string) (*int64, error) {
	raw := f.get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, types.NewInvalidRequestError(fmt.Sprintf("Invalid integer: %s", raw), key)
	}

	return &n, nil
}

// int64 parses an integer field, treating an absent value as zero so the
// domain layer's own required-field validation fires.
func (f *form) int64(key string) (int64, error) {
	p, err := f.int64Ptr(key)
	if err != nil || p == nil {
		return 0, err
	}

	return *p, nil
}

// metadata collects metadata[key] pairs. A request with no metadata keys
// yields nil, which leaves stored metadata untouched on updates.
func (f *form) metadata() types.Metadata { return f.metadataAt("metadata") }

// metadataAt collects field[key] pairs for a metadata group at any nesting
// depth, such as items[0][metadata].
func (f *form) metadataAt(field string) types.Metadata {
	var md types.Metadata
	for key, vals := range f.values {
		k, ok := bracketKey(key, field)
		if !ok || len(vals) == 0 {
			continue
		}
		if md == nil {
			md = types.Metadata{}
		}
		md[k] = vals[0]
	}

	return md
}

// stringMap collects field[key] pairs for free-form maps like dispute
// evidence.
func (f *form) stringMap(field string) map[string]string {
	var m map[string]string
	for key, vals := range f.values {
		k, ok := bracketKey(key, field)
		if !ok || len(vals) == 0 {
			continue
		}
		if m == nil {
			m = map[string]string{}
		}
		m[k] = vals[0]
	}

	return m
}

// bracketKey extracts k from field[k]. Nested brackets inside k are not a
// thing in any payload the emulator accepts.
func bracketKey(key, field string) (string, bool) {
	if !strings.HasPrefix(key, field+"[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	inner := key[len(field)+1 : len(key)-1]
	if inner == "" || strings.ContainsAny(inner, "[]") {
		return "", false
	}

	return inner, true
}

// sourceSpec decodes the id-or-inline union the real API accepts for source
// fields: a bare card id in field, or inline details under field[...]. A
// request carrying neither yields nil.
func (f *form) sourceSpec(field string) (*card.Spec, error) {
	if v := f.get(field); v != "" {
		return card.SpecID(v), nil
	}
	if !f.hasPrefix(field + "[") {
		return nil, nil
	}

	p, err := f.cardParams(field)
	if err != nil {
		return nil, err
	}

	return card.SpecCard(p), nil
}

// cardParams decodes inline card details under field[...].
func (f *form) cardParams(field string) (*card.Params, error) {
	expMonth, err := f.int64(field + "[exp_month]")
	if err != nil {
		return nil, err
	}
	expYear, err := f.int64(field + "[exp_year]")
	if err != nil {
		return nil, err
	}

	return &card.Params{
		ID:       f.get(field + "[id]"),
		Number:   f.get(field + "[number]"),
		ExpMonth: expMonth,
		ExpYear:  expYear,
		CVC:      f.get(field + "[cvc]"),
	}, nil
}

// items decodes the positional items[N][...] group, stopping at the first
// missing index.
func (f *form) items() ([]subscription.ItemParams, error) {
	var out []subscription.ItemParams
	for i := 0; ; i++ {
		prefix := fmt.Sprintf("items[%d]", i)
		if !f.hasPrefix(prefix + "[") {
			break
		}
		qty, err := f.int64Ptr(prefix + "[quantity]")
		if err != nil {
			return nil, err
		}
		out = append(out, subscription.ItemParams{
			Plan:     f.get(prefix + "[plan]"),
			Quantity: qty,
			Metadata: f.metadataAt(prefix + "[metadata]"),
		})
	}

	return out, nil
}

// listParams decodes the pagination fields shared by every list endpoint.
// Cursor validation itself happens in the domain layer.
func (f *form) listParams() (types.ListParams, error) {
	limit, err := f.intPtr("limit")
	if err != nil {
		return types.ListParams{}, err
	}

	return types.ListParams{
		Limit:         limit,
		StartingAfter: f.get("starting_after"),
		EndingBefore:  f.get("ending_before"),
	}, nil
}
