package keychain

import (
	"slices"

	"go.abhg.dev/pwstore/internal/attr"
)

// table is a list of records matched by attribute.
// It is not safe for concurrent use.
type table struct {
	Records []attr.Set `json:"records"`
}

// identityOf strips the payload and any directives from s,
// leaving the attributes that identify a record.
func identityOf(s attr.Set) attr.Set {
	var id attr.Set
	for k, v := range s.All() {
		if k.Directive() || k == attr.KeyValueData {
			continue
		}
		id = id.With(k, v)
	}
	return id
}

// primaryKey is the part of a record's identity that must be unique.
// Synchronizable is a flag on the record, not part of its address.
func primaryKey(s attr.Set) attr.Set {
	var key attr.Set
	for k, v := range identityOf(s).All() {
		if k != attr.KeySynchronizable {
			key = key.With(k, v)
		}
	}
	return key
}

// matches reports whether record satisfies every
// identifying attribute of query.
func matches(record, query attr.Set) bool {
	for k, want := range identityOf(query).All() {
		got, ok := record.Get(k)
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

func wantsData(query attr.Set) bool {
	v, ok := query.Get(attr.KeyReturnData)
	return ok && v.Kind() == attr.KindBool && v.Bool()
}

func payloadOf(record attr.Set) []byte {
	v, ok := record.Get(attr.KeyValueData)
	if !ok || v.Kind() != attr.KindBytes {
		return nil
	}
	return v.Bytes()
}

func (t *table) findOne(query attr.Set) ([]byte, error) {
	for _, r := range t.Records {
		if !matches(r, query) {
			continue
		}
		if !wantsData(query) {
			return nil, nil
		}
		return payloadOf(r), nil
	}
	return nil, ErrItemNotFound
}

func (t *table) insert(item attr.Set) error {
	payload, ok := item.Get(attr.KeyValueData)
	if !ok || payload.Kind() != attr.KindBytes {
		return StatusParam
	}

	id := identityOf(item)
	if id.Len() == 0 {
		return StatusParam
	}
	key := primaryKey(id)
	for _, r := range t.Records {
		if primaryKey(r).Equal(key) {
			return ErrDuplicateItem
		}
	}

	t.Records = append(t.Records, id.With(attr.KeyValueData, payload))
	return nil
}

func (t *table) update(query, changes attr.Set) error {
	var updates attr.Set
	for k, v := range changes.All() {
		if !k.Directive() {
			updates = updates.With(k, v)
		}
	}

	var found bool
	for i, r := range t.Records {
		if matches(r, query) {
			t.Records[i] = r.Merge(updates)
			found = true
		}
	}
	if !found {
		return ErrItemNotFound
	}
	return nil
}

func (t *table) delete(query attr.Set) error {
	before := len(t.Records)
	t.Records = slices.DeleteFunc(t.Records, func(r attr.Set) bool {
		return matches(r, query)
	})
	if len(t.Records) == before {
		return ErrItemNotFound
	}
	return nil
}
