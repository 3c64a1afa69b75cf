// Package normalize maps entity records between the gateway's camelCase
// field names and the snake_case names the client works with.
//
// Every wire name maps to exactly one UI name and back. Fields missing from
// an entity's table pass through untouched, so ToUI and ToWire are total and
// ToWire(e, ToUI(e, r)) reproduces r for any record that does not carry the
// same field under both names.
package normalize

import (
	"fmt"
	"maps"
	"slices"
)

type Entity string

const (
	Movie      Entity = "movie"
	Cinema     Entity = "cinema"
	Auditorium Entity = "auditorium"
	Showtime   Entity = "showtime"
	Booking    Entity = "booking"
	Payment    Entity = "payment"
	Coupon     Entity = "coupon"
	User       Entity = "user"
)

// Record is one decoded JSON object.
type Record = map[string]any

type table struct {
	toUI   map[string]string
	toWire map[string]string
	// nested maps a UI field holding a sub-record (or a list of them) to
	// the entity whose table applies to it.
	nested map[string]Entity
}

var tables = map[Entity]table{}

func register(e Entity, pairs [][2]string, nested map[string]Entity) {
	t := table{
		toUI:   make(map[string]string, len(pairs)),
		toWire: make(map[string]string, len(pairs)),
		nested: nested,
	}
	for _, p := range pairs {
		wire, ui := p[0], p[1]
		if _, dup := t.toUI[wire]; dup {
			panic(fmt.Sprintf("normalize: %s: wire field %q mapped twice", e, wire))
		}
		if _, dup := t.toWire[ui]; dup {
			panic(fmt.Sprintf("normalize: %s: ui field %q mapped twice", e, ui))
		}
		t.toUI[wire] = ui
		t.toWire[ui] = wire
	}
	tables[e] = t
}

// Entities lists every entity with a mapping table, sorted by name.
func Entities() []Entity {
	return slices.Sorted(maps.Keys(tables))
}

// UIName returns the UI name of a wire field of e.
func UIName(e Entity, wire string) string {
	if ui, ok := tables[e].toUI[wire]; ok {
		return ui
	}
	return wire
}

// WireName returns the wire name of a UI field of e.
func WireName(e Entity, ui string) string {
	if wire, ok := tables[e].toWire[ui]; ok {
		return wire
	}
	return ui
}

// ToUI returns a copy of rec with wire names replaced by UI names. A record
// already in UI casing comes back unchanged. When both spellings of a field
// are present the wire value wins.
func ToUI(e Entity, rec Record) Record {
	if rec == nil {
		return nil
	}
	t := tables[e]
	out := make(Record, len(rec))

	for k, v := range rec {
		if _, isWire := t.toUI[k]; isWire {
			continue
		}
		out[k] = v
	}
	for k, v := range rec {
		if ui, isWire := t.toUI[k]; isWire {
			out[ui] = v
		}
	}

	for field, sub := range t.nested {
		if v, ok := out[field]; ok {
			out[field] = mapNested(v, func(r Record) Record { return ToUI(sub, r) })
		}
	}
	return out
}

// ToWire is the inverse of ToUI. It is used to shape create and update
// payloads.
func ToWire(e Entity, rec Record) Record {
	if rec == nil {
		return nil
	}
	t := tables[e]
	out := make(Record, len(rec))

	for k, v := range rec {
		if _, isUI := t.toWire[k]; isUI {
			continue
		}
		out[k] = v
	}
	for k, v := range rec {
		if wire, isUI := t.toWire[k]; isUI {
			if sub, ok := t.nested[k]; ok {
				v = mapNested(v, func(r Record) Record { return ToWire(sub, r) })
			}
			out[wire] = v
		}
	}

	// nested fields whose name is the same on both sides
	for field, sub := range t.nested {
		if _, mapped := t.toWire[field]; mapped {
			continue
		}
		if v, ok := out[field]; ok {
			out[field] = mapNested(v, func(r Record) Record { return ToWire(sub, r) })
		}
	}
	return out
}

// ToUIList normalizes every record of a list.
func ToUIList(e Entity, recs []Record) []Record {
	if recs == nil {
		return nil
	}
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = ToUI(e, r)
	}
	return out
}

func mapNested(v any, f func(Record) Record) any {
	switch x := v.(type) {
	case map[string]any:
		return f(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			if r, ok := item.(map[string]any); ok {
				out[i] = f(r)
			} else {
				out[i] = item
			}
		}
		return out
	default:
		return v
	}
}
