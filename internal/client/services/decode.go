package services

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cinemaclient/internal/client/graphql"
	"github.com/dmitrijs2005/cinemaclient/internal/client/normalize"
)

// decodeList reads a list field, maps each record to UI names and decodes
// the result into T. A null list decodes as empty.
func decodeList[T any](res graphql.Result, field string, e normalize.Entity) ([]T, error) {
	var raw []normalize.Record
	if err := res.Decode(field, &raw); err != nil {
		return nil, err
	}

	out := []T{}
	if raw == nil {
		return out, nil
	}
	if err := remarshal(normalize.ToUIList(e, raw), &out); err != nil {
		return nil, malformed(field, err)
	}
	return out, nil
}

// decodeRecord maps one wire record to UI names and decodes it into v.
func decodeRecord(field string, raw normalize.Record, e normalize.Entity, v any) error {
	if err := remarshal(normalize.ToUI(e, raw), v); err != nil {
		return malformed(field, err)
	}
	return nil
}

func remarshal(in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func malformed(field string, err error) error {
	return &graphql.Error{
		Kind:    graphql.KindMalformedResponse,
		Message: fmt.Sprintf("unexpected shape of %q in response", field),
		Err:     err,
	}
}
