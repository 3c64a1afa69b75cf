package services

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/cinemaclient/internal/client/graphql"
	"github.com/dmitrijs2005/cinemaclient/internal/client/normalize"
	"github.com/dmitrijs2005/cinemaclient/internal/logging"
)

// AdminService creates, updates and deletes admin-managed entities. Input
// and output records use UI (snake_case) field names. Every method checks
// the stored role before touching the network.
type AdminService interface {
	Create(ctx context.Context, e normalize.Entity, input normalize.Record) (normalize.Record, error)
	Update(ctx context.Context, e normalize.Entity, id string, input normalize.Record) (normalize.Record, error)
	Delete(ctx context.Context, e normalize.Entity, id string) (string, error)
}

type adminEntity struct {
	typeName string // GraphQL type name, e.g. "Movie"
	fields   string
}

var adminEntities = map[normalize.Entity]adminEntity{
	normalize.Movie:      {"Movie", movieFields},
	normalize.Cinema:     {"Cinema", cinemaFields},
	normalize.Auditorium: {"Auditorium", auditoriumFields},
	normalize.Showtime:   {"Showtime", showtimeFields},
	normalize.Coupon:     {"Coupon", couponFields},
}

// AdminEntities lists the entities AdminService manages.
func AdminEntities() []normalize.Entity {
	return slices.Sorted(maps.Keys(adminEntities))
}

func (a adminEntity) payloadField() string {
	return strings.ToLower(a.typeName[:1]) + a.typeName[1:]
}

func (a adminEntity) createMutation() (string, string) {
	field := "create" + a.typeName
	return fmt.Sprintf(`mutation Create%[1]s($input: %[1]sInput!) {
  %[2]s(input: $input) { success message %[3]s { %[4]s } }
}`, a.typeName, field, a.payloadField(), a.fields), field
}

func (a adminEntity) updateMutation() (string, string) {
	field := "update" + a.typeName
	return fmt.Sprintf(`mutation Update%[1]s($id: ID!, $input: %[1]sInput!) {
  %[2]s(id: $id, input: $input) { success message %[3]s { %[4]s } }
}`, a.typeName, field, a.payloadField(), a.fields), field
}

func (a adminEntity) deleteMutation() (string, string) {
	field := "delete" + a.typeName
	return fmt.Sprintf(`mutation Delete%[1]s($id: ID!) {
  %[2]s(id: $id) { success message }
}`, a.typeName, field), field
}

type adminService struct {
	exec   Executor
	store  CredentialStore
	logger logging.Logger
}

func NewAdminService(exec Executor, store CredentialStore, logger logging.Logger) AdminService {
	if logger == nil {
		logger = logging.Nop()
	}
	return &adminService{exec: exec, store: store, logger: logger}
}

func (s *adminService) authorize(ctx context.Context, e normalize.Entity) (adminEntity, error) {
	ae, ok := adminEntities[e]
	if !ok {
		return adminEntity{}, &graphql.Error{
			Kind:    graphql.KindInvalidConfiguration,
			Message: fmt.Sprintf("invalid configuration: %q is not an admin-managed entity", e),
		}
	}

	cred, err := s.store.Load(ctx)
	if err != nil || !cred.Valid() {
		return adminEntity{}, graphql.ErrAuthenticationRequired
	}
	if !cred.IsAdmin() {
		return adminEntity{}, &graphql.Error{
			Kind:    graphql.KindInsufficientPrivilege,
			Message: "administrator access required",
		}
	}
	return ae, nil
}

func (s *adminService) Create(ctx context.Context, e normalize.Entity, input normalize.Record) (normalize.Record, error) {
	ae, err := s.authorize(ctx, e)
	if err != nil {
		return nil, err
	}

	query, field := ae.createMutation()
	res, err := s.exec.Execute(ctx, query, map[string]any{"input": wireInput(e, input)}, true)
	if err != nil {
		return nil, err
	}

	rec, err := s.decodePayload(res, field, ae, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "entity created", "entity", e, "id", rec["id"])
	return rec, nil
}

func (s *adminService) Update(ctx context.Context, e normalize.Entity, id string, input normalize.Record) (normalize.Record, error) {
	ae, err := s.authorize(ctx, e)
	if err != nil {
		return nil, err
	}

	query, field := ae.updateMutation()
	res, err := s.exec.Execute(ctx, query, map[string]any{"id": id, "input": wireInput(e, input)}, true)
	if err != nil {
		return nil, err
	}

	rec, err := s.decodePayload(res, field, ae, e)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "entity updated", "entity", e, "id", id)
	return rec, nil
}

func (s *adminService) Delete(ctx context.Context, e normalize.Entity, id string) (string, error) {
	ae, err := s.authorize(ctx, e)
	if err != nil {
		return "", err
	}

	query, field := ae.deleteMutation()
	res, err := s.exec.Execute(ctx, query, map[string]any{"id": id}, true)
	if err != nil {
		return "", err
	}

	mr, err := graphql.DecodeMutation(res, field, nil)
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "entity deleted", "entity", e, "id", id)
	return mr.Message, nil
}

// wireInput converts a UI-shaped record to wire names. The id travels as
// its own variable, never inside input.
func wireInput(e normalize.Entity, input normalize.Record) normalize.Record {
	in := maps.Clone(input)
	delete(in, "id")
	return normalize.ToWire(e, in)
}

func (s *adminService) decodePayload(res graphql.Result, field string, ae adminEntity, e normalize.Entity) (normalize.Record, error) {
	var payload map[string]json.RawMessage
	if _, err := graphql.DecodeMutation(res, field, &payload); err != nil {
		return nil, err
	}

	raw, ok := payload[ae.payloadField()]
	if !ok {
		return normalize.Record{}, nil
	}

	var rec normalize.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, malformed(field, err)
	}
	return normalize.ToUI(e, rec), nil
}
