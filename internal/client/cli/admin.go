package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/cinemaclient/internal/client/normalize"
	"github.com/dmitrijs2005/cinemaclient/internal/client/services"
)

var getFields = GetFields

// adminEntity resolves "movie" or "movies" to an admin-managed entity.
func adminEntity(name string) (normalize.Entity, bool) {
	name = strings.ToLower(name)
	for _, e := range services.AdminEntities() {
		if name == string(e) || name == string(e)+"s" {
			return e, true
		}
	}
	return "", false
}

func adminUsage(verb, tail string) error {
	names := make([]string, 0)
	for _, e := range services.AdminEntities() {
		names = append(names, string(e))
	}
	return usage(verb + " <" + strings.Join(names, "|") + ">" + tail)
}

// Create reads fields for a new entity and sends it to the gateway.
func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return adminUsage("create", "")
	}
	e, ok := adminEntity(args[0])
	if !ok {
		return adminUsage("create", "")
	}

	input, err := getFields(a.reader, a.out)
	if err != nil {
		return err
	}

	rec, err := a.adminService.Create(ctx, e, input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s\n", e)
	a.refresh(ctx, e)
	return writeRecord(a.out, rec)
}

// Update reads changed fields and applies them to entity id.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return adminUsage("update", " <id>")
	}
	e, ok := adminEntity(args[0])
	if !ok {
		return adminUsage("update", " <id>")
	}

	input, err := getFields(a.reader, a.out)
	if err != nil {
		return err
	}

	rec, err := a.adminService.Update(ctx, e, args[1], input)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated %s %s\n", e, args[1])
	a.refresh(ctx, e)
	return writeRecord(a.out, rec)
}

// Delete removes entity id after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return adminUsage("delete", " <id>")
	}
	e, ok := adminEntity(args[0])
	if !ok {
		return adminUsage("delete", " <id>")
	}

	yes, err := getConfirmation(a.reader, fmt.Sprintf("Delete %s %s?", e, args[1]), a.out)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	msg, err := a.adminService.Delete(ctx, e, args[1])
	if err != nil {
		return err
	}
	if msg == "" {
		msg = fmt.Sprintf("Deleted %s %s", e, args[1])
	}
	fmt.Fprintln(a.out, msg)
	a.refresh(ctx, e)
	return nil
}

// refresh reloads the list of entity e if it was loaded. Failures are
// only logged; the mutation itself succeeded.
func (a *App) refresh(ctx context.Context, e normalize.Entity) {
	b, ok := a.browsers[string(e)+"s"]
	if !ok || !b.loaded() {
		return
	}
	if err := b.reload(ctx); err != nil {
		a.logger.Warn(ctx, "reloading list failed", "list", b.name(), "error", err)
	}
}
