package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/RomaniOSDev/17PaperRoost/internal/contracts"
	"github.com/RomaniOSDev/17PaperRoost/internal/filex"
	"github.com/RomaniOSDev/17PaperRoost/internal/models"
	"github.com/RomaniOSDev/17PaperRoost/internal/services"
	"github.com/RomaniOSDev/17PaperRoost/internal/signature"
)

const dateLayout = "2006-01-02"

var errAmbiguousID = errors.New("id prefix matches more than one contract")

func usage(text string) error {
	return fmt.Errorf("usage: %s", text)
}

// findContract accepts a full id or a unique prefix of one, so the short
// ids printed by 'list' can be typed back.
func (a *App) findContract(ref string) (models.Contract, error) {
	if c, err := a.store.Get(ref); err == nil {
		return c, nil
	}

	var found []models.Contract
	for _, c := range a.store.List() {
		if strings.HasPrefix(c.ID, ref) {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return models.Contract{}, fmt.Errorf("%s: %w", ref, contracts.ErrNotFound)
	case 1:
		return found[0], nil
	default:
		return models.Contract{}, fmt.Errorf("%s: %w", ref, errAmbiguousID)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (a *App) printRows(list []models.Contract) {
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No contracts.")
		return
	}
	for _, c := range list {
		mark := " "
		if c.HasSignature() {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %s  %-10s %-13s %s  %s\n",
			mark, shortID(c.ID), c.Status, c.ContractType, c.StartDate.Format(dateLayout), c.Title)
	}
}

// List prints all contracts; the optional argument picks the order.
func (a *App) List(_ context.Context, args []string) error {
	var key string
	if len(args) > 0 {
		key = args[0]
	}
	sortKey, err := contracts.ParseSortKey(key)
	if err != nil {
		return err
	}
	a.printRows(contracts.Sort(a.store.List(), sortKey))
	return nil
}

func (a *App) Show(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	c, err := a.findContract(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "ID:           %s\n", c.ID)
	fmt.Fprintf(a.out, "Title:        %s\n", c.Title)
	fmt.Fprintf(a.out, "Type:         %s\n", c.ContractType)
	fmt.Fprintf(a.out, "Status:       %s\n", c.Status)
	fmt.Fprintf(a.out, "Period:       %s .. %s\n", c.StartDate.Format(dateLayout), c.EndDate.Format(dateLayout))
	fmt.Fprintf(a.out, "Participants: %s\n", c.Participants)
	fmt.Fprintf(a.out, "Created:      %s\n", c.CreatedAt.Local().Format(time.DateTime))
	if c.HasSignature() {
		fmt.Fprintf(a.out, "Signature:    %d bytes\n", len(c.SignatureData))
	} else {
		fmt.Fprintln(a.out, "Signature:    none")
	}
	if c.HasAttachment() && c.AttachmentName != nil {
		fmt.Fprintf(a.out, "Attachment:   %s (%d bytes)\n", *c.AttachmentName, len(c.AttachmentData))
	}
	if c.Notes != "" {
		fmt.Fprintf(a.out, "Notes:\n%s\n", c.Notes)
	}
	return nil
}

func parseDate(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseInLocation(dateLayout, s, time.Local)
}

func formTypeLabels() string {
	labels := make([]string, len(models.FormTypes))
	for i, t := range models.FormTypes {
		labels[i] = string(t)
	}
	return strings.Join(labels, ", ")
}

// Add walks through the new-contract form and the signature pad. Nothing
// is stored unless the contract has a title and a signature.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	kind, err := getSimpleText(a.reader, "Type ("+formTypeLabels()+")", a.out)
	if err != nil {
		return err
	}

	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	startText, err := getSimpleText(a.reader, "Start date (YYYY-MM-DD, empty for today)", a.out)
	if err != nil {
		return err
	}
	start, err := parseDate(startText, today)
	if err != nil {
		return err
	}
	endText, err := getSimpleText(a.reader, "End date (YYYY-MM-DD, empty for one year)", a.out)
	if err != nil {
		return err
	}
	end, err := parseDate(endText, start.AddDate(1, 0, 0))
	if err != nil {
		return err
	}

	participants, err := getSimpleText(a.reader, "Participants", a.out)
	if err != nil {
		return err
	}
	notes, err := getMultiline(a.reader, "Notes", a.out)
	if err != nil {
		return err
	}

	pad := signature.NewPad()
	if err := ReadStrokes(a.reader, pad, a.out); err != nil {
		return err
	}

	c, err := a.contracts.Save(ctx, services.Draft{
		Title:        title,
		Type:         models.ParseType(kind),
		StartDate:    start,
		EndDate:      end,
		Participants: participants,
		Notes:        notes,
	}, pad)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Contract %s saved.\n", shortID(c.ID))
	return nil
}

// Sign replaces the signature of an existing contract.
func (a *App) Sign(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sign <id>")
	}
	c, err := a.findContract(args[0])
	if err != nil {
		return err
	}

	pad := signature.NewPad()
	if err := ReadStrokes(a.reader, pad, a.out); err != nil {
		return err
	}
	if err := a.contracts.Resign(ctx, c.ID, pad); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Contract %s re-signed.\n", shortID(c.ID))
	return nil
}

func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("status <id> <Active|Pending|Completed|Cancelled>")
	}
	c, err := a.findContract(args[0])
	if err != nil {
		return err
	}
	status, err := models.ParseStatus(args[1])
	if err != nil {
		return err
	}
	if err := a.contracts.SetStatus(ctx, c.ID, status); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Contract %s is now %s.\n", shortID(c.ID), status)
	return nil
}

func (a *App) Attach(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("attach <id> <path>")
	}
	c, err := a.findContract(args[0])
	if err != nil {
		return err
	}
	if err := a.contracts.AttachFile(ctx, c.ID, args[1]); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Attached %s to %s.\n", args[1], shortID(c.ID))
	return nil
}

func parseExportSize(s string) (signature.Size, error) {
	switch strings.ToLower(s) {
	case "", "full":
		return signature.SizeFull, nil
	case "preview":
		return signature.SizePreview, nil
	case "thumbnail", "thumb":
		return signature.SizeThumbnail, nil
	}
	return signature.Size{}, fmt.Errorf("unknown size %q", s)
}

// Export writes the signature as a PNG file.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usage("export <id> <path> [full|preview|thumbnail]")
	}
	c, err := a.findContract(args[0])
	if err != nil {
		return err
	}

	var sizeArg string
	if len(args) == 3 {
		sizeArg = args[2]
	}
	size, err := parseExportSize(sizeArg)
	if err != nil {
		return err
	}

	data, err := a.contracts.SignatureImage(ctx, c.ID, size)
	if err != nil {
		return err
	}

	path := args[1]
	if err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "Signature written to %s (%s).\n", path, size)
	return nil
}

// searchType maps a typed label onto a known type, keeping custom labels
// verbatim so they can still be matched exactly.
func searchType(label string) models.ContractType {
	t := models.ParseType(label)
	if t == models.TypeOther && !strings.EqualFold(label, string(models.TypeOther)) {
		return models.ContractType(label)
	}
	return t
}

func (a *App) Search(context.Context) error {
	query, err := getSimpleText(a.reader, "Search text (title, participants, notes)", a.out)
	if err != nil {
		return err
	}
	statusText, err := getSimpleText(a.reader, "Status (empty for any)", a.out)
	if err != nil {
		return err
	}
	typeText, err := getSimpleText(a.reader, "Type (empty for any)", a.out)
	if err != nil {
		return err
	}

	f := contracts.Filter{Query: query}
	if statusText != "" {
		status, err := models.ParseStatus(statusText)
		if err != nil {
			return err
		}
		f.Status = &status
	}
	if typeText != "" {
		f.Type = searchType(typeText)
	}

	a.printRows(a.store.Search(f))
	return nil
}

func (a *App) Stats(context.Context) error {
	st := a.store.Stats()

	fmt.Fprintf(a.out, "Total: %d\n", st.Total)
	for _, s := range models.Statuses {
		fmt.Fprintf(a.out, "  %-10s %d\n", s, st.ByStatus[s])
	}

	types := make([]models.ContractType, 0, len(st.ByType))
	for t := range st.ByType {
		types = append(types, t)
	}
	slices.Sort(types)
	fmt.Fprintln(a.out, "By type:")
	for _, t := range types {
		fmt.Fprintf(a.out, "  %-13s %d\n", t, st.ByType[t])
	}

	fmt.Fprintln(a.out, "Recent:")
	a.printRows(st.Recent)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	c, err := a.findContract(args[0])
	if err != nil {
		return err
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Delete %q?", c.Title), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.store.DeleteByID(ctx, c.ID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Contract %s deleted.\n", shortID(c.ID))
	return nil
}
