package equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/spreadsheet"
	"github.com/BruksfildServices01/equipment-lending/internal/storage"
	"github.com/BruksfildServices01/equipment-lending/internal/timezone"
)

const (
	ExportDateLayout = "2006-01-02 15:04:05"
	NotAvailable     = "N/A"
)

var ErrUploadNotConfigured = errors.New("export upload not configured")

// ActionURL is the address a printed QR code points at.
func ActionURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/equipment/" + id + "/action"
}

// Export builds the downloadable history and QR code lists and optionally
// stores them in object storage.
type Export struct {
	repo     domain.Repository
	uploader storage.Uploader
	clock    timezone.Clock
	baseURL  string
}

// NewExport accepts a nil uploader; Upload then fails with
// ErrUploadNotConfigured.
func NewExport(
	repo domain.Repository,
	uploader storage.Uploader,
	clock timezone.Clock,
	publicBaseURL string,
) *Export {
	return &Export{
		repo:     repo,
		uploader: uploader,
		clock:    clock,
		baseURL:  publicBaseURL,
	}
}

// History lists every log entry, newest first, with the equipment name
// resolved. Dates are rendered in the business timezone.
func (uc *Export) History(ctx context.Context) (spreadsheet.Table, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return spreadsheet.Table{}, storageErr("export history", err)
	}
	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ID] = it.Name
	}

	loc := uc.clock().Location()
	t := spreadsheet.Table{
		Sheet:  "History",
		Header: []string{"Equipment Name", "Action", "User", "Notes", "Date"},
	}

	for page := 1; ; page++ {
		logs, total, err := uc.repo.ListHistory(ctx, domain.HistoryFilter{
			Page:  page,
			Limit: historyPageSize,
		})
		if err != nil {
			return spreadsheet.Table{}, storageErr("export history", err)
		}

		for _, l := range logs {
			name, ok := names[l.EquipmentID]
			if !ok {
				name = "Unknown"
			}
			t.Rows = append(t.Rows, []string{
				name,
				l.Action,
				orNA(l.User),
				orNA(l.Notes),
				l.Timestamp.In(loc).Format(ExportDateLayout),
			})
		}

		if len(logs) == 0 || int64(page*historyPageSize) >= total {
			break
		}
	}
	return t, nil
}

// QRCodes lists one action URL per item, for label printing.
func (uc *Export) QRCodes(ctx context.Context) (spreadsheet.Table, error) {
	items, err := uc.repo.List(ctx)
	if err != nil {
		return spreadsheet.Table{}, storageErr("export qr codes", err)
	}

	t := spreadsheet.Table{
		Sheet:  "QR Codes",
		Header: []string{"Equipment Name", "QR Code Action URL", "Status", "Model"},
	}
	for _, it := range items {
		t.Rows = append(t.Rows, []string{it.Name, ActionURL(uc.baseURL, it.ID), it.Status, it.Model})
	}
	return t, nil
}

// Upload renders t and stores it under exports/<name>-<timestamp>.<ext>.
func (uc *Export) Upload(
	ctx context.Context,
	name string,
	f spreadsheet.Format,
	t spreadsheet.Table,
) (string, error) {

	if uc.uploader == nil {
		return "", ErrUploadNotConfigured
	}

	body, err := spreadsheet.Bytes(f, t)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	key := ExportKey(name, f, uc.clock())
	return uc.uploader.Upload(ctx, key, f.ContentType(), body)
}

func ExportKey(name string, f spreadsheet.Format, now time.Time) string {
	return "exports/" + name + "-" + now.Format("20060102-150405") + f.Extension()
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

