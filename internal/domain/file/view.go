package file

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	LocaleRU = "ru"
	LocaleEN = "en"
)

var ruMonths = [...]string{"янв", "фев", "мар", "апр", "май", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"}

// View is the presentation form of a FileRecord returned to clients.
type View struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Size       string   `json:"size"`
	Date       string   `json:"date"`
	Year       string   `json:"year,omitempty"`
	UploadedAt string   `json:"uploaded_at"`
}

// Presenter renders records for a display locale.
type Presenter struct {
	locale string
}

// NewPresenter falls back to LocaleRU for anything it does not know.
func NewPresenter(locale string) Presenter {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case LocaleEN:
		return Presenter{locale: LocaleEN}
	default:
		return Presenter{locale: LocaleRU}
	}
}

func (p Presenter) View(rec FileRecord) View {
	v := View{
		ID:         rec.ID,
		Name:       rec.Name,
		Category:   rec.Category,
		Size:       FormatSize(rec.SizeBytes),
		Date:       p.FormatDate(rec.CreatedAt),
		UploadedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if rec.Category == CategoryPhotos {
		v.Year = strconv.Itoa(rec.Year)
	}
	return v
}

func (p Presenter) Views(recs []FileRecord) []View {
	out := make([]View, 0, len(recs))
	for _, rec := range recs {
		out = append(out, p.View(rec))
	}
	return out
}

// UploadedMessage confirms an upload in the presenter's locale.
func (p Presenter) UploadedMessage(name string) string {
	if p.locale == LocaleEN {
		return fmt.Sprintf("File %s uploaded", name)
	}
	return fmt.Sprintf("Файл %s успешно загружен", name)
}

// FormatDate renders "15 окт 2024" (ru) or "15 Oct 2024" (en).
func (p Presenter) FormatDate(t time.Time) string {
	t = t.UTC()
	if p.locale == LocaleEN {
		return t.Format("2 Jan 2006")
	}
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonths[t.Month()-1], t.Year())
}

// FormatSize renders a byte count with decimal units: "4.2 MB", "145 KB".
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return strings.Replace(humanize.Bytes(uint64(n)), "kB", "KB", 1)
}
