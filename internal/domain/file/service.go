package file

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_uploads_total",
		Help: "Files added to the catalog, by category.",
	}, []string{"category"})
	deletesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_deletes_total",
		Help: "Files removed from the catalog.",
	})
)

// UploadInput describes a new file. When Content is non-nil its length
// overrides SizeBytes and its digest is recorded.
type UploadInput struct {
	Name      string
	Category  Category
	SizeBytes int64
	Content   []byte
}

// NewRecord validates the fields and builds a record with a derived year.
func NewRecord(id, name string, category Category, sizeBytes int64, createdAt time.Time) (*FileRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if sizeBytes < 0 {
		return nil, ErrInvalidSize
	}
	if id == "" {
		return nil, ErrMissingID
	}
	return &FileRecord{
		ID:        id,
		Name:      name,
		Category:  category,
		SizeBytes: sizeBytes,
		Year:      YearOf(createdAt),
		CreatedAt: createdAt,
	}, nil
}

// Service applies uploads and deletions.
type Service struct {
	store  Store
	events Publisher
	log    *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService builds a Service. events may be nil.
func NewService(store Store, events Publisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:  store,
		events: events,
		log:    log,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

func (s *Service) Upload(ctx context.Context, in UploadInput) (*FileRecord, error) {
	size := in.SizeBytes
	var checksum string
	if in.Content != nil {
		size = int64(len(in.Content))
		sum := blake2b.Sum256(in.Content)
		checksum = hex.EncodeToString(sum[:])
	}

	rec, err := NewRecord(s.newID(), in.Name, in.Category, size, s.now())
	if err != nil {
		return nil, err
	}
	rec.Checksum = checksum

	if err := s.store.Put(ctx, rec); err != nil {
		return nil, err
	}

	uploadsTotal.WithLabelValues(string(rec.Category)).Inc()
	s.log.Info("file uploaded",
		zap.String("id", rec.ID),
		zap.String("category", string(rec.Category)),
		zap.Int64("size_bytes", rec.SizeBytes),
	)
	s.publish(Event{Type: EventFileUploaded, FileID: rec.ID, File: rec, At: rec.CreatedAt})
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (*FileRecord, error) {
	if id == "" {
		return nil, ErrMissingID
	}
	return s.store.Get(ctx, id)
}

// Delete purges the record. A missing record yields false and ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}

	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrNotFound
	}

	deletesTotal.Inc()
	s.log.Info("file deleted", zap.String("id", id))
	s.publish(Event{Type: EventFileDeleted, FileID: id, At: s.now()})
	return true, nil
}

func (s *Service) publish(ev Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}
