// Package archive exports and verifies history archives.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iconidentify/scriptforge/internal/domain"
	"github.com/iconidentify/scriptforge/pkg/crypto"
)

// Version of the archive document.
const Version = 1

var (
	// ErrPasswordRequired is returned when a sealed archive is read without a password.
	ErrPasswordRequired = errors.New("archive is encrypted: password required")

	// ErrInvalidArchive is matched by every structural problem in an archive.
	ErrInvalidArchive = errors.New("invalid archive")
)

// Archive is the exported document.
type Archive struct {
	Version    int                     `json:"version"`
	ExportedAt time.Time               `json:"exported_at"`
	Records    []*domain.HistoryRecord `json:"records"`
}

// Summary describes a verified archive.
type Summary struct {
	Encrypted bool
	Records   int
	Used      int
	Brands    map[string]int
	Oldest    time.Time
	Newest    time.Time
}

// Export encodes records. A non-empty password seals the output.
func Export(records []*domain.HistoryRecord, sealer *crypto.Sealer, password string) ([]byte, error) {
	if records == nil {
		records = []*domain.HistoryRecord{}
	}
	doc := Archive{
		Version:    Version,
		ExportedAt: time.Now().UTC(),
		Records:    records,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal archive: %w", err)
	}
	if password == "" {
		return data, nil
	}

	sealed, err := sealer.Seal(data, password)
	if err != nil {
		return nil, fmt.Errorf("seal archive: %w", err)
	}
	return sealed, nil
}

// Read decodes and validates an archive, opening it first when sealed.
func Read(data []byte, sealer *crypto.Sealer, password string) (*Archive, *Summary, error) {
	encrypted := crypto.IsSealed(data)
	if encrypted {
		if password == "" {
			return nil, nil, ErrPasswordRequired
		}
		opened, err := sealer.Open(data, password)
		if err != nil {
			return nil, nil, err
		}
		data = opened
	}

	var doc Archive
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}
	if doc.Version != Version {
		return nil, nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidArchive, doc.Version)
	}

	summary, err := summarize(doc.Records)
	if err != nil {
		return nil, nil, err
	}
	summary.Encrypted = encrypted
	return &doc, summary, nil
}

func summarize(records []*domain.HistoryRecord) (*Summary, error) {
	s := &Summary{Brands: make(map[string]int)}
	seen := make(map[domain.HistoryID]bool, len(records))

	for i, rec := range records {
		if rec == nil || rec.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrInvalidArchive, i)
		}
		if seen[rec.ID] {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidArchive, rec.ID)
		}
		seen[rec.ID] = true

		s.Records++
		if rec.IsUsed {
			s.Used++
		}
		s.Brands[rec.Brand]++
		if s.Oldest.IsZero() || rec.CreatedAt.Before(s.Oldest) {
			s.Oldest = rec.CreatedAt
		}
		if rec.CreatedAt.After(s.Newest) {
			s.Newest = rec.CreatedAt
		}
	}
	return s, nil
}
