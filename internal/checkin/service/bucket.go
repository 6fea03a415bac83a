package service

import (
	"fmt"
	"time"

	"github.com/yokohama-dev/tsukuba/internal/checkin/domain"
	"github.com/yokohama-dev/tsukuba/pkg/netx"
)

// Bucketer derives the hour bucket and location class a presence signal
// belongs to. Every derivation is evaluated in one fixed time zone; using
// the host's local zone would silently misalign buckets across deployments.
type Bucketer struct {
	loc        *time.Location
	classifier *netx.Classifier
	internalID string
}

// NewBucketer builds a Bucketer for the given IANA time zone name.
func NewBucketer(timezone string, classifier *netx.Classifier, internalLocationID string) (*Bucketer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("service: load timezone %q: %w", timezone, err)
	}
	if internalLocationID == "" || internalLocationID == domain.LocationOthers {
		return nil, fmt.Errorf("service: invalid internal location id %q", internalLocationID)
	}
	return &Bucketer{loc: loc, classifier: classifier, internalID: internalLocationID}, nil
}

// KeyAt maps an instant to its hour bucket in the fixed zone. Pure; two
// calls within the same wall-clock hour yield identical keys.
func (b *Bucketer) KeyAt(t time.Time) domain.BucketKey {
	t = t.In(b.loc)
	return domain.BucketKey{
		Year:  t.Year(),
		Month: int(t.Month()),
		Day:   t.Day(),
		Hours: t.Hour(),
	}
}

// Classify maps a caller's origin address to its location class tag. The
// classification is binary: configured internal ranges map to the internal
// tag, everything else to "others".
func (b *Bucketer) Classify(originAddr string) string {
	if b.classifier.IsInternal(originAddr) {
		return b.internalID
	}
	return domain.LocationOthers
}

// IsInternal reports whether the origin classifies as internal.
func (b *Bucketer) IsInternal(originAddr string) bool {
	return b.classifier.IsInternal(originAddr)
}

// InternalLocationID returns the configured internal class tag.
func (b *Bucketer) InternalLocationID() string { return b.internalID }

// Location returns the platform time zone.
func (b *Bucketer) Location() *time.Location { return b.loc }
