package notification

import (
	"sort"

	"github.com/crowdfund-dashboard/internal/domain"
	"github.com/crowdfund-dashboard/internal/pkg/timestamp"
)

// MaxFeedSize caps the merged feed.
const MaxFeedSize = 6

// Merge combines the personal and broadcast sources into one feed: at most one
// entry per id, newest first, capped at MaxFeedSize. When a personal and a
// broadcast record share an id the personal one is kept, whichever source it
// came from. Records without an id are dropped; unparseable timestamps sort last.
func Merge(personal, broadcast []domain.NotificationRecord) []domain.NormalizedNotification {
	all := make([]domain.NotificationRecord, 0, len(personal)+len(broadcast))
	all = append(all, personal...)
	all = append(all, broadcast...)

	byID := make(map[string]int, len(all))
	kept := make([]domain.NotificationRecord, 0, len(all))
	for _, rec := range all {
		if rec.ID == "" {
			continue
		}
		i, seen := byID[rec.ID]
		if !seen {
			byID[rec.ID] = len(kept)
			kept = append(kept, rec)
			continue
		}
		if !kept[i].IsPersonal() && rec.IsPersonal() {
			kept[i] = rec
		}
	}

	out := make([]domain.NormalizedNotification, len(kept))
	times := make(map[string]sortKey, len(kept))
	for i, rec := range kept {
		out[i] = normalize(rec)
		t, ok := timestamp.Parse(rec.CreatedAt)
		times[rec.ID] = sortKey{unixNano: t.UnixNano(), valid: ok}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := times[out[i].ID], times[out[j].ID]
		if a.valid != b.valid {
			return a.valid
		}
		return a.unixNano > b.unixNano
	})

	if len(out) > MaxFeedSize {
		out = out[:MaxFeedSize]
	}
	return out
}

type sortKey struct {
	unixNano int64
	valid    bool
}

func normalize(rec domain.NotificationRecord) domain.NormalizedNotification {
	title := rec.ReceiverType
	if title == "" {
		title = domain.DefaultNotificationTitle
	}
	return domain.NormalizedNotification{
		ID:         rec.ID,
		Title:      title,
		Body:       rec.Message,
		RawTime:    rec.CreatedAt,
		Read:       false,
		IsPersonal: rec.IsPersonal(),
	}
}
