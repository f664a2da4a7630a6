package curation

import (
	"sort"

	"github.com/lumafolio/studio-core/internal/domain/gallery"
)

// rankCandidates orders photos by quality descending, emotional impact
// descending, capture time ascending, then ID ascending. The final ID
// tie-break makes the order a deterministic total order, so repeated runs
// over an unchanged batch select the same photos.
func rankCandidates(photos []*gallery.Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		a, b := photos[i], photos[j]
		aq, bq := deref(a.QualityScore), deref(b.QualityScore)
		if aq != bq {
			return aq > bq
		}
		ae, be := deref(a.EmotionalImpact), deref(b.EmotionalImpact)
		if ae != be {
			return ae > be
		}
		if !a.TakenAt.Equal(b.TakenAt) {
			return a.TakenAt.Before(b.TakenAt)
		}
		return a.ID < b.ID
	})
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
