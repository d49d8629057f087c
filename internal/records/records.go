// ABOUTME: Best-time record derivation from swim segments.
// ABOUTME: One record per (stroke style, distance); earliest segment wins ties.
package records

import (
	"github.com/google/uuid"
	"github.com/harperreed/swimbook/internal/models"
)

// ComputeRecords derives the best record for every (style, distance) pair in segments.
//
// A later segment replaces the current best only when strictly faster, so on
// equal times the segment that appears first in the input is kept. Records are
// returned in the order their key first appears in segments. Each call assigns
// fresh record IDs.
func ComputeRecords(segments []models.Segment) []models.SwimmingRecord {
	index := make(map[models.RecordKey]int)
	records := make([]models.SwimmingRecord, 0)

	for _, seg := range segments {
		key := seg.Key()
		i, seen := index[key]
		if seen && !(seg.ElapsedSeconds < records[i].BestElapsedSeconds) {
			continue
		}

		rec := models.SwimmingRecord{
			ID:                 uuid.New(),
			StrokeStyle:        seg.StrokeStyle,
			DistanceMeters:     seg.DistanceMeters,
			BestElapsedSeconds: seg.ElapsedSeconds,
			BestDate:           seg.StartDateTime,
			BestSegmentID:      seg.ID,
		}
		if seen {
			records[i] = rec
			continue
		}
		index[key] = len(records)
		records = append(records, rec)
	}

	return records
}

// Book lays records out the way the records book shows them: one row per
// visible stroke style, one slot per record distance. Empty slots are nil.
type Book struct {
	Styles []models.StrokeStyle
	Slots  map[models.StrokeStyle]map[int]*models.SwimmingRecord
}

// BuildBook arranges records for the given styles in display order.
func BuildBook(recs []models.SwimmingRecord, styles []models.StrokeStyle) Book {
	book := Book{
		Styles: styles,
		Slots:  make(map[models.StrokeStyle]map[int]*models.SwimmingRecord, len(styles)),
	}
	for _, st := range styles {
		book.Slots[st] = make(map[int]*models.SwimmingRecord, len(models.Distances))
	}
	for i := range recs {
		row, ok := book.Slots[recs[i].StrokeStyle]
		if !ok {
			continue
		}
		row[recs[i].DistanceMeters] = &recs[i]
	}
	return book
}

// Count returns how many records a style holds in the book.
func (b Book) Count(style models.StrokeStyle) int {
	return len(b.Slots[style])
}
