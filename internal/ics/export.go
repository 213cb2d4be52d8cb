// Package ics renders time blocks as an iCalendar document.
package ics

import (
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/rpggio/weekgrid/internal/domain/timeblock"
)

// ProductID identifies documents produced by this package.
const ProductID = "-//weekgrid//weekgrid//EN"

// Options control document-level properties.
type Options struct {
	// Name becomes the calendar display name when set.
	Name string
	// Stamp is written as DTSTAMP on every event. Zero means now.
	Stamp time.Time
}

// Export returns an iCalendar document with one VEVENT per block. Times are
// written in UTC.
func Export(blocks []timeblock.TimeBlock, opts Options) string {
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	for _, b := range blocks {
		ev := cal.AddEvent(b.ID + "@weekgrid")
		ev.SetDtStampTime(stamp.UTC())
		ev.SetStartAt(b.StartTime.UTC())
		ev.SetEndAt(b.EndTime.UTC())
		ev.SetSummary(b.Title)
		if b.Color != "" {
			ev.SetProperty(ical.ComponentProperty("COLOR"), b.Color)
		}
		if b.TaskID != nil {
			ev.SetDescription("Task: " + *b.TaskID)
		}
		if !b.UpdatedAt.IsZero() {
			ev.SetModifiedAt(b.UpdatedAt.UTC())
		}
	}

	return cal.Serialize()
}
