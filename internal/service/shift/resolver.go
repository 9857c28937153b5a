package shift

import (
	"sort"
	"time"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/shift"
)

// Resolve picks the effective shift for one date from an assignment
// snapshot. Precedence, highest first: per-day override, permanently
// flexible employment, approved temporary change request, permanent
// overrides (most recent effective date wins), weekly pattern, default
// shift, house default. A broken reference at any level falls through to
// the next; only a completely empty snapshot yields nil.
func Resolve(snap shift.Snapshot, date time.Time) *shift.Resolved {
	asn := snap.Assignment

	// 1. Per-day ad hoc override.
	if asn != nil {
		if ov, ok := asn.DayOverrides[date.Format("2006-01-02")]; ok {
			return &shift.Resolved{
				Definition: shift.Definition{
					ID:            "day-override:" + ov.Date,
					CompanyID:     asn.CompanyID,
					Name:          "Day Override",
					StartTime:     ov.StartTime,
					EndTime:       ov.EndTime,
					DurationHours: ov.DurationHours,
					Flexible:      ov.Flexible,
				},
				Source:         shift.SourceDayOverride,
				OneDayFlexible: ov.Flexible && !asn.FlexiblePermanent,
			}
		}
	}

	// 2. Permanently flexible employment mode: synthetic always-open shift.
	if asn != nil && asn.FlexiblePermanent {
		return &shift.Resolved{
			Definition: shift.Definition{
				ID:            "flexible-permanent",
				CompanyID:     asn.CompanyID,
				Name:          "Flexible",
				StartTime:     timeOfDay(0, 0),
				EndTime:       timeOfDay(23, 59),
				DurationHours: 24,
				Flexible:      true,
			},
			Source:            shift.SourceFlexiblePermanent,
			FlexiblePermanent: true,
		}
	}

	// 3. Approved temporary change request covering the date. Requests come
	// in most-recently-created order; the first resolvable one wins.
	for _, req := range snap.TemporaryRequests {
		if req.Type != shift.RequestTemporary || req.Status != shift.RequestApproved {
			continue
		}
		if !req.Covers(date) {
			continue
		}
		if def, ok := snap.Shifts[req.ShiftID]; ok {
			return &shift.Resolved{Definition: def, Source: shift.SourceTemporaryRequest}
		}
	}

	if asn != nil {
		// 4. Permanent overrides, most recent effective date first. Overrides
		// are append-only, so of two sharing an effective date the
		// later-created one supersedes.
		overrides := make([]shift.PermanentOverride, len(asn.PermanentOverrides))
		copy(overrides, asn.PermanentOverrides)
		sort.SliceStable(overrides, func(i, j int) bool {
			if overrides[i].EffectiveFrom.Equal(overrides[j].EffectiveFrom) {
				return overrides[i].CreatedAt.After(overrides[j].CreatedAt)
			}
			return overrides[i].EffectiveFrom.After(overrides[j].EffectiveFrom)
		})
		for _, ov := range overrides {
			if !ov.AppliesOn(date) {
				continue
			}
			if def, ok := snap.Shifts[ov.ShiftID]; ok {
				return &shift.Resolved{Definition: def, Source: shift.SourcePermanentOverride}
			}
		}

		// 5. Weekly pattern.
		if id, ok := asn.WeeklyPattern[date.Weekday()]; ok {
			if def, found := snap.Shifts[id]; found {
				return &shift.Resolved{Definition: def, Source: shift.SourceWeeklyPattern}
			}
		}

		// 6. Default shift on the assignment.
		if asn.DefaultShiftID != nil {
			if def, ok := snap.Shifts[*asn.DefaultShiftID]; ok {
				return &shift.Resolved{Definition: def, Source: shift.SourceDefault}
			}
		}
	}

	// 7. House default.
	if snap.HouseDefault != nil {
		return &shift.Resolved{Definition: *snap.HouseDefault, Source: shift.SourceHouseDefault}
	}

	return nil
}

func timeOfDay(hour, minute int) time.Time {
	return time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)
}
