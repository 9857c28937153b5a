package timeline

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
)

// Duration ceilings. Clock skew and missed punch-outs must degrade into a
// truncated total, never corrupt a pay-relevant figure.
const (
	MaxWorkSessionSeconds  = int64(24 * 60 * 60)
	MaxBreakSessionSeconds = int64(4 * 60 * 60)
	MaxDailyWorkSeconds    = int64(24 * 60 * 60)
)

// FilterAndSort drops events with unknown types and orders the rest by
// timestamp ascending. Stable, so same-instant duplicates keep log order.
func FilterAndSort(events []timeline.Event) []timeline.Event {
	ordered := make([]timeline.Event, 0, len(events))
	for _, ev := range events {
		if _, err := timeline.ParseEventType(string(ev.Type)); err != nil {
			slog.Warn("Skipping timeline event with unknown type",
				"employee_id", ev.EmployeeID, "type", ev.Type, "timestamp", ev.Timestamp)
			continue
		}
		ordered = append(ordered, ev)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	return ordered
}

// Reconstruct replays one day bucket into deduplicated work and break
// sessions with capped second totals. Breaks nest inside work spans: Resume
// Work closes the break and continues the same work session, and Punch Out
// implicitly closes an open break. The function is pure; `now` is the clock
// used for sessions still open under a true live flag. Running it twice over
// the same timeline yields identical output.
func Reconstruct(events []timeline.Event, currentlyWorking, onBreak bool, now time.Time) timeline.Reconstruction {
	ordered := FilterAndSort(events)

	var workSessions, breakSessions []timeline.Session
	var openWork, openBreak *timeline.Session

	for _, ev := range ordered {
		switch ev.Type {
		case timeline.EventPunchIn:
			// A second Punch In while a work session is open is a client
			// retry or a race; the open session absorbs it.
			if openWork == nil {
				openWork = &timeline.Session{Start: ev.Timestamp}
			}
		case timeline.EventBreakStart:
			if openWork != nil && openBreak == nil {
				openBreak = &timeline.Session{Start: ev.Timestamp}
			}
		case timeline.EventResumeWork:
			if openBreak != nil {
				end := ev.Timestamp
				openBreak.End = &end
				breakSessions = append(breakSessions, *openBreak)
				openBreak = nil
			}
		case timeline.EventPunchOut:
			if openBreak != nil {
				end := ev.Timestamp
				openBreak.End = &end
				breakSessions = append(breakSessions, *openBreak)
				openBreak = nil
			}
			if openWork != nil {
				end := ev.Timestamp
				openWork.End = &end
				workSessions = append(workSessions, *openWork)
				openWork = nil
			}
		}
	}

	if openBreak != nil {
		breakSessions = append(breakSessions, *openBreak)
	}
	if openWork != nil {
		workSessions = append(workSessions, *openWork)
	}

	workSessions = dedupeSessions(workSessions)
	breakSessions = dedupeSessions(breakSessions)

	workSessions, workSeconds := finalizeSessions(workSessions, currentlyWorking, now, MaxWorkSessionSeconds, "work")
	breakSessions, breakSeconds := finalizeSessions(breakSessions, onBreak, now, MaxBreakSessionSeconds, "break")

	if workSeconds > MaxDailyWorkSeconds {
		slog.Warn("Daily work total exceeds ceiling, truncating",
			"work_seconds", workSeconds, "ceiling", MaxDailyWorkSeconds)
		workSeconds = MaxDailyWorkSeconds
	}

	return timeline.Reconstruction{
		WorkSessions:  workSessions,
		BreakSessions: breakSessions,
		WorkSeconds:   workSeconds,
		BreakSeconds:  breakSeconds,
	}
}

// dedupeSessions collapses sessions sharing the same (start, end-or-ongoing)
// pair so double-logged events cannot double-count.
func dedupeSessions(sessions []timeline.Session) []timeline.Session {
	seen := make(map[string]bool, len(sessions))
	out := sessions[:0]
	for _, s := range sessions {
		key := fmt.Sprintf("%d|ongoing", s.Start.UnixNano())
		if s.End != nil {
			key = fmt.Sprintf("%d|%d", s.Start.UnixNano(), s.End.UnixNano())
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// finalizeSessions computes per-session durations and the aggregate total.
// Closed sessions whose end is not strictly after their start are dropped.
// An open session counts only when the live flag says it is genuinely
// ongoing, with `now` standing in for the end; otherwise it is kept in the
// output as a zero-duration incomplete session and excluded from the total.
func finalizeSessions(sessions []timeline.Session, live bool, now time.Time, capSeconds int64, kind string) ([]timeline.Session, int64) {
	out := make([]timeline.Session, 0, len(sessions))
	var total int64

	for _, s := range sessions {
		if s.End == nil {
			if !live {
				slog.Warn("Abandoned open session excluded from totals",
					"kind", kind, "start", s.Start)
				out = append(out, s)
				continue
			}
			seconds := int64(now.Sub(s.Start).Seconds())
			if seconds <= 0 {
				slog.Warn("Ongoing session starts in the future, skipping",
					"kind", kind, "start", s.Start, "now", now)
				continue
			}
			if seconds > capSeconds {
				slog.Warn("Ongoing session exceeds duration ceiling, truncating",
					"kind", kind, "start", s.Start, "seconds", seconds, "ceiling", capSeconds)
				seconds = capSeconds
			}
			s.DurationSeconds = seconds
			total += seconds
			out = append(out, s)
			continue
		}

		seconds := int64(s.End.Sub(s.Start).Seconds())
		if seconds <= 0 {
			slog.Warn("Session with inverted interval discarded",
				"kind", kind, "start", s.Start, "end", s.End)
			continue
		}
		if seconds > capSeconds {
			slog.Warn("Session exceeds duration ceiling, truncating",
				"kind", kind, "start", s.Start, "end", s.End,
				"seconds", seconds, "ceiling", capSeconds)
			seconds = capSeconds
		}
		s.DurationSeconds = seconds
		total += seconds
		out = append(out, s)
	}

	return out, total
}
