package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/workpulse-hr/attendance-engine-go/internal/domain/timeline"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
)

type timelineRepositoryImpl struct {
	db *database.DB
}

func NewTimelineRepository(db *database.DB) timeline.TimelineRepository {
	return &timelineRepositoryImpl{db: db}
}

// Append implements timeline.TimelineRepository. The log is append-only;
// there is no update or delete path.
func (r *timelineRepositoryImpl) Append(ctx context.Context, event timeline.Event) (timeline.Event, error) {
	q := GetQuerier(ctx, r.db)

	if event.ID == "" {
		event.ID = uuid.New().String()
	}

	query := `
		INSERT INTO timeline_events (id, employee_id, company_id, day, type, event_at, created_at)
		VALUES ($1, $2, $3, $4::date, $5, $6, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID, event.EmployeeID, event.CompanyID, event.Day, string(event.Type), event.Timestamp,
	).Scan(&event.CreatedAt)
	if err != nil {
		return timeline.Event{}, fmt.Errorf("failed to append timeline event: %w", err)
	}

	return event, nil
}

// ListByEmployeeAndDay implements timeline.TimelineRepository.
func (r *timelineRepositoryImpl) ListByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time, companyID string) ([]timeline.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, day, type, event_at, created_at
		FROM timeline_events
		WHERE employee_id = $1 AND day = $2::date AND company_id = $3
		ORDER BY event_at ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, day, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query timeline events: %w", err)
	}
	defer rows.Close()

	var events []timeline.Event
	for rows.Next() {
		var ev timeline.Event
		var evType string
		err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.CompanyID, &ev.Day, &evType, &ev.Timestamp, &ev.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timeline event: %w", err)
		}
		ev.Type = timeline.EventType(evType)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timeline events: %w", err)
	}

	return events, nil
}

// LastEventForDay implements timeline.TimelineRepository.
func (r *timelineRepositoryImpl) LastEventForDay(ctx context.Context, employeeID string, day time.Time, companyID string) (*timeline.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, day, type, event_at, created_at
		FROM timeline_events
		WHERE employee_id = $1 AND day = $2::date AND company_id = $3
		ORDER BY event_at DESC, created_at DESC
		LIMIT 1
	`

	var ev timeline.Event
	var evType string
	err := q.QueryRow(ctx, query, employeeID, day, companyID).Scan(
		&ev.ID, &ev.EmployeeID, &ev.CompanyID, &ev.Day, &evType, &ev.Timestamp, &ev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last timeline event: %w", err)
	}

	ev.Type = timeline.EventType(evType)
	return &ev, nil
}

// EmployeesWithEventsOn implements timeline.TimelineRepository.
func (r *timelineRepositoryImpl) EmployeesWithEventsOn(ctx context.Context, day time.Time) ([]timeline.DayEmployee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT employee_id, company_id
		FROM timeline_events
		WHERE day = $1::date
		ORDER BY company_id ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees with events: %w", err)
	}
	defer rows.Close()

	var employees []timeline.DayEmployee
	for rows.Next() {
		var de timeline.DayEmployee
		if err := rows.Scan(&de.EmployeeID, &de.CompanyID); err != nil {
			return nil, fmt.Errorf("failed to scan day employee: %w", err)
		}
		employees = append(employees, de)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating day employees: %w", err)
	}

	return employees, nil
}

// ListOpenDays implements timeline.TimelineRepository. A day bucket is open
// when its chronologically last event is not a Punch Out.
func (r *timelineRepositoryImpl) ListOpenDays(ctx context.Context, before time.Time) ([]timeline.OpenDay, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH last_events AS (
			SELECT DISTINCT ON (employee_id, company_id, day)
				employee_id, company_id, day, type, event_at
			FROM timeline_events
			ORDER BY employee_id, company_id, day, event_at DESC, created_at DESC
		)
		SELECT employee_id, company_id, day, event_at
		FROM last_events
		WHERE type <> $1 AND event_at < $2
		ORDER BY event_at ASC
	`

	rows, err := q.Query(ctx, query, string(timeline.EventPunchOut), before)
	if err != nil {
		return nil, fmt.Errorf("failed to query open days: %w", err)
	}
	defer rows.Close()

	var openDays []timeline.OpenDay
	for rows.Next() {
		var od timeline.OpenDay
		if err := rows.Scan(&od.EmployeeID, &od.CompanyID, &od.Day, &od.LastEvent); err != nil {
			return nil, fmt.Errorf("failed to scan open day: %w", err)
		}
		openDays = append(openDays, od)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating open days: %w", err)
	}

	return openDays, nil
}
