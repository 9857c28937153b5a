package main

import (
	"fmt"
	"net/http"

	"github.com/workpulse-hr/attendance-engine-go/internal/config"
	appHTTP "github.com/workpulse-hr/attendance-engine-go/internal/handler/http"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/cron"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/database"
	"github.com/workpulse-hr/attendance-engine-go/internal/pkg/jwt"
	"github.com/workpulse-hr/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/workpulse-hr/attendance-engine-go/internal/service/attendance"
	shiftService "github.com/workpulse-hr/attendance-engine-go/internal/service/shift"
	timelineService "github.com/workpulse-hr/attendance-engine-go/internal/service/timeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	location := cfg.Location()

	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	changeRequestRepo := postgresql.NewShiftChangeRequestRepository(db)
	timelineRepo := postgresql.NewTimelineRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	snapshotRepo := postgresql.NewDaySnapshotRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, assignmentRepo, changeRequestRepo)
	timelineSvc := timelineService.NewTimelineService(timelineRepo, shiftRepo, assignmentRepo, changeRequestRepo, location)
	attendanceSvc := attendanceService.NewAttendanceService(timelineRepo, shiftRepo, assignmentRepo, changeRequestRepo, leaveRepo, location)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(timelineSvc, attendanceSvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, snapshotRepo, timelineRepo, location)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		shiftHandler,
		attendanceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
