package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/attendly/timeclock-backend-go/internal/config"
	"github.com/attendly/timeclock-backend-go/internal/domain/punch"
	appHTTP "github.com/attendly/timeclock-backend-go/internal/handler/http"
	"github.com/attendly/timeclock-backend-go/internal/pkg/database"
	"github.com/attendly/timeclock-backend-go/internal/pkg/storage"
	"github.com/attendly/timeclock-backend-go/internal/repository/postgresql"
	"github.com/attendly/timeclock-backend-go/internal/service/file"
	"github.com/attendly/timeclock-backend-go/internal/service/reconcile"
	timecardService "github.com/attendly/timeclock-backend-go/internal/service/timecard"
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

	timecardRepo := postgresql.NewTimecardRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	fileStorage, err := storage.NewLocalStorage(
		cfg.Storage.BasePath,
		cfg.Storage.BaseURL,
	)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	rules := reconcile.DefaultRules()
	rules.LateGraceMinutes = map[punch.ShiftType]int{
		punch.ShiftMorning: cfg.PayRules.LateGraceMorningMinutes,
		punch.ShiftEvening: cfg.PayRules.LateGraceEveningMinutes,
		punch.ShiftNight:   cfg.PayRules.LateGraceNightMinutes,
		punch.ShiftCanteen: cfg.PayRules.LateGraceCanteenMinutes,
	}
	rules.EarlyLeaveGraceMinutes = cfg.PayRules.EarlyLeaveGraceMinutes
	engine := reconcile.NewEngine(rules)

	timecardSvc := timecardService.NewTimecardService(
		db,
		timecardRepo,
		employeeRepo,
		holidayRepo,
		engine,
		fileService,
	)

	timecardHandler := appHTTP.NewTimecardHandler(timecardSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)
	holidayHandler := appHTTP.NewHolidayHandler(holidayRepo)

	router := appHTTP.NewRouter(
		timecardHandler,
		employeeHandler,
		holidayHandler,
		cfg.App.CORSOrigins,
		cfg.Storage.BasePath,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
