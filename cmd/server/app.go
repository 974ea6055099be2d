package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"workdays/internal/adapters/catalog"
	"workdays/internal/adapters/holidays"
	"workdays/internal/adapters/http/perf"
	"workdays/internal/adapters/storage"
	calcStore "workdays/internal/adapters/storage/calculation"
	countryStore "workdays/internal/adapters/storage/country"
	"workdays/internal/application/orchestrators"
	"workdays/internal/domain/workday"
	"workdays/internal/platform/config"
	"workdays/internal/platform/metrics"
)

// app is the wired dependency graph shared by every subcommand.
type app struct {
	cfg          *config.Config
	db           *sql.DB
	timedDB      *storage.TimedDB
	collector    *perf.Collector
	registry     *prometheus.Registry
	metrics      *metrics.Metrics
	oracle       *holidays.Oracle
	directory    *catalog.Directory
	validator    *workday.Validator
	calculator   *workday.Calculator
	calculations *calcStore.SQLiteStore
}

// newApp opens and migrates the database, seeds the country catalog and
// builds the calculator around the stored countries.
// PRE: cfg was returned by config.Load
// POST: caller must Close the returned app
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := storage.MigrateDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a := &app{
		cfg:       cfg,
		db:        db,
		collector: perf.NewCollector(perf.DefaultRingSize),
		registry:  prometheus.NewRegistry(),
	}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)
	a.timedDB = storage.NewTimedDB(db, a.collector, cfg.SlowQuery())
	a.oracle = holidays.NewOracle(holidays.WithBuildHook(a.metrics.IncrementCalendarBuild))

	embedded, err := catalog.EmbeddedCountries()
	if err != nil {
		a.Close()
		return nil, err
	}
	countries := countryStore.NewSQLiteStore(a.timedDB)
	if _, err := orchestrators.ExecuteSeedCountries(ctx, embedded, orchestrators.SeedCountriesDeps{
		CountryStore: countries,
		Calendars:    a.oracle,
	}); err != nil {
		a.Close()
		return nil, err
	}
	stored, err := countries.List(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load countries: %w", err)
	}
	if a.directory, err = catalog.NewDirectory(stored); err != nil {
		a.Close()
		return nil, err
	}

	schema, err := storage.CheckSchema(db)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.validator = workday.NewValidator(a.directory)
	a.calculator = workday.NewCalculator(a.oracle)
	a.calculations = calcStore.NewSQLiteStore(a.timedDB)

	slog.Info("app_ready",
		"db", cfg.DBPath,
		"schema", schema,
		"countries", a.directory.Len(),
		"env", cfg.Env,
	)
	return a, nil
}

func (a *app) calculateDeps() orchestrators.CalculateWorkingDaysDeps {
	return orchestrators.CalculateWorkingDaysDeps{
		Validator:  a.validator,
		Calculator: a.calculator,
		Countries:  a.directory,
		LogStore:   a.calculations,
		Metrics:    a.metrics,
		Collector:  a.collector,
		GenerateID: uuid.NewString,
		Now:        time.Now,
	}
}

// Close releases the database.
func (a *app) Close() error {
	return a.db.Close()
}
