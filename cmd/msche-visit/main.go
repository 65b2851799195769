package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/fumiama/go-docx"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/doublemix/msche-team-visit/internal/docgen"
	"github.com/doublemix/msche-team-visit/internal/domain"
	"github.com/doublemix/msche-team-visit/internal/loader"
	"github.com/doublemix/msche-team-visit/internal/report"
	"github.com/doublemix/msche-team-visit/internal/repository"
	"github.com/doublemix/msche-team-visit/internal/service/importer"
	"github.com/doublemix/msche-team-visit/internal/workbook"
	"github.com/doublemix/msche-team-visit/pkg/database"
)

func main() {
	full := flag.Bool("full", false, "generate the detailed itinerary")
	fullOut := flag.String("full-out", "", "detailed itinerary output file (implies -full)")
	individual := flag.Bool("individual", false, "generate per-person itineraries")
	individualOut := flag.String("individual-out", "", "per-person itineraries output file (implies -individual)")
	summary := flag.Bool("summary", false, "generate the summary itinerary")
	summaryOut := flag.String("summary-out", "", "summary itinerary output file (implies -summary)")
	roles := flag.Bool("roles", false, "generate the summary itinerary with role annotations")
	rolesOut := flag.String("roles-out", "", "role summary output file (implies -roles)")
	populate := flag.Bool("populate", false, "load the schedule into the database")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	rep := report.NewCollector(logger)

	if flag.NArg() != 1 {
		logger.Error("expected exactly one workbook file")
		flag.Usage()
		os.Exit(2)
	}
	filename := flag.Arg(0)

	*full = *full || *fullOut != ""
	*individual = *individual || *individualOut != ""
	*summary = *summary || *summaryOut != ""
	*roles = *roles || *rolesOut != ""

	if !*full && !*individual && !*summary && !*roles && !*populate {
		logger.Error(domain.ErrNoOutputs.Error(),
			"hint", "use -full, -individual, -summary, -roles, or -populate")
		os.Exit(2)
	}

	data, err := loadWorkbook(filename, rep)
	if err != nil {
		if domain.IsUserError(err) {
			logger.Error("problem with the workbook contents", slog.Any("error", err))
		} else {
			logger.Error("failed to load workbook", slog.Any("error", err))
		}
		os.Exit(1)
	}

	type task struct {
		name string
		run  func() error
	}
	var tasks []task

	addDocument := func(name, file, fallback string, generate func() (*docx.Docx, error)) {
		if file == "" {
			file = fallback
		}
		tasks = append(tasks, task{name: name, run: func() error {
			return generateToFile(generate, file)
		}})
	}

	if *full {
		addDocument("full itinerary", *fullOut, "full-itinerary.docx", func() (*docx.Docx, error) {
			return docgen.FullItinerary(data, rep)
		})
	}
	if *individual {
		addDocument("individual itineraries", *individualOut, "individual-itineraries.docx", func() (*docx.Docx, error) {
			return docgen.IndividualItineraries(data, rep)
		})
	}
	if *summary {
		addDocument("summary itinerary", *summaryOut, "summary-itinerary.docx", func() (*docx.Docx, error) {
			return docgen.SummaryItinerary(data, false, rep)
		})
	}
	if *roles {
		addDocument("role summary", *rolesOut, "role-summary.docx", func() (*docx.Docx, error) {
			return docgen.SummaryItinerary(data, true, rep)
		})
	}
	if *populate {
		svc, cleanup, err := importerFromEnv(logger)
		if err != nil {
			logger.Error("failed to set up database", slog.Any("error", err))
			os.Exit(1)
		}
		defer cleanup()
		tasks = append(tasks, task{name: "populate", run: func() error {
			return svc.Import(context.Background(), data, rep)
		}})
	}

	// Outputs only read the bundle, so they can run concurrently. One
	// failing output does not stop the others; every failure is reported.
	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(tasks))
	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			results <- result{name: t.name, err: t.run()}
		}(t)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	failed := 0
	for r := range results {
		if r.err != nil {
			failed++
			logger.Error("output failed", slog.String("output", r.name), slog.Any("error", r.err))
			continue
		}
		logger.Info("output complete", slog.String("output", r.name))
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func loadWorkbook(filename string, rep *report.Collector) (*domain.Data, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	src, err := workbook.OpenBytes(content)
	if err != nil {
		return nil, err
	}
	return loader.Load(src, loader.Options{
		MeetingRange: 2,
		TeamRoleSource: loader.TeamRoleSource{
			Type:      loader.RoleSourceMeetingsTable,
			NameRow:   0,
			HeaderRow: 2,
		},
	}, rep)
}

func generateToFile(generate func() (*docx.Docx, error), filename string) error {
	doc, err := generate()
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return f.Close()
}

func importerFromEnv(logger *slog.Logger) (*importer.ImporterService, func(), error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found: %v", err)
	}

	db, err := database.NewPostgresDB(database.ConfigFromEnv(), logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", slog.Any("error", err))
		}
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		cleanup()
		return nil, nil, err
	}

	dbInstance := database.NewDB(db)
	txManager, err := database.NewTransactionManager(db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	svc := importer.NewImporterService(
		repository.NewZoomRoomRepository(dbInstance),
		repository.NewMeetingRepository(dbInstance),
		repository.NewParticipantRepository(dbInstance),
		txManager,
		logger,
	)
	return svc, cleanup, nil
}
