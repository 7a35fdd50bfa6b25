package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/livingprogress/mentorme/internal/config"
	"github.com/livingprogress/mentorme/internal/db"
	"github.com/livingprogress/mentorme/internal/repository"
	"github.com/livingprogress/mentorme/internal/service"
	"github.com/livingprogress/mentorme/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	EmailService    *service.EmailService
	GoalService     *service.GoalService
	GoalWorkflow    *service.GoalWorkflow
	ProgramService  *service.ProgramService
	MentorService   *service.MentorService
	MenteeService   *service.MenteeService
	DocumentService *service.DocumentService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage
	documentStorage, err := storage.New(cfg)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return Build(cfg, database, documentStorage), nil
}

// Build wires repositories and services over an open, migrated database.
func Build(cfg *config.Config, database *sqlx.DB, documentStorage storage.Storage) *App {
	// Repositories
	mentorRepository := repository.NewMentorRepository(database)
	menteeRepository := repository.NewMenteeRepository(database)
	programRepository := repository.NewProgramRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	documentRepository := repository.NewDocumentRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	notifier := service.NewProgramCompletionNotifier(mentorRepository, menteeRepository, emailService)

	documentService := service.NewDocumentService(documentRepository, goalRepository, documentStorage, cfg.DocumentMaxUploadSize)
	goalService := service.NewGoalService(goalRepository, programRepository)
	goalWorkflow := service.NewGoalWorkflow(database, goalService, programRepository, service.NewProgramLocks(), notifier, documentService)
	programService := service.NewProgramService(programRepository, goalRepository, mentorRepository, menteeRepository)
	mentorService := service.NewMentorService(mentorRepository)
	menteeService := service.NewMenteeService(menteeRepository)

	return &App{
		Cfg:             cfg,
		DB:              database,
		EmailService:    emailService,
		GoalService:     goalService,
		GoalWorkflow:    goalWorkflow,
		ProgramService:  programService,
		MentorService:   mentorService,
		MenteeService:   menteeService,
		DocumentService: documentService,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return db.Close(a.DB)
	}
	return nil
}
