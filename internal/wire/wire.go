// Package wire provides dependency injection for the molprobity application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/sdezurik/MolProbity/internal/adapters/cli"
	"github.com/sdezurik/MolProbity/internal/adapters/filesystem"
	"github.com/sdezurik/MolProbity/internal/adapters/process"
	"github.com/sdezurik/MolProbity/internal/adapters/sqlite"
	"github.com/sdezurik/MolProbity/internal/adapters/tmux"
	"github.com/sdezurik/MolProbity/internal/app"
	"github.com/sdezurik/MolProbity/internal/config"
	"github.com/sdezurik/MolProbity/internal/db"
	"github.com/sdezurik/MolProbity/internal/ports/primary"
)

var (
	cfg        *config.Config
	runner     *process.ToolRunner
	workspace  *filesystem.WorkspaceAdapter
	configOnce sync.Once

	analysisService primary.AnalysisService
	modelService    primary.ModelService
	once            sync.Once

	reportService primary.ReportService
	reportOnce    sync.Once

	jobService primary.JobService
	jobOnce    sync.Once
)

// Config returns the configuration of the working directory.
func Config() *config.Config {
	configOnce.Do(initConfig)
	return cfg
}

// ToolRunner returns the runner used to invoke analyzers.
func ToolRunner() *process.ToolRunner {
	configOnce.Do(initConfig)
	return runner
}

// AnalysisService returns the singleton AnalysisService instance.
func AnalysisService() primary.AnalysisService {
	once.Do(initServices)
	return analysisService
}

// ModelService returns the singleton ModelService instance.
func ModelService() primary.ModelService {
	once.Do(initServices)
	return modelService
}

// ReportService returns the singleton ReportService instance. The report
// keeps no state, so it does not open the database.
func ReportService() primary.ReportService {
	reportOnce.Do(initReport)
	return reportService
}

// JobService returns the singleton JobService instance. Only this service
// needs a tmux server.
func JobService() primary.JobService {
	jobOnce.Do(initJobs)
	return jobService
}

func initConfig() {
	var err error
	cfg, err = config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	workspace, err = filesystem.NewWorkspaceAdapter(cfg.DataDir)
	if err != nil {
		log.Fatalf("failed to initialize workspace: %v", err)
	}
	runner = process.NewToolRunner()
}

// initServices initializes the database-backed services.
// This is called once via sync.Once.
func initServices() {
	configOnce.Do(initConfig)

	db.SetPath(cfg.DBPath())
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	modelRepo := sqlite.NewModelRepository(database)
	progressRepo := sqlite.NewProgressRepository(database)

	// Stage transitions are stored for `models show` and printed for the user
	observer := app.Observers{
		app.NewProgressRecorder(progressRepo),
		cliadapter.NewProgressPrinter(os.Stderr),
	}
	executor := app.NewEffectExecutor(runner, os.Stderr)

	analysisService = app.NewAnalysisService(modelRepo, workspace, observer, executor, cfg)
	modelService = app.NewModelService(modelRepo, progressRepo, workspace)
}

func initReport() {
	configOnce.Do(initConfig)
	reportService = app.NewReportService(workspace, app.NewEffectExecutor(runner, os.Stderr), cfg)
}

func initJobs() {
	once.Do(initServices)

	launcher, err := tmux.NewAdapter()
	if err != nil {
		log.Fatalf("failed to connect to tmux: %v", err)
	}
	exe, err := os.Executable()
	if err != nil {
		log.Fatalf("failed to locate executable: %v", err)
	}
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	jobService = app.NewJobService(sqlite.NewJobRepository(database), launcher, exe)
}

// AnalysisAdapter returns a new AnalysisAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func AnalysisAdapter() *cliadapter.AnalysisAdapter {
	return AnalysisAdapterWithOutput(os.Stdout)
}

// AnalysisAdapterWithOutput returns a new AnalysisAdapter writing to the given output.
func AnalysisAdapterWithOutput(out io.Writer) *cliadapter.AnalysisAdapter {
	return cliadapter.NewAnalysisAdapter(AnalysisService(), out)
}

// ModelAdapter returns a new ModelAdapter writing to stdout.
func ModelAdapter() *cliadapter.ModelAdapter {
	return ModelAdapterWithOutput(os.Stdout)
}

// ModelAdapterWithOutput returns a new ModelAdapter writing to the given output.
func ModelAdapterWithOutput(out io.Writer) *cliadapter.ModelAdapter {
	return cliadapter.NewModelAdapter(ModelService(), out)
}

// ReportAdapter returns a new ReportAdapter writing the report to stdout and
// its summary to stderr.
func ReportAdapter() *cliadapter.ReportAdapter {
	return cliadapter.NewReportAdapter(ReportService(), os.Stdout, os.Stderr)
}

// JobAdapter returns a new JobAdapter writing to stdout.
func JobAdapter() *cliadapter.JobAdapter {
	return cliadapter.NewJobAdapter(JobService(), os.Stdout)
}
