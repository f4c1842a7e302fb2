package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sdezurik/MolProbity/internal/config"
	"github.com/sdezurik/MolProbity/internal/core/effects"
	"github.com/sdezurik/MolProbity/internal/ports/secondary"
)

// atomLine formats one ATOM record in PDB column layout.
func atomLine(name, res, chain string, seq int, b float64, elem string) string {
	return fmt.Sprintf("%-6s%5d %-4s%1s%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		"ATOM", 1, name, " ", res, chain, seq, " ", 1.0, 2.0, 3.0, 1.0, b, elem)
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func testConfig(tools map[string][]string) *config.Config {
	return &config.Config{
		DataDir:            "/unused",
		LibDir:             "/opt/lib",
		HydrogenBondLength: config.BLengthECloud,
		Tools:              tools,
	}
}

// Ensure mocks implement the interfaces
var (
	_ secondary.ToolRunner         = (*mockToolRunner)(nil)
	_ secondary.WorkspaceAdapter   = (*mockWorkspaceAdapter)(nil)
	_ secondary.ModelRepository    = (*mockModelRepository)(nil)
	_ secondary.ProgressObserver   = (*mockProgressObserver)(nil)
	_ secondary.ProgressRepository = (*mockProgressRepository)(nil)
	_ secondary.JobRepository      = (*mockJobRepository)(nil)
	_ secondary.JobLauncher        = (*mockJobLauncher)(nil)
)

// mockToolRunner writes canned output for each program. An argument of the
// form out_file=PATH receives the output instead of stdout; for programs in
// dirOutputs a directory is created at PATH instead.
type mockToolRunner struct {
	outputs    map[string]string
	exitCodes  map[string]int
	startErrs  map[string]error
	dirOutputs map[string]bool
	calls      [][]string
}

func newMockToolRunner() *mockToolRunner {
	return &mockToolRunner{
		outputs:    make(map[string]string),
		exitCodes:  make(map[string]int),
		startErrs:  make(map[string]error),
		dirOutputs: make(map[string]bool),
	}
}

func (m *mockToolRunner) Run(ctx context.Context, inv secondary.ToolInvocation) (*secondary.ToolResult, error) {
	m.calls = append(m.calls, inv.Argv)
	prog := inv.Argv[0]
	if err := m.startErrs[prog]; err != nil {
		return nil, err
	}

	out := m.outputs[prog]
	for _, arg := range inv.Argv[1:] {
		if path, ok := strings.CutPrefix(arg, "out_file="); ok {
			if m.dirOutputs[prog] {
				if err := os.MkdirAll(path, 0755); err != nil {
					return nil, err
				}
				out = ""
				continue
			}
			if err := os.WriteFile(path, []byte(out), 0644); err != nil {
				return nil, err
			}
			out = ""
		}
	}
	if inv.Stdout != nil && out != "" {
		if _, err := io.WriteString(inv.Stdout, out); err != nil {
			return nil, err
		}
	}

	res := &secondary.ToolResult{ExitCode: m.exitCodes[prog]}
	if res.ExitCode != 0 {
		res.Stderr = prog + ": failed\n"
	}
	return res, nil
}

func (m *mockToolRunner) LookPath(program string) (string, error) {
	if _, ok := m.outputs[program]; ok {
		return "/usr/bin/" + program, nil
	}
	return "", fmt.Errorf("%s not found", program)
}

func (m *mockToolRunner) callFor(prog string) []string {
	for _, c := range m.calls {
		if c[0] == prog {
			return c
		}
	}
	return nil
}

// mockWorkspaceAdapter works on a real temporary directory.
type mockWorkspaceAdapter struct {
	base      string
	sessions  int
	destroyed []string
	removed   []string
	sessErr   error
}

func newMockWorkspaceAdapter(t *testing.T) *mockWorkspaceAdapter {
	return &mockWorkspaceAdapter{base: t.TempDir()}
}

func (m *mockWorkspaceAdapter) ModelDir(modelID string) string {
	return filepath.Join(m.base, "models", modelID)
}

func (m *mockWorkspaceAdapter) CreateModelDir(ctx context.Context, modelID string) (string, error) {
	dir := m.ModelDir(modelID)
	return dir, os.MkdirAll(dir, 0755)
}

func (m *mockWorkspaceAdapter) RemoveModelDir(ctx context.Context, modelID string) error {
	m.removed = append(m.removed, modelID)
	return os.RemoveAll(m.ModelDir(modelID))
}

func (m *mockWorkspaceAdapter) ImportFile(ctx context.Context, src, dir string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.Base(src))
	return dst, os.WriteFile(dst, data, 0644)
}

func (m *mockWorkspaceAdapter) CreateSession(ctx context.Context) (string, error) {
	if m.sessErr != nil {
		return "", m.sessErr
	}
	m.sessions++
	dir := filepath.Join(m.base, "tmp", fmt.Sprintf("s%d", m.sessions))
	return dir, os.MkdirAll(dir, 0755)
}

func (m *mockWorkspaceAdapter) DestroySession(ctx context.Context, dir string) error {
	m.destroyed = append(m.destroyed, dir)
	return os.RemoveAll(dir)
}

// mockModelRepository keeps models and analyses in memory.
type mockModelRepository struct {
	models   map[string]*secondary.ModelRecord
	analyses map[string]*secondary.AnalysisRecord
	order    []string
	saveErr  error
	saved    int
}

func newMockModelRepository() *mockModelRepository {
	return &mockModelRepository{
		models:   make(map[string]*secondary.ModelRecord),
		analyses: make(map[string]*secondary.AnalysisRecord),
	}
}

func (m *mockModelRepository) Create(ctx context.Context, model *secondary.ModelRecord) error {
	if _, ok := m.models[model.ID]; ok {
		return fmt.Errorf("model %s exists", model.ID)
	}
	m.models[model.ID] = model
	m.order = append(m.order, model.ID)
	return nil
}

func (m *mockModelRepository) GetByID(ctx context.Context, id string) (*secondary.ModelRecord, error) {
	model, ok := m.models[id]
	if !ok {
		return nil, fmt.Errorf("model %s not found", id)
	}
	return model, nil
}

func (m *mockModelRepository) List(ctx context.Context, filters secondary.ModelFilters) ([]*secondary.ModelRecord, error) {
	var out []*secondary.ModelRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		if filters.Limit > 0 && len(out) == filters.Limit {
			break
		}
		out = append(out, m.models[m.order[i]])
	}
	return out, nil
}

func (m *mockModelRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.models[id]; !ok {
		return fmt.Errorf("model %s not found", id)
	}
	delete(m.models, id)
	delete(m.analyses, id)
	return nil
}

func (m *mockModelRepository) SaveAnalysis(ctx context.Context, analysis *secondary.AnalysisRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	model, ok := m.models[analysis.Model.ID]
	if !ok {
		return fmt.Errorf("model %s not found", analysis.Model.ID)
	}
	model.PDB = analysis.Model.PDB
	model.IsReduced = analysis.Model.IsReduced
	model.ClashScoreAll = analysis.Model.ClashScoreAll
	model.ClashScoreBlt40 = analysis.Model.ClashScoreBlt40
	m.analyses[model.ID] = analysis
	m.saved++
	return nil
}

func (m *mockModelRepository) GetAnalysis(ctx context.Context, modelID string) (*secondary.AnalysisRecord, error) {
	model, ok := m.models[modelID]
	if !ok {
		return nil, fmt.Errorf("model %s not found", modelID)
	}
	a, ok := m.analyses[modelID]
	if !ok {
		return &secondary.AnalysisRecord{Model: *model, Artifacts: map[string]string{}}, nil
	}
	out := *a
	out.Model = *model
	return &out, nil
}

// mockProgressObserver records every notification.
type mockProgressObserver struct {
	mu     sync.Mutex
	stages []string
}

func (m *mockProgressObserver) StageStarted(ctx context.Context, modelID, stage, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stages = append(m.stages, stage)
}

// mockProgressRepository keeps the current stage per model.
type mockProgressRepository struct {
	stages    map[string]string
	recordErr error
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{stages: make(map[string]string)}
}

func (m *mockProgressRepository) Record(ctx context.Context, modelID, stage string) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.stages[modelID] = stage
	return nil
}

func (m *mockProgressRepository) Get(ctx context.Context, modelID string) (string, error) {
	return m.stages[modelID], nil
}

// mockJobRepository keeps jobs in memory.
type mockJobRepository struct {
	jobs  map[string]*secondary.JobRecord
	order []string
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{jobs: make(map[string]*secondary.JobRecord)}
}

func (m *mockJobRepository) Create(ctx context.Context, job *secondary.JobRecord) error {
	m.jobs[job.ID] = job
	m.order = append(m.order, job.ID)
	return nil
}

func (m *mockJobRepository) GetByID(ctx context.Context, id string) (*secondary.JobRecord, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s not found", id)
	}
	return job, nil
}

func (m *mockJobRepository) List(ctx context.Context) ([]*secondary.JobRecord, error) {
	var out []*secondary.JobRecord
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.jobs[m.order[i]])
	}
	return out, nil
}

func (m *mockJobRepository) UpdateStatus(ctx context.Context, id, status string) error {
	job, ok := m.jobs[id]
	if !ok {
		return fmt.Errorf("job %s not found", id)
	}
	job.Status = status
	return nil
}

// mockJobLauncher tracks live sessions.
type mockJobLauncher struct {
	sessions  map[string][]string
	launchErr error
	killed    []string
}

func newMockJobLauncher() *mockJobLauncher {
	return &mockJobLauncher{sessions: make(map[string][]string)}
}

func (m *mockJobLauncher) Launch(ctx context.Context, session, workDir string, argv []string) error {
	if m.launchErr != nil {
		return m.launchErr
	}
	m.sessions[session] = argv
	return nil
}

func (m *mockJobLauncher) SessionExists(ctx context.Context, session string) bool {
	_, ok := m.sessions[session]
	return ok
}

func (m *mockJobLauncher) KillSession(ctx context.Context, session string) error {
	if _, ok := m.sessions[session]; !ok {
		return fmt.Errorf("session %s not found", session)
	}
	delete(m.sessions, session)
	m.killed = append(m.killed, session)
	return nil
}

func (m *mockJobLauncher) AttachInstructions(session string) string {
	return "tmux attach -t " + session
}

// recordingExecutor remembers every effect before handing it to next.
type recordingExecutor struct {
	next    EffectExecutor
	effects []effects.Effect
}

func (r *recordingExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	r.effects = append(r.effects, effs...)
	return r.next.Execute(ctx, effs)
}
