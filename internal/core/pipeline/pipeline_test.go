package pipeline

import (
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/sdezurik/MolProbity/internal/core/effects"
	"github.com/sdezurik/MolProbity/internal/core/summary"
	"github.com/sdezurik/MolProbity/internal/core/validation"
)

func TestPlan(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		reduced bool
		want    []Stage
	}{
		{
			name: "nothing requested",
			opts: Options{},
			want: nil,
		},
		{
			name: "all on unreduced model",
			opts: Options{All: true},
			want: Order,
		},
		{
			name:    "all on reduced model skips reduce",
			opts:    Options{All: true},
			reduced: true,
			want:    Order[1:],
		},
		{
			name: "multichart pulls in every analyzer",
			opts: Options{MultiChart: true},
			want: []Stage{StageReduce, StageCbeta, StageRotamer, StageRama, StageClash, StageMultiChart},
		},
		{
			name: "multikin needs rotamer and rama",
			opts: Options{MultiKin: true},
			want: []Stage{StageReduce, StageRotamer, StageRama, StageMultiKin},
		},
		{
			name: "rama alone",
			opts: Options{Rama: true},
			want: []Stage{StageRama, StageRamaPlot},
		},
		{
			name: "cbeta alone",
			opts: Options{Cbeta: true},
			want: []Stage{StageCbeta, StageCbetaKin},
		},
		{
			name:    "contacts on reduced model",
			opts:    Options{AAC: true},
			reduced: true,
			want:    []Stage{StageClash, StageAACKin},
		},
		{
			name: "rotamer alone",
			opts: Options{Rota: true},
			want: []Stage{StageRotamer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Plan(tt.opts, tt.reduced)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Plan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlan_FollowsOrder(t *testing.T) {
	// any subset of options yields stages in Order's relative order
	for mask := 0; mask < 1<<7; mask++ {
		opts := Options{
			All: mask&1 != 0, Rama: mask&2 != 0, Rota: mask&4 != 0, Cbeta: mask&8 != 0,
			AAC: mask&16 != 0, MultiKin: mask&32 != 0, MultiChart: mask&64 != 0,
		}
		got := Plan(opts, false)
		last := -1
		for _, s := range got {
			i := slices.Index(Order, s)
			if i <= last {
				t.Fatalf("mask %d: stage %q out of order in %v", mask, s, got)
			}
			last = i
		}
		if opts.Any() != (len(got) > 0) {
			t.Errorf("mask %d: Any() = %v but plan has %d stages", mask, opts.Any(), len(got))
		}
	}
}

func TestReportPlan(t *testing.T) {
	all := ReportCriteria{Clash: true, Cbeta: true, Rotamer: true, Rama: true, Omega: true, Geometry: true}
	want := []Stage{StageClash, StageCbeta, StageRotamer, StageRama, StageOmega, StageGeometry}
	if got := ReportPlan(all); !slices.Equal(got, want) {
		t.Errorf("ReportPlan(all) = %v, want %v", got, want)
	}
	if got := ReportPlan(ReportCriteria{Omega: true}); !slices.Equal(got, []Stage{StageOmega}) {
		t.Errorf("ReportPlan(omega) = %v", got)
	}
}

func TestResolve(t *testing.T) {
	got := Resolve(
		[]string{"java", "-cp", "{lib}/hless.jar", "hless.Rotamer", "-raw", "{input}", "--blength={blength}"},
		map[string]string{PlaceholderInput: "/m/1abcH.pdb", PlaceholderLib: "/opt/mp/lib", PlaceholderBLength: "ecloud"},
	)
	want := []string{"java", "-cp", "/opt/mp/lib/hless.jar", "hless.Rotamer", "-raw", "/m/1abcH.pdb", "--blength=ecloud"}
	if !slices.Equal(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func testInput() StageInput {
	return StageInput{
		PDB:         "/data/MODEL-1/1abc.pdb",
		Dir:         "/data/MODEL-1",
		Prefix:      "1abc",
		HBondLength: "nuclear",
		LibDir:      "/opt/mp/lib",
		Tools: map[string][]string{
			"clash":    {"clashlist", "{input}", "40", "10", "{blength}"},
			"geometry": {"mp_geo", "pdb={input}", "out_file={output}"},
		},
	}
}

func TestStageEffects_CapturesStdout(t *testing.T) {
	effs := StageEffects(StageClash, testInput())
	if len(effs) != 1 {
		t.Fatalf("got %d effects, want 1", len(effs))
	}
	exec, ok := effs[0].(effects.ExecEffect)
	if !ok {
		t.Fatalf("effect = %T, want ExecEffect", effs[0])
	}
	wantArgv := []string{"clashlist", "/data/MODEL-1/1abc.pdb", "40", "10", "nuclear"}
	if !slices.Equal(exec.Argv, wantArgv) {
		t.Errorf("Argv = %v, want %v", exec.Argv, wantArgv)
	}
	if exec.StdoutPath != filepath.Join("/data/MODEL-1", "1abcclash.data") {
		t.Errorf("StdoutPath = %q", exec.StdoutPath)
	}
	if exec.Dir != "/data/MODEL-1" || exec.Tool != "clash" {
		t.Errorf("Dir/Tool = %q/%q", exec.Dir, exec.Tool)
	}
}

func TestStageEffects_ToolWritesOutput(t *testing.T) {
	effs := StageEffects(StageGeometry, testInput())
	exec := effs[0].(effects.ExecEffect)
	if exec.StdoutPath != "" {
		t.Errorf("StdoutPath = %q, want empty", exec.StdoutPath)
	}
	if exec.Argv[2] != "out_file="+filepath.Join("/data/MODEL-1", "1abcgeom.data") {
		t.Errorf("Argv = %v", exec.Argv)
	}
}

func TestStageEffects_MissingTool(t *testing.T) {
	effs := StageEffects(StageRotamer, testInput())
	if len(effs) != 2 {
		t.Fatalf("got %d effects, want 2", len(effs))
	}
	log, ok := effs[0].(effects.LogEffect)
	if !ok || log.Level != effects.LevelWarn {
		t.Errorf("first effect = %+v, want warn log", effs[0])
	}
	file, ok := effs[1].(effects.FileEffect)
	if !ok || file.Operation != effects.FileWrite || len(file.Content) != 0 {
		t.Errorf("second effect = %+v, want empty write", effs[1])
	}
	if !strings.HasSuffix(file.Path, "1abcrota.data") {
		t.Errorf("path = %q", file.Path)
	}
}

func TestStageEffects_MultiChart(t *testing.T) {
	b := validation.NewOutlierMapBuilder()
	b.Set("A   5 ALA", validation.Severity{Value: 0.55})
	in := testInput()
	in.Outliers = map[validation.Criterion]validation.OutlierMap{validation.CriterionClash: b.Build()}

	effs := StageEffects(StageMultiChart, in)
	file, ok := effs[0].(effects.FileEffect)
	if !ok {
		t.Fatalf("effect = %T, want FileEffect", effs[0])
	}
	if file.Path != filepath.Join("/data/MODEL-1", "1abcmulti.csv") {
		t.Errorf("path = %q", file.Path)
	}
	if string(file.Content) != "#residue,clash,count\nA   5 ALA,0.55,1\n" {
		t.Errorf("content = %q", file.Content)
	}
}

func TestStageEffects_None(t *testing.T) {
	effs := StageEffects(StageNone, testInput())
	if len(effs) != 1 || effs[0].EffectType() != "none" {
		t.Errorf("effects = %+v", effs)
	}
}

func TestCriteria(t *testing.T) {
	if got := Criteria(StageGeometry); !slices.Equal(got, []validation.Criterion{validation.CriterionBond, validation.CriterionAngle}) {
		t.Errorf("Criteria(geometry) = %v", got)
	}
	if got := Criteria(StageMultiKin); got != nil {
		t.Errorf("Criteria(multiKin) = %v, want nil", got)
	}
}

func TestModelAnalysisState(t *testing.T) {
	s := NewModelAnalysisState("MODEL-1", "/data/MODEL-1", "/data/MODEL-1/1abc.pdb", "1abc", false)

	s.Complete(StageCbeta)
	if s.Artifacts[StageCbeta] != filepath.Join("/data/MODEL-1", "1abccbdev.data") {
		t.Errorf("cbeta artifact = %q", s.Artifacts[StageCbeta])
	}

	s.UseReduced()
	if s.IsReduced || s.PDB != "/data/MODEL-1/1abc.pdb" {
		t.Error("UseReduced before reduce completed should not switch coordinates")
	}

	s.Complete(StageReduce)
	s.UseReduced()
	if !s.IsReduced || s.PDB != filepath.Join("/data/MODEL-1", "1abcH.pdb") {
		t.Errorf("after reduce: reduced=%v pdb=%q", s.IsReduced, s.PDB)
	}

	in := s.Input(map[string][]string{"cbeta": {"prekin"}}, "ecloud", "/lib")
	if in.PDB != s.PDB || in.Prefix != "1abc" || in.HBondLength != "ecloud" || in.LibDir != "/lib" {
		t.Errorf("Input() = %+v", in)
	}

	s.Complete(StageNone)
	if _, ok := s.Artifacts[StageNone]; ok {
		t.Error("StageNone has no artifact")
	}
}

func TestClassify_Clash(t *testing.T) {
	output := []byte(":atom1:A   5 ALA :A  10 GLY :0.55:...\nsum::1.23:0.98\n")

	res := Classify(StageClash, output)
	if res.ClashScore == nil || res.ClashScore.All != 1.23 || res.ClashScore.Blt40 != 0.98 {
		t.Fatalf("ClashScore = %+v", res.ClashScore)
	}
	clash := res.Outliers[validation.CriterionClash]
	if clash.Len() != 2 || !clash.Has("A   5 ALA") || !clash.Has("A  10 GLY") {
		t.Errorf("clash outliers = %v", clash.Keys())
	}

	again := Classify(StageClash, output)
	if !again.Outliers[validation.CriterionClash].Equal(clash) {
		t.Error("re-parsing the same output changed the outlier map")
	}

	s := NewModelAnalysisState("MODEL-1", "/d", "/d/x.pdb", "x", true)
	s.Apply(res)
	if s.ClashScore.All != 1.23 || !s.Outliers[validation.CriterionClash].Equal(clash) {
		t.Errorf("state after Apply = %+v", s)
	}
}

func TestClassify_EmptyOutput(t *testing.T) {
	for _, stage := range []Stage{StageCbeta, StageRotamer, StageRama, StageClash, StageOmega, StageGeometry} {
		res := Classify(stage, nil)
		for _, c := range Criteria(stage) {
			m, ok := res.Outliers[c]
			if !ok || m.Len() != 0 {
				t.Errorf("%s: criterion %s = %v (present=%v), want empty map", stage, c, m.Keys(), ok)
			}
		}
	}
	if res := Classify(StageMultiKin, []byte("@kinemage")); len(res.Outliers) != 0 {
		t.Errorf("kinemage stage produced outliers: %v", res.Outliers)
	}
}

func TestCollect(t *testing.T) {
	var f summary.Findings

	Collect(StageClash, []byte(":atom1:A   5 ALA :A  10 GLY :0.55:...\nsum::1.23:0.98\n"), &f)
	Collect(StageRotamer, []byte("residue:score%:chi1:chi2:chi3:chi4:evaluation:rotamer\nA  10 LEU:0.5:60.1:170.2:::OUTLIER:OUTLIER\n"), &f)
	Collect(StageMultiKin, []byte("@kinemage"), &f)

	if r, ok := f.Clash["A   5 ALA"]; !ok || r.MaxOverlap != 0.55 {
		t.Errorf("clash = %+v", f.Clash)
	}
	if r, ok := f.Rotamer["A  10 LEU"]; !ok || !r.LabelledOutlier() {
		t.Errorf("rotamer = %+v", f.Rotamer)
	}
	if f.Rama != nil || f.Omega != nil || f.Bonds != nil {
		t.Error("stages that did not run should leave their maps nil")
	}
	if got := f.Tally("A  10 LEU"); got.Combined != 1 {
		t.Errorf("tally = %+v", got)
	}
}
