package dumper

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mdouchement/dumpsg/internal/config"
	"github.com/mdouchement/dumpsg/internal/database"
	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/inspect"
	"github.com/mdouchement/dumpsg/internal/report"
	"github.com/mdouchement/dumpsg/internal/storage"
	"github.com/mdouchement/logger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	files []string
}

func (s *fakeSource) Name() string    { return "fake" }
func (s *fakeSource) Files() []string { return s.files }
func (s *fakeSource) Entries() int64  { return 42 }
func (s *fakeSource) Close() error    { return nil }

func (s *fakeSource) Elements() []inspect.Element {
	return []inspect.Element{
		{Name: "EventInfo", TypeName: "xAOD::EventInfo_v1"},
		{Name: "EventInfoAux.", TypeName: "xAOD::EventAuxInfo_v1"},
		{Name: "EventInfoAux.runNumber", TypeName: "unsigned int"},
		{Name: "AntiKt4EMTopoJets", TypeName: "DataVector<xAOD::Jet_v1>"},
		{Name: "AntiKt4EMTopoJetsAux.", TypeName: "xAOD::JetAuxContainer_v1"},
		{Name: "AntiKt4EMTopoJetsAux.pt", TypeName: "vector<float>"},
		{Name: "AntiKt4EMTopoJetsAuxDyn.Width", TypeName: "vector<float>"},
		{Name: "TauJets", TypeName: "DataVector<xAOD::TauJet_v2>"},
		{Name: "TauJetsAux.", TypeName: "xAOD::TauJetAuxContainer_v2"},
		{Name: "TruthEvents", TypeName: "DataVector<xAOD::TruthEvent_v1>"},
	}
}

func (s *fakeSource) Read(element string) (*inspect.Values, error) {
	switch element {
	case "EventInfoAux.runNumber":
		return &inspect.Values{Entries: 2, Items: 2, Bytes: 8, Data: []float64{1, 1}}, nil
	case "AntiKt4EMTopoJetsAux.pt":
		return &inspect.Values{Entries: 2, Items: 5, Bytes: 20, Data: []float64{10, 20, 30, 40, 50}}, nil
	}
	return nil, errors.Errorf("unsupported element %q", element)
}

type fixture struct {
	ctrl    Controller
	stdout  *bytes.Buffer
	output  string
	reports string
	opened  int
}

func setup(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	dir := t.TempDir()
	input := filepath.Join(dir, "aod.pool.root")
	require.NoError(t, os.WriteFile(input, []byte("fake"), 0644))

	f := &fixture{
		stdout:  &bytes.Buffer{},
		output:  filepath.Join(dir, "out"),
		reports: filepath.Join(dir, "report"),
	}

	opts := config.Default()
	opts.Inputs = []string{input}
	opts.Output = "xAOD_Info.dump"
	opts.Format = "json"

	f.ctrl = Controller{
		Logger:  logger.WrapLogrus(log),
		Output:  storage.NewFileSystem(f.output),
		Reports: storage.NewFileSystem(f.reports),
		Stdout:  f.stdout,
		Options: opts,
		Open: func(tree string, paths ...string) (inspect.Source, error) {
			f.opened++
			return &fakeSource{files: paths}, nil
		},
	}
	return f
}

func (f *fixture) dump(t *testing.T) map[string]map[string]interface{} {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(f.output, "xAOD_Info.dump"))
	require.NoError(t, err)

	m := map[string]map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestRun(t *testing.T) {
	f := setup(t)

	require.NoError(t, Run(f.ctrl))
	assert.Equal(t, "Number of input events: 42\n", f.stdout.String())

	m := f.dump(t)
	assert.Len(t, m, 4)
	assert.Equal(t, "xAOD::JetContainer", m["AntiKt4EMTopoJets"]["type"])
	assert.NotContains(t, m["AntiKt4EMTopoJets"], "prop")
}

func TestRun_HasAux(t *testing.T) {
	f := setup(t)
	require.NoError(t, Run(f.ctrl))
	all := f.dump(t)

	f.ctrl.Options.HasAux = true
	require.NoError(t, Run(f.ctrl))
	withAux := f.dump(t)

	assert.Less(t, len(withAux), len(all))
	assert.NotContains(t, withAux, "TruthEvents")
	for name := range withAux {
		assert.Contains(t, all, name)
	}
}

func TestRun_Filters(t *testing.T) {
	f := setup(t)
	f.ctrl.Options.Type = "Jet*"
	f.ctrl.Options.Properties = true

	require.NoError(t, Run(f.ctrl))

	m := f.dump(t)
	require.Len(t, m, 1)
	assert.Len(t, m["AntiKt4EMTopoJets"]["prop"], 1)
}

func TestRun_Size(t *testing.T) {
	f := setup(t)
	f.ctrl.Options.Size = true
	f.ctrl.Options.Properties = true

	require.NoError(t, Run(f.ctrl))
	assert.Contains(t, f.stdout.String(), "AntiKt4EMTopoJets")

	m := f.dump(t)
	size := m["AntiKt4EMTopoJets"]["size"].(map[string]interface{})
	assert.Equal(t, 20.0, size["bytes"])
	assert.Equal(t, 5.0, size["items"])

	prop := m["AntiKt4EMTopoJets"]["prop"].([]interface{})[0].(map[string]interface{})
	assert.Contains(t, prop, "size")
}

func TestRun_Report(t *testing.T) {
	f := setup(t)
	f.ctrl.Options.Report = true

	require.NoError(t, Run(f.ctrl))

	_, err := os.Stat(filepath.Join(f.reports, "AntiKt4EMTopoJets", "pt.pdf"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(f.reports, report.SummaryFilename))
	require.NoError(t, err)

	var stats []report.Stats
	require.NoError(t, json.Unmarshal(data, &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "runNumber", stats[0].Variable)
	assert.Equal(t, report.NoRMS, stats[0].Status)
	assert.Equal(t, "pt", stats[1].Variable)
	assert.Equal(t, report.OK, stats[1].Status)
}

func TestRun_Cache(t *testing.T) {
	f := setup(t)

	db, err := database.StormOpen(filepath.Join(t.TempDir(), "dumpsg.db"))
	require.NoError(t, err)
	defer db.Close()
	f.ctrl.Database = db

	require.NoError(t, Run(f.ctrl))
	require.NoError(t, Run(f.ctrl))
	assert.Equal(t, 1, f.opened)
	assert.Equal(t, 2, strings.Count(f.stdout.String(), "Number of input events: 42"))

	inventories, err := db.ListInventories()
	require.NoError(t, err)
	assert.Len(t, inventories, 1)
}

func TestRun_Errors(t *testing.T) {
	f := setup(t)
	f.ctrl.Options.Format = "xml"
	assert.Equal(t, exiterror.CodeUsage, exiterror.StatusCode(Run(f.ctrl)))

	f = setup(t)
	f.ctrl.Options.Container = "Jet[a-cx-z]"
	assert.Equal(t, exiterror.CodeUsage, exiterror.StatusCode(Run(f.ctrl)))

	f = setup(t)
	f.ctrl.Options.Report = true
	f.ctrl.Options.NoRMS = "not-a-color"
	assert.Equal(t, exiterror.CodeUsage, exiterror.StatusCode(Run(f.ctrl)))

	f = setup(t)
	f.ctrl.Open = nil
	f.ctrl.Options.Inputs = []string{filepath.Join(t.TempDir(), "missing.root")}
	assert.Equal(t, exiterror.CodeFileOpen, exiterror.StatusCode(Run(f.ctrl)))
}

func TestRun_CacheMissingFile(t *testing.T) {
	f := setup(t)

	db, err := database.StormOpen(filepath.Join(t.TempDir(), "dumpsg.db"))
	require.NoError(t, err)
	defer db.Close()
	f.ctrl.Database = db
	f.ctrl.Open = nil
	f.ctrl.Options.Inputs = []string{filepath.Join(t.TempDir(), "missing.root")}

	assert.Equal(t, exiterror.CodeFileOpen, exiterror.StatusCode(Run(f.ctrl)))
}
