package inspect

import (
	"testing"

	"github.com/mdouchement/dumpsg/internal/exiterror"
	"github.com/mdouchement/dumpsg/internal/model"
	"github.com/mdouchement/logger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	entries  int64
	elements []Element
}

func (s *fakeSource) Name() string        { return "fake" }
func (s *fakeSource) Files() []string     { return []string{"aod.pool.root"} }
func (s *fakeSource) Entries() int64      { return s.entries }
func (s *fakeSource) Elements() []Element { return s.elements }
func (s *fakeSource) Close() error        { return nil }

func newSource() *fakeSource {
	return &fakeSource{
		entries: 42,
		elements: []Element{
			{Name: "EventInfo", TypeName: "xAOD::EventInfo_v1"},
			{Name: "EventInfoAux.", TypeName: "xAOD::EventAuxInfo_v1"},
			{Name: "EventInfoAux.runNumber", TypeName: "unsigned int"},
			{Name: "AntiKt4EMTopoJets", TypeName: "DataVector<xAOD::Jet_v1>"},
			{Name: "AntiKt4EMTopoJetsAux.", TypeName: "xAOD::JetAuxContainer_v1"},
			{Name: "AntiKt4EMTopoJetsAux.pt", TypeName: "vector<float>"},
			{Name: "AntiKt4EMTopoJetsAux.eta", TypeName: "vector<float>"},
			{Name: "AntiKt4EMTopoJetsAuxDyn.Width", TypeName: "vector<float>"},
			{Name: "AntiKt4EMTopoJetsAuxDyn.btaggingLink", TypeName: "vector<ElementLink<DataVector<xAOD::BTagging_v1> > >"},
			{Name: "TauJets", TypeName: "DataVector<xAOD::TauJet_v2>"},
			{Name: "TauJetsAux.", TypeName: "xAOD::TauJetAuxContainer_v2"},
			{Name: "TruthEvents", TypeName: "DataVector<xAOD::TruthEvent_v1>"},
			{Name: "xTrigDecision:Something.", TypeName: "int"},
		},
	}
}

func newInspector() *Inspector {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return &Inspector{Logger: logger.WrapLogrus(log)}
}

func TestInspect(t *testing.T) {
	inventory := newInspector().Inspect(newSource(), "CollectionTree")

	assert.Equal(t, int64(42), inventory.Entries)
	assert.Equal(t, "CollectionTree", inventory.Tree)
	assert.Equal(t, []string{"AntiKt4EMTopoJets", "EventInfo", "TauJets", "TruthEvents"}, inventory.Names())

	jets := inventory.Containers["AntiKt4EMTopoJets"]
	assert.Equal(t, "xAOD::JetContainer", jets.Type)
	assert.True(t, jets.HasAux)
	require.Len(t, jets.Props, 3)
	assert.Equal(t, "pt", jets.Props[0].Name)
	assert.Equal(t, "float", jets.Props[0].Type)
	assert.Equal(t, "AntiKt4EMTopoJetsAux.pt", jets.Props[0].Branch)
	assert.Equal(t, "btagging", jets.Props[2].Name)
	assert.Equal(t, "xAOD::BTagging *", jets.Props[2].Type)
	require.Len(t, jets.Attrs, 1)
	assert.Equal(t, "Width", jets.Attrs[0].Name)

	info := inventory.Containers["EventInfo"]
	assert.Equal(t, "xAOD::EventInfo", info.Type)
	assert.Equal(t, "unsigned int", info.Props[0].Type)

	truth := inventory.Containers["TruthEvents"]
	assert.Equal(t, "DataVector<xAOD::TruthEvent>", truth.Type)
	assert.False(t, truth.HasAux)
}

func TestFilter_Type(t *testing.T) {
	inventory := newInspector().Inspect(newSource(), "CollectionTree")

	f, err := NewFilter(FilterOptions{Type: "Jet*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AntiKt4EMTopoJets"}, f.Apply(inventory).Names())

	f, err = NewFilter(FilterOptions{Type: "*Jet*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AntiKt4EMTopoJets", "TauJets"}, f.Apply(inventory).Names())

	f, err = NewFilter(FilterOptions{Type: "xAOD::TauJetContainer"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TauJets"}, f.Apply(inventory).Names())
}

func TestFilter_Container(t *testing.T) {
	inventory := newInspector().Inspect(newSource(), "CollectionTree")

	f, err := NewFilter(FilterOptions{Container: "AntiKt4*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AntiKt4EMTopoJets"}, f.Apply(inventory).Names())

	f, err = NewFilter(FilterOptions{Container: "*Jets"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AntiKt4EMTopoJets", "TauJets"}, f.Apply(inventory).Names())

	f, err = NewFilter(FilterOptions{Container: "Jets"})
	require.NoError(t, err)
	assert.Equal(t, 0, f.Apply(inventory).Len())
}

func TestFilter_HasAux(t *testing.T) {
	inventory := newInspector().Inspect(newSource(), "CollectionTree")

	f, err := NewFilter(FilterOptions{})
	require.NoError(t, err)
	all := f.Apply(inventory)

	f, err = NewFilter(FilterOptions{HasAux: true})
	require.NoError(t, err)
	withAux := f.Apply(inventory)

	assert.Less(t, withAux.Len(), all.Len())
	for name, c := range withAux.Containers {
		assert.True(t, c.HasAux, name)
		assert.Contains(t, all.Containers, name)
	}
	assert.NotContains(t, withAux.Containers, "TruthEvents")
}

func TestFilter_Variables(t *testing.T) {
	inventory := newInspector().Inspect(newSource(), "CollectionTree")

	f, err := NewFilter(FilterOptions{Container: "AntiKt4EMTopoJets"})
	require.NoError(t, err)
	jets := f.Apply(inventory).Containers["AntiKt4EMTopoJets"]
	assert.Nil(t, jets.Props)
	assert.Nil(t, jets.Attrs)

	f, err = NewFilter(FilterOptions{Container: "AntiKt4EMTopoJets", Properties: true})
	require.NoError(t, err)
	jets = f.Apply(inventory).Containers["AntiKt4EMTopoJets"]
	assert.Len(t, jets.Props, 3)
	assert.Nil(t, jets.Attrs)

	// The source inventory is left untouched.
	assert.Len(t, inventory.Containers["AntiKt4EMTopoJets"].Attrs, 1)
}

func TestFilter_InvalidPattern(t *testing.T) {
	_, err := NewFilter(FilterOptions{Container: "Jet[a-cx-z]"})
	assert.Error(t, err)
	assert.Equal(t, exiterror.CodeUsage, exiterror.StatusCode(err))
}

func TestFilter_LiteralCharacters(t *testing.T) {
	for pattern, name := range map[string]string{
		"Jets{":       "Jets{",
		"{Jets,Taus}": "{Jets,Taus}",
		`Jets\*`:      `Jets\Truth`,
		"Jet[":        "Jet[",
		"Jets]":       "Jets]",
		"Jet[]s]":     "Jet]",
		`Jet[\s]`:     `Jet\`,
		"Jet[!a-r]":   "Jets",
		"Jet[a-r]":    "Jetq",
	} {
		f, err := NewFilter(FilterOptions{Container: pattern})
		require.NoError(t, err, pattern)
		assert.True(t, f.Match(&model.Container{Name: name}), pattern)
	}

	f, err := NewFilter(FilterOptions{Container: "{Jets,Taus}"})
	require.NoError(t, err)
	assert.False(t, f.Match(&model.Container{Name: "Jets"}))
}
