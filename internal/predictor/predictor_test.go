package predictor

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/idlab-discover/EconCluster-cli/internal/apperr"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact"
	"github.com/idlab-discover/EconCluster-cli/internal/artifact/artifacttest"
	"github.com/idlab-discover/EconCluster-cli/internal/label"
	"github.com/idlab-discover/EconCluster-cli/internal/schema"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newPredictor(t *testing.T, sch *schema.Schema) *Predictor {
	t.Helper()
	labels, err := label.NewResolver(label.Defaults())
	require.NoError(t, err)
	p, err := New(sch, artifacttest.Store(t, sch), labels)
	require.NoError(t, err)
	return p
}

func uniform(v float64) map[string]float64 {
	return map[string]float64{
		"SafetySecurity":   v,
		"Governance":       v,
		"EconomicQuality":  v,
		"LivingConditions": v,
	}
}

func TestPredict_ReferenceScenario(t *testing.T) {
	p := newPredictor(t, schema.Core())

	res, err := p.Predict(uniform(5))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, res.StandardizedVector)
	assert.Equal(t, []float64{5, 5, 5, 5}, res.RawVector)
	assert.Equal(t, 1, res.ClusterID)
	assert.Equal(t, "Emerging/Berkembang", res.Label)
	assert.Equal(t, []float64{16, 0, 16}, res.Distances)
	assert.NotEmpty(t, res.RequestID)
	assert.Empty(t, res.Defaulted)
}

func TestPredict_BoundaryScenario(t *testing.T) {
	p := newPredictor(t, schema.Core())

	res, err := p.Predict(uniform(9))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 2}, res.StandardizedVector)
	assert.Equal(t, 2, res.ClusterID)
	assert.Equal(t, "Advanced/Maju", res.Label)
	assert.Equal(t, 0.0, res.Distances[2])
}

func TestPredict_LowScores(t *testing.T) {
	p := newPredictor(t, schema.Core())

	res, err := p.Predict(uniform(0))
	require.NoError(t, err)
	assert.Equal(t, 0, res.ClusterID)
	assert.Equal(t, "Developing/Tertinggal", res.Label)
	assert.Equal(t, "Negara dengan Ekonomi Tertinggal", res.Description)
}

func TestPredict_AlwaysInRange(t *testing.T) {
	p := newPredictor(t, schema.Core())
	for v := 0.0; v <= 10.0; v += 0.5 {
		raw := uniform(v)
		raw["Governance"] = 10 - v

		res, err := p.Predict(raw)
		require.NoError(t, err, "v=%v", v)
		assert.GreaterOrEqual(t, res.ClusterID, 0)
		assert.Less(t, res.ClusterID, p.Model().K)
	}
}

func TestPredict_Deterministic(t *testing.T) {
	p := newPredictor(t, schema.Core())
	raw := map[string]float64{"SafetySecurity": 3.3, "Governance": 7.1, "EconomicQuality": 4.4, "LivingConditions": 8.9}

	a, err := p.Predict(raw)
	require.NoError(t, err)
	b, err := p.Predict(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b, cmpopts.IgnoreFields(Result{}, "RequestID")); diff != "" {
		t.Fatalf("results differ (-first +second):\n%s", diff)
	}
	assert.NotEqual(t, a.RequestID, b.RequestID)
}

func TestPredict_ValidationFailsAtBuildStage(t *testing.T) {
	p := newPredictor(t, schema.Core())

	for _, bad := range []float64{-0.1, 10.1} {
		raw := uniform(5)
		raw["LivingConditions"] = bad

		res, err := p.Predict(raw)
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Equal(t, apperr.StageBuild, apperr.FailedStage(err))
		assert.True(t, apperr.IsRequest(err))

		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "LivingConditions", ve.Feature)
		assert.Equal(t, 0.0, ve.Min)
		assert.Equal(t, 10.0, ve.Max)
	}

	for _, ok := range []float64{0, 10} {
		raw := uniform(5)
		raw["LivingConditions"] = ok
		_, err := p.Predict(raw)
		assert.NoError(t, err)
	}
}

func TestPredict_OptionalFeatureDefaultsToZero(t *testing.T) {
	p := newPredictor(t, schema.Full())

	raw := uniform(5)
	res, err := p.Predict(raw)
	require.NoError(t, err)
	require.Len(t, res.RawVector, 12)
	assert.Len(t, res.Defaulted, 8)

	_, hi, _ := p.Schema().Lookup("Health")
	assert.Equal(t, 0.0, res.RawVector[hi])
	// 0 sits 2.5 scales below the mean and pulls the request towards cluster 0.
	assert.Equal(t, -2.5, res.StandardizedVector[hi])
	assert.Equal(t, 0, res.ClusterID)

	// Supplying the optional indicators at the mean moves it back to the centre.
	for _, name := range res.Defaulted {
		raw[name] = 5
	}
	res, err = p.Predict(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ClusterID)
	assert.Empty(t, res.Defaulted)
}

func TestPredict_StageErrorsAfterBuild(t *testing.T) {
	good := newPredictor(t, schema.Core())

	// A scaler with fewer features than the schema fails at standardization.
	broken := *good
	broken.scaling = &artifact.Scaling{Features: good.scaling.Features[:3]}
	_, err := broken.Predict(uniform(5))
	assert.Equal(t, apperr.StageStandardize, apperr.FailedStage(err))
	assert.ErrorIs(t, err, apperr.ErrDimensionMismatch)

	// A label table smaller than K fails at resolution.
	small, err := label.NewResolver(label.Defaults()[:2])
	require.NoError(t, err)
	broken = *good
	broken.labels = small
	_, err = broken.Predict(uniform(9))
	assert.Equal(t, apperr.StageResolve, apperr.FailedStage(err))
	assert.ErrorIs(t, err, apperr.ErrUnknownCluster)
}

func TestNew_FatalErrors(t *testing.T) {
	sch := schema.Core()
	labels, err := label.NewResolver(label.Defaults())
	require.NoError(t, err)

	_, err = New(sch, artifact.NewStore(artifact.Options{ScalerPath: "nope.json", CentroidsPath: "nope.json"}), labels)
	assert.ErrorIs(t, err, apperr.ErrArtifactMissing)

	two, err := label.NewResolver(label.Defaults()[:2])
	require.NoError(t, err)
	p := artifacttest.WriteExample(t, sch, ".json")
	_, err = New(sch, artifact.NewStore(artifact.Options{ScalerPath: p.Scaler, CentroidsPath: p.Centroids}), two)
	assert.ErrorIs(t, err, apperr.ErrArtifactCorrupt)
	assert.Contains(t, err.Error(), "label table has 2")

	// Artifacts fitted on the full schema do not fit the core one.
	full := artifacttest.WriteExample(t, schema.Full(), ".json")
	_, err = New(sch, artifact.NewStore(artifact.Options{ScalerPath: full.Scaler, CentroidsPath: full.Centroids}), labels)
	assert.ErrorIs(t, err, apperr.ErrArtifactCorrupt)
}

func TestPredict_ConcurrentReaders(t *testing.T) {
	p := newPredictor(t, schema.Core())
	want, err := p.Predict(uniform(7))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Predict(uniform(7))
			if err != nil {
				errs <- err
				return
			}
			if got.ClusterID != want.ClusterID || !cmp.Equal(got.StandardizedVector, want.StandardizedVector) {
				errs <- errors.New("concurrent prediction differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestPredict_Logs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	t.Cleanup(func() { SetLogger(nil) })

	p := newPredictor(t, schema.Core())
	p.newID = func() string { return "req-42" }

	_, err := p.Predict(uniform(5))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "request=req-42 cluster=1")

	raw := uniform(5)
	raw["Governance"] = 11
	_, err = p.Predict(raw)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "build failed")
}
