package ml

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"mechalung/config"
	"mechalung/internal/domain/entity"
	"mechalung/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelFile(t *testing.T, file modelFile) string {
	t.Helper()

	raw, err := json.Marshal(file)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	return path
}

func testModel(t *testing.T, intercept float64, weights []float64) service.RiskClassifier {
	t.Helper()

	path := writeModelFile(t, modelFile{Version: "test", Intercept: intercept, Weights: weights})
	clf, err := NewLinearClassifier(&config.Config{Model: &config.ModelConfig{Path: path}})
	require.NoError(t, err)

	return clf
}

func TestLinearClassifier_Classify(t *testing.T) {
	// Weight only the smoking flag (feature index 2): flag encodes to 1 or 2,
	// so with intercept -4.5 and weight 3 a smoker lands above 0.5 and a
	// non-smoker below.
	weights := make([]float64, service.FeatureCount)
	weights[2] = 3
	clf := testModel(t, -4.5, weights)

	smoker := entity.ClinicalFeatures{Age: 55, Smoking: true}
	label, confidence, err := clf.Classify(service.EncodeFeatures(smoker))
	require.NoError(t, err)
	assert.True(t, label)
	assert.Greater(t, confidence, 0.5)
	assert.LessOrEqual(t, confidence, 1.0)

	nonSmoker := entity.ClinicalFeatures{Age: 55}
	label, confidence, err = clf.Classify(service.EncodeFeatures(nonSmoker))
	require.NoError(t, err)
	assert.False(t, label)
	assert.Greater(t, confidence, 0.5)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestLinearClassifier_Deterministic(t *testing.T) {
	weights := make([]float64, service.FeatureCount)
	for i := range weights {
		weights[i] = 0.1
	}
	clf := testModel(t, -2, weights)

	features := service.EncodeFeatures(entity.ClinicalFeatures{Age: 63, Smoking: true, Wheezing: true})

	label1, conf1, err := clf.Classify(features)
	require.NoError(t, err)
	label2, conf2, err := clf.Classify(features)
	require.NoError(t, err)

	assert.Equal(t, label1, label2)
	assert.Equal(t, conf1, conf2)
}

func TestNewLinearClassifier_MissingFile(t *testing.T) {
	cfg := &config.Config{Model: &config.ModelConfig{Path: filepath.Join(t.TempDir(), "absent.json")}}

	clf, err := NewLinearClassifier(cfg)
	assert.Error(t, err)
	assert.Nil(t, clf)
}

func TestNewLinearClassifier_WrongWeightCount(t *testing.T) {
	path := writeModelFile(t, modelFile{Weights: []float64{1, 2, 3}})

	clf, err := NewLinearClassifier(&config.Config{Model: &config.ModelConfig{Path: path}})
	assert.Error(t, err)
	assert.Nil(t, clf)
	assert.Contains(t, err.Error(), "weights")
}

func TestNewLinearClassifier_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	clf, err := NewLinearClassifier(&config.Config{Model: &config.ModelConfig{Path: path}})
	assert.Error(t, err)
	assert.Nil(t, clf)
}

func TestEncodeFeatures_Encoding(t *testing.T) {
	features := service.EncodeFeatures(entity.ClinicalFeatures{
		Age:              55,
		BiologicalGender: true,
		Smoking:          true,
	})

	assert.Equal(t, 1.0, features[0])  // male -> 1
	assert.Equal(t, 55.0, features[1]) // age unscaled
	assert.Equal(t, 2.0, features[2])  // smoking present -> 2
	for i := 3; i < service.FeatureCount; i++ {
		assert.Equal(t, 1.0, features[i]) // absent flags -> 1, never 0
	}
}
