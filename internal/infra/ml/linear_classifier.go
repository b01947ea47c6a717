// Package ml loads the pre-trained lung-cancer risk model and runs inference.
// Training happens offline; only the exported weights live with the service.
package ml

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"

	"mechalung/config"
	"mechalung/internal/domain/service"
)

// modelFile is the on-disk format of the exported model: logistic-regression
// weights in the documented feature order plus an intercept.
type modelFile struct {
	Version   string    `json:"version"`
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// linearClassifier implements service.RiskClassifier. All fields are read-only
// after load, so concurrent Classify calls share no mutable state.
type linearClassifier struct {
	version   string
	intercept float64
	weights   [service.FeatureCount]float64
}

// NewLinearClassifier loads the model weights from the configured path.
// A missing or malformed model file fails construction; the service must not
// start with a classifier that would have to fake its output.
func NewLinearClassifier(cfg *config.Config) (service.RiskClassifier, error) {
	if cfg.Model == nil || cfg.Model.Path == "" {
		return nil, errors.New("model path must be provided")
	}

	raw, err := os.ReadFile(cfg.Model.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read model file %s", cfg.Model.Path)
	}

	var file modelFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse model file")
	}

	if len(file.Weights) != service.FeatureCount {
		return nil, errors.Errorf("model has %d weights, want %d", len(file.Weights), service.FeatureCount)
	}

	clf := &linearClassifier{
		version:   file.Version,
		intercept: file.Intercept,
	}
	copy(clf.weights[:], file.Weights)

	return clf, nil
}

// Classify runs logistic-regression inference over the feature vector.
// The label is positive when the risk probability reaches 0.5; confidence is
// the probability of the returned label, so it always lands in [0.5, 1].
func (c *linearClassifier) Classify(features service.FeatureVector) (bool, float64, error) {
	z := c.intercept
	for i, w := range c.weights {
		z += w * features[i]
	}

	probability := 1 / (1 + math.Exp(-z))
	label := probability >= 0.5

	confidence := probability
	if !label {
		confidence = 1 - probability
	}

	return label, confidence, nil
}
