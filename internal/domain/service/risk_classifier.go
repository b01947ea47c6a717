package service

import "mechalung/internal/domain/entity"

// FeatureCount is the fixed length of the model's input vector:
// gender, age, and the 13 symptom/behavior flags, in that order.
const FeatureCount = 15

// FeatureVector is the fixed-order numeric encoding consumed by the risk
// model. The encoding matches the training data exactly:
//
//	index 0      gender: 0 (female) or 1 (male)
//	index 1      age, unscaled
//	index 2..14  boolean flags: 1 (absent) or 2 (present)
//
// The {1,2} flag domain comes from the survey dataset the model was trained
// on; {0,1} would silently shift every prediction.
type FeatureVector [FeatureCount]float64

// EncodeFeatures builds the feature vector from clinical fields. This is the
// single definition of the encoding; training-time export and inference both
// rely on it being stable.
func EncodeFeatures(f entity.ClinicalFeatures) FeatureVector {
	flag := func(b bool) float64 {
		if b {
			return 2
		}

		return 1
	}

	gender := 0.0
	if f.BiologicalGender {
		gender = 1
	}

	return FeatureVector{
		gender,
		float64(f.Age),
		flag(f.Smoking),
		flag(f.YellowFingers),
		flag(f.Anxiety),
		flag(f.PeerPressure),
		flag(f.ChronicDisease),
		flag(f.Fatigue),
		flag(f.Allergy),
		flag(f.Wheezing),
		flag(f.Alcohol),
		flag(f.Coughing),
		flag(f.ShortnessOfBreath),
		flag(f.SwallowingDifficulty),
		flag(f.ChestPain),
	}
}

// RiskClassifier maps a feature vector to a lung-cancer risk label and a
// confidence in [0,1]. Implementations are pure within one deployed model
// version and hold only read-only state after load, so concurrent calls are
// safe. An unavailable classifier must surface an error; it must never default
// to a fixed label, which would be indistinguishable from a working system.
type RiskClassifier interface {
	Classify(features FeatureVector) (label bool, confidence float64, err error)
}
