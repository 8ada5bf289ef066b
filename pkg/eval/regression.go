package eval

// RegressionReport compares model error against a constant-mean baseline on
// the held-out set.
type RegressionReport struct {
	TrainMean   float64
	BaselineMSE float64
	ModelMSE    float64
	// ErrorReduction is 1 - ModelMSE/BaselineMSE: 0 for a model no better
	// than predicting the training mean, 1 for a perfect model.
	ErrorReduction float64
}

// Regression builds the report. trainMean is the mean of the training-set
// targets; the baseline predicts it for every held-out record.
func Regression(yTrue, yPred []float64, trainMean float64) (*RegressionReport, error) {
	if err := checkShapes("regression", len(yTrue), len(yPred)); err != nil {
		return nil, err
	}

	baseline := make([]float64, len(yTrue))
	for i := range baseline {
		baseline[i] = trainMean
	}
	baseMSE := MSE(yTrue, baseline)
	modelMSE := MSE(yTrue, yPred)

	reduction := 0.0
	if baseMSE > 0 {
		reduction = 1 - modelMSE/baseMSE
	}

	return &RegressionReport{
		TrainMean:      trainMean,
		BaselineMSE:    baseMSE,
		ModelMSE:       modelMSE,
		ErrorReduction: reduction,
	}, nil
}

// MSE is the mean squared error between two equal-length vectors.
func MSE(yTrue, yPred []float64) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	s := 0.0
	for i := range yTrue {
		d := yPred[i] - yTrue[i]
		s += d * d
	}
	return s / float64(len(yTrue))
}
