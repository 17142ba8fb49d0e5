package gradient

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a gradient computation could not proceed.
type ErrorKind string

const (
	KindInputShape           ErrorKind = "input_shape"
	KindConfiguration        ErrorKind = "configuration"
	KindNumericalSingularity ErrorKind = "numerical_singularity"
)

// AnalysisError is returned by Preprocess and the Ridge solver when a model
// cannot be fit. Metric is the offending event/stat/SQL name, empty when the
// error applies to the whole input rather than one series.
type AnalysisError struct {
	Kind   ErrorKind
	Metric string
	Err    error
}

func (e *AnalysisError) Error() string {
	if e.Metric == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %q: %s", e.Kind, e.Metric, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, metric, msg string) error {
	return &AnalysisError{Kind: kind, Metric: metric, Err: errors.New(msg)}
}
