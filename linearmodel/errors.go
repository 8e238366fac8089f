package linearmodel

import "errors"

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoDesignMatrix     = errors.New("no design matrix")
	ErrNoTarget           = errors.New("no target values")
	ErrDimensionMismatch  = errors.New("design matrix rows do not match target length")
	ErrInsufficientData   = errors.New("residual degrees of freedom must be positive")
	ErrRankDeficient      = errors.New("design matrix is not full column rank")
	ErrNonFinite          = errors.New("input contains NaN or infinite values")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrInvalidAlpha       = errors.New("alpha must be in the open interval (0, 1)")
	ErrNegativeTolerance  = errors.New("negative tolerance")
	ErrUnfitModel         = errors.New("model has not been fit")
)
