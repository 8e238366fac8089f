package feature

type FeatureType int

const (
	FeatureTypeIntercept FeatureType = iota
	FeatureTypeContinuous
	FeatureTypeLevel
)

func (f FeatureType) String() string {
	switch f {
	case FeatureTypeIntercept:
		return "intercept"
	case FeatureTypeContinuous:
		return "continuous"
	case FeatureTypeLevel:
		return "level"
	}
	return "unknown"
}

// Feature is a named design matrix column
type Feature interface {
	String() string
	Get(string) (string, bool)
	Type() FeatureType
	Decode() map[string]string
}
