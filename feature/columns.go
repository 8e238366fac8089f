package feature

import (
	"fmt"
	"strings"
)

const InterceptLabel = "Intercept"

// Intercept is the constant column of ones
type Intercept struct{}

func NewIntercept() *Intercept {
	return &Intercept{}
}

func (i Intercept) String() string {
	return InterceptLabel
}

func (i Intercept) Get(label string) (string, bool) {
	return "", false
}

func (i Intercept) Type() FeatureType {
	return FeatureTypeIntercept
}

func (i Intercept) Decode() map[string]string {
	return map[string]string{}
}

// Continuous is a numeric column used as is
type Continuous struct {
	Name string `json:"name"`
}

func NewContinuous(name string) *Continuous {
	return &Continuous{name}
}

func (c Continuous) String() string {
	return c.Name
}

func (c Continuous) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return c.Name, true
	}
	return "", false
}

func (c Continuous) Type() FeatureType {
	return FeatureTypeContinuous
}

func (c Continuous) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = c.Name
	return res
}

// Level is the indicator column of a single non-reference level of a categorical variable
type Level struct {
	Name      string `json:"name"`
	Level     string `json:"level"`
	Reference string `json:"reference"`
}

func NewLevel(name, level, reference string) *Level {
	return &Level{name, level, reference}
}

func (l Level) String() string {
	return fmt.Sprintf("%s[T.%s]", l.Name, l.Level)
}

func (l Level) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return l.Name, true
	case "level":
		return l.Level, true
	case "reference":
		return l.Reference, true
	}
	return "", false
}

func (l Level) Type() FeatureType {
	return FeatureTypeLevel
}

func (l Level) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = l.Name
	res["level"] = l.Level
	res["reference"] = l.Reference
	return res
}
