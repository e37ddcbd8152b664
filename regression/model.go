package regression

import (
	"fmt"
	"strings"
)

// ModelType represents the physical model a straight-line fit was performed for.
type ModelType int

const (
	// ModelTypeLinear represents the straight line y = a + b*x fitted directly.
	ModelTypeLinear ModelType = iota
	// ModelTypeExponential represents the decay V = V0 * e^(-Γ*t), fitted as ln V = ln V0 - Γ*t.
	ModelTypeExponential
)

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeLinear:      "linear",
	ModelTypeExponential: "exponential",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// MarshalText implements encoding.TextMarshaler so the type reads naturally in JSON reports.
func (mt ModelType) MarshalText() ([]byte, error) {
	name, exists := modelTypeNames[mt]
	if !exists {
		return nil, fmt.Errorf("unknown model type: %d", int(mt))
	}

	return []byte(name), nil
}

// modelTypeFromString maps string names to ModelType.
var modelTypeFromString = map[string]ModelType{
	"linear":      ModelTypeLinear,
	"exponential": ModelTypeExponential,
	"exp":         ModelTypeExponential,
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(strings.TrimSpace(name))]; exists {
		return modelType
	}

	return ModelType(-1)
}
