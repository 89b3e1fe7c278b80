package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/readiness/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI
// flags and HTTP requests.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Savings and returns
	registry.Register("add_savings", createAddSavings)
	registry.Register("set_savings", createSetSavings)
	registry.Register("adjust_return", createAdjustReturn)

	// Plan assumptions
	registry.Register("set_retirement_age", createSetRetirementAge)
	registry.Register("postpone_retirement", createPostponeRetirement)
	registry.Register("set_income", createSetIncome)
	registry.Register("scale_income", createScaleIncome)
	registry.Register("set_life_expectancy", createSetLifeExpectancy)

	// Lump sums
	registry.Register("add_lump_sum", createAddLumpSum)
	registry.Register("remove_lump_sum", createRemoveLumpSum)
	registry.Register("update_lump_sum", createUpdateLumpSum)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_lump_sum:age=45,amount=30000,type=withdrawal"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses each spec in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ScenarioTransform, error) {
	out := make([]ScenarioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func requireParam(params map[string]string, transform, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func decimalParam(params map[string]string, transform, key string) (decimal.Decimal, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func intParam(params map[string]string, transform, key string) (int, error) {
	s, err := requireParam(params, transform, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// Factory functions for each transform

func createAddSavings(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "add_savings", "amount")
	if err != nil {
		return nil, err
	}
	return &AddSavings{Monthly: amount}, nil
}

func createSetSavings(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "set_savings", "amount")
	if err != nil {
		return nil, err
	}
	return &SetSavings{Monthly: amount}, nil
}

func createAdjustReturn(params map[string]string) (ScenarioTransform, error) {
	points, err := decimalParam(params, "adjust_return", "points")
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{Points: points}, nil
}

func createSetRetirementAge(params map[string]string) (ScenarioTransform, error) {
	age, err := intParam(params, "set_retirement_age", "age")
	if err != nil {
		return nil, err
	}
	return &SetRetirementAge{Age: age}, nil
}

func createPostponeRetirement(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam(params, "postpone_retirement", "years")
	if err != nil {
		return nil, err
	}
	return &PostponeRetirement{Years: years}, nil
}

func createSetIncome(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam(params, "set_income", "amount")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Amount: amount}, nil
}

func createScaleIncome(params map[string]string) (ScenarioTransform, error) {
	factor, err := decimalParam(params, "scale_income", "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleIncome{Factor: factor}, nil
}

func createSetLifeExpectancy(params map[string]string) (ScenarioTransform, error) {
	age, err := intParam(params, "set_life_expectancy", "age")
	if err != nil {
		return nil, err
	}
	return &SetLifeExpectancy{Age: age}, nil
}

func createAddLumpSum(params map[string]string) (ScenarioTransform, error) {
	age, err := intParam(params, "add_lump_sum", "age")
	if err != nil {
		return nil, err
	}
	amount, err := decimalParam(params, "add_lump_sum", "amount")
	if err != nil {
		return nil, err
	}

	eventType := domain.EventDeposit
	if t, ok := params["type"]; ok {
		eventType = domain.EventType(t)
	}

	t := NewAddLumpSum(age, amount, eventType, params["description"])
	if id, ok := params["id"]; ok && id != "" {
		t.Event.ID = id
	}
	return t, nil
}

func createRemoveLumpSum(params map[string]string) (ScenarioTransform, error) {
	id, err := requireParam(params, "remove_lump_sum", "id")
	if err != nil {
		return nil, err
	}
	return &RemoveLumpSum{EventID: id}, nil
}

// createUpdateLumpSum builds typed updates in a fixed field order so a spec
// string always produces the same transform.
func createUpdateLumpSum(params map[string]string) (ScenarioTransform, error) {
	id, err := requireParam(params, "update_lump_sum", "id")
	if err != nil {
		return nil, err
	}

	t := &UpdateLumpSum{EventID: id}
	if _, ok := params["age"]; ok {
		age, err := intParam(params, "update_lump_sum", "age")
		if err != nil {
			return nil, err
		}
		t.Updates = append(t.Updates, SetEventAge{Age: age})
	}
	if _, ok := params["amount"]; ok {
		amount, err := decimalParam(params, "update_lump_sum", "amount")
		if err != nil {
			return nil, err
		}
		t.Updates = append(t.Updates, SetEventAmount{Amount: amount})
	}
	if v, ok := params["type"]; ok {
		t.Updates = append(t.Updates, SetEventType{Type: domain.EventType(v)})
	}
	if v, ok := params["description"]; ok {
		t.Updates = append(t.Updates, SetEventDescription{Description: v})
	}

	if len(t.Updates) == 0 {
		return nil, fmt.Errorf("update_lump_sum requires at least one of 'age', 'amount', 'type', 'description'")
	}
	return t, nil
}
