package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/readiness/internal/domain"
)

// InputParser handles parsing of client plan files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file. JSON documents parse too since
// YAML is a superset, but keys use the YAML (snake_case) names.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates a plan document. Unknown keys are rejected and
// missing asset and event ids are filled in.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("plan file is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.assignIDs(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

func (ip *InputParser) assignIDs(config *domain.Configuration) {
	if config.Client.ID == "" {
		config.Client.ID = uuid.NewString()
	}
	for i := range config.Client.Assets {
		if config.Client.Assets[i].ID == "" {
			config.Client.Assets[i].ID = uuid.NewString()
		}
	}
	for i := range config.Scenarios {
		events := config.Scenarios[i].Overlay.LumpSumEvents
		for j := range events {
			if events[j].ID == "" {
				events[j].ID = uuid.NewString()
			}
		}
	}
}

// ValidateConfiguration checks document structure only: names, asset kinds
// and unique ids. Ages, rates and empty portfolios are computable and are
// reported as warnings by calculation.Validate instead.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateClient(&config.Client); err != nil {
		return fmt.Errorf("client validation failed: %w", err)
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		key := strings.ToLower(scenario.Name)
		if seen[key] {
			return fmt.Errorf("scenario %d: duplicate scenario name %q", i, scenario.Name)
		}
		seen[key] = true
	}
	return nil
}

func (ip *InputParser) validateClient(client *domain.ClientProfile) error {
	if strings.TrimSpace(client.Name) == "" {
		return fmt.Errorf("name is required")
	}
	ids := make(map[string]bool, len(client.Assets))
	for i, asset := range client.Assets {
		if asset.Name == "" {
			return fmt.Errorf("asset %d: name is required", i)
		}
		if !asset.Kind.Valid() {
			return fmt.Errorf("asset %d (%s): kind must be one of epf, prs, investment, other; got %q", i, asset.Name, asset.Kind)
		}
		if ids[asset.ID] {
			return fmt.Errorf("asset %d (%s): duplicate id %q", i, asset.Name, asset.ID)
		}
		ids[asset.ID] = true
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.ScenarioConfig) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("scenario name is required")
	}
	return nil
}
