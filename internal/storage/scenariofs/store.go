// Package scenariofs implements file-based storage for scenario snapshots
// and the sent-message log. Scenario files are read fresh on every access;
// there is no caching layer to invalidate when a file is edited on disk.
package scenariofs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledgerline/ledgerline/internal/common"
	"github.com/ledgerline/ledgerline/internal/interfaces"
	"github.com/ledgerline/ledgerline/internal/models"
)

// ReservedMessagesFile is excluded from scenario listing; it backs the
// message log, not a scenario.
const ReservedMessagesFile = "messages.json"

// Store provides read-through access to scenario JSON files in a directory.
type Store struct {
	dataDir string
	logger  *common.Logger
}

// NewStore creates a scenario store rooted at dataDir.
func NewStore(logger *common.Logger, dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create scenario store path %s: %w", dataDir, err)
	}
	logger.Info().Str("path", dataDir).Msg("Scenario store opened")
	return &Store{dataDir: dataDir, logger: logger}, nil
}

// DataDir returns the store's root directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

// LoadScenario reads and validates <dataDir>/<id>.json. Every call re-reads
// from disk. Validation failures report all malformed root fields at once.
func (s *Store) LoadScenario(id string) (*models.Scenario, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("scenario id must be a non-empty string")
	}

	path := filepath.Join(s.dataDir, sanitizeID(id)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario '%s': %w", id, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario '%s': %w", id, err)
	}

	if problems := validateShape(raw); len(problems) > 0 {
		return nil, fmt.Errorf("scenario '%s' is invalid: missing or malformed fields: %s",
			id, strings.Join(problems, ", "))
	}

	var scenario models.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to decode scenario '%s': %w", id, err)
	}

	scenario.ID = id
	if scenario.Sentiment == "" {
		scenario.Sentiment = models.DefaultSentiment
	}
	return &scenario, nil
}

// ListScenarios enumerates all scenario files, excluding the reserved
// messages file, and loads each with full strictness. A single malformed
// file fails the whole listing; callers are expected to keep their data
// directory valid rather than rely on best-effort results.
func (s *Store) ListScenarios(activeID string) ([]models.ScenarioSummary, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory %s: %w", s.dataDir, err)
	}

	var summaries []models.ScenarioSummary
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".tmp-") {
			continue
		}
		if name == ReservedMessagesFile {
			continue
		}

		id := strings.TrimSuffix(name, ".json")
		scenario, err := s.LoadScenario(id)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, models.ScenarioSummary{
			ID:          id,
			Name:        scenario.Name,
			Description: scenario.Description,
			Sentiment:   scenario.Sentiment,
			Active:      id == activeID,
		})
	}
	return summaries, nil
}

// validateShape checks the required root fields of a scenario document and
// returns the names of every missing or malformed one.
func validateShape(raw map[string]json.RawMessage) []string {
	var problems []string

	if !isNonEmptyString(raw["name"]) {
		problems = append(problems, "name")
	}
	if !isNonEmptyString(raw["description"]) {
		problems = append(problems, "description")
	}

	if current, ok := raw["current"]; !ok {
		problems = append(problems, "current")
	} else {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			problems = append(problems, "current")
		} else {
			if !isNonEmptyString(obj["month"]) {
				problems = append(problems, "current.month")
			}
			if !isNumber(obj["year"]) {
				problems = append(problems, "current.year")
			}
		}
	}

	if historical, ok := raw["historical"]; !ok {
		problems = append(problems, "historical")
	} else {
		var arr []json.RawMessage
		if err := json.Unmarshal(historical, &arr); err != nil {
			problems = append(problems, "historical")
		}
	}

	return problems
}

func isNonEmptyString(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var s string
	return json.Unmarshal(raw, &s) == nil && s != ""
}

func isNumber(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var n float64
	return json.Unmarshal(raw, &n) == nil
}

func sanitizeID(id string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(id)
}

// Ensure Store implements the storage contracts.
var (
	_ interfaces.ScenarioStore = (*Store)(nil)
	_ interfaces.MessageStore  = (*Store)(nil)
)
