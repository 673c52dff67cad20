package interfaces

import "github.com/ledgerline/ledgerline/internal/models"

// ScenarioStore provides read-through access to scenario documents.
// Implementations must re-read from the backing store on every call;
// callers rely on edits to scenario files being visible immediately.
type ScenarioStore interface {
	LoadScenario(id string) (*models.Scenario, error)
	ListScenarios(activeID string) ([]models.ScenarioSummary, error)
}

// MessageStore logs sent borrower messages.
type MessageStore interface {
	ListMessages() ([]models.Message, error)
	SaveMessage(msg models.Message) error
}
