package scenariofs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ledgerline/ledgerline/internal/models"
)

// ListMessages returns the sent-message log, oldest first. A missing log
// file is an empty log, not an error.
func (s *Store) ListMessages() ([]models.Message, error) {
	path := filepath.Join(s.dataDir, ReservedMessagesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read message log: %w", err)
	}

	var messages []models.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse message log: %w", err)
	}
	return messages, nil
}

// SaveMessage appends a message to the log atomically (temp file + rename),
// so a concurrent reader never observes a partial write.
func (s *Store) SaveMessage(msg models.Message) error {
	messages, err := s.ListMessages()
	if err != nil {
		return err
	}
	messages = append(messages, msg)

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal message log: %w", err)
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(s.dataDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(s.dataDir, ReservedMessagesFile)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug().Str("id", msg.ID).Msg("Message logged")
	return nil
}
