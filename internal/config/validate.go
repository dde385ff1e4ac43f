package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Portal.TokenSecret) < 32 {
		return fmt.Errorf("portal.token_secret must be at least 32 characters (got %d)", len(c.Portal.TokenSecret))
	}

	if c.Ingest.MaxAttachmentSize <= 0 {
		return fmt.Errorf("ingest.max_attachment_size must be > 0 (got %d)", c.Ingest.MaxAttachmentSize)
	}
	if c.Ingest.MaxBatchSize <= 0 {
		return fmt.Errorf("ingest.max_batch_size must be > 0 (got %d)", c.Ingest.MaxBatchSize)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}

	return nil
}
