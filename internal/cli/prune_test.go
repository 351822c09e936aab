package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/config"
)

func TestPruneCommand_ParseFlags(t *testing.T) {
	t.Run("defaults come from the configuration", func(t *testing.T) {
		cfg := &config.Config{Audit: config.Audit{RetentionDays: 90}, Database: config.Database{Path: "catalog.db"}}
		cmd := NewPruneCommand(cfg)

		require.NoError(t, cmd.ParseFlags(nil))
		assert.Equal(t, 90, cmd.RetentionDays)
		assert.Equal(t, "catalog.db", cfg.Database.Path)
	})

	t.Run("flags override", func(t *testing.T) {
		cfg := &config.Config{Audit: config.Audit{RetentionDays: 90}}
		cmd := NewPruneCommand(cfg)

		require.NoError(t, cmd.ParseFlags([]string{"-retention-days", "7", "-db", "/tmp/other.db"}))
		assert.Equal(t, 7, cmd.RetentionDays)
		assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	})

	t.Run("negative retention", func(t *testing.T) {
		cmd := NewPruneCommand(&config.Config{})
		assert.Error(t, cmd.ParseFlags([]string{"-retention-days", "-1"}))
	})
}
