package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tungshoop/tungcart/internal/models"
	repository "github.com/tungshoop/tungcart/internal/repositories"
)

func TestCartLoad(t *testing.T) {
	t.Run("Missing File Initializes Empty Store", func(t *testing.T) {
		// Arrange
		path := filepath.Join(t.TempDir(), "cart.json")
		repo := repository.NewCartRepo(path)

		// Act
		lines, err := repo.Load()

		// Assert
		require.NoError(t, err)
		assert.Empty(t, lines)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data), "missing store is initialized to an empty sequence")
	})

	t.Run("Empty File Initializes Empty Store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cart.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		repo := repository.NewCartRepo(path)

		lines, err := repo.Load()

		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("Malformed File Resets To Empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cart.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"oops":`), 0o644))

		repo := repository.NewCartRepo(path)

		lines, err := repo.Load()

		require.NoError(t, err, "malformed state degrades to empty instead of aborting")
		assert.Empty(t, lines)
	})
}

func TestCartSaveLoadRoundTrip(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "cart.json")
	repo := repository.NewCartRepo(path)

	saved := []models.CartLine{
		{ProductID: "P1", Quantity: 3},
		{ProductID: "D1", Quantity: 1},
		{ProductID: "G1", Quantity: 7},
	}

	// Act
	require.NoError(t, repo.Save(saved))

	loaded, err := repo.Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, saved, loaded, "order of persisted lines is preserved")
}

func TestCartSaveNilWritesEmptySequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	repo := repository.NewCartRepo(path)

	require.NoError(t, repo.Save(nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
