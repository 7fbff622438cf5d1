package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/persistence"
)

func TestExportSeedGolden(t *testing.T) {
	cfg := isolate(t)

	out, _, err := execute(t, "--config", cfg, "--ephemeral", "export")
	require.NoError(t, err)
	newGolden(t).Assert(t, "export_seed_json", []byte(out))
}

func TestExportStoredDeck(t *testing.T) {
	cfg := isolate(t)

	db := saveDeck(t, domain.NewState(map[domain.GroupID]*domain.Group{
		3: {ID: 3, Name: "Math", Cards: []domain.Card{
			{ID: 12, Category: "Algebra", Question: "x+1=2", Answer: "1", EasyCount: 2},
		}},
	}))

	out, _, err := execute(t, "--config", cfg, "--db", db, "export")
	require.NoError(t, err)

	var got map[string]ExportGroup
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]ExportGroup{
		"3": {ID: 3, Name: "Math", Cards: []ExportCard{
			{ID: 12, Category: "Algebra", Question: "x+1=2", Answer: "1", EasyCount: 2},
		}},
	}, got)

	yamlOut, _, err := execute(t, "--config", cfg, "--db", db, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, yamlOut, "easyCount: 2")

	var fromYAML map[string]ExportGroup
	require.NoError(t, yaml.Unmarshal([]byte(yamlOut), &fromYAML))
	assert.Equal(t, got, fromYAML)
}

func TestExportMatchesPersistedLayout(t *testing.T) {
	state := domain.SeedState()
	state.Groups[1].Cards[0].EasyCount = 5

	blob, err := persistence.Encode(state)
	require.NoError(t, err)

	var fromBlob map[string]ExportGroup
	require.NoError(t, json.Unmarshal([]byte(blob), &fromBlob))
	assert.Equal(t, exportState(state), fromBlob)
	assert.Equal(t, 5, fromBlob["1"].Cards[0].EasyCount)
}
