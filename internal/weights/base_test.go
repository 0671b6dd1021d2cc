package weights

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nexten/smartmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_BuiltinProfilesAllValid(t *testing.T) {
	catalog := NewCatalog()

	for _, name := range catalog.Names() {
		base, err := catalog.Base(name)
		require.NoError(t, err, "profile %s", name)
		assert.NoError(t, base.Validate(), "profile %s", name)
		assert.False(t, base.IsAdjusted)
		assert.Equal(t, name, base.Profile)
	}
}

func TestCatalog_DefaultProfile(t *testing.T) {
	base, err := NewCatalog().Base("")

	require.NoError(t, err)
	assert.Equal(t, ProfileSmartMatch, base.Profile)
}

func TestCatalog_UnknownProfile(t *testing.T) {
	_, err := NewCatalog().Base("v99")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown weight profile")
}

func TestCatalog_BaseReturnsCopy(t *testing.T) {
	catalog := NewCatalog()
	first, err := catalog.Base(ProfileSmartMatch)
	require.NoError(t, err)

	first.Weights[types.CriterionSkills] = 0.99

	second, err := catalog.Base(ProfileSmartMatch)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, second.Weights[types.CriterionSkills], 1e-9)
}

func TestCatalog_RegisterRejectsInvalidSum(t *testing.T) {
	err := NewCatalog().Register("broken", map[types.Criterion]float64{
		types.CriterionSkills: 0.5,
	})

	assert.Error(t, err)
}

func TestCatalog_LoadProfilesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `profiles:
  custom:
    skills: 0.5
    experience: 0.3
    location: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	catalog := NewCatalog()
	require.NoError(t, catalog.LoadProfilesFile(path))

	base, err := catalog.Base("custom")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, base.Weights[types.CriterionSkills], 1e-9)
	assert.NoError(t, base.Validate())
}

func TestCatalog_LoadProfilesFileRejectsBadSum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `profiles:
  broken:
    skills: 0.9
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	err := NewCatalog().LoadProfilesFile(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must sum to 1.0")
}
