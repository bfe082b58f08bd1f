package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	bundle, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Contains(t, bundle.Locales(), BaseLocale)
	assert.Contains(t, bundle.Locales(), "es-ES")
	assert.True(t, bundle.HasKey("es-ES", "BRSW.SkillName-fighting"))
}

func TestLocalize_KnownKey(t *testing.T) {
	loc := Default().Localizer("en-US")
	assert.Equal(t, "Fighting", loc.Localize("BRSW.SkillName-fighting"))
	assert.Equal(t, "Agility", loc.Localize("SWADE.AttrAgi"))
}

func TestLocalize_MissingKeyReturnsKey(t *testing.T) {
	loc := Default().Localizer("en-US")
	assert.Equal(t, "BRSW.DoesNotExist", loc.Localize("BRSW.DoesNotExist"))
	assert.Equal(t, "", loc.Localize(""))
}

func TestLocalize_FallsBackToBaseLocale(t *testing.T) {
	loc := Default().Localizer("es-ES")
	assert.Equal(t, "Pelear", loc.Localize("BRSW.SkillName-fighting"))
	// not translated in es-ES
	assert.Equal(t, "Construct", loc.Localize("BRSW.AbilityName-Construct"))
}

func TestLocalizer_MatchesClosestLocale(t *testing.T) {
	assert.Equal(t, "es-ES", Default().Localizer("es").Tag().String())
	assert.Equal(t, "en-US", Default().Localizer("fr-FR").Tag().String())
	assert.Equal(t, "en-US", Default().Localizer("not a locale!").Tag().String())
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, "BRSW.SkillName-fighting", Identity{}.Localize("BRSW.SkillName-fighting"))
}

func TestLoadFromFS_RejectsMismatchedLocale(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "locales", "en-US.yaml"), "locale: pt-BR\nmessages:\n  a: b\n")

	_, err := LoadFromFS(os.DirFS(dir))
	assert.Error(t, err)
}

func TestLoadFromFS_RequiresBaseLocale(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "locales", "pt-BR.yaml"), "locale: pt-BR\nmessages:\n  a: b\n")

	_, err := LoadFromFS(os.DirFS(dir))
	assert.Error(t, err)
}

func TestLoadFromFS_EscapesPercent(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "locales", "en-US.yaml"), "locale: en-US\nmessages:\n  BRSW.Bonus: \"+10% damage\"\n")

	bundle, err := LoadFromFS(os.DirFS(dir))
	require.NoError(t, err)
	assert.Equal(t, "+10% damage", bundle.Localizer("en-US").Localize("BRSW.Bonus"))
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
