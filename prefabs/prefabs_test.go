package prefabs

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedSpecs(t *testing.T) {
	player, err := LoadPlayerSpec()
	require.NoError(t, err)
	require.Equal(t, "player", player.Name)
	require.Greater(t, player.MoveSpeed, 0.0)
	require.Greater(t, player.Projectile.Count, 0)
	require.Equal(t, color.RGBA{R: 0xff, G: 0x80, B: 0x80, A: 0xff}, player.HurtTint.ToRGBA())

	enemy, err := LoadEnemySpec("Enemy")
	require.NoError(t, err)
	require.Equal(t, 20.0, enemy.PatrolSpeed)
	require.Equal(t, 2.0, enemy.PatrolTime)
	require.Equal(t, 64.0, enemy.DetectionDistance)
	require.Equal(t, 0.4, enemy.FireCooldown)
	require.Equal(t, 4, enemy.Projectile.Count)
	require.Empty(t, enemy.Script)

	chaser, err := LoadEnemySpec("Chaser")
	require.NoError(t, err)
	require.Equal(t, "scripts/chase.tengo", chaser.Script)

	_, err = LoadEnemySpec("Dragon")
	require.Error(t, err)
}

func TestEnemyFile(t *testing.T) {
	tests := map[string]string{
		"":       "enemy.yaml",
		"Enemy":  "enemy.yaml",
		"Chaser": "enemy_chaser.yaml",
		" Bat ":  "enemy_bat.yaml",
	}
	for in, want := range tests {
		if got := EnemyFile(in); got != want {
			t.Fatalf("EnemyFile(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestYAMLColor(t *testing.T) {
	var v struct {
		C YAMLColor `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`c: "#10203080"`), &v))
	require.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}, v.C.Color)

	require.Error(t, yaml.Unmarshal([]byte(`c: "#123"`), &v))
	require.Error(t, yaml.Unmarshal([]byte(`c: [1, 2]`), &v))

	var unset YAMLColor
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, unset.ToRGBA())
}

func TestScriptName(t *testing.T) {
	for _, in := range []string{"chase.tengo", "scripts/chase.tengo", "prefabs/scripts/chase.tengo"} {
		require.Equal(t, "scripts/chase.tengo", scriptName(in))
	}
}

func TestLoadAcceptsPrefixedNames(t *testing.T) {
	for _, name := range []string{"player.yaml", "prefabs/player.yaml"} {
		data, err := Load(name)
		require.NoError(t, err, name)
		require.Contains(t, string(data), "name: player")
	}
	_, err := LoadScript("prefabs/scripts/chase.tengo")
	require.NoError(t, err)
}
