package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec tunes the player. Times are in seconds, speeds in px/s.
type PlayerSpec struct {
	Name           string         `yaml:"name"`
	Sprite         SpriteSpec     `yaml:"sprite"`
	Collider       ColliderSpec   `yaml:"collider"`
	Animation      AnimationSpec  `yaml:"animation"`
	MoveSpeed      float64        `yaml:"move_speed"`
	JumpSpeed      float64        `yaml:"jump_speed"`
	Gravity        float64        `yaml:"gravity"`
	MaxFallSpeed   float64        `yaml:"max_fall_speed"`
	CoyoteTime     float64        `yaml:"coyote_time"`
	JumpBuffer     float64        `yaml:"jump_buffer"`
	Health         int            `yaml:"health"`
	Invulnerable   float64        `yaml:"invulnerable"`
	FireCooldown   float64        `yaml:"fire_cooldown"`
	Projectile     ProjectileSpec `yaml:"projectile"`
	HurtTint       YAMLColor      `yaml:"hurt_tint"`
	ContactKnockUp float64        `yaml:"contact_knock_up"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// EnemySpec tunes one enemy kind. Script, when set, names a tengo script
// under scripts/ that decides the horizontal velocity each tick.
type EnemySpec struct {
	Name              string         `yaml:"name"`
	Sprite            SpriteSpec     `yaml:"sprite"`
	Collider          ColliderSpec   `yaml:"collider"`
	Animation         AnimationSpec  `yaml:"animation"`
	PatrolSpeed       float64        `yaml:"patrol_speed"`
	PatrolTime        float64        `yaml:"patrol_time"`
	DetectionDistance float64        `yaml:"detection_distance"`
	FireCooldown      float64        `yaml:"fire_cooldown"`
	Gravity           float64        `yaml:"gravity"`
	MaxFallSpeed      float64        `yaml:"max_fall_speed"`
	Health            int            `yaml:"health"`
	ContactDamage     int            `yaml:"contact_damage"`
	Projectile        ProjectileSpec `yaml:"projectile"`
	Script            string         `yaml:"script"`
}

// LoadEnemySpec loads the enemy prefab for a level marker identifier, e.g.
// "Enemy" -> enemy.yaml, "Chaser" -> enemy_chaser.yaml.
func LoadEnemySpec(name string) (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec](EnemyFile(name))
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// EnemyFile maps a marker identifier to its prefab file.
func EnemyFile(marker string) string {
	m := strings.ToLower(strings.TrimSpace(marker))
	if m == "" || m == "enemy" {
		return "enemy.yaml"
	}
	return "enemy_" + m + ".yaml"
}

// ProjectileSpec tunes a projectile pool.
type ProjectileSpec struct {
	Count    int          `yaml:"count"`
	Speed    float64      `yaml:"speed"`
	Lifetime float64      `yaml:"lifetime"`
	Damage   int          `yaml:"damage"`
	Sprite   SpriteSpec   `yaml:"sprite"`
	Collider ColliderSpec `yaml:"collider"`
	Tint     YAMLColor    `yaml:"tint"`
}

// ColliderSpec is a collision box. The origin is the offset of the entity
// position from the box's top-left corner.
type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OriginX float64 `yaml:"origin_x"`
	OriginY float64 `yaml:"origin_y"`
}

// SpriteSpec names an atlas sprite and the asset files it is built from.
type SpriteSpec struct {
	Key   string `yaml:"key"`
	Image string `yaml:"image"`
	Sheet string `yaml:"sheet"`
}

// AnimationSpec maps animation roles to sheet tag indices.
type AnimationSpec struct {
	Idle   int `yaml:"idle"`
	Move   int `yaml:"move"`
	Air    int `yaml:"air"`
	Alert  int `yaml:"alert"`
	Attack int `yaml:"attack"`
}

type YAMLColor struct {
	color.Color
}

// ToRGBA returns the color, or opaque white when unset.
func (c YAMLColor) ToRGBA() color.RGBA {
	if c.Color == nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
