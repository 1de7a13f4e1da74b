package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

func TestNewWeapon(t *testing.T) {
	sword, err := NewWeapon("Short Sword", 10, WeaponMelee, Options{Value: 15})
	require.NoError(t, err)

	assert.Equal(t, KindWeapon, sword.Kind)
	assert.Equal(t, "Short Sword", sword.Name())
	assert.Equal(t, 10, sword.Weapon.Damage)
	assert.Equal(t, RarityCommon, sword.Rarity(), "rarity defaults to common")
	assert.Nil(t, sword.Armor)
	assert.Nil(t, sword.Potion)
}

func TestConstructorValidation(t *testing.T) {
	tests := []struct {
		name string
		make func() (*Item, error)
	}{
		{"weapon zero damage", func() (*Item, error) { return NewWeapon("Stick", 0, WeaponMelee, Options{}) }},
		{"weapon unknown type", func() (*Item, error) { return NewWeapon("Sling", 2, WeaponType("thrown"), Options{}) }},
		{"armor zero defense", func() (*Item, error) { return NewArmor("Rag", 0, ArmorTorso, Options{}) }},
		{"armor unknown slot", func() (*Item, error) { return NewArmor("Boot", 1, ArmorSlot("feet"), Options{}) }},
		{"potion unknown effect", func() (*Item, error) { return NewPotion("Brew", PotionEffect("luck"), 5, 1, Options{}) }},
		{"potion zero amount", func() (*Item, error) { return NewPotion("Water", EffectHeal, 0, 1, Options{}) }},
		{"blank name", func() (*Item, error) { return NewGeneric("   ", Options{}) }},
		{"negative value", func() (*Item, error) { return NewGeneric("Tooth", Options{Value: -1}) }},
		{"unknown rarity", func() (*Item, error) { return NewGeneric("Tooth", Options{Rarity: Rarity("mythic")}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := tt.make()
			assert.Nil(t, it)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}

func TestMatchesIgnoresCase(t *testing.T) {
	potion, err := NewPotion("Mana Potion", EffectManaRestore, 20, 1, Options{})
	require.NoError(t, err)

	assert.True(t, potion.Matches("mana potion"))
	assert.True(t, potion.Matches("  MANA POTION "))
	assert.False(t, potion.Matches("mana"))
}

func TestSummary(t *testing.T) {
	elixir, err := NewPotion("Strength Elixir", EffectStrengthBoost, 5, 2, Options{Rarity: RarityRare, Magical: true})
	require.NoError(t, err)
	helmet, err := NewArmor("Iron Helmet", 3, ArmorHead, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Strength Elixir (strength_boost 5, 2 sips)", elixir.Summary())
	assert.Equal(t, "Iron Helmet (+3 DEF, head)", helmet.Summary())
	assert.True(t, elixir.Magical())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "weapon", KindWeapon.String())
	assert.Equal(t, "potion", KindPotion.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
