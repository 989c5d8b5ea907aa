package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arena/internal/game/equipment"
)

// yamlTables is the top-level YAML structure for a tuning file. Every
// field is optional; omitted sections keep their defaults.
type yamlTables struct {
	Rewards     *yamlRewards     `yaml:"rewards"`
	Enhancement *yamlEnhancement `yaml:"enhancement"`
	Penalty     *yamlPenalty     `yaml:"penalty"`
}

type yamlRewards struct {
	BaseGold               *int               `yaml:"base_gold"`
	BaseExperience         *int               `yaml:"base_experience"`
	StreakThreshold        *int               `yaml:"streak_threshold"`
	StreakRate             *float64           `yaml:"streak_rate"`
	StreakCap              *float64           `yaml:"streak_cap"`
	MaterialBaseChance     *float64           `yaml:"material_base_chance"`
	MaterialChancePerLevel *float64           `yaml:"material_chance_per_level"`
	MaterialMaxChance      *float64           `yaml:"material_max_chance"`
	RarityWeights          []yamlRarityWeight `yaml:"rarity_weights"`
}

type yamlRarityWeight struct {
	Rarity string `yaml:"rarity"`
	Weight int    `yaml:"weight"`
}

type yamlEnhancement struct {
	MaxLevel     *int              `yaml:"max_level"`
	SuccessRates []float64         `yaml:"success_rates"`
	Costs        []yamlEnhanceCost `yaml:"costs"`
	RegressLevel *int              `yaml:"regress_level"`
	DestroyLevel *int              `yaml:"destroy_level"`
}

type yamlEnhanceCost struct {
	Gold        int    `yaml:"gold"`
	Shards      int    `yaml:"shards"`
	ShardRarity string `yaml:"shard_rarity"`
}

type yamlPenalty struct {
	GoldRate       *float64 `yaml:"gold_rate"`
	GoldCap        *int     `yaml:"gold_cap"`
	ItemLossChance *float64 `yaml:"item_loss_chance"`
}

// LoadFromFile reads a tuning YAML file and overlays it on the defaults.
//
// Precondition: path must point to a valid YAML tuning file.
// Postcondition: Returns validated Tables or a non-nil error.
func LoadFromFile(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading tuning file %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses tuning YAML and overlays it on the defaults.
//
// Postcondition: Returns validated Tables or a non-nil error.
func LoadFromBytes(data []byte) (Tables, error) {
	var file yamlTables
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Tables{}, fmt.Errorf("parsing tuning YAML: %w", err)
	}

	tables, err := overlay(Default(), file)
	if err != nil {
		return Tables{}, err
	}
	if err := tables.Validate(); err != nil {
		return Tables{}, fmt.Errorf("validating tuning tables: %w", err)
	}
	return tables, nil
}

// overlay applies every present YAML field onto base.
func overlay(base Tables, file yamlTables) (Tables, error) {
	if r := file.Rewards; r != nil {
		setInt(&base.Rewards.BaseGold, r.BaseGold)
		setInt(&base.Rewards.BaseExperience, r.BaseExperience)
		setInt(&base.Rewards.StreakThreshold, r.StreakThreshold)
		setFloat(&base.Rewards.StreakRate, r.StreakRate)
		setFloat(&base.Rewards.StreakCap, r.StreakCap)
		setFloat(&base.Rewards.MaterialBaseChance, r.MaterialBaseChance)
		setFloat(&base.Rewards.MaterialChancePerLevel, r.MaterialChancePerLevel)
		setFloat(&base.Rewards.MaterialMaxChance, r.MaterialMaxChance)
		if len(r.RarityWeights) > 0 {
			weights := make([]RarityWeight, 0, len(r.RarityWeights))
			for _, w := range r.RarityWeights {
				rarity, ok := equipment.ParseRarity(w.Rarity)
				if !ok {
					return Tables{}, fmt.Errorf("unknown rarity %q in rarity weights", w.Rarity)
				}
				weights = append(weights, RarityWeight{Rarity: rarity, Weight: w.Weight})
			}
			base.Rewards.RarityWeights = weights
		}
	}

	if e := file.Enhancement; e != nil {
		setInt(&base.Enhancement.MaxLevel, e.MaxLevel)
		setInt(&base.Enhancement.RegressLevel, e.RegressLevel)
		setInt(&base.Enhancement.DestroyLevel, e.DestroyLevel)
		if len(e.SuccessRates) > 0 {
			base.Enhancement.SuccessRates = e.SuccessRates
		}
		if len(e.Costs) > 0 {
			costs := make([]EnhanceCost, 0, len(e.Costs))
			for _, c := range e.Costs {
				cost := EnhanceCost{Gold: c.Gold, Shards: c.Shards}
				if c.Shards > 0 {
					rarity, ok := equipment.ParseRarity(c.ShardRarity)
					if !ok {
						return Tables{}, fmt.Errorf("unknown rarity %q in enhancement costs", c.ShardRarity)
					}
					cost.ShardRarity = rarity
				}
				costs = append(costs, cost)
			}
			base.Enhancement.Costs = costs
		}
	}

	if p := file.Penalty; p != nil {
		setFloat(&base.Penalty.GoldRate, p.GoldRate)
		setInt(&base.Penalty.GoldCap, p.GoldCap)
		setFloat(&base.Penalty.ItemLossChance, p.ItemLossChance)
	}

	return base, nil
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
