// Package main provides an offline match simulator: it pits two generated
// characters against each other under a fixed seed and prints the full
// combat log. Useful for balance tuning and for replaying disputed matches.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/combat"
	"github.com/cory-johannsen/arena/internal/game/pvp"
	"github.com/cory-johannsen/arena/internal/game/skill"
)

func main() {
	attackerClass := flag.String("attacker", "fighter", "attacker class: fighter, caster, or archer")
	defenderClass := flag.String("defender", "archer", "defender class: fighter, caster, or archer")
	attackerLevel := flag.Int("attacker-level", 5, "attacker level")
	defenderLevel := flag.Int("defender-level", 5, "defender level")
	boss := flag.Bool("boss", false, "upgrade the defender to a boss-grade opponent")
	seed := flag.Int64("seed", 0, "match seed (0 = wall clock); replay a match by reusing its seed")
	matches := flag.Int("n", 1, "number of matches to run (seed increments per match)")
	listClasses := flag.Bool("list-classes", false, "print each class's base stats and skill kit, then exit")
	flag.Parse()

	if *listClasses {
		printClasses()
		return
	}

	atkClass := character.Class(*attackerClass)
	defClass := character.Class(*defenderClass)
	if !atkClass.Valid() || !defClass.Valid() {
		log.Fatalf("classes must be fighter, caster, or archer; got %q and %q", *attackerClass, *defenderClass)
	}

	attacker := character.GenerateEnemy(atkClass, *attackerLevel)
	var defender *character.Character
	if *boss {
		defender = character.GenerateBoss(defClass, *defenderLevel)
	} else {
		defender = character.GenerateEnemy(defClass, *defenderLevel)
	}

	matchSeed := *seed
	if matchSeed == 0 {
		matchSeed = pvp.NewMatchSeed()
	}

	wins := map[string]int{}
	for i := 0; i < *matches; i++ {
		res := pvp.SimulateMatch(*attacker, *defender, attacker.Rating, defender.Rating, matchSeed+int64(i))

		winnerName := attacker.Name
		if res.Winner == combat.SideDefender {
			winnerName = defender.Name
		}
		wins[winnerName]++

		if *matches == 1 {
			fmt.Fprintf(os.Stdout, "match %s (seed %d)\n", res.ID, res.Seed)
			fmt.Fprintf(os.Stdout, "  %s (lvl %d %s)  vs  %s (lvl %d %s)\n\n",
				attacker.Name, attacker.Level, attacker.Class,
				defender.Name, defender.Level, defender.Class)
			for _, ev := range res.Log {
				fmt.Fprintf(os.Stdout, "  [turn %2d] %s\n", ev.Turn, ev.Message)
			}
			fmt.Fprintf(os.Stdout, "\n%d turns, final health %d / %d, rating delta %+d\n",
				res.Turns, res.AttackerHealth, res.DefenderHealth, res.RatingDelta)
			return
		}
	}

	fmt.Fprintf(os.Stdout, "%d matches from seed %d [%s]\n", *matches, matchSeed, time.Now().Format(time.RFC3339))
	for name, n := range wins {
		fmt.Fprintf(os.Stdout, "  %-32s %4d wins (%.1f%%)\n", name, n, 100*float64(n)/float64(*matches))
	}
}

// printClasses dumps the level-1 stat blocks and skill kits.
func printClasses() {
	for _, class := range []character.Class{character.ClassFighter, character.ClassCaster, character.ClassArcher} {
		base := character.BaseStats(class)
		fmt.Fprintf(os.Stdout, "%s: hp %d atk %d def %d spd %d eva %d crit %d lck %d\n",
			class, base.MaxHealth, base.Attack, base.Defense, base.Speed,
			base.Evasion, base.CritChance, base.Luck)
		for _, sk := range skill.ForClass(class) {
			line := fmt.Sprintf("  %-16s %.1fx attack, %d turn cooldown", sk.Name, sk.DamageMult, sk.Cooldown)
			if sk.HealFrac > 0 {
				line += fmt.Sprintf(", heals %.0f%% of damage dealt", sk.HealFrac*100)
			}
			fmt.Fprintln(os.Stdout, line)
		}
	}
}
