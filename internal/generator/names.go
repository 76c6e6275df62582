package generator

import (
	"fmt"

	"github.com/vovakirdan/snowgroomer/internal/level"
	"github.com/vovakirdan/snowgroomer/internal/rng"
)

type namePattern struct {
	prefixes []string
	suffixes []string
}

// namePatterns follow the resort's naming habits per difficulty.
var namePatterns = map[level.Difficulty]namePattern{
	level.Green: {
		prefixes: []string{"Piste des", "Chemin des", "Balcon des", "Sentier des"},
		suffixes: []string{"Marmottes", "Edelweiss", "Myrtilles", "Sapins", "Bouquetins"},
	},
	level.Blue: {
		prefixes: []string{"Col du", "Plateau du", "Vallon du", "Balcon du"},
		suffixes: []string{"Lac", "Renard", "Soleil", "Glacier", "Refuge"},
	},
	level.Red: {
		prefixes: []string{"Combe de la", "Crête de la", "Face de la", "Arête de la"},
		suffixes: []string{"Dent", "Pointe", "Brèche", "Tête Rousse", "Meije"},
	},
	level.Black: {
		prefixes: []string{"Couloir du", "Mur du", "Face Nord du", "Goulotte du"},
		suffixes: []string{"Diable", "Loup", "Vertige", "Grand Pic", "Dru"},
	},
	level.Park: {
		prefixes: []string{"Snowpark", "Boardercross", "Freestyle Zone"},
		suffixes: []string{"des Aiguilles", "du Lac", "de la Combe", "des Neiges"},
	},
}

// introVariants is the number of dialogue keys per difficulty.
const introVariants = 3

// speakers lists who may brief the player for each difficulty.
var speakers = map[level.Difficulty][]string{
	level.Green: {"Jean-Pierre"},
	level.Blue:  {"Émilie"},
	level.Red:   {"Jean-Pierre", "Thierry"},
	level.Black: {"Thierry"},
	level.Park:  {"Émilie"},
}

// stormSpeaker briefs every run in a storm.
const stormSpeaker = "Marie"

func pickName(r *rng.RNG, d level.Difficulty) string {
	p, ok := namePatterns[d]
	if !ok {
		p = namePatterns[level.Green]
	}
	return rng.Pick(r, p.prefixes) + " " + rng.Pick(r, p.suffixes)
}

func pickIntro(r *rng.RNG, d level.Difficulty, w level.Weather) level.Intro {
	key := fmt.Sprintf("dailyRun_intro_%s_%d", d, r.IntegerInRange(1, introVariants))
	candidates, ok := speakers[d]
	if !ok {
		candidates = speakers[level.Green]
	}
	speaker := rng.Pick(r, candidates)
	if w == level.Storm {
		speaker = stormSpeaker
	}
	return level.Intro{Key: key, Speaker: speaker}
}
