// Procedural naming for territorial entities and characters, by syllable
// combination. Uniqueness is enforced within each generated list.
package realm

import (
	"strconv"

	"github.com/talgya/crownlands/internal/rng"
)

var countyPrefixes = []string{
	"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
	"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
	"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
	"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
}

var countySuffixes = []string{
	"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
	"stead", "wood", "field", "dale", "crest", "vale", "port",
	"ton", "bury", "marsh", "well", "brook", "cliff", "moor",
	"ridge", "watch", "fall", "rest", "point", "reach", "helm",
}

var duchySuffixes = []string{
	"march", "mark", "land", "shire", "holt", "garde", "heath",
	"mere", "fell", "wald", "strand", "coombe", "tor", "weald",
}

var kingdomRoots = []string{
	"Aldor", "Bren", "Cael", "Dregan", "Elsted", "Falken", "Gerem",
	"Harrow", "Ister", "Karnow", "Lothar", "Merid", "Norvan", "Ostrem",
	"Perrin", "Quillon", "Ravard", "Selm", "Tirast", "Valmor",
}

var kingdomEndings = []string{"ia", "mar", "gard", "heim", "oth", "wyn", "ara", "und"}

var givenNames = []string{
	"Aldric", "Berta", "Cedric", "Davina", "Edmund", "Freya", "Gareth",
	"Hilda", "Ivor", "Joslin", "Kendra", "Leofric", "Maud", "Nyle",
	"Oswin", "Petra", "Quentin", "Rohese", "Sigurd", "Thora", "Ulric",
	"Verena", "Wilmot", "Ysolt", "Zethar",
}

var surnames = []string{
	"of the Marsh", "Ironhand", "the Bold", "Greycloak", "of Thornvale",
	"Stormborn", "the Elder", "Blackbriar", "of the Reach", "Goldmane",
	"the Steadfast", "Ashworth", "of Highmoor", "Frostham", "the Younger",
	"Oakenshield", "of the Dales", "Silvering", "the Quiet", "Brookstone",
}

// uniqueNames draws part combinations until count distinct names exist.
// Once the combination space is exhausted, further names are
// disambiguated with an ordinal instead of looping forever.
func uniqueNames(r *rng.Stream, count int, firsts, seconds []string, sep string) []string {
	maxCombos := len(firsts) * len(seconds)
	used := make(map[string]bool, count)
	names := make([]string, 0, count)
	for len(names) < count {
		name := firsts[r.Intn(len(firsts))] + sep + seconds[r.Intn(len(seconds))]
		if used[name] {
			if len(used) < maxCombos {
				continue
			}
			name = name + " " + strconv.Itoa(len(names))
		}
		used[name] = true
		names = append(names, name)
	}
	return names
}

// generateEntityNames produces the county, duchy and kingdom name lists
// for one map, all driven by a single stream so the lists are a pure
// function of the seed.
func generateEntityNames(r *rng.Stream, counties, duchies, kingdoms int) (countyNames, duchyNames, kingdomNames []string) {
	countyNames = uniqueNames(r, counties, countyPrefixes, countySuffixes, "")
	duchyNames = uniqueNames(r, duchies, countyPrefixes, duchySuffixes, "")
	kingdomNames = uniqueNames(r, kingdoms, kingdomRoots, kingdomEndings, "")
	return countyNames, duchyNames, kingdomNames
}

// generateCharacterNames produces count distinct "Given Surname" pairs.
func generateCharacterNames(r *rng.Stream, count int) []string {
	return uniqueNames(r, count, givenNames, surnames, " ")
}
