// Package racekeys maps creature race identifiers to animation output
// folders and resolves legacy race codes to canonical race keys.
package racekeys

import (
	"strings"

	"github.com/saelir/scenepack/internal/errors"
)

// folders maps every canonical race key to its mesh folder, relative to
// meshes/actors. The mapping is many-to-one: several keys share a folder
// (the Boar variants, the Canine family, the Spider sizes).
var folders = map[string]string{
	"Human":             "character",
	"Ash Hopper":        "dlc02/scrib",
	"Bear":              "bear",
	"Boar":              "dlc02/boarriekling",
	"Boar (Any)":        "dlc02/boarriekling",
	"Boar (Mounted)":    "dlc02/boarriekling",
	"Canine":            "canine",
	"Dog":               "canine",
	"Wolf":              "canine",
	"Fox":               "canine",
	"Chaurus":           "chaurus",
	"Chaurus Reaper":    "chaurus",
	"Chaurus Hunter":    "dlc01/chaurusflyer",
	"Chicken":           "ambient/chicken",
	"Cow":               "cow",
	"Deer":              "deer",
	"Dragon Priest":     "dragonpriest",
	"Dragon":            "dragon",
	"Draugr":            "draugr",
	"Dwarven Ballista":  "dlc02/dwarvenballistacenturion",
	"Dwarven Centurion": "dwarvensteamcenturion",
	"Dwarven Sphere":    "dwarvenspherecenturion",
	"Dwarven Spider":    "dwarvenspider",
	"Falmer":            "falmer",
	"Flame Atronach":    "atronachflame",
	"Frost Atronach":    "atronachfrost",
	"Storm Atronach":    "atronachstorm",
	"Gargoyle":          "dlc01/vampirebrute",
	"Giant":             "giant",
	"Goat":              "goat",
	"Hagraven":          "hagraven",
	"Horker":            "horker",
	"Horse":             "horse",
	"Ice Wraith":        "icewraith",
	"Lurker":            "dlc02/benthiclurker",
	"Mammoth":           "mammoth",
	"Mudcrab":           "mudcrab",
	"Netch":             "dlc02/netch",
	"Rabbit":            "ambient/hare",
	"Riekling":          "dlc02/riekling",
	"Sabrecat":          "sabrecat",
	"Seeker":            "dlc02/hmdaedra",
	"Skeever":           "skeever",
	"Slaughterfish":     "slaughterfish",
	"Spider":            "frostbitespider",
	"Large Spider":      "frostbitespider",
	"Giant Spider":      "frostbitespider",
	"Spriggan":          "spriggan",
	"Troll":             "troll",
	"Vampire Lord":      "vampirelord",
	"Werewolf":          "werewolfbeast",
	"Wispmother":        "wisp",
	"Wisp":              "witchlight",
}

// legacy maps old SLAL race tokens (lowercase, no spaces) to canonical
// race keys. Unknown tokens error rather than defaulting silently.
var legacy = map[string]string{
	"ashhopper":        "Ash Hopper",
	"bear":             "Bear",
	"bears":            "Bear",
	"boar":             "Boar",
	"boars":            "Boar",
	"boarmounted":      "Boar (Mounted)",
	"boarsmounted":     "Boar (Mounted)",
	"boarsany":         "Boar (Any)",
	"canine":           "Canine",
	"canines":          "Canine",
	"dog":              "Dog",
	"dogs":             "Dog",
	"wolf":             "Wolf",
	"wolves":           "Wolf",
	"fox":              "Fox",
	"foxes":            "Fox",
	"chaurus":          "Chaurus",
	"chaurusreaper":    "Chaurus Reaper",
	"chaurusreapers":   "Chaurus Reaper",
	"chaurushunter":    "Chaurus Hunter",
	"chaurushunters":   "Chaurus Hunter",
	"chicken":          "Chicken",
	"chickens":         "Chicken",
	"cow":              "Cow",
	"cows":             "Cow",
	"deer":             "Deer",
	"deers":            "Deer",
	"dragon":           "Dragon",
	"dragons":          "Dragon",
	"dragonpriest":     "Dragon Priest",
	"dragonpriests":    "Dragon Priest",
	"draugr":           "Draugr",
	"draugrs":          "Draugr",
	"dwarvenballista":  "Dwarven Ballista",
	"dwarvenballistas": "Dwarven Ballista",
	"dwarvencenturion": "Dwarven Centurion",
	"dwarvencenturions": "Dwarven Centurion",
	"dwarvensphere":    "Dwarven Sphere",
	"dwarvenspheres":   "Dwarven Sphere",
	"dwarvenspider":    "Dwarven Spider",
	"dwarvenspiders":   "Dwarven Spider",
	"falmer":           "Falmer",
	"falmers":          "Falmer",
	"flameatronach":    "Flame Atronach",
	"frostatronach":    "Frost Atronach",
	"stormatronach":    "Storm Atronach",
	"gargoyle":         "Gargoyle",
	"gargoyles":        "Gargoyle",
	"giant":            "Giant",
	"giants":           "Giant",
	"goat":             "Goat",
	"goats":            "Goat",
	"hagraven":         "Hagraven",
	"hagravens":        "Hagraven",
	"horker":           "Horker",
	"horkers":          "Horker",
	"horse":            "Horse",
	"horses":           "Horse",
	"icewraith":        "Ice Wraith",
	"icewraiths":       "Ice Wraith",
	"lurker":           "Lurker",
	"lurkers":          "Lurker",
	"mammoth":          "Mammoth",
	"mammoths":         "Mammoth",
	"mudcrab":          "Mudcrab",
	"mudcrabs":         "Mudcrab",
	"netch":            "Netch",
	"netches":          "Netch",
	"rabbit":           "Rabbit",
	"rabbits":          "Rabbit",
	"hare":             "Rabbit",
	"hares":            "Rabbit",
	"riekling":         "Riekling",
	"rieklings":        "Riekling",
	"sabrecat":         "Sabrecat",
	"sabrecats":        "Sabrecat",
	"seeker":           "Seeker",
	"seekers":          "Seeker",
	"skeever":          "Skeever",
	"skeevers":         "Skeever",
	"slaughterfish":    "Slaughterfish",
	"slaughterfishes":  "Slaughterfish",
	"spider":           "Spider",
	"spiders":          "Spider",
	"largespider":      "Large Spider",
	"largespiders":     "Large Spider",
	"giantspider":      "Giant Spider",
	"giantspiders":     "Giant Spider",
	"spriggan":         "Spriggan",
	"spriggans":        "Spriggan",
	"troll":            "Troll",
	"trolls":           "Troll",
	"vampirelord":      "Vampire Lord",
	"vampirelords":     "Vampire Lord",
	"werewolf":         "Werewolf",
	"werewolves":       "Werewolf",
	"wisp":             "Wisp",
	"wisps":            "Wisp",
	"wispmother":       "Wispmother",
	"wispmothers":      "Wispmother",
}

// aliasGroups enumerates race keys whose generated lines fan out to other
// members of their family. Expressed as a lookup so future alias additions
// stay a table edit, not new branches.
var aliasGroups = map[string][]string{
	"Canine":         {"Canine", "Dog", "Wolf"},
	"Dog":            {"Dog", "Canine"},
	"Wolf":           {"Wolf", "Canine"},
	"Boar":           {"Boar (Any)"},
	"Boar (Mounted)": {"Boar (Any)"},
	"Boar (Any)":     {"Boar (Any)"},
}

// FolderFor returns the mesh folder (slash-separated, relative to
// meshes/actors) for a canonical race key.
func FolderFor(raceKey string) (string, error) {
	folder, ok := folders[raceKey]
	if !ok {
		return "", errors.NewUnknownRaceKey(raceKey)
	}
	return folder, nil
}

// IsKnown reports whether raceKey has an output folder.
func IsKnown(raceKey string) bool {
	_, ok := folders[raceKey]
	return ok
}

// FromLegacy resolves a legacy SLAL race token to a canonical race key.
// Tokens are matched case-insensitively with spaces ignored.
func FromLegacy(code string) (string, error) {
	token := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(code)), " ", "")
	key, ok := legacy[token]
	if !ok {
		return "", errors.NewUnknownLegacyRace(code)
	}
	return key, nil
}

// AliasGroup returns the race keys a line set for raceKey is inserted
// under. Most keys map to themselves; the Canine family cross-inserts and
// the Boar variants collapse to one canonical group.
func AliasGroup(raceKey string) []string {
	if group, ok := aliasGroups[raceKey]; ok {
		return group
	}
	return []string{raceKey}
}

// FolderSegment returns the folder component used in list file naming:
// the part after the first path separator, or the whole folder when it
// has none.
func FolderSegment(folder string) string {
	if _, after, found := strings.Cut(folder, "/"); found {
		return after
	}
	return folder
}
