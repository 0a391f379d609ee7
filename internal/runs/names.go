package runs

import (
	"glottisdale/internal/rng"
)

var adjectives = []string{
	"amber", "ashen", "bold", "brisk", "calm", "cedar", "clever", "coral",
	"crisp", "dusky", "eager", "fabled", "faint", "gentle", "gilded", "hazy",
	"hollow", "idle", "ivory", "jade", "keen", "lively", "lunar", "mellow",
	"misty", "noble", "olive", "pale", "quiet", "rapid", "rustic", "scarlet",
	"silent", "silver", "sleepy", "solar", "stray", "swift", "tawny", "tender",
	"umber", "velvet", "vivid", "wandering", "wild", "wistful", "woven", "young",
}

var nouns = []string{
	"anchor", "badger", "basin", "beacon", "bramble", "canyon", "cinder",
	"comet", "cricket", "delta", "ember", "falcon", "fern", "fjord", "glacier",
	"harbor", "heron", "hollow", "island", "juniper", "kestrel", "lantern",
	"larch", "meadow", "minnow", "nebula", "otter", "pebble", "pine", "quarry",
	"raven", "reef", "river", "sparrow", "spruce", "summit", "thicket",
	"thistle", "tundra", "valley", "willow", "wren", "yarrow", "zephyr",
}

// nameSalt separates the naming generator from the pipeline stream that
// shares the seed.
const nameSalt = 0x676c6f7474697364

// Name returns the adjective-noun pair for seed.
func Name(seed int64) string {
	stream := rng.New(seed ^ nameSalt)
	return rng.Pick(stream, adjectives) + "-" + rng.Pick(stream, nouns)
}
