package economy

// Mob is one entry in the static hunting loot table. Reward doubles as the
// eligibility threshold: a hazard profile with threshold T draws only from
// mobs whose reward is at least T.
type Mob struct {
	Name   string
	Reward int64
	Weight float64
}

// Catalog is the fixed loot table, immutable after load. Rarity weight
// falls as reward rises.
var Catalog = []Mob{
	{"Aardvark", 10, 45.0},
	{"Albatross", 10, 45.0},
	{"Antelope", 10, 45.0},
	{"Armadillo", 10, 45.0},
	{"Baboon", 10, 45.0},
	{"Badger", 10, 45.0},
	{"Bat", 10, 45.0},
	{"Bear", 10, 45.0},
	{"Beaver", 20, 35.0},
	{"Bison", 20, 35.0},
	{"Bluejay", 20, 35.0},
	{"Bobcat", 20, 35.0},
	{"Buffalo", 20, 35.0},
	{"Camel", 20, 35.0},
	{"Capybara", 20, 35.0},
	{"Caribou", 20, 35.0},
	{"Cassowary", 35, 25.0},
	{"Cat", 35, 25.0},
	{"Cheetah", 35, 25.0},
	{"Chicken", 35, 25.0},
	{"Chimpanzee", 35, 25.0},
	{"Chinchilla", 35, 25.0},
	{"Cobra", 35, 25.0},
	{"Cockatoo", 35, 25.0},
	{"Condor", 45, 20.0},
	{"Cougar", 45, 20.0},
	{"Coyote", 45, 20.0},
	{"Crane", 45, 20.0},
	{"Crocodile", 45, 20.0},
	{"Crow", 45, 20.0},
	{"Deer", 45, 20.0},
	{"Dingo", 45, 20.0},
	{"Dog", 65, 15.0},
	{"Donkey", 65, 15.0},
	{"Dove", 65, 15.0},
	{"Duck", 65, 15.0},
	{"Eagle", 65, 15.0},
	{"Elephant", 65, 15.0},
	{"Elk", 65, 15.0},
	{"Falcon", 65, 15.0},
	{"Ferret", 200, 10.0},
	{"Flamingo", 200, 10.0},
	{"Fox", 200, 10.0},
	{"Frog", 200, 10.0},
	{"Gazelle", 200, 10.0},
	{"Giraffe", 200, 10.0},
	{"Goat", 200, 10.0},
	{"Goose", 200, 10.0},
	{"Gorilla", 5000, 1.0},
	{"Hedgehog", 5000, 1.0},
	{"Hippopotamus", 5000, 1.0},
	{"Horse", 5000, 1.0},
	{"Hyena", 5000, 1.0},
	{"Ibis", 5000, 1.0},
	{"Iguana", 5000, 1.0},
	{"Impala", 5000, 1.0},
	{"Jackal", 50000, 0.06},
	{"Jaguar", 50000, 0.06},
	{"Kangaroo", 50000, 0.06},
	{"Koala", 50000, 0.06},
	{"Lemur", 50000, 0.06},
	{"Leopard", 50000, 0.06},
	{"Lion", 100000, 0.001},
	{"Lizard", 100000, 0.001},
	{"Manticore", 1000000, 0.0001},
	{"Phoenix", 1000000, 0.0001},
	{"Leviathan", 10000000, 0.0000001},
	{"Moonlight Wraith", 100000000, 0.000000000001},
}

// Eligible filters the catalog to mobs at or above the threshold.
func Eligible(catalog []Mob, threshold int64) []Mob {
	out := make([]Mob, 0, len(catalog))
	for _, m := range catalog {
		if m.Reward >= threshold {
			out = append(out, m)
		}
	}
	return out
}
