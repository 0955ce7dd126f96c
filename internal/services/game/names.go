package game

import (
	"fmt"
	"math/rand"
)

var nameAdjectives = []string{
	"Brave", "Calm", "Clever", "Eager", "Fuzzy", "Gentle", "Happy",
	"Jolly", "Lucky", "Mighty", "Nimble", "Quick", "Quiet", "Shiny",
	"Sleepy", "Sneaky", "Swift", "Witty", "Zesty",
}

var nameAnimals = []string{
	"Badger", "Capuchin", "Dolphin", "Falcon", "Gecko", "Heron",
	"Ibis", "Jackal", "Koala", "Lemur", "Marmot", "Narwhal", "Otter",
	"Panda", "Quokka", "Raccoon", "Stoat", "Toucan", "Walrus",
}

// randomDisplayName produces names like "Sneaky Otter 42". Collisions are
// harmless: identity is the userId, the name is cosmetic.
func randomDisplayName() string {
	return fmt.Sprintf("%s %s %d",
		nameAdjectives[rand.Intn(len(nameAdjectives))],
		nameAnimals[rand.Intn(len(nameAnimals))],
		rand.Intn(100),
	)
}
