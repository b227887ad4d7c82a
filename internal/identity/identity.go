package identity

import (
	"fmt"
	"math/rand/v2"

	"ephemera/internal/domain"
)

var adjectives = []string{
	"Amber", "Ancient", "Bold", "Brave", "Bright", "Calm", "Clever",
	"Crimson", "Curious", "Daring", "Dusty", "Eager", "Electric", "Fierce",
	"Gentle", "Golden", "Hidden", "Hollow", "Icy", "Jade", "Keen", "Lone",
	"Lucid", "Misty", "Nimble", "Pale", "Quiet", "Rapid", "Restless",
	"Rogue", "Scarlet", "Silent", "Silver", "Sly", "Solar", "Stoic",
	"Swift", "Velvet", "Wandering", "Wild",
}

var animals = []string{
	"Badger", "Bison", "Condor", "Coyote", "Crane", "Falcon", "Ferret",
	"Fox", "Gecko", "Heron", "Ibex", "Jackal", "Jaguar", "Kestrel",
	"Lemur", "Lynx", "Marten", "Mole", "Moth", "Newt", "Ocelot", "Orca",
	"Osprey", "Otter", "Owl", "Panther", "Puffin", "Raven", "Salamander",
	"Seal", "Shrike", "Sparrow", "Stoat", "Swift", "Tapir", "Viper",
	"Vole", "Weasel", "Wolf", "Wren",
}

// Generate returns a fresh pseudonym for this session.
func Generate() domain.Identity {
	adj := adjectives[rand.IntN(len(adjectives))]
	ani := animals[rand.IntN(len(animals))]
	return domain.Identity(adj + " " + ani)
}

// Accent derives the sender's gradient color pair from their label: two
// hues 180 degrees apart, picked by hashing the label. Deterministic, so
// every client renders a given sender the same way.
func Accent(label string) (string, string) {
	var hash int32
	for _, c := range label {
		hash = int32(c) + ((hash << 5) - hash)
	}
	h := int(hash) % 360
	if h < 0 {
		h += 360
	}
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", h),
		fmt.Sprintf("hsl(%d, 70%%, 50%%)", (h+180)%360)
}
