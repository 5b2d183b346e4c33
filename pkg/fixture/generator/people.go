package generator

import (
	"encoding/csv"
	"math/rand/v2"
	"strconv"
)

// PeopleGenerator generates a small user table: sequential ids, names and
// cities from fixed pools, ages in [18,65)
type PeopleGenerator struct {
	rand *rand.Rand
	next int64
}

var firstNames = []string{
	"Alice",
	"Bruno",
	"Carmen",
	"Dmitri",
	"Elena",
	"Farid",
	"Grace",
	"Hiroshi",
	"Ingrid",
	"Jamal",
	"Katya",
	"Luis",
}

var cities = []string{
	"Madrid",
	"Lagos",
	"Osaka",
	"Toronto",
	"Leipzig",
	"Quito",
	"Tbilisi",
	"Auckland",
}

func (g *PeopleGenerator) Init(r *rand.Rand) {
	g.rand = r
	g.next = 0
}

func (g *PeopleGenerator) Header() []string {
	return []string{"id", "name", "age", "city"}
}

func (g *PeopleGenerator) WriteRow(w *csv.Writer) error {
	g.next++

	return w.Write([]string{
		strconv.FormatInt(g.next, 10),
		firstNames[g.rand.IntN(len(firstNames))],
		strconv.Itoa(18 + g.rand.IntN(47)),
		cities[g.rand.IntN(len(cities))],
	})
}

func (g *PeopleGenerator) Description() string {
	return "User table: id,name,age,city"
}

func (g *PeopleGenerator) DefaultRows() int64 {
	return 100
}
