package generator

import "fmt"

// Registry maps generator names to generator factory functions
// We use factory functions so each run gets a fresh generator instance
var Registry = map[string]func() Generator{
	"dummytable": func() Generator { return &DummyTableGenerator{} },
	"timeseries": func() Generator { return &TimeseriesGenerator{} },
	"people":     func() Generator { return &PeopleGenerator{} },
}

// Get returns a generator by name
func Get(name string) (Generator, error) {
	factory, exists := Registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown generator: %s", name)
	}
	return factory(), nil
}

// List returns all available generator names
func List() []string {
	var names []string
	for name := range Registry {
		names = append(names, name)
	}
	return names
}

// Exists reports whether a generator is registered under name
func Exists(name string) bool {
	_, ok := Registry[name]
	return ok
}
