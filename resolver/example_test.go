package resolver_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/erraggy/jsonref/proxytypes"
	"github.com/erraggy/jsonref/resolver"
)

func ExampleLoadString() {
	doc, err := resolver.LoadString(`{"a": 1, "b": {"$ref": "#/a"}}`)
	if err != nil {
		log.Fatal(err)
	}
	b, err := proxytypes.Key(doc, "b")
	if err != nil {
		log.Fatal(err)
	}
	v, err := proxytypes.Resolve(b)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
	// Output: 1
}

func ExampleWithLoader() {
	docs := map[string]any{
		"colors.json": map[string]any{"primary": "blue"},
	}
	doc, err := resolver.LoadString(
		`{"color": {"$ref": "colors.json#/primary"}}`,
		resolver.WithLoader(func(uri string) (any, error) {
			d, ok := docs[uri]
			if !ok {
				return nil, fmt.Errorf("unknown document %q", uri)
			}
			return d, nil
		}),
	)
	if err != nil {
		log.Fatal(err)
	}
	color, err := proxytypes.Key(doc, "color")
	if err != nil {
		log.Fatal(err)
	}
	v, err := proxytypes.Resolve(color)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
	// Output: blue
}

func ExampleWithProxies() {
	doc, err := resolver.LoadString(
		`{"a": [1, 2], "b": {"$ref": "#/a"}}`,
		resolver.WithProxies(false),
	)
	if err != nil {
		log.Fatal(err)
	}
	data, err := resolver.Marshal(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))
	// Output: {"a":[1,2],"b":[1,2]}
}

func ExampleDump() {
	loaded, err := resolver.LoadString(`[1,2,{"$ref":"#/0"},3]`)
	if err != nil {
		log.Fatal(err)
	}
	var buf bytes.Buffer
	if err := resolver.Dump(&buf, loaded); err != nil {
		log.Fatal(err)
	}
	fmt.Println(buf.String())
	// Output: [1,2,{"$ref":"#/0"},3]
}

func ExampleWalkRefs() {
	loaded, err := resolver.LoadString(`{"a": {"$ref": "#/c"}, "b": {"$ref": "#/c"}, "c": 1}`)
	if err != nil {
		log.Fatal(err)
	}
	count := 0
	err = resolver.WalkRefs(loaded, func(r *resolver.Ref) error {
		count++
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(count)
	// Output: 2
}
