package cli

import (
	"fmt"
	"sort"
	"strings"
)

// Kind describes how a Tyko resource is reached through the API.
type Kind struct {
	Name       string // singular kind used in manifests and kind/id arguments
	Collection string // list and create path
	Item       string // path prefix of one resource
	ListKey    string // key of the list in the list response; empty for a bare array
	IDField    string
	NameField  string
	Creatable  bool
}

var kinds = []Kind{
	{Name: "project", Collection: "project", Item: "project", ListKey: "projects", IDField: "project_id", NameField: "title", Creatable: true},
	{Name: "collection", Collection: "collection", Item: "collection", ListKey: "collections", IDField: "collection_id", NameField: "collection_name", Creatable: true},
	{Name: "object", Collection: "object", Item: "object", ListKey: "objects", IDField: "object_id", NameField: "name", Creatable: true},
	{Name: "item", Collection: "item", Item: "item", ListKey: "items", IDField: "item_id", NameField: "name", Creatable: true},
	{Name: "note", Collection: "notes", Item: "note", ListKey: "notes", IDField: "note_id", NameField: "text", Creatable: true},
	{Name: "format", Collection: "format", Item: "format", IDField: "format_types_id", NameField: "name"},
}

// LookupKind resolves a kind name, accepting the plural and any letter case.
func LookupKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range kinds {
		if n == k.Name || n == k.Name+"s" {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("unknown resource kind: %s (expected one of %s)", name, strings.Join(kindNames(), ", "))
}

func kindNames() []string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.Name)
	}
	sort.Strings(names)
	return names
}

// splitKindID parses a kind/id argument.
func splitKindID(arg string) (Kind, string, error) {
	parts := strings.SplitN(arg, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return Kind{}, "", fmt.Errorf("invalid resource format. Expected <kind>/<id>")
	}
	k, err := LookupKind(parts[0])
	if err != nil {
		return Kind{}, "", err
	}
	for _, c := range parts[1] {
		if c < '0' || c > '9' {
			return Kind{}, "", fmt.Errorf("invalid id: %s", parts[1])
		}
	}
	return k, parts[1], nil
}
