package layers

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	set := RelationSet{
		Name: "toolchain",
		Relations: []Relation{
			{Left: "A", Right: "B"},
			{Left: "B", Right: "C"},
			{Left: "A", Right: "C"},
		},
	}

	got := Classify(set)

	wantLayers := [][]string{{"A"}, {"B"}, {"C"}}
	if !reflect.DeepEqual(got.Layers, wantLayers) {
		t.Errorf("Layers = %v, want %v", got.Layers, wantLayers)
	}
	want := Stats{Entities: 3, Relations: 3, Distances: 3}
	if got.Stats != want {
		t.Errorf("Stats = %+v, want %+v", got.Stats, want)
	}
}

func TestRelationsRoundTrip(t *testing.T) {
	set := RelationSet{
		Name: "workspace",
		Relations: []Relation{
			{Left: "chat", Right: "workspaces"},
			{Left: "workspaces", Right: "teams"},
		},
	}

	data, err := MarshalRelations(set)
	if err != nil {
		t.Fatalf("MarshalRelations: %v", err)
	}

	got, err := ReadRelations(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRelations: %v", err)
	}
	if !reflect.DeepEqual(got, set) {
		t.Errorf("round trip = %+v, want %+v", got, set)
	}
}

func TestMarshalRelationsDeterministic(t *testing.T) {
	set := RelationSet{Relations: []Relation{{Left: "x", Right: "y"}}}

	a, err := MarshalRelations(set)
	if err != nil {
		t.Fatalf("MarshalRelations: %v", err)
	}
	b, _ := MarshalRelations(set)
	if !bytes.Equal(a, b) {
		t.Error("repeated marshals of the same set differ")
	}
}

func TestReadRelationsRejectsEmptyEndpoint(t *testing.T) {
	input := `{"relations": [{"left": "", "right": "b"}]}`
	_, err := ReadRelations(strings.NewReader(input))
	if !errors.Is(err, ErrEmptyEndpoint) {
		t.Errorf("err = %v, want ErrEmptyEndpoint", err)
	}
}

func TestReadRelationsRejectsMalformedJSON(t *testing.T) {
	if _, err := ReadRelations(strings.NewReader("{nope")); err == nil {
		t.Error("expected decode error for malformed JSON")
	}
}

func TestLayeringRoundTrip(t *testing.T) {
	l := Layering{
		Layers: [][]string{{"a"}, {"b", "c"}},
		Stats:  Stats{Entities: 3, Relations: 2, Distances: 3},
	}

	data, err := MarshalLayering(l)
	if err != nil {
		t.Fatalf("MarshalLayering: %v", err)
	}
	got, err := UnmarshalLayering(data)
	if err != nil {
		t.Fatalf("UnmarshalLayering: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip = %+v, want %+v", got, l)
	}
}
