package bundle_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"modbundle/internal/bundle"
	"modbundle/internal/lexer"
)

func TestSnapshotRoundTrip(t *testing.T) {
	b := bundle.New("main", sampleResolver(), bundle.Options{PreserveVisibility: true})
	if err := b.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := b.SaveSnapshot(&buf); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	restored, err := bundle.LoadSnapshot(&buf)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if restored.Entry() != "main" || !restored.Loaded() {
		t.Fatalf("restored bundle: entry %q loaded %v", restored.Entry(), restored.Loaded())
	}

	var want, got bytes.Buffer
	if err := b.Write(&want); err != nil {
		t.Fatal(err)
	}
	if err := restored.Write(&got); err != nil {
		t.Fatal(err)
	}
	if got.String() != want.String() {
		t.Fatalf("restored output differs\n got: %q\nwant: %q", got.String(), want.String())
	}
	if !reflect.DeepEqual(restored.Stats(), b.Stats()) {
		t.Fatalf("Stats() = %+v, want %+v", restored.Stats(), b.Stats())
	}

	if err := restored.Load(context.Background()); !errors.Is(err, bundle.ErrNoResolver) {
		t.Fatalf("Load on snapshot = %v, want ErrNoResolver", err)
	}
}

func TestSaveSnapshotBeforeLoad(t *testing.T) {
	b := bundle.New("main", sampleResolver(), bundle.Options{})
	if err := b.SaveSnapshot(&bytes.Buffer{}); !errors.Is(err, bundle.ErrNotLoaded) {
		t.Fatalf("err = %v, want ErrNotLoaded", err)
	}
}

func TestLoadSnapshotRejectsOtherSchema(t *testing.T) {
	data, err := msgpack.Marshal(&bundle.Snapshot{Schema: 99, Entry: "main", Syntax: lexer.DefaultSyntax()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := bundle.LoadSnapshot(bytes.NewReader(data)); !errors.Is(err, bundle.ErrSnapshotSchema) {
		t.Fatalf("err = %v, want ErrSnapshotSchema", err)
	}
}

func TestLoadSnapshotRejectsGarbage(t *testing.T) {
	if _, err := bundle.LoadSnapshot(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Fatal("expected decode error")
	}
}
