package builtin

import (
	"testing"

	"github.com/jslade/pro-bots/value"
)

func TestNativeObjectReturnsEmptyObject(t *testing.T) {
	result, err := nativeObject()(&testFrame{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	obj, ok := result.(value.Object)
	if !ok {
		t.Fatalf("object() should return an Object, got %T", result)
	}
	if _, present := obj.Get("anything"); present {
		t.Error("a freshly constructed object should have no fields")
	}
}

func TestNativeListCollectsArgsInOrder(t *testing.T) {
	result, err := nativeList()(&testFrame{args: []value.Value{value.Int(1), value.Int(2), value.Int(3)}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := result.(value.List)
	if !ok {
		t.Fatalf("list() should return a List, got %T", result)
	}
	if list.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", list.Len())
	}
	for i, want := range []value.Value{value.Int(1), value.Int(2), value.Int(3)} {
		if !list.Get(i).Equal(want) {
			t.Errorf("element %d = %v, want %v", i, list.Get(i), want)
		}
	}
}

func TestNativeListWithNoArgsIsEmpty(t *testing.T) {
	result, err := nativeList()(&testFrame{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(value.List).Len() != 0 {
		t.Error("list() with no arguments should return an empty list")
	}
}

func TestObjectAndListWriteThroughPropertyRef(t *testing.T) {
	obj, _ := nativeObject()(&testFrame{})
	list, _ := nativeList()(&testFrame{})

	objRef := value.PropertyRef{Owner: obj, Key: value.Str("y")}
	if err := objRef.Set(list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listRef := value.PropertyRef{Owner: list, Key: value.Int(0)}
	if err := listRef.Set(value.Int(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := objRef.Get()
	gotList, ok := got.(value.List)
	if !ok {
		t.Fatalf("obj.y should resolve to the same list, got %T", got)
	}
	if !gotList.Get(0).Equal(value.Int(1)) {
		t.Errorf("obj.y[0] = %v, want 1", gotList.Get(0))
	}
}

func TestNativeBlockNameReturnsAssignedName(t *testing.T) {
	blk := &value.Block{Name: "greet"}
	result, err := nativeBlockName()(&testFrame{args: []value.Value{blk}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(value.Str("greet")) {
		t.Errorf("block_name() = %v, want greet", result)
	}
}

func TestNativeBlockNameUnnamedBlockReturnsNull(t *testing.T) {
	blk := &value.Block{}
	result, err := nativeBlockName()(&testFrame{args: []value.Value{blk}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(value.NullValue) {
		t.Errorf("block_name() of an unnamed block = %v, want null", result)
	}
}

func TestNativeBlockNameRejectsNonBlock(t *testing.T) {
	_, err := nativeBlockName()(&testFrame{args: []value.Value{value.Int(1)}})
	if _, ok := err.(*value.TypeError); !ok {
		t.Fatalf("block_name() on a non-block should return a TypeError, got %v", err)
	}
}

func TestCoreBuiltinsRegistersAllNatives(t *testing.T) {
	natives := CoreBuiltins()
	for _, name := range []string{"object", "list", "block_name"} {
		if _, ok := natives[name]; !ok {
			t.Errorf("CoreBuiltins missing native %q", name)
		}
	}
}
