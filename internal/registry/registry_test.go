package registry

import (
	"testing"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
	"github.com/NII-CPS-Center/tablelinker-lib/internal/params"
)

// stubConvertor is a minimal convertor for registry tests.
type stubConvertor struct {
	convertor.Base
	meta convertor.Meta
}

func (c *stubConvertor) Meta() *convertor.Meta { return &c.meta }

func stubConstructor(key string) Constructor {
	return func() convertor.Convertor {
		return &stubConvertor{meta: convertor.Meta{Key: key, Params: params.NewSet()}}
	}
}

func TestRegisterAndGet(t *testing.T) {
	Clear()
	defer Clear()

	Register("test_convertor", stubConstructor("test_convertor"))

	ctor, ok := Get("test_convertor")
	if !ok {
		t.Fatal("expected constructor, got miss")
	}
	c := ctor()
	if c.Meta().Key != "test_convertor" {
		t.Errorf("expected key 'test_convertor', got %q", c.Meta().Key)
	}
}

func TestGetUnregistered(t *testing.T) {
	Clear()
	defer Clear()

	if _, ok := Get("unknown"); ok {
		t.Error("expected miss for unregistered key")
	}
	if Exists("unknown") {
		t.Error("expected Exists to report false for unregistered key")
	}
}

func TestGetReturnsFreshInstances(t *testing.T) {
	Clear()
	defer Clear()

	Register("test_convertor", stubConstructor("test_convertor"))
	ctor, _ := Get("test_convertor")

	if ctor() == ctor() {
		t.Error("expected a fresh instance per constructor call")
	}
}

func TestList(t *testing.T) {
	Clear()
	defer Clear()

	Register("b_convertor", stubConstructor("b_convertor"))
	Register("a_convertor", stubConstructor("a_convertor"))
	Register("c_convertor", stubConstructor("c_convertor"))

	keys := List()
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(keys))
	}
	for i, want := range []string{"a_convertor", "b_convertor", "c_convertor"} {
		if keys[i] != want {
			t.Errorf("keys[%d] = %q, want %q (sorted)", i, keys[i], want)
		}
	}
}

func TestOverwriteRegistration(t *testing.T) {
	Clear()
	defer Clear()

	Register("test_convertor", stubConstructor("first"))
	Register("test_convertor", stubConstructor("second"))

	ctor, _ := Get("test_convertor")
	if got := ctor().Meta().Key; got != "second" {
		t.Errorf("expected second registration to win, got %q", got)
	}
}

func TestLazyLoader(t *testing.T) {
	Clear()
	defer Clear()

	loads := 0
	RegisterLazyLoader(func() {
		loads++
		Register("lazy_convertor", stubConstructor("lazy_convertor"))
	})

	if _, ok := Get("lazy_convertor"); !ok {
		t.Fatal("expected lazy loader to register the key on first miss")
	}
	if loads != 1 {
		t.Fatalf("expected loader to run once, ran %d times", loads)
	}

	// Further misses must not run the loader again
	if _, ok := Get("still_unknown"); ok {
		t.Error("expected miss for unknown key")
	}
	if loads != 1 {
		t.Errorf("expected loader to stay at one run, got %d", loads)
	}
}

func TestLazyLoaderNotTriggeredByHit(t *testing.T) {
	Clear()
	defer Clear()

	loads := 0
	Register("test_convertor", stubConstructor("test_convertor"))
	RegisterLazyLoader(func() { loads++ })

	if _, ok := Get("test_convertor"); !ok {
		t.Fatal("expected hit for registered key")
	}
	if loads != 0 {
		t.Errorf("expected loader untouched on hit, ran %d times", loads)
	}
}

func TestClear(t *testing.T) {
	Register("test_convertor", stubConstructor("test_convertor"))
	RegisterLazyLoader(func() {})

	Clear()

	if len(List()) != 0 {
		t.Error("expected empty registry after Clear")
	}
	if Exists("test_convertor") {
		t.Error("expected key gone after Clear")
	}
}
