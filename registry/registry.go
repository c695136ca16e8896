package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"go.uber.org/atomic"

	"github.com/keyweave/keyweave/interfaces"
	"github.com/keyweave/keyweave/primitiveset"
)

// managerEntry records a key manager together with the primitive kind it
// was registered for and the flags from its registration.
type managerEntry struct {
	km            interfaces.KeyManager
	kind          reflect.Type
	version       uint32
	newKeyAllowed bool
}

// catalogueEntry stores a catalogue behind a uniform, type-erased accessor.
// The original value is kept for equivalence checks on re-registration.
type catalogueEntry struct {
	catalogue     any
	kind          reflect.Type
	getKeyManager func(typeURL, primitiveName string, minVersion uint32) (interfaces.KeyManager, error)
}

type wrapperEntry struct {
	wrapper any
}

// Registry binds type URLs to key managers, catalogue names to catalogues,
// and primitive kinds to primitive wrappers. Construct with New; the zero
// value is not usable.
type Registry struct {
	log *slog.Logger

	mu          sync.RWMutex
	keyManagers map[string]*managerEntry
	catalogues  map[string]*catalogueEntry
	wrappers    map[reflect.Type]*wrapperEntry

	lookups       atomic.Uint64
	registrations atomic.Uint64
}

// New creates an empty registry. A nil logger disables registration logs.
func New(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Registry{
		log:         log,
		keyManagers: make(map[string]*managerEntry),
		catalogues:  make(map[string]*catalogueEntry),
		wrappers:    make(map[reflect.Type]*wrapperEntry),
	}
}

// Stats reports cumulative operation counts since construction. Counters
// survive Reset.
type Stats struct {
	Lookups       uint64
	Registrations uint64
}

// Stats returns a snapshot of the registry's operation counters.
func (r *Registry) Stats() Stats {
	return Stats{
		Lookups:       r.lookups.Load(),
		Registrations: r.registrations.Load(),
	}
}

// Reset atomically empties all three tables. It exists solely for
// deterministic tests and must not be called in production flow: it
// invalidates the registrations backing previously wrapped primitives,
// though already-constructed primitives remain usable since they hold no
// registry reference.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keyManagers = make(map[string]*managerEntry)
	r.catalogues = make(map[string]*catalogueEntry)
	r.wrappers = make(map[reflect.Type]*wrapperEntry)
	r.log.Debug("registry reset")
}

// sameValue reports whether a and b are the exact same registered value.
// Values of non-comparable types are never considered equivalent.
func sameValue(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || ta == nil || !ta.Comparable() {
		return false
	}
	return a == b
}

// AddCatalogue registers a catalogue under the given name, binding it to
// primitive kind P. Re-adding the same catalogue value is a no-op;
// registering a different catalogue under an occupied name fails with
// KindAlreadyExists.
func AddCatalogue[P any](r *Registry, name string, c interfaces.Catalogue[P]) error {
	const op = "registry.AddCatalogue"
	if name == "" {
		return interfaces.Errorf(op, interfaces.KindInvalidArgument, "catalogue name must not be empty")
	}
	if c == nil {
		return interfaces.Errorf(op, interfaces.KindInvalidArgument, "catalogue must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.catalogues[name]; ok {
		if sameValue(existing.catalogue, c) {
			return nil
		}
		return interfaces.Errorf(op, interfaces.KindAlreadyExists, "a different catalogue is already registered under %q", name)
	}

	r.catalogues[name] = &catalogueEntry{
		catalogue:     c,
		kind:          reflect.TypeFor[P](),
		getKeyManager: c.GetKeyManager,
	}
	r.registrations.Inc()
	r.log.Debug("registered catalogue",
		slog.String("name", name),
		slog.String("kind", reflect.TypeFor[P]().String()))
	return nil
}

// RegisterKeyManager records km for its type URL, bound to primitive kind
// P. Re-registering the same concrete manager for the same kind succeeds as
// long as the version does not decrease and key generation does not become
// more permissive.
func RegisterKeyManager[P any](r *Registry, km interfaces.KeyManager, newKeyAllowed bool) error {
	return r.registerKeyManager("registry.RegisterKeyManager", km, reflect.TypeFor[P](), newKeyAllowed)
}

func (r *Registry) registerKeyManager(op string, km interfaces.KeyManager, kind reflect.Type, newKeyAllowed bool) error {
	if km == nil {
		return interfaces.Errorf(op, interfaces.KindInvalidArgument, "key manager must not be nil")
	}
	typeURL := km.TypeURL()
	if typeURL == "" {
		return interfaces.Errorf(op, interfaces.KindInvalidArgument, "key manager reports an empty type URL")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.keyManagers[typeURL]; ok {
		if reflect.TypeOf(existing.km) != reflect.TypeOf(km) {
			return interfaces.Errorf(op, interfaces.KindAlreadyExists, "a different key manager is already registered for type URL %q", typeURL)
		}
		if existing.kind != kind {
			return interfaces.Errorf(op, interfaces.KindAlreadyExists, "type URL %q is already registered for primitive kind %s", typeURL, existing.kind)
		}
		if km.Version() < existing.version {
			return interfaces.Errorf(op, interfaces.KindAlreadyExists, "type URL %q is already registered at version %d, refusing downgrade to %d", typeURL, existing.version, km.Version())
		}
		if newKeyAllowed && !existing.newKeyAllowed {
			return interfaces.Errorf(op, interfaces.KindAlreadyExists, "type URL %q is already registered with key generation forbidden", typeURL)
		}
		existing.km = km
		existing.version = km.Version()
		existing.newKeyAllowed = newKeyAllowed
		return nil
	}

	r.keyManagers[typeURL] = &managerEntry{
		km:            km,
		kind:          kind,
		version:       km.Version(),
		newKeyAllowed: newKeyAllowed,
	}
	r.registrations.Inc()
	r.log.Debug("registered key manager",
		slog.String("typeURL", typeURL),
		slog.String("kind", kind.String()),
		slog.Uint64("version", uint64(km.Version())),
		slog.Bool("newKeyAllowed", newKeyAllowed))
	return nil
}

// RegisterFromCatalogue resolves a key manager from the named catalogue and
// registers it, as one step of a configuration's batch registration. The
// manager is bound to the primitive kind the catalogue was added under.
func (r *Registry) RegisterFromCatalogue(catalogueName, primitiveName, typeURL string, minVersion uint32, newKeyAllowed bool) error {
	const op = "registry.RegisterFromCatalogue"

	r.mu.RLock()
	entry, ok := r.catalogues[catalogueName]
	r.mu.RUnlock()
	if !ok {
		return interfaces.Errorf(op, interfaces.KindNotFound, "no catalogue registered under %q", catalogueName)
	}

	km, err := entry.getKeyManager(typeURL, primitiveName, minVersion)
	if err != nil {
		return fmt.Errorf("%s: catalogue %q: %w", op, catalogueName, err)
	}
	if km.Version() < minVersion {
		return interfaces.Errorf(op, interfaces.KindInternal, "catalogue %q returned a manager at version %d, below the requested floor %d", catalogueName, km.Version(), minVersion)
	}
	return r.registerKeyManager(op, km, entry.kind, newKeyAllowed)
}

// lookupManager returns a snapshot of the manager entry for typeURL.
func (r *Registry) lookupManager(typeURL string) (managerEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.keyManagers[typeURL]
	if !ok {
		return managerEntry{}, false
	}
	return *e, true
}

// GetKeyManager returns the key manager registered for typeURL, provided it
// was registered for primitive kind P. Both a missing registration and a
// kind mismatch report KindNotFound.
func GetKeyManager[P any](r *Registry, typeURL string) (interfaces.KeyManager, error) {
	const op = "registry.GetKeyManager"
	r.lookups.Inc()

	e, ok := r.lookupManager(typeURL)
	if !ok {
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "no key manager registered for type URL %q", typeURL)
	}
	if want := reflect.TypeFor[P](); e.kind != want {
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "type URL %q is registered for primitive kind %s, not %s", typeURL, e.kind, want)
	}
	return e.km, nil
}

// KeyManager returns the key manager registered for typeURL regardless of
// primitive kind. Used by the keyset layer for key generation and public
// key extraction.
func (r *Registry) KeyManager(typeURL string) (interfaces.KeyManager, error) {
	const op = "registry.KeyManager"
	r.lookups.Inc()

	e, ok := r.lookupManager(typeURL)
	if !ok {
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "no key manager registered for type URL %q", typeURL)
	}
	return e.km, nil
}

// NewKey generates fresh key material through the manager registered for
// typeURL. Fails if the registration forbids key generation.
func (r *Registry) NewKey(typeURL string) ([]byte, error) {
	const op = "registry.NewKey"

	e, ok := r.lookupManager(typeURL)
	if !ok {
		return nil, interfaces.Errorf(op, interfaces.KindNotFound, "no key manager registered for type URL %q", typeURL)
	}
	if !e.newKeyAllowed {
		return nil, interfaces.Errorf(op, interfaces.KindInvalidArgument, "key generation is forbidden for type URL %q", typeURL)
	}
	material, err := e.km.NewKey()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return material, nil
}

// Primitive constructs a primitive of kind P from serialized key material
// using the manager registered for typeURL.
func Primitive[P any](r *Registry, typeURL string, serializedKey []byte) (P, error) {
	const op = "registry.Primitive"
	var zero P

	km, err := GetKeyManager[P](r, typeURL)
	if err != nil {
		return zero, err
	}
	p, err := km.Primitive(serializedKey)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	typed, ok := p.(P)
	if !ok {
		return zero, interfaces.Errorf(op, interfaces.KindInternal, "key manager for %q built %T, which does not implement the requested primitive kind", typeURL, p)
	}
	return typed, nil
}

// RegisterPrimitiveWrapper registers the wrapper for primitive kind P.
// Re-registering the same wrapper value is a no-op; a different wrapper for
// an already-wrapped kind fails with KindAlreadyExists.
func RegisterPrimitiveWrapper[P any](r *Registry, w interfaces.PrimitiveWrapper[P]) error {
	const op = "registry.RegisterPrimitiveWrapper"
	if w == nil {
		return interfaces.Errorf(op, interfaces.KindInvalidArgument, "wrapper must not be nil")
	}
	kind := reflect.TypeFor[P]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.wrappers[kind]; ok {
		if sameValue(existing.wrapper, w) {
			return nil
		}
		return interfaces.Errorf(op, interfaces.KindAlreadyExists, "a different wrapper is already registered for primitive kind %s", kind)
	}

	r.wrappers[kind] = &wrapperEntry{wrapper: w}
	r.registrations.Inc()
	r.log.Debug("registered primitive wrapper", slog.String("kind", kind.String()))
	return nil
}

// Wrap combines a primitive set into a single primitive of kind P using the
// wrapper registered for that kind.
func Wrap[P any](r *Registry, set *primitiveset.Set[P]) (P, error) {
	const op = "registry.Wrap"
	var zero P

	if set == nil {
		return zero, interfaces.Errorf(op, interfaces.KindInvalidArgument, "primitive set must not be nil")
	}

	kind := reflect.TypeFor[P]()
	r.lookups.Inc()
	r.mu.RLock()
	e, ok := r.wrappers[kind]
	r.mu.RUnlock()
	if !ok {
		return zero, interfaces.Errorf(op, interfaces.KindNotFound, "no primitive wrapper registered for kind %s", kind)
	}

	// The entry was stored under reflect.TypeFor[P](), so this assertion
	// cannot fail.
	w := e.wrapper.(interfaces.PrimitiveWrapper[P])
	return w.Wrap(set)
}
