package catalog

import (
	"context"
	"errors"
	"itinerary-service/internal/domain"
	"itinerary-service/internal/ports"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	mu      sync.Mutex
	data    ports.CatalogData
	err     error
	calls   atomic.Int32
	release chan struct{}
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(ctx context.Context) (ports.CatalogData, error) {
	s.calls.Add(1)
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data, s.err
}

func (s *stubSource) set(data ports.CatalogData, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data, s.err = data, err
}

func TestStoreStartsEmpty(t *testing.T) {
	store := NewStore(&stubSource{})

	assert.Empty(t, store.Current().AllPOIs())
	assert.Equal(t, 0, store.Snapshot().POICount())
}

func TestStoreReloadPublishesAndKeepsPreviousOnFailure(t *testing.T) {
	src := &stubSource{}
	src.set(ports.CatalogData{
		POIs:   []domain.POI{{ID: "a", Name: "A"}, {ID: "a", Name: "dup"}},
		Venues: []domain.Venue{{ID: "v", Name: "V"}},
		Issues: []string{"something odd"},
	}, nil)
	store := NewStore(src)

	require.NoError(t, store.Reload(context.Background()))
	first := store.Snapshot()
	assert.Equal(t, 1, first.POICount())
	assert.Equal(t, 1, first.VenueCount())

	src.set(ports.CatalogData{}, errors.New("source down"))
	err := store.Reload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source=stub")
	assert.Same(t, first, store.Snapshot())

	src.set(ports.CatalogData{POIs: []domain.POI{{ID: "b"}, {ID: "c"}}}, nil)
	require.NoError(t, store.Reload(context.Background()))
	assert.Equal(t, 2, store.Snapshot().POICount())
	_, ok := store.Current().GetPOI("a")
	assert.False(t, ok)
}

func TestStoreCoalescesConcurrentReloads(t *testing.T) {
	src := &stubSource{release: make(chan struct{})}
	src.set(ports.CatalogData{POIs: []domain.POI{{ID: "a"}}}, nil)
	store := NewStore(src)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	reload := func() {
		defer wg.Done()
		errs <- store.Reload(context.Background())
	}

	wg.Add(1)
	go reload()
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go reload()
	}
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, 1, store.Snapshot().POICount())
}
