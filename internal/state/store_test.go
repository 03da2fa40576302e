package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeconsole-backend/internal/domain"
)

func TestStore_DispatchPublishesSnapshots(t *testing.T) {
	store := NewStore()
	before := store.State()

	after := store.Dispatch(RequestShippingZones(testSiteID))

	assert.NotSame(t, before, after)
	assert.Same(t, after, store.State())
	assert.False(t, AreShippingZonesLoading(before, testSiteID), "old snapshots never change")
	assert.True(t, AreShippingZonesLoading(after, testSiteID))
	assert.Equal(t, uint64(1), store.Revision())
}

func TestStore_NoOpDispatchKeepsRevision(t *testing.T) {
	store := NewStore()
	store.Dispatch(CloseShippingZoneEdit(testSiteID))
	assert.Equal(t, uint64(0), store.Revision())
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	store := NewStore()
	var seen []*State
	unsubscribe := store.Subscribe(func(s *State) { seen = append(seen, s) })

	first := store.Dispatch(RequestShippingZones(testSiteID))
	store.Dispatch(CloseShippingZoneEdit(testSiteID))
	unsubscribe()
	store.Dispatch(RequestShippingZonesSuccess(testSiteID, createTestZones()))

	require.Len(t, seen, 1)
	assert.Same(t, first, seen[0])
}

func TestStore_ObserverSeesEveryDispatch(t *testing.T) {
	var types []ActionType
	var changes []bool
	store := NewStore(WithObserver(func(a Action, changed bool, _ time.Duration) {
		types = append(types, a.ActionType())
		changes = append(changes, changed)
	}))

	store.Dispatch(RequestSetupChoices(testSiteID))
	store.Dispatch(CloseShippingZoneEdit(testSiteID))

	assert.Equal(t, []ActionType{TypeSetupChoicesRequest, TypeShippingZoneEditClose}, types)
	assert.Equal(t, []bool{true, false}, changes)
}

func TestStore_ConcurrentDispatchIsSerialized(t *testing.T) {
	store := NewStore(WithInitialState(Reduce(New(), RequestShippingZonesSuccess(testSiteID, createTestZones()))))

	var wg sync.WaitGroup
	for i := int64(1); i <= 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			store.Dispatch(UpdateShippingZoneSuccess(testSiteID, domain.ShippingZone{ID: 100 + id}))
		}(i)
	}
	wg.Wait()

	assert.Len(t, GetShippingZones(store.State(), testSiteID), 52)
	assert.Equal(t, uint64(50), store.Revision())
}

func TestStore_SubscribersSeeSnapshotsInOrder(t *testing.T) {
	store := NewStore()

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	var seen []*State
	var once sync.Once
	store.Subscribe(func(s *State) {
		once.Do(func() {
			close(entered)
			<-release
		})
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Dispatch(RequestShippingZones(testSiteID))
	}()
	<-entered

	// Applied right away even though the first delivery is still running.
	loaded := store.Dispatch(RequestShippingZonesSuccess(testSiteID, createTestZones()))
	assert.True(t, AreShippingZonesLoaded(store.State(), testSiteID))

	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.True(t, AreShippingZonesLoading(seen[0], testSiteID))
	assert.Same(t, loaded, seen[1], "the last delivered snapshot is the latest")
}

func TestStore_SubscriberMayDispatch(t *testing.T) {
	store := NewStore()
	var seen []*State
	store.Subscribe(func(s *State) {
		seen = append(seen, s)
		if len(seen) == 1 {
			store.Dispatch(RequestShippingZonesSuccess(testSiteID, createTestZones()))
		}
	})

	store.Dispatch(RequestShippingZones(testSiteID))

	require.Len(t, seen, 2)
	assert.True(t, AreShippingZonesLoading(seen[0], testSiteID))
	assert.True(t, AreShippingZonesLoaded(seen[1], testSiteID))
}
