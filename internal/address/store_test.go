package address

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

type mockService struct {
	mu        sync.Mutex
	addresses map[int64][]Address
	err       error
	nextID    int64
	calls     []string
}

func newMockService() *mockService {
	return &mockService{addresses: make(map[int64][]Address), nextID: 100}
}

func (m *mockService) ByCustomer(_ context.Context, customerID int64) ([]Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "ByCustomer")
	if m.err != nil {
		return nil, m.err
	}
	list, ok := m.addresses[customerID]
	if !ok || len(list) == 0 {
		return nil, backend.ErrNotFound
	}
	out := make([]Address, len(list))
	copy(out, list)
	return out, nil
}

func (m *mockService) DefaultFor(_ context.Context, customerID int64) (*Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.addresses[customerID] {
		if a.IsDefault {
			return &a, nil
		}
	}
	return nil, backend.ErrNotFound
}

func (m *mockService) Create(_ context.Context, customerID int64, draft Draft) (*Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Create")
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	addr := Address{
		ID: m.nextID, Line1: draft.Line1, City: draft.City, State: draft.State,
		ZipCode: draft.ZipCode, Type: draft.Type, IsDefault: draft.IsDefault,
	}
	m.addresses[customerID] = append(m.addresses[customerID], addr)
	return &addr, nil
}

func (m *mockService) Update(_ context.Context, addressID int64, draft Draft) (*Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Update")
	for cid, list := range m.addresses {
		for i := range list {
			if list[i].ID == addressID {
				list[i].Line1 = draft.Line1
				list[i].City = draft.City
				list[i].State = draft.State
				list[i].ZipCode = draft.ZipCode
				m.addresses[cid] = list
				return &list[i], nil
			}
		}
	}
	return nil, backend.ErrNotFound
}

func (m *mockService) Delete(_ context.Context, addressID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "Delete")
	for cid, list := range m.addresses {
		for i := range list {
			if list[i].ID == addressID {
				m.addresses[cid] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return backend.ErrNotFound
}

func (m *mockService) SetDefault(_ context.Context, addressID int64) (*Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "SetDefault")
	var target *Address
	for cid, list := range m.addresses {
		for i := range list {
			list[i].IsDefault = list[i].ID == addressID
			if list[i].IsDefault {
				target = &list[i]
			}
		}
		m.addresses[cid] = list
	}
	if target == nil {
		return nil, backend.ErrNotFound
	}
	return target, nil
}

func (m *mockService) ByType(_ context.Context, customerID int64, addrType Type) ([]Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Address
	for _, a := range m.addresses[customerID] {
		if a.Type == addrType {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockService) Exists(_ context.Context, customerID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.addresses[customerID]) > 0, nil
}

func validDraft() Draft {
	return Draft{
		Line1:   "12 MG Road",
		City:    "Coimbatore",
		State:   "Tamil Nadu",
		ZipCode: "641001",
		Type:    TypeHome,
	}
}

func TestLoad_SelectsFlaggedDefault(t *testing.T) {
	svc := newMockService()
	svc.addresses[1] = []Address{
		{ID: 10, Line1: "a", IsDefault: false},
		{ID: 11, Line1: "b", IsDefault: true},
	}
	store := NewStore(svc)

	addresses, err := store.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, addresses, 2)

	def, ok := store.Default(1)
	require.True(t, ok)
	assert.Equal(t, int64(11), def.ID)
}

func TestLoad_FallsBackToFirstAddress(t *testing.T) {
	svc := newMockService()
	svc.addresses[1] = []Address{{ID: 10}, {ID: 11}}
	store := NewStore(svc)

	_, err := store.Load(context.Background(), 1)
	require.NoError(t, err)

	def, ok := store.Default(1)
	require.True(t, ok)
	assert.Equal(t, int64(10), def.ID)
}

func TestLoad_NotFoundMeansEmpty(t *testing.T) {
	svc := newMockService()
	store := NewStore(svc)

	addresses, err := store.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, addresses)

	_, ok := store.Default(1)
	assert.False(t, ok)
}

func TestLoad_PropagatesOtherFailures(t *testing.T) {
	svc := newMockService()
	svc.err = &backend.ServerError{StatusCode: 500, Message: "boom"}
	store := NewStore(svc)

	_, err := store.Load(context.Background(), 1)
	var serverErr *backend.ServerError
	assert.ErrorAs(t, err, &serverErr)
}

func TestAdd_MutatesRemoteThenResyncs(t *testing.T) {
	svc := newMockService()
	store := NewStore(svc)

	created, err := store.Add(context.Background(), 1, validDraft())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// The local cache must come from a reload, not an optimistic insert.
	assert.Equal(t, []string{"Create", "ByCustomer"}, svc.calls)
	assert.True(t, store.Has(1, created.ID))
}

func TestAdd_ValidationNeverReachesService(t *testing.T) {
	svc := newMockService()
	store := NewStore(svc)

	draft := validDraft()
	draft.ZipCode = "64100" // five digits

	_, err := store.Add(context.Background(), 1, draft)
	var vErr *backend.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "zipCode", vErr.Field)
	assert.Empty(t, svc.calls)
}

func TestSetDefault_ExactlyOneDefaultAfterResync(t *testing.T) {
	svc := newMockService()
	svc.addresses[1] = []Address{
		{ID: 10, IsDefault: true},
		{ID: 11},
		{ID: 12},
	}
	store := NewStore(svc)
	_, err := store.Load(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, store.SetDefault(context.Background(), 1, 12))

	defaults := 0
	for _, a := range store.Addresses(1) {
		if a.IsDefault {
			defaults++
			assert.Equal(t, int64(12), a.ID)
		}
	}
	assert.Equal(t, 1, defaults)

	def, ok := store.Default(1)
	require.True(t, ok)
	assert.Equal(t, int64(12), def.ID)
}

func TestRemove_Resyncs(t *testing.T) {
	svc := newMockService()
	svc.addresses[1] = []Address{{ID: 10}, {ID: 11}}
	store := NewStore(svc)
	_, err := store.Load(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), 1, 10))
	assert.False(t, store.Has(1, 10))
	assert.True(t, store.Has(1, 11))
}

func TestHasAddresses(t *testing.T) {
	svc := newMockService()
	store := NewStore(svc)

	ok, err := store.HasAddresses(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok)

	svc.addresses[1] = []Address{{ID: 10}}
	ok, err = store.HasAddresses(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
