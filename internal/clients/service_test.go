package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryClientsRepo struct {
	clients map[int64]*Client
	nextID  int64
}

func newMemoryClientsRepo() *memoryClientsRepo {
	return &memoryClientsRepo{clients: make(map[int64]*Client)}
}

func (r *memoryClientsRepo) List(ctx context.Context) ([]Client, error) {
	var out []Client
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryClientsRepo) Get(ctx context.Context, id int64) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (r *memoryClientsRepo) Create(ctx context.Context, in ClientInput) (*Client, error) {
	r.nextID++
	c := &Client{ID: r.nextID, NomPrenom: in.NomPrenom, NumeroTelephone: in.NumeroTelephone, TypeMoto: in.TypeMoto, Remarque: in.Remarque}
	r.clients[c.ID] = c
	return c, nil
}

func (r *memoryClientsRepo) Update(ctx context.Context, id int64, in ClientInput) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.NomPrenom = in.NomPrenom
	c.NumeroTelephone = in.NumeroTelephone
	c.TypeMoto = in.TypeMoto
	c.Remarque = in.Remarque
	return c, nil
}

func (r *memoryClientsRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.clients[id]; !ok {
		return ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func TestListSearchFoldsAccents(t *testing.T) {
	repo := newMemoryClientsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, ClientInput{NomPrenom: "Bénali Karim", NumeroTelephone: "0550123456"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, ClientInput{NomPrenom: "Haddad Yacine", NumeroTelephone: "0660987654"})
	require.NoError(t, err)

	found, err := svc.List(ctx, "benali")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bénali Karim", found[0].NomPrenom)

	byPhone, err := svc.List(ctx, "0660")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	assert.Equal(t, "Haddad Yacine", byPhone[0].NomPrenom)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCrudLifecycle(t *testing.T) {
	repo := newMemoryClientsRepo()
	svc := NewService(repo)
	ctx := context.Background()

	c, err := svc.Create(ctx, ClientInput{NomPrenom: "Saidi Omar"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, ClientInput{NomPrenom: "Saidi Omar", TypeMoto: "CG 125"})
	require.NoError(t, err)
	assert.Equal(t, "CG 125", updated.TypeMoto)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
