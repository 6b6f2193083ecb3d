package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// newReclamoFixture deja lista una venta del cliente 1 con un item
func newReclamoFixture(t *testing.T) (*ReclamoService, *fakeReclamoRepo, int) {
	t.Helper()
	ventaRepo := newFakeVentaRepo()
	reclamoRepo := newFakeReclamoRepo()
	svc := NewReclamoService(fakeTxRunner{}, reclamoRepo, ventaRepo)

	ctx := context.Background()
	venta := &domain.Venta{ClienteID: 1}
	require.NoError(t, ventaRepo.Create(ctx, nil, venta))
	item := &domain.ItemItinerario{VentaID: venta.ID, ServicioID: 1, FechaInicio: time.Now()}
	require.NoError(t, ventaRepo.AddItem(ctx, nil, item))
	return svc, reclamoRepo, item.ID
}

func TestCreateReclamo(t *testing.T) {
	svc, repo, itemID := newReclamoFixture(t)

	reclamo, err := svc.CreateReclamo(context.Background(), sesionCliente(1), itemID, "Habitación sin agua", "No hubo agua caliente durante la estadía")
	require.NoError(t, err)
	assert.Equal(t, domain.ReclamoAbierto, reclamo.Estado)
	assert.Equal(t, 1, reclamo.ClienteID)
	assert.Len(t, repo.reclamos, 1)
}

func TestCreateReclamoSinTitulo(t *testing.T) {
	svc, _, itemID := newReclamoFixture(t)

	_, err := svc.CreateReclamo(context.Background(), sesionCliente(1), itemID, "", "descripción")
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
}

func TestCreateReclamoItemAjeno(t *testing.T) {
	svc, _, itemID := newReclamoFixture(t)

	_, err := svc.CreateReclamo(context.Background(), sesionCliente(2), itemID, "Título", "")
	assert.Equal(t, domain.ErrNotAuthorized, domain.KindOf(err))
}

func TestCreateReclamoItemInexistente(t *testing.T) {
	svc, _, _ := newReclamoFixture(t)

	_, err := svc.CreateReclamo(context.Background(), sesionCliente(1), 999, "Título", "")
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))
}

func TestUpdateEstadoReclamo(t *testing.T) {
	svc, repo, itemID := newReclamoFixture(t)
	ctx := context.Background()

	reclamo, err := svc.CreateReclamo(ctx, sesionCliente(1), itemID, "Título", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEstado(ctx, sesionCliente(1), reclamo.ID, domain.ReclamoEnProceso))
	require.NoError(t, svc.UpdateEstado(ctx, sesionCliente(1), reclamo.ID, domain.ReclamoResuelto))
	assert.Equal(t, domain.ReclamoResuelto, repo.reclamos[reclamo.ID].Estado)
}

func TestUpdateEstadoReclamoTransicionInvalida(t *testing.T) {
	svc, _, itemID := newReclamoFixture(t)
	ctx := context.Background()

	reclamo, err := svc.CreateReclamo(ctx, sesionCliente(1), itemID, "Título", "")
	require.NoError(t, err)
	require.NoError(t, svc.UpdateEstado(ctx, sesionCliente(1), reclamo.ID, domain.ReclamoResuelto))

	// Resuelto es terminal
	err = svc.UpdateEstado(ctx, sesionCliente(1), reclamo.ID, domain.ReclamoEnProceso)
	assert.Equal(t, domain.ErrInvalidStateTransition, domain.KindOf(err))
}

func TestUpdateEstadoReclamoAjeno(t *testing.T) {
	svc, _, itemID := newReclamoFixture(t)
	ctx := context.Background()

	reclamo, err := svc.CreateReclamo(ctx, sesionCliente(1), itemID, "Título", "")
	require.NoError(t, err)

	err = svc.UpdateEstado(ctx, sesionCliente(2), reclamo.ID, domain.ReclamoResuelto)
	assert.Equal(t, domain.ErrNotAuthorized, domain.KindOf(err))
}

// Un proveedor no gestiona reclamos; solo el dueño o el personal administrativo
func TestUpdateEstadoReclamoProveedorRechazado(t *testing.T) {
	svc, _, itemID := newReclamoFixture(t)
	ctx := context.Background()

	reclamo, err := svc.CreateReclamo(ctx, sesionCliente(1), itemID, "Título", "")
	require.NoError(t, err)

	err = svc.UpdateEstado(ctx, sesionProveedor(5), reclamo.ID, domain.ReclamoEnProceso)
	assert.Equal(t, domain.ErrNotAuthorized, domain.KindOf(err))
}

func TestUpdateEstadoReclamoAdministrador(t *testing.T) {
	svc, repo, itemID := newReclamoFixture(t)
	ctx := context.Background()

	reclamo, err := svc.CreateReclamo(ctx, sesionCliente(1), itemID, "Título", "")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateEstado(ctx, sesionAdministrador(), reclamo.ID, domain.ReclamoEnProceso))
	assert.Equal(t, domain.ReclamoEnProceso, repo.reclamos[reclamo.ID].Estado)
}
