package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type reembolsoFixture struct {
	svc           *ReembolsoService
	ventaRepo     *fakeVentaRepo
	reembolsoRepo *fakeReembolsoRepo
}

// newReembolsoFixture deja lista una venta pagada del cliente 1 con total 1000
func newReembolsoFixture(t *testing.T) (*reembolsoFixture, int) {
	t.Helper()
	f := &reembolsoFixture{
		ventaRepo:     newFakeVentaRepo(),
		reembolsoRepo: newFakeReembolsoRepo(),
	}
	clienteRepo := newFakeClienteRepo(&domain.Cliente{ID: 1, Email: "cliente@test.com"})
	f.svc = NewReembolsoService(fakeTxRunner{}, f.ventaRepo, f.reembolsoRepo, clienteRepo, nil, zap.NewNop())

	ctx := context.Background()
	venta := &domain.Venta{ClienteID: 1}
	require.NoError(t, f.ventaRepo.Create(ctx, nil, venta))
	require.NoError(t, f.ventaRepo.UpdateTotales(ctx, nil, venta.ID, 1000, 0))
	require.NoError(t, f.ventaRepo.TransitionEstado(ctx, nil, venta.ID, domain.VentaPagada))
	return f, venta.ID
}

func TestCalculateRefundVoluntariaRetienePenalizacion(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)
	ctx := context.Background()

	calculo, err := f.svc.CalculateRefund(ctx, sesionCliente(1), ventaID, true)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, calculo.MontoOriginal)
	assert.Equal(t, 100.0, calculo.Penalizacion)
	assert.Equal(t, 900.0, calculo.MontoReembolsado)
}

func TestCalculateRefundInvoluntariaSinPenalizacion(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)

	calculo, err := f.svc.CalculateRefund(context.Background(), sesionCliente(1), ventaID, false)
	require.NoError(t, err)
	assert.Zero(t, calculo.Penalizacion)
	assert.Equal(t, 1000.0, calculo.MontoReembolsado)
}

// Calcular no tiene efectos: puede repetirse y la venta no cambia
func TestCalculateRefundEsIdempotente(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)
	ctx := context.Background()

	primero, err := f.svc.CalculateRefund(ctx, sesionCliente(1), ventaID, true)
	require.NoError(t, err)
	segundo, err := f.svc.CalculateRefund(ctx, sesionCliente(1), ventaID, true)
	require.NoError(t, err)
	assert.Equal(t, primero, segundo)

	venta, err := f.ventaRepo.GetByID(ctx, ventaID)
	require.NoError(t, err)
	assert.Equal(t, domain.VentaPagada, venta.Estado)
	assert.Empty(t, f.reembolsoRepo.reembolsos)
}

func TestExecuteRefundVoluntariaTerminaCancelada(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)
	ctx := context.Background()

	reembolso, err := f.svc.ExecuteRefund(ctx, sesionCliente(1), ventaID, true)
	require.NoError(t, err)
	assert.Equal(t, 900.0, reembolso.MontoReembolsado)

	venta, err := f.ventaRepo.GetByID(ctx, ventaID)
	require.NoError(t, err)
	assert.Equal(t, domain.VentaCancelada, venta.Estado)
}

func TestExecuteRefundInvoluntariaTerminaReembolsada(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)
	ctx := context.Background()

	reembolso, err := f.svc.ExecuteRefund(ctx, sesionCliente(1), ventaID, false)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, reembolso.MontoReembolsado)

	venta, err := f.ventaRepo.GetByID(ctx, ventaID)
	require.NoError(t, err)
	assert.Equal(t, domain.VentaReembolsada, venta.Estado)
}

// Un segundo reembolso sobre la misma venta es un duplicado, aunque la venta ya
// esté en estado terminal
func TestExecuteRefundDuplicadoRechazado(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)
	ctx := context.Background()

	_, err := f.svc.ExecuteRefund(ctx, sesionCliente(1), ventaID, false)
	require.NoError(t, err)

	_, err = f.svc.ExecuteRefund(ctx, sesionCliente(1), ventaID, false)
	assert.Equal(t, domain.ErrConflictAlreadyExists, domain.KindOf(err))

	_, err = f.svc.CalculateRefund(ctx, sesionCliente(1), ventaID, false)
	assert.Equal(t, domain.ErrConflictAlreadyExists, domain.KindOf(err))
}

// Una venta terminal sin reembolso registrado sigue siendo transición inválida
func TestExecuteRefundSobreVentaTerminalSinReembolso(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)
	ctx := context.Background()

	require.NoError(t, f.ventaRepo.TransitionEstado(ctx, nil, ventaID, domain.VentaCancelada))

	_, err := f.svc.ExecuteRefund(ctx, sesionCliente(1), ventaID, true)
	assert.Equal(t, domain.ErrInvalidStateTransition, domain.KindOf(err))
}

func TestExecuteRefundSobreVentaPendiente(t *testing.T) {
	f, _ := newReembolsoFixture(t)
	ctx := context.Background()

	pendiente := &domain.Venta{ClienteID: 1}
	require.NoError(t, f.ventaRepo.Create(ctx, nil, pendiente))

	_, err := f.svc.ExecuteRefund(ctx, sesionCliente(1), pendiente.ID, true)
	assert.Equal(t, domain.ErrInvalidStateTransition, domain.KindOf(err))
}

func TestExecuteRefundVentaAjena(t *testing.T) {
	f, ventaID := newReembolsoFixture(t)

	_, err := f.svc.ExecuteRefund(context.Background(), sesionCliente(2), ventaID, true)
	assert.Equal(t, domain.ErrNotAuthorized, domain.KindOf(err))
}
