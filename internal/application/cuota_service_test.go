package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

type cuotaFixture struct {
	svc       *CuotaService
	ventaRepo *fakeVentaRepo
	planRepo  *fakePlanRepo
	tasas     map[domain.Moneda]float64
}

// newCuotaFixture deja lista una venta pagada del cliente 1 con total 1000
func newCuotaFixture(t *testing.T) (*cuotaFixture, int) {
	t.Helper()
	f := &cuotaFixture{
		ventaRepo: newFakeVentaRepo(),
		planRepo:  newFakePlanRepo(),
		tasas:     make(map[domain.Moneda]float64),
	}
	moneda := NewMonedaService(&fakeTipoCambioRepo{tasas: f.tasas})
	metodoRepo := newFakeMetodoPagoRepo(
		&domain.MetodoPago{ID: 1, ClienteID: 1, Tipo: "Tarjeta"},
		&domain.MetodoPago{ID: 2, ClienteID: 9, Tipo: "Tarjeta"},
	)
	f.svc = NewCuotaService(fakeTxRunner{}, f.planRepo, f.ventaRepo, metodoRepo, moneda)

	ctx := context.Background()
	venta := &domain.Venta{ClienteID: 1}
	require.NoError(t, f.ventaRepo.Create(ctx, nil, venta))
	require.NoError(t, f.ventaRepo.UpdateTotales(ctx, nil, venta.ID, 1000, 0))
	require.NoError(t, f.ventaRepo.TransitionEstado(ctx, nil, venta.ID, domain.VentaPagada))
	return f, venta.ID
}

func vencimiento(meses int) time.Time {
	return time.Now().AddDate(0, meses, 0)
}

func TestCreatePlanSoloSobreVentaPagada(t *testing.T) {
	f, _ := newCuotaFixture(t)
	ctx := context.Background()

	pendiente := &domain.Venta{ClienteID: 1}
	require.NoError(t, f.ventaRepo.Create(ctx, nil, pendiente))

	_, err := f.svc.CreatePlan(ctx, sesionCliente(1), pendiente.ID, 0,
		[]CuotaInput{{Monto: 500, FechaVencimiento: vencimiento(1)}})
	assert.Equal(t, domain.ErrInvalidStateTransition, domain.KindOf(err))
}

// Con tasa 10% el total financiado es 1100; una desviación mayor a la
// tolerancia de redondeo se rechaza, una menor se admite
func TestCreatePlanCronogramaDebeCuadrar(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePlan(ctx, sesionCliente(1), ventaID, 10, []CuotaInput{
		{Monto: 549, FechaVencimiento: vencimiento(1)},
		{Monto: 549, FechaVencimiento: vencimiento(2)},
	})
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))

	plan, err := f.svc.CreatePlan(ctx, sesionCliente(1), ventaID, 10, []CuotaInput{
		{Monto: 550.25, FechaVencimiento: vencimiento(1)},
		{Monto: 549.25, FechaVencimiento: vencimiento(2)},
	})
	require.NoError(t, err)
	assert.Len(t, plan.Cuotas, 2)
	for _, cuota := range plan.Cuotas {
		assert.Equal(t, domain.CuotaPendiente, cuota.Estado)
	}
}

func TestCreatePlanDuplicadoRechazado(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePlan(ctx, sesionCliente(1), ventaID, 0,
		[]CuotaInput{{Monto: 1000, FechaVencimiento: vencimiento(1)}})
	require.NoError(t, err)

	_, err = f.svc.CreatePlan(ctx, sesionCliente(1), ventaID, 0,
		[]CuotaInput{{Monto: 1000, FechaVencimiento: vencimiento(1)}})
	assert.Equal(t, domain.ErrConflictAlreadyExists, domain.KindOf(err))
}

func TestCreatePlanMontosInvalidos(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreatePlan(ctx, sesionCliente(1), ventaID, -5,
		[]CuotaInput{{Monto: 1000, FechaVencimiento: vencimiento(1)}})
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))

	_, err = f.svc.CreatePlan(ctx, sesionCliente(1), ventaID, 0,
		[]CuotaInput{{Monto: 0, FechaVencimiento: vencimiento(1)}})
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))

	_, err = f.svc.CreatePlan(ctx, sesionCliente(1), ventaID, 0, nil)
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
}

func planDePrueba(t *testing.T, f *cuotaFixture, ventaID int) *domain.PlanCuotas {
	t.Helper()
	plan, err := f.svc.CreatePlan(context.Background(), sesionCliente(1), ventaID, 0, []CuotaInput{
		{Monto: 600, FechaVencimiento: vencimiento(1)},
		{Monto: 400, FechaVencimiento: vencimiento(2)},
	})
	require.NoError(t, err)
	return plan
}

func TestPayInstallmentMontoExacto(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	plan := planDePrueba(t, f, ventaID)
	ctx := context.Background()

	cuotaID := plan.Cuotas[0].ID
	require.NoError(t, f.svc.PayInstallment(ctx, sesionCliente(1), cuotaID, 600, 1, domain.MonedaBase))

	pagada, err := f.planRepo.GetCuota(ctx, cuotaID)
	require.NoError(t, err)
	assert.Equal(t, domain.CuotaPagada, pagada.Estado)
	assert.Equal(t, 600.0, f.planRepo.pagos[cuotaID])
}

func TestPayInstallmentMontoDistintoRechazado(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	plan := planDePrueba(t, f, ventaID)
	ctx := context.Background()

	cuotaID := plan.Cuotas[0].ID

	// Ni un poco menos ni un poco más
	err := f.svc.PayInstallment(ctx, sesionCliente(1), cuotaID, 599, 1, domain.MonedaBase)
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
	assert.Contains(t, domain.MessageOf(err), "600.00")

	err = f.svc.PayInstallment(ctx, sesionCliente(1), cuotaID, 601, 1, domain.MonedaBase)
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))

	sigue, err := f.planRepo.GetCuota(ctx, cuotaID)
	require.NoError(t, err)
	assert.Equal(t, domain.CuotaPendiente, sigue.Estado)
}

func TestPayInstallmentCuotaYaPagada(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	plan := planDePrueba(t, f, ventaID)
	ctx := context.Background()

	cuotaID := plan.Cuotas[0].ID
	require.NoError(t, f.svc.PayInstallment(ctx, sesionCliente(1), cuotaID, 600, 1, domain.MonedaBase))

	err := f.svc.PayInstallment(ctx, sesionCliente(1), cuotaID, 600, 1, domain.MonedaBase)
	assert.Equal(t, domain.ErrInvalidStateTransition, domain.KindOf(err))
}

func TestPayInstallmentMetodoAjeno(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	plan := planDePrueba(t, f, ventaID)

	err := f.svc.PayInstallment(context.Background(), sesionCliente(1), plan.Cuotas[0].ID, 600, 2, domain.MonedaBase)
	assert.Equal(t, domain.ErrNotAuthorized, domain.KindOf(err))
}

func TestPayInstallmentEnMonedaExtranjera(t *testing.T) {
	f, ventaID := newCuotaFixture(t)
	plan := planDePrueba(t, f, ventaID)
	f.tasas["USD"] = 40
	ctx := context.Background()

	// 15 USD * 40 = 600 Bs, el monto exacto de la cuota
	cuotaID := plan.Cuotas[0].ID
	require.NoError(t, f.svc.PayInstallment(ctx, sesionCliente(1), cuotaID, 15, 1, "USD"))

	pagada, err := f.planRepo.GetCuota(ctx, cuotaID)
	require.NoError(t, err)
	assert.Equal(t, domain.CuotaPagada, pagada.Estado)
}
