package application

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

func TestPrecioConDescuentoRedondeaAEntero(t *testing.T) {
	// 333 con 15% = 283.05 → 283
	assert.Equal(t, 283.0, PrecioConDescuento(333, 15))
	// 100 con 20% = 80
	assert.Equal(t, 80.0, PrecioConDescuento(100, 20))
	// 99 con 33% = 66.33 → 66
	assert.Equal(t, 66.0, PrecioConDescuento(99, 33))
}

func TestDescuentoActivoEligeMayorPorcentaje(t *testing.T) {
	hoy := time.Now()
	descuentos := []domain.Descuento{
		{ID: 1, Porcentaje: 10, FechaCreacion: hoy.AddDate(0, 0, -5)},
		{ID: 2, Porcentaje: 25, FechaCreacion: hoy.AddDate(0, 0, -10)},
		{ID: 3, Porcentaje: 15, FechaCreacion: hoy.AddDate(0, 0, -1)},
	}

	ganador := DescuentoActivo(descuentos, hoy)
	require.NotNil(t, ganador)
	assert.Equal(t, 2, ganador.ID)
}

func TestDescuentoActivoEmpateGanaElMasReciente(t *testing.T) {
	hoy := time.Now()
	descuentos := []domain.Descuento{
		{ID: 1, Porcentaje: 20, FechaCreacion: hoy.AddDate(0, 0, -5)},
		{ID: 2, Porcentaje: 20, FechaCreacion: hoy.AddDate(0, 0, -2)},
	}

	ganador := DescuentoActivo(descuentos, hoy)
	require.NotNil(t, ganador)
	assert.Equal(t, 2, ganador.ID)
}

func TestDescuentoActivoIgnoraExpirados(t *testing.T) {
	hoy := time.Now()
	ayer := hoy.AddDate(0, 0, -1)
	descuentos := []domain.Descuento{
		{ID: 1, Porcentaje: 50, FechaExpiracion: &ayer, FechaCreacion: hoy.AddDate(0, 0, -30)},
		{ID: 2, Porcentaje: 10, FechaCreacion: hoy.AddDate(0, 0, -3)},
	}

	ganador := DescuentoActivo(descuentos, hoy)
	require.NotNil(t, ganador)
	assert.Equal(t, 2, ganador.ID)

	assert.Nil(t, DescuentoActivo(descuentos[:1], hoy))
}

func newPrecioFixture(servicios []*domain.Servicio, descuentos []*domain.Descuento) (*PrecioService, *fakeVentaRepo, *fakeServicioRepo, *fakeDescuentoRepo) {
	servicioRepo := newFakeServicioRepo(servicios...)
	descuentoRepo := newFakeDescuentoRepo(descuentos...)
	ventaRepo := newFakeVentaRepo()
	moneda := NewMonedaService(&fakeTipoCambioRepo{tasas: map[domain.Moneda]float64{}})
	precio := NewPrecioService(fakeTxRunner{}, descuentoRepo, servicioRepo, ventaRepo, moneda)
	return precio, ventaRepo, servicioRepo, descuentoRepo
}

func TestResolvePriceSinQuererDescuento(t *testing.T) {
	proveedorID := 7
	precio, _, _, _ := newPrecioFixture(
		[]*domain.Servicio{{ID: 1, Costo: 100, Moneda: domain.MonedaBase, ProveedorID: &proveedorID, Status: 1}},
		[]*domain.Descuento{{ID: 1, ServicioID: 1, Porcentaje: 50, FechaCreacion: time.Now()}},
	)

	resuelto, err := precio.ResolvePrice(context.Background(), 1, false)
	require.NoError(t, err)
	assert.Equal(t, 100.0, resuelto.PrecioUnitario)
	assert.Nil(t, resuelto.DescuentoAplicado)
}

func TestResolvePriceConDescuentoVigente(t *testing.T) {
	proveedorID := 7
	precio, _, _, _ := newPrecioFixture(
		[]*domain.Servicio{{ID: 1, Costo: 100, Moneda: domain.MonedaBase, ProveedorID: &proveedorID, Status: 1}},
		[]*domain.Descuento{{ID: 1, ServicioID: 1, Porcentaje: 20, FechaCreacion: time.Now()}},
	)

	resuelto, err := precio.ResolvePrice(context.Background(), 1, true)
	require.NoError(t, err)
	assert.Equal(t, 80.0, resuelto.PrecioUnitario)
	require.NotNil(t, resuelto.DescuentoAplicado)
	assert.Equal(t, 1, resuelto.DescuentoAplicado.ID)
}

func TestCreateDescuentoPorcentajeFueraDeRango(t *testing.T) {
	proveedorID := 7
	precio, _, _, _ := newPrecioFixture(
		[]*domain.Servicio{{ID: 1, Costo: 100, ProveedorID: &proveedorID, Status: 1}},
		nil,
	)

	err := precio.CreateDescuento(context.Background(), sesionProveedor(proveedorID), &domain.Descuento{ServicioID: 1, Porcentaje: 120})
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(err))
}

func TestCreateDescuentoServicioAjeno(t *testing.T) {
	duenio := 7
	precio, _, _, _ := newPrecioFixture(
		[]*domain.Servicio{{ID: 1, Costo: 100, ProveedorID: &duenio, Status: 1}},
		nil,
	)

	err := precio.CreateDescuento(context.Background(), sesionProveedor(99), &domain.Descuento{ServicioID: 1, Porcentaje: 10})
	assert.Equal(t, domain.ErrNotAuthorized, domain.KindOf(err))
}

// Al eliminar un descuento, las ventas pendientes que congelaron su precio
// vuelven al precio de lista y sus totales se recalculan en la misma operación
func TestDeleteDescuentoReparaVentasPendientes(t *testing.T) {
	proveedorID := 7
	precio, ventaRepo, _, descuentoRepo := newPrecioFixture(
		[]*domain.Servicio{{ID: 1, Costo: 100, Moneda: domain.MonedaBase, ProveedorID: &proveedorID, Status: 1}},
		[]*domain.Descuento{{ID: 1, ServicioID: 1, Porcentaje: 20, FechaCreacion: time.Now()}},
	)
	ctx := context.Background()

	// Venta pendiente con un item congelado al precio con descuento
	venta := &domain.Venta{ClienteID: 1}
	require.NoError(t, ventaRepo.Create(ctx, nil, venta))
	congelado := 80.0
	descuentoID := 1
	require.NoError(t, ventaRepo.AddItem(ctx, nil, &domain.ItemItinerario{
		VentaID:       venta.ID,
		ServicioID:    1,
		CostoEspecial: &congelado,
		DescuentoID:   &descuentoID,
		FechaInicio:   time.Now().AddDate(0, 1, 0),
	}))
	require.NoError(t, ventaRepo.UpdateTotales(ctx, nil, venta.ID, 80, 0))

	require.NoError(t, precio.DeleteDescuento(ctx, sesionProveedor(proveedorID), 1))

	// El descuento desapareció
	restante, err := descuentoRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, restante)

	// El item perdió el snapshot y la venta volvió al precio de lista
	reparada, err := ventaRepo.GetByID(ctx, venta.ID)
	require.NoError(t, err)
	require.Len(t, reparada.Items, 1)
	assert.Nil(t, reparada.Items[0].CostoEspecial)
	assert.Nil(t, reparada.Items[0].DescuentoID)
	assert.Equal(t, 100.0, reparada.MontoTotal)
}

func TestDeleteDescuentoNoTocaVentasPagadas(t *testing.T) {
	proveedorID := 7
	precio, ventaRepo, _, _ := newPrecioFixture(
		[]*domain.Servicio{{ID: 1, Costo: 100, Moneda: domain.MonedaBase, ProveedorID: &proveedorID, Status: 1}},
		[]*domain.Descuento{{ID: 1, ServicioID: 1, Porcentaje: 20, FechaCreacion: time.Now()}},
	)
	ctx := context.Background()

	venta := &domain.Venta{ClienteID: 1}
	require.NoError(t, ventaRepo.Create(ctx, nil, venta))
	congelado := 80.0
	descuentoID := 1
	require.NoError(t, ventaRepo.AddItem(ctx, nil, &domain.ItemItinerario{
		VentaID:       venta.ID,
		ServicioID:    1,
		CostoEspecial: &congelado,
		DescuentoID:   &descuentoID,
		FechaInicio:   time.Now().AddDate(0, 1, 0),
	}))
	require.NoError(t, ventaRepo.UpdateTotales(ctx, nil, venta.ID, 80, 0))
	require.NoError(t, ventaRepo.TransitionEstado(ctx, nil, venta.ID, domain.VentaPagada))

	require.NoError(t, precio.DeleteDescuento(ctx, sesionProveedor(proveedorID), 1))

	// Lo ya pagado conserva su snapshot histórico
	pagada, err := ventaRepo.GetByID(ctx, venta.ID)
	require.NoError(t, err)
	require.Len(t, pagada.Items, 1)
	require.NotNil(t, pagada.Items[0].CostoEspecial)
	assert.Equal(t, 80.0, *pagada.Items[0].CostoEspecial)
	assert.Equal(t, 80.0, pagada.MontoTotal)
}

// ventaRepoPagaTrasListar paga la venta justo después de listarla como
// afectada, reproduciendo un pago concurrente entre el listado y el bloqueo
type ventaRepoPagaTrasListar struct {
	*fakeVentaRepo
	ventaID int
}

func (r *ventaRepoPagaTrasListar) VentasPendientesConDescuento(ctx context.Context, tx *sql.Tx, descuentoID int) ([]int, error) {
	ids, err := r.fakeVentaRepo.VentasPendientesConDescuento(ctx, tx, descuentoID)
	if err != nil {
		return nil, err
	}
	if err := r.fakeVentaRepo.TransitionEstado(ctx, tx, r.ventaID, domain.VentaPagada); err != nil {
		return nil, err
	}
	return ids, nil
}

// Una venta que se paga mientras corre la cascada de eliminación conserva su
// snapshot: el estado se reverifica bajo bloqueo, no solo en el listado
func TestDeleteDescuentoOmiteVentaPagadaDuranteCascada(t *testing.T) {
	proveedorID := 7
	servicioRepo := newFakeServicioRepo(&domain.Servicio{ID: 1, Costo: 100, Moneda: domain.MonedaBase, ProveedorID: &proveedorID, Status: 1})
	descuentoRepo := newFakeDescuentoRepo(&domain.Descuento{ID: 1, ServicioID: 1, Porcentaje: 20, FechaCreacion: time.Now()})
	ventaRepo := newFakeVentaRepo()
	moneda := NewMonedaService(&fakeTipoCambioRepo{tasas: map[domain.Moneda]float64{}})
	ctx := context.Background()

	venta := &domain.Venta{ClienteID: 1}
	require.NoError(t, ventaRepo.Create(ctx, nil, venta))
	congelado := 80.0
	descuentoID := 1
	require.NoError(t, ventaRepo.AddItem(ctx, nil, &domain.ItemItinerario{
		VentaID:       venta.ID,
		ServicioID:    1,
		CostoEspecial: &congelado,
		DescuentoID:   &descuentoID,
		FechaInicio:   time.Now().AddDate(0, 1, 0),
	}))
	require.NoError(t, ventaRepo.UpdateTotales(ctx, nil, venta.ID, 80, 0))

	carrera := &ventaRepoPagaTrasListar{fakeVentaRepo: ventaRepo, ventaID: venta.ID}
	precio := NewPrecioService(fakeTxRunner{}, descuentoRepo, servicioRepo, carrera, moneda)

	require.NoError(t, precio.DeleteDescuento(ctx, sesionProveedor(proveedorID), 1))

	// El descuento se eliminó pero la venta, ya pagada, quedó intacta
	restante, err := descuentoRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, restante)

	pagada, err := ventaRepo.GetByID(ctx, venta.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VentaPagada, pagada.Estado)
	require.Len(t, pagada.Items, 1)
	require.NotNil(t, pagada.Items[0].CostoEspecial)
	assert.Equal(t, 80.0, *pagada.Items[0].CostoEspecial)
	assert.Equal(t, 80.0, pagada.MontoTotal)
}
