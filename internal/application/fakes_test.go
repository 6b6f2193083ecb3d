package application

import (
	"context"
	"database/sql"
	"time"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
)

// fakeTxRunner ejecuta la función directamente: los repositorios falsos ignoran
// la transacción
type fakeTxRunner struct{}

func (fakeTxRunner) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func sesionCliente(clienteID int) *domain.Sesion {
	return &domain.Sesion{UserID: 100 + clienteID, RolID: 1, ClienteID: &clienteID}
}

func sesionProveedor(proveedorID int) *domain.Sesion {
	return &domain.Sesion{UserID: 200 + proveedorID, RolID: 2, ProveedorID: &proveedorID}
}

func sesionAdministrador() *domain.Sesion {
	return &domain.Sesion{UserID: 300, RolID: domain.RolAdministrador}
}

// fakeVentaRepo es una implementación en memoria de domain.VentaRepository
type fakeVentaRepo struct {
	ventas      map[int]*domain.Venta
	items       map[int]*domain.ItemItinerario
	historial   map[int][]domain.EstadoHistorial
	abandonadas []int
	nextVentaID int
	nextItemID  int
}

func newFakeVentaRepo() *fakeVentaRepo {
	return &fakeVentaRepo{
		ventas:    make(map[int]*domain.Venta),
		items:     make(map[int]*domain.ItemItinerario),
		historial: make(map[int][]domain.EstadoHistorial),
	}
}

func (r *fakeVentaRepo) Create(ctx context.Context, tx *sql.Tx, venta *domain.Venta) error {
	r.nextVentaID++
	venta.ID = r.nextVentaID
	venta.Estado = domain.VentaPendiente
	copia := *venta
	r.ventas[venta.ID] = &copia
	r.historial[venta.ID] = []domain.EstadoHistorial{{Estado: string(domain.VentaPendiente), FechaInicio: time.Now()}}
	return nil
}

func (r *fakeVentaRepo) GetByID(ctx context.Context, id int) (*domain.Venta, error) {
	venta, ok := r.ventas[id]
	if !ok {
		return nil, nil
	}
	copia := *venta
	copia.Items = r.itemsDe(id)
	return &copia, nil
}

func (r *fakeVentaRepo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int) (*domain.Venta, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeVentaRepo) GetVentasCliente(ctx context.Context, clienteID int) ([]domain.Venta, error) {
	var ventas []domain.Venta
	for _, venta := range r.ventas {
		if venta.ClienteID == clienteID {
			ventas = append(ventas, *venta)
		}
	}
	return ventas, nil
}

func (r *fakeVentaRepo) GetHistorial(ctx context.Context, ventaID int) ([]domain.EstadoHistorial, error) {
	return r.historial[ventaID], nil
}

func (r *fakeVentaRepo) UpdateTotales(ctx context.Context, tx *sql.Tx, id int, montoTotal, montoCompensacion float64) error {
	venta := r.ventas[id]
	venta.MontoTotal = montoTotal
	venta.MontoCompensacion = montoCompensacion
	return nil
}

func (r *fakeVentaRepo) TransitionEstado(ctx context.Context, tx *sql.Tx, id int, estado domain.EstadoVenta) error {
	venta := r.ventas[id]
	venta.Estado = estado
	ahora := time.Now()
	hist := r.historial[id]
	if len(hist) > 0 {
		hist[len(hist)-1].FechaFin = &ahora
	}
	r.historial[id] = append(hist, domain.EstadoHistorial{Estado: string(estado), FechaInicio: ahora})
	return nil
}

func (r *fakeVentaRepo) Delete(ctx context.Context, tx *sql.Tx, id int) error {
	delete(r.ventas, id)
	delete(r.historial, id)
	for itemID, item := range r.items {
		if item.VentaID == id {
			delete(r.items, itemID)
		}
	}
	return nil
}

func (r *fakeVentaRepo) AddItem(ctx context.Context, tx *sql.Tx, item *domain.ItemItinerario) error {
	r.nextItemID++
	item.ID = r.nextItemID
	copia := *item
	r.items[item.ID] = &copia
	return nil
}

func (r *fakeVentaRepo) RemoveItem(ctx context.Context, tx *sql.Tx, itemID int) error {
	delete(r.items, itemID)
	return nil
}

func (r *fakeVentaRepo) GetItem(ctx context.Context, itemID int) (*domain.ItemItinerario, error) {
	item, ok := r.items[itemID]
	if !ok {
		return nil, nil
	}
	copia := *item
	return &copia, nil
}

func (r *fakeVentaRepo) GetItems(ctx context.Context, tx *sql.Tx, ventaID int) ([]domain.ItemItinerario, error) {
	return r.itemsDe(ventaID), nil
}

func (r *fakeVentaRepo) itemsDe(ventaID int) []domain.ItemItinerario {
	var items []domain.ItemItinerario
	for _, item := range r.items {
		if item.VentaID == ventaID {
			items = append(items, *item)
		}
	}
	return items
}

func (r *fakeVentaRepo) VentasPendientesConDescuento(ctx context.Context, tx *sql.Tx, descuentoID int) ([]int, error) {
	vistos := make(map[int]bool)
	var ids []int
	for _, item := range r.items {
		if item.DescuentoID == nil || *item.DescuentoID != descuentoID {
			continue
		}
		venta := r.ventas[item.VentaID]
		if venta == nil || venta.Estado != domain.VentaPendiente || vistos[venta.ID] {
			continue
		}
		vistos[venta.ID] = true
		ids = append(ids, venta.ID)
	}
	return ids, nil
}

func (r *fakeVentaRepo) ClearCostoEspecial(ctx context.Context, tx *sql.Tx, ventaID, descuentoID int) error {
	for _, item := range r.items {
		if item.VentaID == ventaID && item.DescuentoID != nil && *item.DescuentoID == descuentoID {
			item.CostoEspecial = nil
			item.DescuentoID = nil
		}
	}
	return nil
}

func (r *fakeVentaRepo) VentasPendientesAbandonadas(ctx context.Context, corte time.Time) ([]int, error) {
	return r.abandonadas, nil
}

// fakeServicioRepo es una implementación en memoria de domain.ServicioRepository
type fakeServicioRepo struct {
	servicios map[int]*domain.Servicio
	nextID    int
}

func newFakeServicioRepo(servicios ...*domain.Servicio) *fakeServicioRepo {
	r := &fakeServicioRepo{servicios: make(map[int]*domain.Servicio)}
	for _, s := range servicios {
		copia := *s
		r.servicios[s.ID] = &copia
		if s.ID > r.nextID {
			r.nextID = s.ID
		}
	}
	return r
}

func (r *fakeServicioRepo) GetAllServices(ctx context.Context) ([]domain.Servicio, error) {
	var servicios []domain.Servicio
	for _, s := range r.servicios {
		if s.Status == 1 {
			servicios = append(servicios, *s)
		}
	}
	return servicios, nil
}

func (r *fakeServicioRepo) GetByID(ctx context.Context, id int) (*domain.Servicio, error) {
	s, ok := r.servicios[id]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}

func (r *fakeServicioRepo) CreateService(ctx context.Context, servicio *domain.Servicio) error {
	r.nextID++
	servicio.ID = r.nextID
	copia := *servicio
	r.servicios[servicio.ID] = &copia
	return nil
}

func (r *fakeServicioRepo) UpdateService(ctx context.Context, servicio *domain.Servicio) error {
	copia := *servicio
	r.servicios[servicio.ID] = &copia
	return nil
}

func (r *fakeServicioRepo) UpdateImagenURL(ctx context.Context, id int, url string) error {
	r.servicios[id].ImagenURL = &url
	return nil
}

func (r *fakeServicioRepo) DeleteService(ctx context.Context, id int) error {
	r.servicios[id].Status = 0
	return nil
}

// fakeClienteRepo es una implementación en memoria de domain.ClienteRepository
type fakeClienteRepo struct {
	clientes map[int]*domain.Cliente
}

func newFakeClienteRepo(clientes ...*domain.Cliente) *fakeClienteRepo {
	r := &fakeClienteRepo{clientes: make(map[int]*domain.Cliente)}
	for _, c := range clientes {
		copia := *c
		r.clientes[c.ID] = &copia
	}
	return r
}

func (r *fakeClienteRepo) GetByID(ctx context.Context, id int) (*domain.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

// fakeDescuentoRepo es una implementación en memoria de domain.DescuentoRepository
type fakeDescuentoRepo struct {
	descuentos map[int]*domain.Descuento
	nextID     int
}

func newFakeDescuentoRepo(descuentos ...*domain.Descuento) *fakeDescuentoRepo {
	r := &fakeDescuentoRepo{descuentos: make(map[int]*domain.Descuento)}
	for _, d := range descuentos {
		copia := *d
		r.descuentos[d.ID] = &copia
		if d.ID > r.nextID {
			r.nextID = d.ID
		}
	}
	return r
}

func (r *fakeDescuentoRepo) Create(ctx context.Context, descuento *domain.Descuento) error {
	r.nextID++
	descuento.ID = r.nextID
	copia := *descuento
	r.descuentos[descuento.ID] = &copia
	return nil
}

func (r *fakeDescuentoRepo) GetByID(ctx context.Context, id int) (*domain.Descuento, error) {
	d, ok := r.descuentos[id]
	if !ok {
		return nil, nil
	}
	copia := *d
	return &copia, nil
}

func (r *fakeDescuentoRepo) GetByServicio(ctx context.Context, servicioID int) ([]domain.Descuento, error) {
	var descuentos []domain.Descuento
	for _, d := range r.descuentos {
		if d.ServicioID == servicioID {
			descuentos = append(descuentos, *d)
		}
	}
	return descuentos, nil
}

func (r *fakeDescuentoRepo) Delete(ctx context.Context, tx *sql.Tx, id int) error {
	delete(r.descuentos, id)
	return nil
}

// fakeTipoCambioRepo es una implementación en memoria de domain.TipoCambioRepository
type fakeTipoCambioRepo struct {
	tasas map[domain.Moneda]float64
}

func (r *fakeTipoCambioRepo) GetTasaActiva(ctx context.Context, moneda domain.Moneda) (float64, bool, error) {
	tasa, ok := r.tasas[moneda]
	return tasa, ok, nil
}

// fakePaqueteRepo es una implementación en memoria de domain.PaqueteRepository
type fakePaqueteRepo struct {
	paquetes map[int]*domain.Paquete
	nextID   int
}

func newFakePaqueteRepo(paquetes ...*domain.Paquete) *fakePaqueteRepo {
	r := &fakePaqueteRepo{paquetes: make(map[int]*domain.Paquete)}
	for _, p := range paquetes {
		copia := *p
		r.paquetes[p.ID] = &copia
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *fakePaqueteRepo) GetAll(ctx context.Context) ([]domain.Paquete, error) {
	var paquetes []domain.Paquete
	for _, p := range r.paquetes {
		paquetes = append(paquetes, *p)
	}
	return paquetes, nil
}

func (r *fakePaqueteRepo) GetByID(ctx context.Context, id int) (*domain.Paquete, error) {
	p, ok := r.paquetes[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (r *fakePaqueteRepo) Create(ctx context.Context, paquete *domain.Paquete) error {
	r.nextID++
	paquete.ID = r.nextID
	copia := *paquete
	r.paquetes[paquete.ID] = &copia
	return nil
}

// fakePlanRepo es una implementación en memoria de domain.PlanCuotasRepository
type fakePlanRepo struct {
	planes      map[int]*domain.PlanCuotas // por venta
	cuotas      map[int]*domain.Cuota
	pagos       map[int]float64 // cuotaID → monto registrado
	nextPlanID  int
	nextCuotaID int
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{
		planes: make(map[int]*domain.PlanCuotas),
		cuotas: make(map[int]*domain.Cuota),
		pagos:  make(map[int]float64),
	}
}

func (r *fakePlanRepo) Create(ctx context.Context, tx *sql.Tx, plan *domain.PlanCuotas) error {
	r.nextPlanID++
	plan.ID = r.nextPlanID
	for i := range plan.Cuotas {
		r.nextCuotaID++
		plan.Cuotas[i].ID = r.nextCuotaID
		plan.Cuotas[i].PlanID = plan.ID
		copia := plan.Cuotas[i]
		r.cuotas[copia.ID] = &copia
	}
	copia := *plan
	r.planes[plan.VentaID] = &copia
	return nil
}

func (r *fakePlanRepo) GetByVentaID(ctx context.Context, ventaID int) (*domain.PlanCuotas, error) {
	plan, ok := r.planes[ventaID]
	if !ok {
		return nil, nil
	}
	copia := *plan
	return &copia, nil
}

func (r *fakePlanRepo) GetCuota(ctx context.Context, cuotaID int) (*domain.Cuota, error) {
	cuota, ok := r.cuotas[cuotaID]
	if !ok {
		return nil, nil
	}
	copia := *cuota
	return &copia, nil
}

func (r *fakePlanRepo) GetCuotaForUpdate(ctx context.Context, tx *sql.Tx, cuotaID int) (*domain.Cuota, error) {
	return r.GetCuota(ctx, cuotaID)
}

func (r *fakePlanRepo) VentaIDDeCuota(ctx context.Context, cuotaID int) (int, error) {
	cuota, ok := r.cuotas[cuotaID]
	if !ok {
		return 0, nil
	}
	for ventaID, plan := range r.planes {
		if plan.ID == cuota.PlanID {
			return ventaID, nil
		}
	}
	return 0, nil
}

func (r *fakePlanRepo) TransitionEstado(ctx context.Context, tx *sql.Tx, cuotaID int, estado domain.EstadoCuota) error {
	r.cuotas[cuotaID].Estado = estado
	return nil
}

func (r *fakePlanRepo) RegistrarPago(ctx context.Context, tx *sql.Tx, cuotaID, metodoPagoID int, monto float64, moneda domain.Moneda) error {
	r.pagos[cuotaID] = monto
	return nil
}

// fakeMetodoPagoRepo es una implementación en memoria de domain.MetodoPagoRepository
type fakeMetodoPagoRepo struct {
	metodos map[int]*domain.MetodoPago
}

func newFakeMetodoPagoRepo(metodos ...*domain.MetodoPago) *fakeMetodoPagoRepo {
	r := &fakeMetodoPagoRepo{metodos: make(map[int]*domain.MetodoPago)}
	for _, m := range metodos {
		copia := *m
		r.metodos[m.ID] = &copia
	}
	return r
}

func (r *fakeMetodoPagoRepo) GetByID(ctx context.Context, id int) (*domain.MetodoPago, error) {
	m, ok := r.metodos[id]
	if !ok {
		return nil, nil
	}
	copia := *m
	return &copia, nil
}

// fakeReembolsoRepo es una implementación en memoria de domain.ReembolsoRepository
type fakeReembolsoRepo struct {
	reembolsos map[int]*domain.Reembolso // por venta
	nextID     int
}

func newFakeReembolsoRepo() *fakeReembolsoRepo {
	return &fakeReembolsoRepo{reembolsos: make(map[int]*domain.Reembolso)}
}

func (r *fakeReembolsoRepo) Create(ctx context.Context, tx *sql.Tx, reembolso *domain.Reembolso) error {
	r.nextID++
	reembolso.ID = r.nextID
	copia := *reembolso
	r.reembolsos[reembolso.VentaID] = &copia
	return nil
}

func (r *fakeReembolsoRepo) GetByVentaID(ctx context.Context, ventaID int) (*domain.Reembolso, error) {
	reembolso, ok := r.reembolsos[ventaID]
	if !ok {
		return nil, nil
	}
	copia := *reembolso
	return &copia, nil
}

func (r *fakeReembolsoRepo) ExistsForVenta(ctx context.Context, tx *sql.Tx, ventaID int) (bool, error) {
	_, ok := r.reembolsos[ventaID]
	return ok, nil
}

// fakeReclamoRepo es una implementación en memoria de domain.ReclamoRepository
type fakeReclamoRepo struct {
	reclamos map[int]*domain.Reclamo
	nextID   int
}

func newFakeReclamoRepo() *fakeReclamoRepo {
	return &fakeReclamoRepo{reclamos: make(map[int]*domain.Reclamo)}
}

func (r *fakeReclamoRepo) Create(ctx context.Context, reclamo *domain.Reclamo) error {
	r.nextID++
	reclamo.ID = r.nextID
	copia := *reclamo
	r.reclamos[reclamo.ID] = &copia
	return nil
}

func (r *fakeReclamoRepo) GetByID(ctx context.Context, id int) (*domain.Reclamo, error) {
	reclamo, ok := r.reclamos[id]
	if !ok {
		return nil, nil
	}
	copia := *reclamo
	return &copia, nil
}

func (r *fakeReclamoRepo) TransitionEstado(ctx context.Context, tx *sql.Tx, id int, estado domain.EstadoReclamo) error {
	r.reclamos[id].Estado = estado
	return nil
}

// fakeResenaRepo es una implementación en memoria de domain.ResenaRepository
type fakeResenaRepo struct {
	resenas map[int]*domain.Resena // por item
	nextID  int
}

func newFakeResenaRepo() *fakeResenaRepo {
	return &fakeResenaRepo{resenas: make(map[int]*domain.Resena)}
}

func (r *fakeResenaRepo) Create(ctx context.Context, resena *domain.Resena) error {
	r.nextID++
	resena.ID = r.nextID
	copia := *resena
	r.resenas[resena.ItemID] = &copia
	return nil
}

func (r *fakeResenaRepo) ExistsForItem(ctx context.Context, itemID int) (bool, error) {
	_, ok := r.resenas[itemID]
	return ok, nil
}

func (r *fakeResenaRepo) GetByServicio(ctx context.Context, servicioID int) ([]domain.Resena, error) {
	var resultado []domain.Resena
	for _, resena := range r.resenas {
		resultado = append(resultado, *resena)
	}
	return resultado, nil
}
