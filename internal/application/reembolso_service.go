package application

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/domain"
	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/email"
)

// PenalizacionCancelacionPorcentaje es la penalización que se retiene cuando el
// reembolso lo origina una cancelación voluntaria del cliente
const PenalizacionCancelacionPorcentaje = 10.0

// CalculoReembolso es el resultado de calcular un reembolso sin ejecutarlo
type CalculoReembolso struct {
	MontoOriginal    float64 `json:"montoOriginal"`
	Penalizacion     float64 `json:"penalizacion"`
	MontoReembolsado float64 `json:"montoReembolsado"`
}

// ReembolsoService calcula y ejecuta reembolsos sobre ventas pagadas,
// llevándolas a su estado terminal
type ReembolsoService struct {
	txRunner      domain.TxRunner
	ventaRepo     domain.VentaRepository
	reembolsoRepo domain.ReembolsoRepository
	clienteRepo   domain.ClienteRepository
	emailClient   *email.Client
	logger        *zap.Logger
}

// NewReembolsoService crea una nueva instancia del servicio de reembolsos
func NewReembolsoService(
	txRunner domain.TxRunner,
	ventaRepo domain.VentaRepository,
	reembolsoRepo domain.ReembolsoRepository,
	clienteRepo domain.ClienteRepository,
	emailClient *email.Client,
	logger *zap.Logger,
) *ReembolsoService {
	return &ReembolsoService{
		txRunner:      txRunner,
		ventaRepo:     ventaRepo,
		reembolsoRepo: reembolsoRepo,
		clienteRepo:   clienteRepo,
		emailClient:   emailClient,
		logger:        logger,
	}
}

// calcular aplica la regla de penalización sobre el total original
func calcular(montoOriginal float64, cancelacionVoluntaria bool) CalculoReembolso {
	var penalizacion float64
	if cancelacionVoluntaria {
		penalizacion = math.Round(montoOriginal * PenalizacionCancelacionPorcentaje / 100)
	}
	return CalculoReembolso{
		MontoOriginal:    montoOriginal,
		Penalizacion:     penalizacion,
		MontoReembolsado: montoOriginal - penalizacion,
	}
}

// CalculateRefund calcula el reembolso de una venta pagada sin ejecutar nada.
// La llamada no tiene efectos: repetirla produce los mismos números
func (s *ReembolsoService) CalculateRefund(
	ctx context.Context,
	sesion *domain.Sesion,
	ventaID int,
	cancelacionVoluntaria bool,
) (*CalculoReembolso, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede solicitar reembolsos")
	}

	venta, err := s.ventaRepo.GetByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.NewError(domain.ErrNotFound, "venta con ID %d no encontrada", ventaID)
	}
	if venta.ClienteID != *sesion.ClienteID {
		return nil, domain.NewError(domain.ErrNotAuthorized, "la venta no pertenece al cliente")
	}

	// Un reembolso existente manda sobre el estado: la venta ya terminal por un
	// reembolso previo se reporta como duplicado, no como transición inválida
	existente, err := s.reembolsoRepo.GetByVentaID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.NewError(domain.ErrConflictAlreadyExists, "la venta %d ya tiene un reembolso", ventaID)
	}
	if venta.Estado != domain.VentaPagada {
		return nil, domain.NewError(domain.ErrInvalidStateTransition,
			"la venta está %s; solo una venta pagada admite reembolso", venta.Estado)
	}

	resultado := calcular(venta.MontoTotal, cancelacionVoluntaria)
	return &resultado, nil
}

// ExecuteRefund ejecuta el reembolso: revalida las precondiciones bajo bloqueo
// de la venta (el estado pudo cambiar desde el cálculo previo), inserta el
// reembolso y transiciona la venta a su estado terminal. El reembolso y la
// transición ocurren ambos o ninguno
func (s *ReembolsoService) ExecuteRefund(
	ctx context.Context,
	sesion *domain.Sesion,
	ventaID int,
	cancelacionVoluntaria bool,
) (*domain.Reembolso, error) {
	if !sesion.EsCliente() {
		return nil, domain.NewError(domain.ErrNotAuthorized, "solo un cliente puede solicitar reembolsos")
	}

	reembolso := &domain.Reembolso{VentaID: ventaID, Fecha: time.Now()}
	err := s.txRunner.RunInTx(ctx, func(tx *sql.Tx) error {
		venta, err := s.ventaRepo.GetByIDForUpdate(ctx, tx, ventaID)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.NewError(domain.ErrNotFound, "venta con ID %d no encontrada", ventaID)
		}
		if venta.ClienteID != *sesion.ClienteID {
			return domain.NewError(domain.ErrNotAuthorized, "la venta no pertenece al cliente")
		}

		// Mismo orden que en el cálculo: el duplicado manda sobre el estado
		existe, err := s.reembolsoRepo.ExistsForVenta(ctx, tx, ventaID)
		if err != nil {
			return err
		}
		if existe {
			return domain.NewError(domain.ErrConflictAlreadyExists, "la venta %d ya tiene un reembolso", ventaID)
		}
		if venta.Estado != domain.VentaPagada {
			return domain.NewError(domain.ErrInvalidStateTransition,
				"la venta está %s; solo una venta pagada admite reembolso", venta.Estado)
		}

		resultado := calcular(venta.MontoTotal, cancelacionVoluntaria)
		reembolso.MontoOriginal = resultado.MontoOriginal
		reembolso.Penalizacion = resultado.Penalizacion
		reembolso.MontoReembolsado = resultado.MontoReembolsado

		if err := s.reembolsoRepo.Create(ctx, tx, reembolso); err != nil {
			return fmt.Errorf("error al registrar reembolso: %w", err)
		}

		terminal := domain.VentaReembolsada
		if cancelacionVoluntaria {
			terminal = domain.VentaCancelada
		}
		if err := s.ventaRepo.TransitionEstado(ctx, tx, ventaID, terminal); err != nil {
			return fmt.Errorf("error al transicionar la venta al estado terminal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notificarReembolso(ctx, *sesion.ClienteID, reembolso)
	return reembolso, nil
}

// notificarReembolso envía el correo de notificación del reembolso. Cualquier
// fallo se registra sin propagarse: el reembolso ya fue confirmado
func (s *ReembolsoService) notificarReembolso(ctx context.Context, clienteID int, r *domain.Reembolso) {
	s.logger.Info("reembolso ejecutado",
		zap.Int("ventaId", r.VentaID),
		zap.Float64("montoOriginal", r.MontoOriginal),
		zap.Float64("penalizacion", r.Penalizacion),
		zap.Float64("montoReembolsado", r.MontoReembolsado),
	)

	if s.emailClient == nil {
		return
	}
	cliente, err := s.clienteRepo.GetByID(ctx, clienteID)
	if err != nil || cliente == nil || cliente.Email == "" {
		s.logger.Warn("no se pudo obtener el email del cliente para notificar reembolso",
			zap.Int("ventaId", r.VentaID), zap.Error(err))
		return
	}
	info := email.ReembolsoInfo{
		VentaID:          r.VentaID,
		MontoOriginal:    r.MontoOriginal,
		Penalizacion:     r.Penalizacion,
		MontoReembolsado: r.MontoReembolsado,
		Fecha:            r.Fecha,
	}
	if err := s.emailClient.SendReembolsoNotificacion(cliente.Email, info); err != nil {
		s.logger.Warn("error al enviar correo de reembolso",
			zap.Int("ventaId", r.VentaID), zap.Error(err))
	}
}
