package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kall-56/Sistema-de-ViajesUCAB-BD-sub001/internal/application"
)

type CarritoScheduler struct {
	ventaService *application.VentaService
	antiguedad   time.Duration
	logger       *zap.Logger
	ticker       *time.Ticker
}

// NewCarritoScheduler crea una nueva instancia del scheduler de carritos
// abandonados. antiguedad es el tiempo que una venta pendiente puede quedarse
// sin pagar antes de purgarse
func NewCarritoScheduler(ventaService *application.VentaService, antiguedad time.Duration, logger *zap.Logger) *CarritoScheduler {
	return &CarritoScheduler{
		ventaService: ventaService,
		antiguedad:   antiguedad,
		logger:       logger,
	}
}

// Start inicia el scheduler que purga carritos abandonados cada 24 horas
func (s *CarritoScheduler) Start() {
	s.logger.Info("scheduler de carritos abandonados iniciado",
		zap.Duration("antiguedad", s.antiguedad))

	// Ejecutar inmediatamente al iniciar
	s.PurgeCarritosAbandonados()

	// Programar ejecución cada 24 horas a las 00:01 AM
	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 1, 0, 0, now.Location())
	durationUntilNextRun := time.Until(nextRun)

	s.logger.Info("próxima purga programada", zap.Time("nextRun", nextRun))

	time.AfterFunc(durationUntilNextRun, func() {
		s.PurgeCarritosAbandonados()

		// Luego ejecutar cada 24 horas
		s.ticker = time.NewTicker(24 * time.Hour)
		go func() {
			for range s.ticker.C {
				s.PurgeCarritosAbandonados()
			}
		}()
	})
}

// Stop detiene el scheduler
func (s *CarritoScheduler) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.logger.Info("scheduler de carritos abandonados detenido")
	}
}

// PurgeCarritosAbandonados elimina las ventas pendientes cuya última actividad
// supera la antigüedad configurada
func (s *CarritoScheduler) PurgeCarritosAbandonados() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	eliminadas, err := s.ventaService.PurgeAbandonadas(ctx, s.antiguedad)
	if err != nil {
		s.logger.Error("error purgando carritos abandonados", zap.Error(err))
		return
	}
	s.logger.Info("purga de carritos abandonados completada",
		zap.Int("eliminadas", eliminadas))
}
