// Package poller управляет фоновым циклом опроса счётчика:
// каждый интервал выполняет fetch и при успехе применяет снимок к реестру.
package poller

import (
	"context"
	"time"

	"github.com/levinOo/homewizard-p1-exporter/internal/homewizard"
	"github.com/levinOo/homewizard-p1-exporter/internal/models"
	"github.com/levinOo/homewizard-p1-exporter/internal/pool"
	"github.com/levinOo/homewizard-p1-exporter/internal/registry"
	"go.uber.org/zap"
)

// Poller запускает фоновую горутину, которая через заданные интервалы
// опрашивает счётчик и применяет снимок к реестру. Неудачный цикл
// логируется и отбрасывается: реестр сохраняет последнее успешное состояние.
type Poller struct {
	client   *homewizard.Client
	registry *registry.Registry
	interval time.Duration
	logger   *zap.SugaredLogger
	snapPool *pool.Pool[*models.Snapshot]
	stopCh   chan struct{}
	done     chan struct{}
}

func NewPoller(client *homewizard.Client, reg *registry.Registry, interval time.Duration, logger *zap.SugaredLogger) *Poller {
	return &Poller{
		client:   client,
		registry: reg,
		interval: interval,
		logger:   logger,
		snapPool: pool.New[*models.Snapshot](func() *models.Snapshot { return &models.Snapshot{} }),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает цикл опроса. time.Ticker пропускает такты, если цикл
// не успевает за интервалом, поэтому после долгого fetch опросы не
// выполняются пачкой.
func (p *Poller) Start() {
	go func() {
		defer close(p.done)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			<-p.stopCh
			cancel()
		}()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.logger.Infow("Starting poller", "interval", p.interval)

		for {
			select {
			case <-ticker.C:
				p.poll(ctx)
			case <-p.stopCh:
				p.logger.Debugw("Stopping poller")
				return
			}
		}
	}()
}

// Stop останавливает цикл, отменяет незавершённый fetch и дожидается
// завершения горутины. Снимок, полученный после остановки, не применяется.
func (p *Poller) Stop() {
	close(p.stopCh)
	<-p.done
}

func (p *Poller) poll(ctx context.Context) {
	snap := p.snapPool.Get()
	defer p.snapPool.Put(snap)

	if err := p.client.FetchData(ctx, snap); err != nil {
		p.logger.Warnw("Fetch failed", "kind", homewizard.ErrorKind(err), "error", err)
		return
	}

	select {
	case <-p.stopCh:
		return
	default:
	}

	p.registry.Apply(snap)
	p.logger.Infow("Snapshot applied",
		"active_power_w", snap.ActivePowerW,
		"active_tariff", snap.ActiveTariff,
		"external_sensors", len(snap.External),
	)
}
