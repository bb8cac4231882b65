package dispatch

import (
	"context"
	"time"

	"main/internal/book"
	"main/internal/bus"
	"main/internal/decision"
	"main/internal/journal"
	"main/internal/model"
	"main/internal/obs"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
	"github.com/yanun0323/pkg/ws"
)

// Wire discriminants of the realtime channel.
const (
	respValidateAuthToken = "VALIDATE_AUTH_TOKEN_RESPONSE"
	respAuctionStarted    = "AUCTION_STARTED"
	respAuctionFinished   = "AUCTION_FINISHED"
	respTradeReport       = "TRADE_REPORT"
	respExecReport        = "EXEC_REPORT"
	respOrderbookUpdated  = "MM_ORDERBOOK_UPDATED"
)

// SnapshotFetch returns the current resting book with house flow already
// filtered out at the protocol boundary.
type SnapshotFetch func(ctx context.Context) ([]model.Order, error)

// Summarizer evaluates one order into a summary and a crossing verdict.
type Summarizer interface {
	Summarize(ctx context.Context, order model.Order) (decision.Decision, error)
}

// Executor crosses an accepted order.
type Executor interface {
	Execute(ctx context.Context, order model.Order) error
}

// Config wires a Dispatcher.
type Config struct {
	WS        *ws.WebSocket
	Fetch     SnapshotFetch
	Differ    *book.Differ
	Engine    Summarizer
	Executor  Executor
	Journal   *journal.Journal
	Metrics   *obs.Metrics
	QueueSize int
}

// Dispatcher pumps realtime events through a bounded queue and runs the
// diff, price, decide, execute pipeline on book updates. Events are
// handled one at a time in arrival order; the held snapshot is never
// touched concurrently.
type Dispatcher struct {
	wss     *ws.WebSocket
	queue   *bus.Queue
	differ  *book.Differ
	engine  Summarizer
	exec    Executor
	fetch   SnapshotFetch
	journal *journal.Journal
	metrics *obs.Metrics
}

func New(cfg Config) *Dispatcher {
	size := cfg.QueueSize
	if size <= 0 {
		size = 1024
	}
	return &Dispatcher{
		wss:     cfg.WS,
		queue:   bus.NewQueue(size),
		differ:  cfg.Differ,
		engine:  cfg.Engine,
		exec:    cfg.Executor,
		fetch:   cfg.Fetch,
		journal: cfg.Journal,
		metrics: cfg.Metrics,
	}
}

// Prime seeds the differ with the book resting at startup so those orders
// are not replayed as new on the first update.
func (d *Dispatcher) Prime(ctx context.Context) error {
	orders, err := d.fetch(ctx)
	if err != nil {
		return errors.Wrap(err, "initial book fetch")
	}
	d.differ.Reset(book.NewSnapshot(orders))
	logs.Infof("order book primed, resting orders: %d", len(orders))
	return nil
}

// Run starts the realtime channel and handles events until the context
// is done or the channel closes.
func (d *Dispatcher) Run(ctx context.Context) error {
	if err := d.wss.Start(ctx); err != nil {
		return errors.Wrap(err, "start wss")
	}

	ch, cancel := d.wss.Subscribe()
	go func() {
		defer cancel()
		defer d.queue.Close()
		for {
			select {
			case <-sys.Shutdown():
				return
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok {
					return
				}
				if err := d.queue.TryPublish(bus.Event{Recv: time.Now(), Message: m}); err != nil {
					d.metrics.IncQueueDrop()
					logs.Errorf("enqueue event, err: %+v", err)
				}
			}
		}
	}()

	d.queue.Run(ctx, func(e bus.Event) {
		d.handle(ctx, e)
	})
	return nil
}

type envelope struct {
	ResponseType string `json:"responseType"`
}

func (d *Dispatcher) handle(ctx context.Context, e bus.Event) {
	resp, ok := ws.ReadMessage[envelope](e.Message)
	if !ok {
		return
	}
	d.route(ctx, resp.ResponseType, e)
}

func (d *Dispatcher) route(ctx context.Context, kind string, e bus.Event) {
	d.metrics.IncEvent(kind)

	switch kind {
	case respValidateAuthToken:
		logs.Info("auth token validated")
	case respAuctionStarted:
		logs.Info("auction started")
	case respAuctionFinished:
		logs.Info("auction finished")
	case respTradeReport, respExecReport:
		logs.Infof("%s: %s", kind, e.Message)
	case respOrderbookUpdated:
		logs.Info(respOrderbookUpdated)
		d.onBookUpdated(ctx)
	default:
	}
}

// onBookUpdated runs one diff cycle. A failed fetch drops the cycle:
// there is no fallback snapshot to diff against, and guessing would
// desynchronize novelty detection.
func (d *Dispatcher) onBookUpdated(ctx context.Context) {
	orders, err := d.fetch(ctx)
	if err != nil {
		d.metrics.IncCycleFailure()
		logs.Errorf("book fetch failed, cycle dropped, err: %+v", err)
		return
	}

	fresh := d.differ.Diff(book.NewSnapshot(orders))
	d.metrics.AddNewOrders(len(fresh))

	ids := make([]int64, 0, len(fresh))
	for _, order := range fresh {
		ids = append(ids, order.OrderID)
	}
	logs.Infof("new order ids: %v", ids)

	for _, order := range fresh {
		d.evaluate(ctx, order)
	}
}

// evaluate prices and decides one order. Failures are isolated: siblings
// in the same batch still run.
func (d *Dispatcher) evaluate(ctx context.Context, order model.Order) {
	start := time.Now()
	dec, err := d.engine.Summarize(ctx, order)
	d.metrics.ObserveSummarize(time.Since(start))
	if err != nil {
		logs.Errorf("summarize order %d, err: %+v", order.OrderID, err)
		return
	}

	logs.Info(dec.Message)

	if err := d.journal.Record(ctx, journal.FromDecision(order, dec.Message, dec.Trade)); err != nil {
		logs.Errorf("journal order %d, err: %+v", order.OrderID, err)
	}

	if !dec.Trade {
		return
	}
	if err := d.exec.Execute(ctx, order); err != nil {
		logs.Errorf("execute order %d, err: %+v", order.OrderID, err)
		return
	}
	d.metrics.IncTradeSent()
}
