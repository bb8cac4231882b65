package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"main/internal/auth"
	"main/internal/book"
	"main/internal/decision"
	"main/internal/dispatch"
	"main/internal/execution"
	"main/internal/journal"
	"main/internal/model"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/pricer"
	"main/internal/protocol"
	"main/pkg/conn"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/ws"
)

func main() {
	envFile := flag.String("env-file", "", "path to .env file (default: .env in current directory)")
	queueSize := flag.Int("queue-size", 1024, "inbound event queue capacity")
	flag.Parse()

	if err := run(context.Background(), *envFile, *queueSize); err != nil {
		logs.Errorf("trader: %+v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, envFile string, queueSize int) error {
	cfg, err := ops.Load(envFile)
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	if cfg.PyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "mm/trader",
			ServerAddress:   cfg.PyroscopeAddr,
			Tags: map[string]string{
				"env": cfg.EnvName,
			},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return errors.Wrap(err, "start pyroscope")
		}
		defer func() { _ = profiler.Stop() }()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: 20 * time.Second}

	session, err := auth.NewSession(httpClient, cfg.APIBaseURL, cfg.EthAddress, cfg.RSAKey)
	if err != nil {
		return errors.Wrap(err, "build session")
	}
	if err := session.Login(ctx); err != nil {
		return errors.Wrap(err, "initial login")
	}

	metrics := obs.NewMetrics()
	client := protocol.NewClient(httpClient, cfg.APIBaseURL, session)
	calc := pricer.NewClient(httpClient, cfg.CalcBaseURL, metrics)

	var store *journal.Journal
	if cfg.JournalDSN != "" {
		store, err = journal.Open(conn.Option{ConnString: cfg.JournalDSN})
		if err != nil {
			return errors.Wrap(err, "open journal")
		}
		defer func() { _ = store.Close() }()
	}

	exclude := cfg.HouseFilter()
	fetch := func(ctx context.Context) ([]model.Order, error) {
		return client.Orderbook(ctx, exclude)
	}

	d := dispatch.New(dispatch.Config{
		WS:        ws.New(ctx, cfg.WSURL),
		Fetch:     fetch,
		Differ:    book.NewDiffer(),
		Engine:    decision.New(calc),
		Executor:  execution.New(client),
		Journal:   store,
		Metrics:   metrics,
		QueueSize: queueSize,
	})

	if err := d.Prime(ctx); err != nil {
		return err
	}

	logs.Infof("trader running, env: %s", cfg.EnvName)
	if err := d.Run(ctx); err != nil {
		return errors.Wrap(err, "dispatch")
	}

	snapshot := metrics.Snapshot()
	logs.Infof("metrics: events=%v new_orders=%d pricing_misses=%d trades_sent=%d cycle_failures=%d queue_drops=%d summarize=%+v",
		snapshot.EventCounts, snapshot.NewOrders, snapshot.PricingMisses,
		snapshot.TradesSent, snapshot.CycleFailures, snapshot.QueueDrops, snapshot.Summarize)
	return nil
}
