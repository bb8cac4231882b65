package journal

import (
	"context"
	"time"

	"main/internal/model"
	"main/pkg/conn"

	"github.com/yanun0323/errors"
)

// Entry is one evaluated order, traded or not. The journal is quote
// analytics for the desk, not a trade ledger.
type Entry struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   int64 `gorm:"index"`
	ClientID  int64
	NetPrice  float64
	Summary   string
	Traded    bool
	CreatedAt time.Time
}

func (Entry) TableName() string {
	return "decision_journal"
}

// FromDecision builds a journal entry from an evaluated order.
func FromDecision(order model.Order, summary string, traded bool) Entry {
	return Entry{
		OrderID:  order.OrderID,
		ClientID: order.ClientID,
		NetPrice: order.NetPrice,
		Summary:  summary,
		Traded:   traded,
	}
}

// Journal persists per-order decisions to Postgres. A nil Journal records
// nothing, so callers wire it unconditionally.
type Journal struct {
	client *conn.Client
}

// Open connects and migrates the journal table.
func Open(opt conn.Option) (*Journal, error) {
	client, err := conn.New(opt)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if err := client.DB().AutoMigrate(&Entry{}); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "migrate journal")
	}
	return &Journal{client: client}, nil
}

// Record inserts one entry.
func (j *Journal) Record(ctx context.Context, entry Entry) error {
	if j == nil || j.client == nil {
		return nil
	}
	if err := j.client.DB().WithContext(ctx).Create(&entry).Error; err != nil {
		return errors.Wrap(err, "insert journal entry")
	}
	return nil
}

// Close releases the connection pool.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.client.Close()
}
