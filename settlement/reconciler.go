package settlement

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
)

const SETTLED_TTL = time.Minute * 10

// RefreshFunc re-reads one piece of derived state (balances, positions,
// market listings) after a settlement.
type RefreshFunc func(ctx context.Context) error

// Schedules are offsets from the moment of settlement. The immediate pass
// picks up state already visible; the later passes catch indexers that lag
// the chain head.
var (
	TradeSchedule   = []time.Duration{0, time.Second * 2, time.Second * 5}
	AuctionSchedule = []time.Duration{0, time.Second, time.Second * 3, time.Second * 6}
)

// Reconciler refreshes derived state after on-chain settlements. Each settled
// identity triggers one run of the schedule; repeated notifications for the
// same identity inside the dedup window are ignored, so callers may notify
// on every receipt without care for double delivery.
type Reconciler struct {
	schedule []time.Duration
	tasks    []RefreshFunc

	settled *ttlcache.Cache[common.Hash, struct{}]
	wg      conc.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewReconciler(ctx context.Context, schedule []time.Duration, tasks ...RefreshFunc) *Reconciler {
	settled := ttlcache.New(
		ttlcache.WithTTL[common.Hash, struct{}](SETTLED_TTL),
	)
	go settled.Start()

	ctx, cancel := context.WithCancel(ctx)
	return &Reconciler{
		schedule: schedule,
		tasks:    tasks,
		settled:  settled,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Settle starts the refresh schedule for the given identity. Non-blocking;
// the schedule runs in the background and survives until it finishes or the
// reconciler is closed.
func (r *Reconciler) Settle(identity common.Hash) {
	_, seen := r.settled.GetOrSet(identity, struct{}{})
	if seen {
		log.Debug().Msgf("Ignoring duplicate settlement notification for %s", identity.Hex())
		return
	}

	r.wg.Go(func() {
		r.run(identity)
	})
}

// Close cancels all in-flight schedules and waits for their tasks to return.
func (r *Reconciler) Close() {
	r.cancel()
	r.wg.Wait()
	r.settled.Stop()
}

func (r *Reconciler) run(identity common.Hash) {
	elapsed := time.Duration(0)
	for _, offset := range r.schedule {
		select {
		case <-r.ctx.Done():
			return
		case <-time.After(offset - elapsed):
		}
		elapsed = offset

		r.refresh(identity)
	}
}

// refresh fans all tasks out concurrently and waits for the slowest one. A
// failing task only logs; the remaining tasks and the remaining schedule
// still run.
func (r *Reconciler) refresh(identity common.Hash) {
	wg := conc.NewWaitGroup()
	for _, task := range r.tasks {
		task := task
		wg.Go(func() {
			if err := task(r.ctx); err != nil {
				log.Warn().Msgf("Settlement refresh for %s failed: %s", identity.Hex(), err)
			}
		})
	}
	wg.Wait()
}
