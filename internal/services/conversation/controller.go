package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coinwatch/internal/domain"
	"coinwatch/internal/services/ranking"
	"coinwatch/internal/services/render"
	"coinwatch/internal/storage/session"
)

// MarketClient is the narrow provider contract the controller depends on.
type MarketClient interface {
	Fetch(ctx context.Context, ids []domain.AssetID, currency string) (domain.MarketSnapshot, error)
}

// Controller maps inbound chat events to render instructions. It holds no
// per-turn state of its own: the only state is the session store, so the
// current view is reconstructed from the event itself and returned as an
// explicit ViewMode with every reply.
type Controller struct {
	client   MarketClient
	store    *session.Store
	assets   []domain.AssetID
	currency string
	logger   *zap.Logger
	now      func() time.Time
}

// NewController creates a controller for the given tracked asset set. The
// store is passed by handle; the controller is its single writer per session.
func NewController(client MarketClient, store *session.Store, assets []domain.AssetID, currency string, logger *zap.Logger) *Controller {
	return &Controller{
		client:   client,
		store:    store,
		assets:   assets,
		currency: currency,
		logger:   logger,
		now:      time.Now,
	}
}

// Handle processes one inbound event for a session. It never returns an
// error: every failure is converted into a user-visible reply.
func (c *Controller) Handle(ctx context.Context, sessionKey string, ev domain.Event) (domain.Reply, domain.ViewMode) {
	switch e := ev.(type) {
	case domain.StartRequested:
		return render.Greeting(e.Name), domain.IdleMode()
	case domain.ListRequested:
		return c.refreshList(ctx, sessionKey)
	case domain.AssetSelected:
		return c.selectAsset(sessionKey, e.ID)
	case domain.BackToList:
		return c.backToList(sessionKey)
	case domain.UnknownCommand:
		return render.UnknownCommand(), domain.IdleMode()
	default:
		return render.UnknownCommand(), domain.IdleMode()
	}
}

// refreshList fetches a fresh snapshot, caches it for the session and renders
// the ranked overview. A failed fetch renders the empty overview variant and
// leaves any previously cached snapshot untouched.
func (c *Controller) refreshList(ctx context.Context, sessionKey string) (domain.Reply, domain.ViewMode) {
	fetchID := uuid.NewString()
	start := c.now()

	snapshot, err := c.client.Fetch(ctx, c.assets, c.currency)
	if err != nil {
		c.logger.Error("market data fetch failed",
			zap.String("session", sessionKey),
			zap.String("fetch_id", fetchID),
			zap.Error(err))

		return render.Overview(nil, c.now()), domain.IdleMode()
	}

	c.store.Put(sessionKey, snapshot)

	c.logger.Info("market data refreshed",
		zap.String("session", sessionKey),
		zap.String("fetch_id", fetchID),
		zap.Int("assets", len(snapshot.Assets)),
		zap.Duration("took", c.now().Sub(start)))

	return render.Overview(ranking.Rank(snapshot), c.now()), domain.OverviewMode()
}

// selectAsset serves a detail view from the cached snapshot. Detail views
// never fetch: they always show data from the last list refresh, so overview
// and detail stay mutually consistent within one refresh cycle.
func (c *Controller) selectAsset(sessionKey string, id domain.AssetID) (domain.Reply, domain.ViewMode) {
	snapshot, ok := c.store.Get(sessionKey)
	if !ok {
		c.logger.Warn("control activated with no cached snapshot",
			zap.String("session", sessionKey),
			zap.Error(domain.ErrStaleSession))

		return render.StaleSession(), domain.IdleMode()
	}

	asset, ok := snapshot.Lookup(id)
	if !ok {
		c.logger.Warn("control token not present in cached snapshot",
			zap.String("session", sessionKey),
			zap.String("token", string(id)),
			zap.Error(domain.ErrAssetNotFound))

		return render.AssetNotFound(id), domain.OverviewMode()
	}

	return render.Detail(asset, c.now()), domain.DetailMode(id)
}

// backToList re-ranks the cached snapshot without re-fetching.
func (c *Controller) backToList(sessionKey string) (domain.Reply, domain.ViewMode) {
	snapshot, ok := c.store.Get(sessionKey)
	if !ok {
		c.logger.Warn("back control activated with no cached snapshot",
			zap.String("session", sessionKey),
			zap.Error(domain.ErrStaleSession))

		return render.StaleSession(), domain.IdleMode()
	}

	return render.Overview(ranking.Rank(snapshot), c.now()), domain.OverviewMode()
}
