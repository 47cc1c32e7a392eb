package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"moonlight/internal/app/camp"
	"moonlight/internal/app/hunt"
	"moonlight/internal/app/ports"
	"moonlight/internal/app/shop"
	"moonlight/internal/app/state"
	"moonlight/internal/app/wallet"
	"moonlight/internal/app/weather"
	"moonlight/internal/domain/hazard"
)

const playerIDHeader = "X-Player-ID"
const adminTokenHeader = "X-Admin-Token"

var (
	ErrMissingPlayerID = errors.New("missing x-player-id header")
	ErrNotAdmin        = errors.New("admin token required")
)

type Handler struct {
	HuntUC     *hunt.UseCase
	CampUC     *camp.UseCase
	WalletUC   *wallet.UseCase
	ShopUC     *shop.UseCase
	Weather    *weather.Scheduler
	State      *state.State
	AdminToken string
	KPI        kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	game := s.Group("/api/game")
	game.POST("/hunt", h.hunt)
	game.POST("/camp", h.camp)
	game.POST("/uncamp", h.uncamp)
	game.GET("/weather", h.weather)

	players := s.Group("/api/players")
	players.GET("/:id", h.playerStats)
	players.POST("/:id/potion", h.usePotion)

	walletGroup := s.Group("/api/wallet")
	walletGroup.POST("/pay", h.pay)
	walletGroup.GET("/top", h.walletTop)
	walletGroup.GET("/bottom", h.walletBottom)

	s.POST("/api/shop/buy", h.shopBuy)

	admin := s.Group("/api/admin")
	admin.POST("/weather", h.forceWeather)
	admin.POST("/chaos-check", h.chaosCheck)
	admin.POST("/coins/grant", h.coinsGrant)
	admin.POST("/coins/set", h.coinsSet)
	admin.POST("/coins/set-all", h.coinsSetAll)

	s.GET("/ops/kpi", h.kpi)
}

type huntResponse struct {
	Outcome       string   `json:"outcome"`
	Weather       string   `json:"weather"`
	Chaos         bool     `json:"chaos"`
	Mobs          []string `json:"mobs,omitempty"`
	Reward        int64    `json:"reward"`
	Balance       string   `json:"balance"`
	Health        int      `json:"health"`
	Ammo          string   `json:"ammo"`
	GunDurability string   `json:"gun_durability"`
	StormWarning  bool     `json:"storm_warning"`
}

func (h Handler) hunt(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	resp, err := h.HuntUC.Execute(c, hunt.Request{
		PlayerID: playerID,
		Admin:    h.isAdmin(ctx),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(consts.StatusOK, huntResponse{
		Outcome:       string(resp.Outcome),
		Weather:       resp.Weather.Label(),
		Chaos:         resp.Chaos,
		Mobs:          resp.Mobs,
		Reward:        resp.Reward,
		Balance:       resp.Balance.String(),
		Health:        resp.Health,
		Ammo:          resp.Ammo.String(),
		GunDurability: resp.GunDurability.String(),
		StormWarning:  resp.StormWarning,
	})
}

type campResponse struct {
	Weather           string `json:"weather,omitempty"`
	CampDurability    string `json:"camp_durability"`
	Advisory          bool   `json:"advisory"`
	AdvisoryThreshold int64  `json:"advisory_threshold,omitempty"`
}

func (h Handler) camp(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.CampUC.Enter(c, camp.Request{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, campResponse{
		Weather:           resp.Weather.Label(),
		CampDurability:    resp.CampDurability.String(),
		Advisory:          resp.Advisory,
		AdvisoryThreshold: resp.AdvisoryThreshold,
	})
}

func (h Handler) uncamp(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.CampUC.Leave(c, camp.Request{PlayerID: playerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, campResponse{CampDurability: resp.CampDurability.String()})
}

type weatherResponse struct {
	Kind           string   `json:"kind"`
	Label          string   `json:"label"`
	SubKind        string   `json:"sub_kind,omitempty"`
	EndsAt         string   `json:"ends_at"`
	BlizzardActive bool     `json:"blizzard_active"`
	Chaos          bool     `json:"chaos"`
	History        []string `json:"history"`
}

func (h Handler) weather(_ context.Context, ctx *app.RequestContext) {
	snap := h.Weather.Snapshot()
	history := h.Weather.HistoryKinds()
	names := make([]string, 0, len(history))
	for _, k := range history {
		names = append(names, string(k))
	}
	resp := weatherResponse{
		Kind:           string(snap.Kind),
		Label:          snap.Kind.Label(),
		EndsAt:         snap.EndsAt.UTC().Format(time.RFC3339),
		BlizzardActive: snap.BlizzardActive,
		Chaos:          snap.Chaos(),
		History:        names,
	}
	if snap.Chaos() {
		resp.SubKind = string(snap.SubKind)
	}
	ctx.JSON(consts.StatusOK, resp)
}

type playerStatsResponse struct {
	ID             string `json:"id"`
	Health         int    `json:"health"`
	GunDurability  string `json:"gun_durability"`
	Ammo           string `json:"ammo"`
	CampDurability string `json:"camp_durability"`
	HealingPotions string `json:"healing_potions"`
	Coins          string `json:"coins"`
	Camping        bool   `json:"camping"`
	StormWarned    bool   `json:"storm_warned"`
}

func (h Handler) playerStats(_ context.Context, ctx *app.RequestContext) {
	playerID := strings.TrimSpace(ctx.Param("id"))
	if playerID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", "missing player id")
		return
	}
	rec, ok := h.State.Player(playerID)
	if !ok {
		writeError(ctx, ports.ErrNotFound)
		return
	}
	ctx.JSON(consts.StatusOK, playerStatsResponse{
		ID:             rec.ID,
		Health:         rec.Health,
		GunDurability:  rec.GunDurability.String(),
		Ammo:           rec.Ammo.String(),
		CampDurability: rec.CampDurability.String(),
		HealingPotions: rec.HealingPotions.String(),
		Coins:          h.State.Coins(playerID).String(),
		Camping:        h.State.InCamp(playerID),
		StormWarned:    h.State.HasStormWarning(playerID),
	})
}

func (h Handler) usePotion(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	target := strings.TrimSpace(ctx.Param("id"))
	if target != playerID && !h.isAdmin(ctx) {
		writeError(ctx, ErrNotAdmin)
		return
	}
	rec, err := h.ShopUC.UsePotion(c, target)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"health":          rec.Health,
		"healing_potions": rec.HealingPotions.String(),
	})
}

type payRequest struct {
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

func (h Handler) pay(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body payRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	remaining, err := h.WalletUC.Pay(c, playerID, strings.TrimSpace(body.To), body.Amount)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"balance": remaining.String()})
}

type leaderboardEntry struct {
	PlayerID string `json:"player_id"`
	Balance  string `json:"balance"`
}

func (h Handler) walletTop(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, toLeaderboard(h.WalletUC.Top(queryLimit(ctx))))
}

func (h Handler) walletBottom(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, toLeaderboard(h.WalletUC.Bottom(queryLimit(ctx))))
}

func toLeaderboard(entries []wallet.Entry) []leaderboardEntry {
	out := make([]leaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntry{PlayerID: e.PlayerID, Balance: e.Balance.String()})
	}
	return out
}

func queryLimit(ctx *app.RequestContext) int {
	n, err := strconv.Atoi(ctx.Query("n"))
	if err != nil || n <= 0 {
		return 10
	}
	return n
}

type buyRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

func (h Handler) shopBuy(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.requirePlayer(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body buyRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	result, err := h.ShopUC.Buy(c, playerID, strings.TrimSpace(body.ItemID), body.Quantity)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{
		"item":     result.Item.Name,
		"quantity": result.Quantity,
		"cost":     result.Cost,
		"balance":  result.Balance.String(),
	})
}

type forceWeatherRequest struct {
	Kind            string `json:"kind"`
	DurationSeconds int    `json:"duration_seconds"`
}

func (h Handler) forceWeather(c context.Context, ctx *app.RequestContext) {
	if err := h.requireAdmin(ctx); err != nil {
		writeError(ctx, err)
		return
	}
	var body forceWeatherRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	kind, ok := hazard.ParseKind(body.Kind)
	if !ok {
		writeError(ctx, weather.ErrInvalidKind)
		return
	}
	if err := h.Weather.Force(c, kind, time.Duration(body.DurationSeconds)*time.Second); err != nil {
		writeError(ctx, err)
		return
	}
	snap := h.Weather.Snapshot()
	ctx.JSON(consts.StatusOK, map[string]any{
		"kind":    string(snap.Kind),
		"ends_at": snap.EndsAt.UTC().Format(time.RFC3339),
	})
}

func (h Handler) chaosCheck(c context.Context, ctx *app.RequestContext) {
	if err := h.requireAdmin(ctx); err != nil {
		writeError(ctx, err)
		return
	}
	history := h.Weather.HistoryKinds()
	names := make([]string, 0, len(history))
	for _, k := range history {
		names = append(names, string(k))
	}
	triggered := h.Weather.ForceChaosCheck(c)
	ctx.JSON(consts.StatusOK, map[string]any{
		"triggered": triggered,
		"history":   names,
	})
}

type grantRequest struct {
	PlayerID string `json:"player_id"`
	Amount   int64  `json:"amount"`
}

func (h Handler) coinsGrant(c context.Context, ctx *app.RequestContext) {
	if err := h.requireAdmin(ctx); err != nil {
		writeError(ctx, err)
		return
	}
	var body grantRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	balance, err := h.WalletUC.Grant(c, strings.TrimSpace(body.PlayerID), body.Amount)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"balance": balance.String()})
}

type setRequest struct {
	PlayerID string `json:"player_id"`
	Value    int64  `json:"value"`
}

func (h Handler) coinsSet(c context.Context, ctx *app.RequestContext) {
	if err := h.requireAdmin(ctx); err != nil {
		writeError(ctx, err)
		return
	}
	var body setRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	balance, err := h.WalletUC.Set(c, strings.TrimSpace(body.PlayerID), body.Value)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"balance": balance.String()})
}

type setAllRequest struct {
	Value int64 `json:"value"`
}

func (h Handler) coinsSetAll(c context.Context, ctx *app.RequestContext) {
	if err := h.requireAdmin(ctx); err != nil {
		writeError(ctx, err)
		return
	}
	var body setAllRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	count := h.WalletUC.SetAll(c, body.Value)
	ctx.JSON(consts.StatusOK, map[string]any{"updated": count})
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) requirePlayer(ctx *app.RequestContext) (string, error) {
	playerID := strings.TrimSpace(string(ctx.GetHeader(playerIDHeader)))
	if playerID == "" {
		return "", ErrMissingPlayerID
	}
	return playerID, nil
}

func (h Handler) isAdmin(ctx *app.RequestContext) bool {
	token := strings.TrimSpace(string(ctx.GetHeader(adminTokenHeader)))
	return h.AdminToken != "" && token == h.AdminToken
}

func (h Handler) requireAdmin(ctx *app.RequestContext) error {
	if !h.isAdmin(ctx) {
		return ErrNotAdmin
	}
	return nil
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingPlayerID):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_player_id", err.Error())
	case errors.Is(err, ErrNotAdmin):
		writeErrorBody(ctx, consts.StatusUnauthorized, "admin_required", err.Error())
	case errors.Is(err, hunt.ErrStormWarned):
		writeErrorBody(ctx, consts.StatusConflict, "storm_warned", err.Error())
	case errors.Is(err, hunt.ErrCamping):
		writeErrorBody(ctx, consts.StatusConflict, "camping", err.Error())
	case errors.Is(err, hunt.ErrOnCooldown):
		writeErrorBody(ctx, consts.StatusConflict, "cooldown_active", err.Error())
	case errors.Is(err, hunt.ErrNoAmmo):
		writeErrorBody(ctx, consts.StatusConflict, "no_ammo", err.Error())
	case errors.Is(err, hunt.ErrGunBroken):
		writeErrorBody(ctx, consts.StatusConflict, "gun_broken", err.Error())
	case errors.Is(err, camp.ErrNotStormWeather):
		writeErrorBody(ctx, consts.StatusConflict, "not_storm_weather", err.Error())
	case errors.Is(err, camp.ErrAlreadyCamping):
		writeErrorBody(ctx, consts.StatusConflict, "already_camping", err.Error())
	case errors.Is(err, camp.ErrNotCamping):
		writeErrorBody(ctx, consts.StatusConflict, "not_camping", err.Error())
	case errors.Is(err, wallet.ErrInsufficientFunds),
		errors.Is(err, shop.ErrInsufficientFunds):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, shop.ErrNoPotions):
		writeErrorBody(ctx, consts.StatusConflict, "no_potions", err.Error())
	case errors.Is(err, shop.ErrFullHealth):
		writeErrorBody(ctx, consts.StatusConflict, "full_health", err.Error())
	case errors.Is(err, shop.ErrUnknownItem):
		writeErrorBody(ctx, consts.StatusNotFound, "unknown_item", err.Error())
	case errors.Is(err, weather.ErrInvalidKind):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_weather_kind", err.Error())
	case errors.Is(err, hunt.ErrInvalidRequest),
		errors.Is(err, hunt.ErrNoProfile),
		errors.Is(err, camp.ErrInvalidRequest),
		errors.Is(err, wallet.ErrInvalidRequest),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, wallet.ErrSelfTransfer),
		errors.Is(err, shop.ErrInvalidRequest),
		errors.Is(err, shop.ErrInvalidQuantity):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
