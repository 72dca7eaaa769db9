package syncer

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"library-sync/core/logger"
	"library-sync/core/middleware/auth"
	"library-sync/feature/catalog"
	"library-sync/feature/library"
	"library-sync/feature/platform"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for platform connections, sync runs and the library.
type Handler struct {
	orchestrator *Orchestrator
	limiter      fiber.Handler
}

// NewHandler creates a new HTTP handler. limiter guards the sync triggers
// and may be nil.
func NewHandler(orchestrator *Orchestrator, limiter fiber.Handler) *Handler {
	if limiter == nil {
		limiter = func(c *fiber.Ctx) error { return c.Next() }
	}
	return &Handler{orchestrator: orchestrator, limiter: limiter}
}

// ConnectRequest is the body of POST /sync/:platform/connect.
type ConnectRequest struct {
	PlatformUserID string `json:"platform_user_id"`
	Username       string `json:"username"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
}

// StatusItem is one platform in GET /sync/status.
type StatusItem struct {
	Platform      string                `json:"platform"`
	Connected     bool                  `json:"connected"`
	Username      string                `json:"username,omitempty"`
	IsActive      bool                  `json:"is_active"`
	LastSyncAt    *time.Time            `json:"last_sync_at,omitempty"`
	LastSyncError *string               `json:"last_sync_error,omitempty"`
	Capabilities  platform.Capabilities `json:"capabilities"`
}

// LibraryItem is one game in GET /library.
type LibraryItem struct {
	library.AggregatedEntry
	Game *catalog.Game `json:"game,omitempty"`
}

// Event is one server-sent event of GET /sync/:platform/progress.
type Event struct {
	Type     string  `json:"type"`
	State    State   `json:"state,omitempty"`
	Message  string  `json:"message,omitempty"`
	Progress int     `json:"progress,omitempty"`
	Result   *Result `json:"result,omitempty"`
}

// RegisterRoutes registers the sync and library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	user := auth.RequireUser()

	group := app.Group("/sync")
	group.Get("/platforms", h.HandlePlatforms)
	group.Get("/status", user, h.HandleStatus)
	group.Post("/all", user, h.limiter, h.HandleSyncAll)
	group.Post("/:platform/connect", user, h.HandleConnect)
	group.Delete("/disconnect/:platform", user, h.HandleDisconnect)
	group.Post("/:platform/sync", user, h.limiter, h.HandleSync)
	group.Get("/:platform/progress", user, h.limiter, h.HandleProgress)
	group.Get("/:platform/report", user, h.HandleReport)

	lib := app.Group("/library")
	lib.Get("/", user, h.HandleLibrary)
	lib.Put("/:gameId/favorite", user, h.HandleFavorite)
}

func (h *Handler) log(c *fiber.Ctx) *zap.Logger {
	return logger.WithRayID(h.orchestrator.Logger, c)
}

// HandlePlatforms lists platform capabilities.
// @Summary List Platforms
// @Description Lists supported platforms with their capabilities and warnings.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]platform.Capabilities
// @Router /sync/platforms [get]
func (h *Handler) HandlePlatforms(c *fiber.Ctx) error {
	out := make(map[string]platform.Capabilities)
	for _, p := range platform.All() {
		caps, _ := p.Capabilities()
		out[p.String()] = caps
	}
	return c.JSON(out)
}

// HandleStatus lists the user's platform connections.
// @Summary Sync Status
// @Description Returns every platform with the user's connection and last sync outcome.
// @Tags sync
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {array} StatusItem
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	conns, err := h.orchestrator.Library.Connections(c.Context(), auth.UserID(c), false)
	if err != nil {
		h.log(c).Error("Failed to list connections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	byPlatform := make(map[string]library.Connection, len(conns))
	for _, conn := range conns {
		byPlatform[conn.Platform] = conn
	}

	items := make([]StatusItem, 0, len(platform.All()))
	for _, p := range platform.All() {
		caps, _ := p.Capabilities()
		item := StatusItem{Platform: p.String(), Capabilities: caps}
		if conn, ok := byPlatform[p.String()]; ok {
			item.Connected = true
			item.Username = conn.Username
			item.IsActive = conn.IsActive
			item.LastSyncAt = conn.LastSyncAt
			item.LastSyncError = conn.LastSyncError
		}
		items = append(items, item)
	}
	return c.JSON(items)
}

// HandleConnect links a platform account.
// @Summary Connect Platform
// @Description Links a platform account to the user. Platforms that require a user token reject requests without access_token.
// @Tags sync
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param platform path string true "Platform"
// @Param account body ConnectRequest true "Account"
// @Success 201 {object} library.Connection
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/{platform}/connect [post]
func (h *Handler) HandleConnect(c *fiber.Ctx) error {
	p, err := platform.Parse(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}
	var req ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.PlatformUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "platform_user_id is required"})
	}
	if caps, _ := p.Capabilities(); caps.RequiresUserToken && req.AccessToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": caps.Name + " requires access_token"})
	}

	conn, err := h.orchestrator.Library.Connect(c.Context(), library.ConnectInput{
		UserID:         auth.UserID(c),
		Platform:       p.String(),
		PlatformUserID: req.PlatformUserID,
		Username:       req.Username,
		AccessToken:    req.AccessToken,
		RefreshToken:   req.RefreshToken,
	})
	if err != nil {
		h.log(c).Error("Failed to connect platform", zap.String("platform", p.String()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(conn)
}

// HandleDisconnect unlinks a platform and removes its library entries.
// @Summary Disconnect Platform
// @Description Removes the connection and every library entry synced from the platform.
// @Tags sync
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param platform path string true "Platform"
// @Success 200 {object} map[string]interface{} "Removed entries"
// @Failure 400 {object} map[string]string "Unknown platform"
// @Failure 404 {object} map[string]string "Not connected"
// @Router /sync/disconnect/{platform} [delete]
func (h *Handler) HandleDisconnect(c *fiber.Ctx) error {
	p, err := platform.Parse(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}
	removed, err := h.orchestrator.Library.Disconnect(c.Context(), auth.UserID(c), p.String())
	if err != nil {
		return writeError(c, err)
	}
	h.log(c).Info("Platform disconnected", zap.String("platform", p.String()), zap.Int64("removed", removed))
	return c.JSON(fiber.Map{"status": "disconnected", "removed": removed})
}

// HandleSync runs a sync and returns its result.
// @Summary Sync Platform
// @Description Fetches the platform library, matches every title against the catalog and merges the matches into the user's library.
// @Tags sync
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param platform path string true "Platform"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Unknown or unsupported platform"
// @Failure 401 {object} map[string]string "Platform authentication expired"
// @Failure 404 {object} map[string]string "Not connected"
// @Failure 409 {object} map[string]string "Sync in progress"
// @Failure 429 {object} map[string]interface{} "Quota exceeded"
// @Failure 502 {object} map[string]string "Upstream unavailable"
// @Router /sync/{platform}/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	p, err := platform.Parse(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}
	result, err := h.orchestrator.Sync(c.Context(), auth.UserID(c), p, nil)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(result)
}

// HandleSyncAll syncs every active connection.
// @Summary Sync All Platforms
// @Description Syncs every active platform connection in turn. Failures are reported per platform.
// @Tags sync
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {array} PlatformResult
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync/all [post]
func (h *Handler) HandleSyncAll(c *fiber.Ctx) error {
	results, err := h.orchestrator.SyncAll(c.Context(), auth.UserID(c), nil)
	if err != nil {
		h.log(c).Error("Failed to sync all platforms", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(results)
}

// HandleProgress runs a sync and streams its progress as server-sent events.
// @Summary Sync Platform With Progress
// @Description Runs a sync and streams progress events, ending with a "complete" event carrying the result or an "error" event.
// @Tags sync
// @Produce text/event-stream
// @Param X-User-ID header string true "User ID"
// @Param platform path string true "Platform"
// @Success 200 {object} Event
// @Failure 400 {object} map[string]string "Unknown platform"
// @Router /sync/{platform}/progress [get]
func (h *Handler) HandleProgress(c *fiber.Ctx) error {
	p, err := platform.Parse(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}
	userID := auth.UserID(c)
	l := h.log(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ch := make(chan Event, 16)
		go func() {
			defer close(ch)
			result, err := h.orchestrator.Sync(context.Background(), userID, p, func(pr Progress) {
				ch <- Event{Type: "progress", State: pr.State, Message: pr.Message, Progress: pr.Percent}
			})
			if err != nil {
				ch <- Event{Type: "error", Message: err.Error()}
				return
			}
			ch <- Event{Type: "complete", Result: result, Progress: 100}
		}()

		for evt := range ch {
			if err := writeEvent(w, evt); err != nil {
				l.Warn("Progress stream closed by client", zap.Error(err))
				// the run continues; keep draining so it never blocks
				for range ch {
				}
				return
			}
		}
	})
	return nil
}

func writeEvent(w *bufio.Writer, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	return w.Flush()
}

// HandleReport returns the latest archived sync report.
// @Summary Latest Sync Report
// @Description Returns the result of the most recent archived sync run, including unrecognized titles.
// @Tags sync
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param platform path string true "Platform"
// @Success 200 {object} Result
// @Failure 404 {object} map[string]string "No report"
// @Router /sync/{platform}/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	p, err := platform.Parse(c.Params("platform"))
	if err != nil {
		return writeError(c, err)
	}
	report, err := h.orchestrator.Archiver.Latest(c.Context(), auth.UserID(c), p.String())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// HandleLibrary returns the user's library, one item per game.
// @Summary Get Library
// @Description Returns the user's games across all platforms with summed playtime.
// @Tags library
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Success 200 {array} LibraryItem
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /library [get]
func (h *Handler) HandleLibrary(c *fiber.Ctx) error {
	entries, err := h.orchestrator.Library.Library(c.Context(), auth.UserID(c))
	if err != nil {
		h.log(c).Error("Failed to load library", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	items := make([]LibraryItem, 0, len(entries))
	for _, e := range entries {
		item := LibraryItem{AggregatedEntry: e}
		game, err := h.orchestrator.Lookup.GameByID(c.Context(), e.GameID)
		switch {
		case err == nil:
			item.Game = game
		case !errors.Is(err, catalog.ErrGameNotFound):
			h.log(c).Error("Failed to load game", zap.String("game_id", e.GameID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		items = append(items, item)
	}
	return c.JSON(items)
}

// HandleFavorite sets or clears the favorite flag of a game.
// @Summary Set Favorite
// @Description Sets the favorite flag on every platform entry of a game. Body: {"favorite": true}.
// @Tags library
// @Accept json
// @Produce json
// @Param X-User-ID header string true "User ID"
// @Param gameId path string true "Game ID"
// @Success 200 {object} map[string]interface{} "Updated"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /library/{gameId}/favorite [put]
func (h *Handler) HandleFavorite(c *fiber.Ctx) error {
	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	gameID := c.Params("gameId")
	if err := h.orchestrator.Library.SetFavorite(c.Context(), auth.UserID(c), gameID, req.Favorite); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"game_id": gameID, "favorite": req.Favorite})
}
