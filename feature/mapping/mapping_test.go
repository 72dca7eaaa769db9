package mapping

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"library-sync/core/database"
	"library-sync/feature/catalog"
	"library-sync/feature/platform"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *catalog.Game) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &catalog.Game{}, &TitleMapping{}))

	games := catalog.NewStore(db)
	g, err := games.CreateIfAbsent(context.Background(), catalog.Entry{CatalogID: 1942, Name: "The Witcher 3: Wild Hunt"}.ToGame())
	require.NoError(t, err)

	return NewService(NewStore(db), games, nil, zap.NewNop()), g
}

func TestService_CreateAndFind(t *testing.T) {
	svc, game := setupService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, "psn", " Witcher 3 Complete Edition PS4 & PS5 ", game.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Witcher 3 Complete Edition PS4 & PS5", m.OriginalTitle)
	assert.Equal(t, "witcher 3", m.NormalizedTitle)
	assert.NotEmpty(t, m.ID)

	gameID, found, err := svc.Store().FindMapping(ctx, "psn", "Witcher 3 Complete Edition PS4 & PS5")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, game.ID, gameID)

	_, found, err = svc.Store().FindMapping(ctx, "xbox", "Witcher 3 Complete Edition PS4 & PS5")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestService_CreateRepointsExisting(t *testing.T) {
	svc, game := setupService(t)
	ctx := context.Background()

	other, err := svc.games.CreateIfAbsent(ctx, catalog.Entry{CatalogID: 7, Name: "Hades"}.ToGame())
	require.NoError(t, err)

	first, err := svc.Create(ctx, "steam", "Hades Beta", game.ID, "")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "steam", "Hades Beta", other.ID, "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, other.ID, second.GameID)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "steam", "  ", "x", "")
	assert.ErrorIs(t, err, ErrInvalidMapping)

	_, err = svc.Create(ctx, "steam", "Hades", "missing-game", "")
	assert.ErrorIs(t, err, ErrGameNotFound)

	_, err = svc.Create(ctx, "", "Hades", "x", "")
	assert.ErrorIs(t, err, ErrInvalidMapping)

	_, err = svc.Create(ctx, "gamecube", "Hades", "x", "")
	assert.ErrorIs(t, err, ErrInvalidMapping)
	assert.ErrorIs(t, err, platform.ErrUnknownPlatform)

	_, err = svc.List(ctx, "gamecube")
	assert.ErrorIs(t, err, platform.ErrUnknownPlatform)
	assert.ErrorIs(t, svc.Delete(ctx, "gamecube", "Hades"), platform.ErrUnknownPlatform)
}

func TestService_CanonicalPlatform(t *testing.T) {
	svc, game := setupService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, " Xbox ", "Forza Horizon 5", game.ID, "cli")
	require.NoError(t, err)
	assert.Equal(t, "xbox", m.Platform)

	gameID, found, err := svc.Store().FindMapping(ctx, "xbox", "Forza Horizon 5")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, game.ID, gameID)

	list, err := svc.List(ctx, "XBOX")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "Xbox", "Forza Horizon 5"))
}

func TestService_Delete(t *testing.T) {
	svc, game := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "steam", "Witcher", game.ID, "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "steam", "Witcher"))
	assert.ErrorIs(t, svc.Delete(ctx, "steam", "Witcher"), ErrMappingNotFound)
}

func TestStore_FindMappingError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `title_mappings`").WillReturnError(assert.AnError)

	_, found, err := NewStore(db).FindMapping(context.Background(), "steam", "Hades")
	assert.False(t, found)
	assert.ErrorIs(t, err, assert.AnError)
}

func setupApp(t *testing.T) (*fiber.App, *Service, *catalog.Game) {
	svc, game := setupService(t)
	app := fiber.New()
	f := NewFeature(svc)
	require.NoError(t, f.Load(app))
	return app, svc, game
}

func TestHandler_CreateListDelete(t *testing.T) {
	app, _, game := setupApp(t)

	body := `{"platform":"Steam","original_title":"Witcher 3 GOTY","game_id":"` + game.ID + `"}`
	req := httptest.NewRequest("POST", "/sync/mappings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created TitleMapping
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "steam", created.Platform)

	resp, err = app.Test(httptest.NewRequest("GET", "/sync/mappings?platform=steam", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []TitleMapping
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/sync/mappings?platform=steam&title=Witcher%203%20GOTY", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/sync/mappings?platform=steam&title=Witcher%203%20GOTY", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandler_Errors(t *testing.T) {
	app, _, _ := setupApp(t)

	req := httptest.NewRequest("POST", "/sync/mappings", strings.NewReader(`{"platform":"sega","original_title":"x","game_id":"y"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest("POST", "/sync/mappings", strings.NewReader(`{"platform":"steam","original_title":"x","game_id":"missing"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/sync/mappings?platform=sega", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/sync/mappings?platform=steam", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoader(t *testing.T) {
	svc, _ := setupService(t)
	f := NewFeature(svc)
	assert.Equal(t, "mapping", f.Name())
	assert.True(t, f.IsEnabled())
}
