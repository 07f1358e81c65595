package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	domainerrors "github.com/gamedex/gamedex-server/internal/errors"
	"github.com/gamedex/gamedex-server/internal/service"
)

// Covers never change once fetched, so clients may cache them forever.
const coverCacheControl = "public, max-age=31536000, immutable"

func (s *Server) registerCoverRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getGameCoverInfo",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/{id}/cover/info",
		Summary:     "Get cover info",
		Description: "Returns the cover URL, BlurHash placeholder and ETag for a game",
		Tags:        []string{"Covers"},
	}, s.handleGetCoverInfo)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGameCover",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/{id}/cover",
		Summary:     "Get game cover",
		Description: "Redirects to the cover image for a game",
		Tags:        []string{"Covers"},
	}, s.handleGetGameCover)

	// Direct chi route for cover streaming; huma buffers response bodies.
	s.router.Get("/covers/{id}", s.handleServeCover)
}

// === DTOs ===

type CoverInfoOutput struct {
	Body service.CoverInfo
}

type CoverRedirectOutput struct {
	Status   int
	Location string `header:"Location"`
}

func (o *CoverRedirectOutput) StatusCode() int {
	return o.Status
}

// === Handlers ===

func (s *Server) handleGetCoverInfo(ctx context.Context, input *GetGameInput) (*CoverInfoOutput, error) {
	game, err := s.services.Catalog.GetGame(input.ID)
	if err != nil {
		return nil, err
	}

	info, err := s.services.Cover.Info(ctx, game)
	if err != nil {
		return nil, err
	}

	return &CoverInfoOutput{Body: *info}, nil
}

func (s *Server) handleGetGameCover(ctx context.Context, input *GetGameInput) (*CoverRedirectOutput, error) {
	game, err := s.services.Catalog.GetGame(input.ID)
	if err != nil {
		return nil, err
	}

	return &CoverRedirectOutput{
		Status:   http.StatusTemporaryRedirect,
		Location: "/covers/" + game.ID,
	}, nil
}

func (s *Server) handleServeCover(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Remove .jpg extension if present
	if len(id) > 4 && id[len(id)-4:] == ".jpg" {
		id = id[:len(id)-4]
	}

	game, err := s.services.Catalog.GetGame(id)
	if err != nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	data, contentType, err := s.services.Cover.Get(r.Context(), game)
	if err != nil {
		// Missing credentials stay visible to operators; everything else
		// degrades to a plain 404 so a flaky upstream never breaks the page.
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) && domainErr.Code == domainerrors.CodeNotConfigured {
			http.Error(w, domainErr.Message, domainErr.HTTPStatus())
			return
		}
		http.Error(w, "cover not available", http.StatusNotFound)
		return
	}

	if etag, hashErr := s.covers.Hash(game.ID); hashErr == nil {
		w.Header().Set("ETag", `"`+etag+`"`)
		if r.Header.Get("If-None-Match") == `"`+etag+`"` {
			// A 304 carries the same validators the 200 would have.
			w.Header().Set("Cache-Control", coverCacheControl)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", coverCacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
