package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gamedex/gamedex-server/internal/domain"
)

func (s *Server) registerGameRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGames",
		Method:      http.MethodGet,
		Path:        "/api/v1/games",
		Summary:     "List games",
		Description: "Returns the filtered, sorted catalog window",
		Tags:        []string{"Games"},
	}, s.handleListGames)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGame",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/{id}",
		Summary:     "Get game",
		Description: "Returns a single game by its slug ID",
		Tags:        []string{"Games"},
	}, s.handleGetGame)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFacets",
		Method:      http.MethodGet,
		Path:        "/api/v1/facets",
		Summary:     "Get facets",
		Description: "Returns the catalog's genre, source and classification frequency tables",
		Tags:        []string{"Games"},
	}, s.handleGetFacets)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFeatured",
		Method:      http.MethodGet,
		Path:        "/api/v1/featured",
		Summary:     "Get featured games",
		Description: "Returns today's AAA and classic featured rows. The selection rotates daily.",
		Tags:        []string{"Games"},
	}, s.handleGetFeatured)
}

// === DTOs ===

type ListGamesInput struct {
	Search          string   `query:"search" doc:"Case-insensitive substring match on game names"`
	Genres          []string `query:"genres" doc:"Genres to match (any of)"`
	Sources         []string `query:"sources" doc:"Storefronts to match (any of)"`
	Classifications []string `query:"classifications" doc:"Classifications to match (any of)"`
	Visible         int      `query:"visible" minimum:"0" doc:"Window size; 0 uses the default page size"`
}

type ListGamesResponse struct {
	Games   []domain.Game `json:"games" doc:"Visible window of the filtered catalog"`
	Total   int           `json:"total" doc:"Total matches across all pages"`
	Visible int           `json:"visible" doc:"Number of games in this window"`
	HasMore bool          `json:"has_more" doc:"Whether the result extends past the window"`
}

type ListGamesOutput struct {
	Body ListGamesResponse
}

type GetGameInput struct {
	ID string `path:"id" doc:"Game slug ID"`
}

type GameOutput struct {
	Body domain.Game
}

type FacetsResponse struct {
	Genres          []domain.FacetCount `json:"genres" doc:"Genre frequency table, most common first"`
	Sources         []domain.FacetCount `json:"sources" doc:"Storefront frequency table, most common first"`
	Classifications []domain.FacetCount `json:"classifications" doc:"Classification frequency table, most common first"`
}

type FacetsOutput struct {
	Body FacetsResponse
}

type FeaturedResponse struct {
	AAA      []domain.Game `json:"aaa" doc:"Today's featured AAA titles"`
	Classics []domain.Game `json:"classics" doc:"Today's featured pre-2015 classics"`
}

type FeaturedOutput struct {
	Body FeaturedResponse
}

// === Handlers ===

func (s *Server) handleListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	criteria := domain.FilterCriteria{
		SearchText:      input.Search,
		Genres:          input.Genres,
		Sources:         input.Sources,
		Classifications: input.Classifications,
	}

	page := s.services.Catalog.ListGames(criteria, input.Visible)

	return &ListGamesOutput{
		Body: ListGamesResponse{
			Games:   page.Games,
			Total:   page.Total,
			Visible: page.Visible,
			HasMore: page.HasMore,
		},
	}, nil
}

func (s *Server) handleGetGame(ctx context.Context, input *GetGameInput) (*GameOutput, error) {
	game, err := s.services.Catalog.GetGame(input.ID)
	if err != nil {
		return nil, err
	}

	return &GameOutput{Body: *game}, nil
}

func (s *Server) handleGetFacets(ctx context.Context, _ *struct{}) (*FacetsOutput, error) {
	genres, sources, classifications := s.services.Catalog.Facets()

	return &FacetsOutput{
		Body: FacetsResponse{
			Genres:          genres,
			Sources:         sources,
			Classifications: classifications,
		},
	}, nil
}

func (s *Server) handleGetFeatured(ctx context.Context, _ *struct{}) (*FeaturedOutput, error) {
	featured := s.services.Catalog.FeaturedFor(time.Now())

	return &FeaturedOutput{
		Body: FeaturedResponse{
			AAA:      featured.AAA,
			Classics: featured.Classics,
		},
	}, nil
}
