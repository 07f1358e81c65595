package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gamedex/gamedex-server/internal/metadata/rawg"
)

func (s *Server) registerMetadataRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getGameMetadata",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/{id}/metadata",
		Summary:     "Get game metadata",
		Description: "Returns RAWG metadata for a game, matched by name",
		Tags:        []string{"Metadata"},
	}, s.handleGetGameMetadata)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGameScreenshots",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/{id}/screenshots",
		Summary:     "Get game screenshots",
		Description: "Returns RAWG screenshots for a game",
		Tags:        []string{"Metadata"},
	}, s.handleGetGameScreenshots)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGameMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/games/{id}/movies",
		Summary:     "Get game movies",
		Description: "Returns RAWG trailers and gameplay videos for a game",
		Tags:        []string{"Metadata"},
	}, s.handleGetGameMovies)
}

// === DTOs ===

type MetadataResponse struct {
	Name            string             `json:"name" doc:"Name as RAWG knows it"`
	Description     string             `json:"description" doc:"Plain-text description, translated when enabled"`
	BackgroundImage string             `json:"background_image,omitempty" doc:"Hero image URL"`
	Rating          float64            `json:"rating" doc:"Community rating out of 5"`
	RatingsCount    int                `json:"ratings_count" doc:"Number of community ratings"`
	Metacritic      *int               `json:"metacritic,omitempty" doc:"Metacritic score"`
	Released        string             `json:"released,omitempty" doc:"Release date (YYYY-MM-DD)"`
	Website         string             `json:"website,omitempty" doc:"Official website URL"`
	Platforms       []PlatformResponse `json:"platforms" doc:"Platforms, with system requirements when RAWG has them"`
	Genres          []string           `json:"genres" doc:"RAWG genre names"`
	Developers      []string           `json:"developers" doc:"Developer names"`
	Publishers      []string           `json:"publishers" doc:"Publisher names"`
	Clip            string             `json:"clip,omitempty" doc:"Short gameplay clip URL"`
}

type PlatformResponse struct {
	Name         string                `json:"name" doc:"Platform name"`
	Requirements *RequirementsResponse `json:"requirements,omitempty" doc:"System requirements, PC platforms mostly"`
}

type RequirementsResponse struct {
	Minimum     string `json:"minimum,omitempty" doc:"Minimum requirement text"`
	Recommended string `json:"recommended,omitempty" doc:"Recommended requirement text"`
}

type MetadataOutput struct {
	Body MetadataResponse
}

type ScreenshotResponse struct {
	Image  string `json:"image" doc:"Screenshot URL"`
	Width  int    `json:"width,omitempty" doc:"Pixel width"`
	Height int    `json:"height,omitempty" doc:"Pixel height"`
}

type ScreenshotsResponse struct {
	Screenshots []ScreenshotResponse `json:"screenshots" doc:"In-game screenshots"`
}

type ScreenshotsOutput struct {
	Body ScreenshotsResponse
}

type MovieResponse struct {
	Name     string `json:"name" doc:"Video title"`
	Preview  string `json:"preview,omitempty" doc:"Preview image URL"`
	Video480 string `json:"video_480,omitempty" doc:"480p rendition URL"`
	VideoMax string `json:"video_max,omitempty" doc:"Highest-quality rendition URL"`
}

type MoviesResponse struct {
	Movies []MovieResponse `json:"movies" doc:"Trailers and gameplay videos"`
}

type MoviesOutput struct {
	Body MoviesResponse
}

// === Handlers ===

func (s *Server) handleGetGameMetadata(ctx context.Context, input *GetGameInput) (*MetadataOutput, error) {
	game, err := s.services.Catalog.GetGame(input.ID)
	if err != nil {
		return nil, err
	}

	details, err := s.services.Metadata.Details(ctx, game.Name)
	if err != nil {
		return nil, err
	}

	return &MetadataOutput{Body: toMetadataResponse(details)}, nil
}

func (s *Server) handleGetGameScreenshots(ctx context.Context, input *GetGameInput) (*ScreenshotsOutput, error) {
	game, err := s.services.Catalog.GetGame(input.ID)
	if err != nil {
		return nil, err
	}

	shots, err := s.services.Metadata.Screenshots(ctx, game.Name)
	if err != nil {
		return nil, err
	}

	out := make([]ScreenshotResponse, 0, len(shots))
	for _, shot := range shots {
		out = append(out, ScreenshotResponse{
			Image:  shot.Image,
			Width:  shot.Width,
			Height: shot.Height,
		})
	}

	return &ScreenshotsOutput{Body: ScreenshotsResponse{Screenshots: out}}, nil
}

func (s *Server) handleGetGameMovies(ctx context.Context, input *GetGameInput) (*MoviesOutput, error) {
	game, err := s.services.Catalog.GetGame(input.ID)
	if err != nil {
		return nil, err
	}

	movies, err := s.services.Metadata.Movies(ctx, game.Name)
	if err != nil {
		return nil, err
	}

	out := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		out = append(out, MovieResponse{
			Name:     movie.Name,
			Preview:  movie.Preview,
			Video480: movie.Data.Small,
			VideoMax: movie.Data.Max,
		})
	}

	return &MoviesOutput{Body: MoviesResponse{Movies: out}}, nil
}

func toMetadataResponse(details *rawg.GameDetails) MetadataResponse {
	platforms := make([]PlatformResponse, 0, len(details.Platforms))
	for _, p := range details.Platforms {
		entry := PlatformResponse{Name: p.Platform.Name}
		if p.Requirements != nil {
			entry.Requirements = &RequirementsResponse{
				Minimum:     p.Requirements.Minimum,
				Recommended: p.Requirements.Recommended,
			}
		}
		platforms = append(platforms, entry)
	}

	resp := MetadataResponse{
		Name:            details.Name,
		Description:     details.DescriptionRaw,
		BackgroundImage: details.BackgroundImage,
		Rating:          details.Rating,
		RatingsCount:    details.RatingsCount,
		Metacritic:      details.Metacritic,
		Released:        details.Released,
		Website:         details.Website,
		Platforms:       platforms,
		Genres:          namedNames(details.Genres),
		Developers:      namedNames(details.Developers),
		Publishers:      namedNames(details.Publishers),
	}
	if details.Clip != nil {
		resp.Clip = details.Clip.Clip
	}
	return resp
}

func namedNames(entries []rawg.Named) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names
}
