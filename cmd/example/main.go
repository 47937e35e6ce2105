// Command example serves a small HTTP API whose failures are answered with their cause
// chains, and prints every rendering of a chain on startup.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/thanhminhmr/go-exception/configuration"
	"github.com/thanhminhmr/go-exception/exception"
	"github.com/thanhminhmr/go-exception/http"
	"github.com/thanhminhmr/go-exception/log"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func init() {
	configuration.SetDefault("HTTP_SERVER_PORT", "8080")
}

func main() {
	fx.New(
		fx.Provide(
			log.ConsoleLogger,
			configuration.Loader(&http.ServerConfig{}, http.ConfigPrefix),
			configuration.Loader(&http.ServerExtraConfig{}, http.ConfigPrefix),
			http.NewServer,
		),
		fx.WithLogger(log.InitFxLogger),
		fx.Invoke(applySettings, demonstrate, registerRoutes),
	).Run()
}

func applySettings() error {
	settings, err := exception.LoadSettings()
	if err != nil {
		return err
	}
	return exception.ApplySettings(settings)
}

type greetRequest struct {
	Name string `query:"name"`
}

type userRequest struct {
	ID int `url:"id" validate:"min=1"`
}

func registerRoutes(router chi.Router) {
	router.Get("/greet", http.ServerRequestParser(greet))
	router.Get("/users/{id}", http.ServerRequestParser(findUser))
}

func greet(_ context.Context, request *greetRequest) http.ServerResponse {
	exception.ThrowIfNullOrWhitespace(request.Name, "name")
	return http.ServerJsonResponse{Status: 200, Response: map[string]string{"greeting": "Hello, " + request.Name}}
}

func findUser(ctx context.Context, request *userRequest) http.ServerResponse {
	if err := loadUser(request.ID); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Find user failed")
		return http.ErrorResponse(exception.New("Find user failed", err))
	}
	return http.ServerJsonResponse{Status: 200, Response: map[string]int{"id": request.ID}}
}

var errUnreachable = errors.New("connection refused")

func loadUser(id int) error {
	return exception.NewWithOptions(fmt.Sprintf("user %d is not loaded", id), exception.Options{
		Name:  "StorageError",
		Cause: errUnreachable,
	})
}

func demonstrate(logger *zerolog.Logger) {
	exception.ExtendNativeErrors()
	err := exception.New("Handle request failed", loadUser(42))

	fmt.Fprintln(os.Stdout, "String:")
	fmt.Fprintln(os.Stdout, err.String())
	fmt.Fprintln(os.Stdout, "FullStack:")
	fmt.Fprintln(os.Stdout, err.FullStack())
	fmt.Fprintln(os.Stdout, "PrintCauseChain:")
	fmt.Fprintln(os.Stdout, exception.PrintCauseChain(err))
	if bytes, marshalErr := json.MarshalIndent(err, "", "  "); marshalErr == nil {
		fmt.Fprintln(os.Stdout, "JSON:")
		fmt.Fprintln(os.Stdout, string(bytes))
	}
	logger.Info().Str("version", exception.Version()).Err(err).Msg("Rendered a sample chain")
}
