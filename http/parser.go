package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/thanhminhmr/go-exception/exception"
	"github.com/thanhminhmr/go-exception/internal"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
)

type ServerRequestHandler[ServerRequest any] func(ctx context.Context, request *ServerRequest) ServerResponse

// ServerRequestParser binds the `query` and `url` tagged fields of ServerRequest, validates
// them with their `validate` tags, and calls handler with the result. A request that fails
// validation is answered with 400 and an ArgumentError naming the offending field.
func ServerRequestParser[ServerRequest any](handler ServerRequestHandler[ServerRequest]) http.HandlerFunc {
	if reflect.TypeFor[ServerRequest]().Kind() != reflect.Struct {
		panic("BUG: ServerRequest must be a struct")
	}
	return func(writer http.ResponseWriter, request *http.Request) {
		logger := zerolog.Ctx(request.Context())
		var parsed ServerRequest
		if err := parseServerRequest(request, &parsed); err != nil {
			logger.Error().Err(err).Msg("Failed to parse request")
			render(logger, writer, ErrorResponse(err))
			return
		}
		logger.Trace().Any("request", parsed).Msg("Request parsed")
		if response := handler(request.Context(), &parsed); response != nil {
			render(logger, writer, response)
		} else {
			writer.WriteHeader(http.StatusNoContent)
		}
	}
}

func render(logger *zerolog.Logger, writer http.ResponseWriter, response ServerResponse) {
	if err := response.Render(writer); err != nil {
		logger.Error().Err(err).Msg("Failed to render response")
	}
}

func parseServerRequest(request *http.Request, parsed any) error {
	// parse and bind url query values
	if values := request.URL.Query(); len(values) > 0 {
		if err := bind("query", values, parsed); err != nil {
			return exception.New("Bind query values failed", err)
		}
	}
	// parse and bind url parameters
	if routeContext := chi.RouteContext(request.Context()); routeContext != nil && len(routeContext.URLParams.Keys) > 0 {
		urlParams := map[string]string{}
		for index, key := range routeContext.URLParams.Keys {
			urlParams[key] = routeContext.URLParams.Values[index]
		}
		if err := bind("url", urlParams, parsed); err != nil {
			return exception.New("Bind url params failed", err)
		}
	}
	// validate the bound values
	if err := internal.Validator.Struct(parsed); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
			field := fieldErrors[0]
			return exception.New("Request is not valid", exception.NewArgumentError(
				fmt.Sprintf("%s failed on the '%s' rule", field.Field(), field.Tag()),
				field.Field(),
			))
		}
		return exception.New("Request is not valid", err)
	}
	return nil
}

func bind(tag string, input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:           internal.DefaultDecodeHookFunc,
		WeaklyTypedInput:     true,
		Result:               output,
		TagName:              tag,
		IgnoreUntaggedFields: true,
	})
	if err != nil {
		return exception.New("Create decoder failed", err)
	}
	if err := decoder.Decode(input); err != nil {
		return exception.New("Decode failed", err)
	}
	return nil
}
