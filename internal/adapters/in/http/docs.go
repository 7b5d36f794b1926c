package http

import (
	"context"
	"sync"

	"orders/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-faster/errors"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

const docsInstanceName = "orders"

var (
	docsOnce sync.Once
	docsErr  error
)

type openAPIDoc string

func (d openAPIDoc) ReadDoc() string {
	return string(d)
}

// LoadOpenAPI parses and validates the embedded OpenAPI document.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, errors.Wrap(err, "load openapi document")
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, errors.Wrap(err, "validate openapi document")
	}
	return doc, nil
}

// registerDocs publishes the document to the swag registry, which allows a
// single registration per name for the whole process.
func registerDocs(ctx context.Context) error {
	docsOnce.Do(func() {
		var doc *openapi3.T
		doc, docsErr = LoadOpenAPI(ctx)
		if docsErr != nil {
			return
		}

		var raw []byte
		raw, docsErr = doc.MarshalJSON()
		if docsErr != nil {
			docsErr = errors.Wrap(docsErr, "encode openapi document")
			return
		}

		swag.Register(docsInstanceName, openAPIDoc(raw))
	})
	return docsErr
}

func swaggerHandler() echo.HandlerFunc {
	return echoSwagger.EchoWrapHandler(echoSwagger.InstanceName(docsInstanceName))
}
