package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	extractionHTTP "voicetask/internal/extraction/delivery/http"
	"voicetask/internal/middleware"
)

// setupExtractionDomain registers the extraction HTTP routes under the API group.
//
// Pattern to follow when adding a new domain:
//  1. Create UseCase:      uc := mydomainUC.New(...)
//  2. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  3. Register Routes:     mydomainHTTP.RegisterRoutes(api.Group("/myresource"), h, mw)
func (srv HTTPServer) setupExtractionDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	h := extractionHTTP.New(srv.l, srv.extractionUC)

	// Registers /api/v1/extraction/extract and /api/v1/extraction/confirm.
	extractionHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Extraction domain registered")
	return nil
}
