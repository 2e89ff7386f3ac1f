// Package handlers wires the HTTP surface: JSON endpoints over the services
// layer, registered on the PocketBase router.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"costestimation/services"
)

// apiError translates service errors into JSON responses with the matching
// status code. Unknown errors are logged and reported as 500.
func apiError(e *core.RequestEvent, err error) error {
	var verr services.ValidationError
	if errors.As(err, &verr) {
		return e.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
	}

	var nf services.NotFoundError
	if errors.As(err, &nf) {
		return e.JSON(http.StatusNotFound, map[string]string{"error": nf.Error()})
	}

	log.Printf("handlers: %v", err)
	return e.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
