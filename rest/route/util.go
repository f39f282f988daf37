package route

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

// jsonNull is the body returned when a well-formed id matches nothing.
var jsonNull = json.RawMessage("null")

// readJSONObject reads the request body, which must be a single JSON
// object. Any other body is reported as a 400.
func readJSONObject(r *http.Request) (map[string]any, error) {
	body := utility.NewRequestReader(r)
	defer body.Close()

	in := map[string]any{}
	if err := utility.ReadJSON(body, &in); err != nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    errors.Wrap(err, "reading JSON request body").Error(),
		}
	}
	if in == nil {
		return nil, gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "request body must be a JSON object",
		}
	}

	return in, nil
}

// badRequest marks a decoding failure as a 400.
func badRequest(err error) error {
	if err == nil {
		return nil
	}
	return gimlet.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
	}
}

// getNonNegativeInt returns the named query parameter, treating a
// missing, malformed or negative value as zero.
func getNonNegativeInt(vals url.Values, key string) int {
	n, err := strconv.Atoi(vals.Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// errorResponder turns a connector error into a response. Errors that
// already carry a status keep it; everything else is a 500.
func errorResponder(err error, msg string) gimlet.Responder {
	var errResp gimlet.ErrorResponse
	if errors.As(err, &errResp) {
		grip.ErrorWhen(errResp.StatusCode >= http.StatusInternalServerError, message.WrapError(err, message.Fields{
			"message": msg,
			"status":  errResp.StatusCode,
		}))
		return gimlet.MakeJSONErrorResponder(errResp)
	}

	grip.Error(message.WrapError(err, message.Fields{
		"message": msg,
		"status":  http.StatusInternalServerError,
	}))
	return gimlet.MakeJSONInternalErrorResponder(errors.Wrap(err, msg))
}
